package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sohelranaweb/hotelier-server/internal/api/presenter"
	"github.com/sohelranaweb/hotelier-server/internal/core"
)

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.store.ListBadges(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list badges")
		presenter.Err(w, r, err, "failed to list badges")
		return
	}
	presenter.JSON(w, r, badges, http.StatusOK)
}

func (s *Server) handleGetBadge(w http.ResponseWriter, r *http.Request) {
	packageName := r.PathValue("package_name")

	badge, err := s.store.GetBadgeByPackage(r.Context(), packageName)
	if errors.Is(err, core.ErrNotFound) {
		presenter.Error(w, r, "badge not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to look up badge")
		presenter.Err(w, r, err, "failed to look up badge")
		return
	}
	presenter.JSON(w, r, badge, http.StatusOK)
}
