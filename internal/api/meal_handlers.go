package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sohelranaweb/hotelier-server/internal/api/presenter"
	"github.com/sohelranaweb/hotelier-server/internal/auth"
	"github.com/sohelranaweb/hotelier-server/internal/core"
)

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := s.store.ListMeals(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list meals")
		presenter.Err(w, r, err, "failed to list meals")
		return
	}
	presenter.JSON(w, r, meals, http.StatusOK)
}

func (s *Server) handleGetMeal(w http.ResponseWriter, r *http.Request) {
	mealID := r.PathValue("id")

	meal, err := s.store.GetMeal(r.Context(), mealID)
	if errors.Is(err, core.ErrNotFound) {
		presenter.Error(w, r, "meal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to look up meal")
		presenter.Err(w, r, err, "failed to look up meal")
		return
	}
	presenter.JSON(w, r, meal, http.StatusOK)
}

func (s *Server) handleCreateMeal(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	logger := log.Ctx(r.Context())

	var meal core.Meal
	if err := DecodePayload(r, &meal, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode meal payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	meal.ID = ""
	if meal.AdminEmail == "" {
		meal.AdminEmail = id.Email
	}

	result, err := s.store.CreateMeal(r.Context(), meal)
	if err != nil {
		logger.Error().Err(err).Msg("failed to store meal")
		presenter.Err(w, r, err, "failed to store meal")
		return
	}

	logger.Info().Str("meal_id", result.InsertedID).Msg("meal created")
	presenter.JSON(w, r, result, http.StatusCreated)
}

func (s *Server) handleUpsertMeal(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	logger := log.Ctx(r.Context())
	mealID := r.PathValue("id")

	var meal core.Meal
	if err := DecodePayload(r, &meal, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode meal payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := s.store.UpsertMeal(r.Context(), mealID, meal)
	if err != nil {
		logger.Error().Err(err).Msg("failed to update meal")
		presenter.Err(w, r, err, "failed to update meal")
		return
	}

	logger.Info().Str("meal_id", mealID).Msg("meal updated")
	presenter.JSON(w, r, result, http.StatusOK)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	logger := log.Ctx(r.Context())
	mealID := r.PathValue("id")

	result, err := s.store.DeleteMeal(r.Context(), mealID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to delete meal")
		presenter.Err(w, r, err, "failed to delete meal")
		return
	}

	logger.Info().Str("meal_id", mealID).Msg("meal deleted")
	presenter.JSON(w, r, result, http.StatusOK)
}

func (s *Server) handleListUpcomingMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := s.store.ListUpcomingMeals(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list upcoming meals")
		presenter.Err(w, r, err, "failed to list upcoming meals")
		return
	}
	presenter.JSON(w, r, meals, http.StatusOK)
}

func (s *Server) handleCreateUpcomingMeal(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	logger := log.Ctx(r.Context())

	var meal core.UpcomingMeal
	if err := DecodePayload(r, &meal, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode upcoming meal payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	meal.ID = ""
	if meal.AdminEmail == "" {
		meal.AdminEmail = id.Email
	}

	result, err := s.store.CreateUpcomingMeal(r.Context(), meal)
	if err != nil {
		logger.Error().Err(err).Msg("failed to store upcoming meal")
		presenter.Err(w, r, err, "failed to store upcoming meal")
		return
	}

	logger.Info().Str("meal_id", result.InsertedID).Msg("upcoming meal created")
	presenter.JSON(w, r, result, http.StatusCreated)
}
