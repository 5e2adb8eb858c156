package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sohelranaweb/hotelier-server/internal/api/middleware"
	"github.com/sohelranaweb/hotelier-server/internal/api/presenter"
	"github.com/sohelranaweb/hotelier-server/internal/auth"
	"github.com/sohelranaweb/hotelier-server/internal/core"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// handleIssueToken mints a session token for the posted identity claims.
// The payload is signed as-is; only iat/exp are stamped by the issuer.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var claims map[string]any
	if err := DecodePayload(r, &claims, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode identity claims")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	token, err := s.issuer.Issue(claims)
	if err != nil {
		logger.Error().Err(err).Msg("token issuance failed")
		presenter.Error(w, r, "token issuance failed", http.StatusInternalServerError)
		return
	}

	logger.Info().Msg("session token issued")
	presenter.JSON(w, r, tokenResponse{Token: token}, http.StatusOK)
}

type createUserResponse struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

// handleCreateUser registers an account. Sign-up is idempotent per email:
// the duplicate case reports a nil inserted id instead of failing.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var user core.User
	if err := DecodePayload(r, &user, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode user payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if user.Email == "" {
		presenter.Error(w, r, "email is required", http.StatusBadRequest)
		return
	}
	user.ID = ""
	user.Role = "" // role elevation is a separate explicit operation

	result, err := s.store.CreateUser(r.Context(), user)
	if errors.Is(err, core.ErrAlreadyExists) {
		presenter.JSON(w, r, createUserResponse{Message: "user already exist"}, http.StatusOK)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to store user")
		presenter.Err(w, r, err, "failed to store user")
		return
	}

	logger.Info().Str("user_id", result.InsertedID).Msg("user created")
	presenter.JSON(w, r, createUserResponse{InsertedID: &result.InsertedID}, http.StatusCreated)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list users")
		presenter.Err(w, r, err, "failed to list users")
		return
	}
	presenter.JSON(w, r, users, http.StatusOK)
}

type adminFlagResponse struct {
	Admin bool `json:"admin"`
}

// handleAdminFlag reports whether the stored record for the path email holds
// the admin role. A missing record reads as false, not as an error.
func (s *Server) handleAdminFlag(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	email := r.PathValue("email")

	user, err := s.store.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to look up user")
		presenter.Err(w, r, err, "failed to look up user")
		return
	}

	presenter.JSON(w, r, adminFlagResponse{Admin: user.IsAdmin()}, http.StatusOK)
}

// handleGetUser returns one account. Callers may read their own record;
// anyone else's requires the admin role.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	email := r.PathValue("email")

	if ok, err := s.selfOrAdmin(r, id, email); err != nil {
		presenter.Err(w, r, err, "failed to check privileges")
		return
	} else if !ok {
		presenter.Error(w, r, middleware.MsgForbidden, http.StatusForbidden)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), email)
	if errors.Is(err, core.ErrNotFound) {
		presenter.Error(w, r, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to look up user")
		presenter.Err(w, r, err, "failed to look up user")
		return
	}

	presenter.JSON(w, r, user, http.StatusOK)
}

type setBadgePayload struct {
	Badge string `json:"badge"`
}

// handleSetBadge updates the badge on the account with the path email,
// creating the record if needed. Only the badge field is written.
func (s *Server) handleSetBadge(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	logger := log.Ctx(r.Context())
	email := r.PathValue("email")

	if ok, err := s.selfOrAdmin(r, id, email); err != nil {
		presenter.Err(w, r, err, "failed to check privileges")
		return
	} else if !ok {
		presenter.Error(w, r, middleware.MsgForbidden, http.StatusForbidden)
		return
	}

	var payload setBadgePayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode badge payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := s.store.SetUserBadge(r.Context(), email, payload.Badge)
	if err != nil {
		logger.Error().Err(err).Msg("failed to update badge")
		presenter.Err(w, r, err, "failed to update badge")
		return
	}

	logger.Info().Str("badge", payload.Badge).Msg("badge updated")
	presenter.JSON(w, r, result, http.StatusOK)
}

// handlePromoteUser elevates the account with the path id to admin. This is
// the only operation that writes the role field.
func (s *Server) handlePromoteUser(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	logger := log.Ctx(r.Context())
	userID := r.PathValue("id")

	result, err := s.store.PromoteUser(r.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to promote user")
		presenter.Err(w, r, err, "failed to promote user")
		return
	}

	logger.Info().Str("user_id", userID).Msg("user promoted to admin")
	presenter.JSON(w, r, result, http.StatusOK)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	logger := log.Ctx(r.Context())
	userID := r.PathValue("id")

	result, err := s.store.DeleteUser(r.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to delete user")
		presenter.Err(w, r, err, "failed to delete user")
		return
	}

	logger.Info().Str("user_id", userID).Msg("user deleted")
	presenter.JSON(w, r, result, http.StatusOK)
}

// selfOrAdmin reports whether the verified identity may act on the account
// with the given email: it is either their own or they hold the admin role.
func (s *Server) selfOrAdmin(r *http.Request, id *auth.Identity, email string) (bool, error) {
	if id.Email != "" && id.Email == email {
		return true, nil
	}
	user, err := s.store.GetUserByEmail(r.Context(), id.Email)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
