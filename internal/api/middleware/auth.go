package middleware

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sohelranaweb/hotelier-server/internal/api/presenter"
	"github.com/sohelranaweb/hotelier-server/internal/auth"
	"github.com/sohelranaweb/hotelier-server/internal/core"
)

// Fixed rejection messages, kept stable because clients match on them.
const (
	MsgUnauthorized = "unAuthorized access"
	MsgForbidden    = "forbidden access"
)

// AuthedHandler is a handler that requires a verified identity. The identity
// is passed as an explicit parameter rather than smuggled through the request
// context, so a handler that needs one cannot run without verification —
// the ordering "verify before gate before handler" is structural, not a
// calling convention.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, id *auth.Identity)

// Guard builds the protected compositions of the route table. Verification
// is stateless; the admin gate performs one user lookup per request, with no
// caching, so a role change is visible on the next call.
type Guard struct {
	verifier *auth.Verifier
	users    core.UserStore
}

func NewGuard(verifier *auth.Verifier, users core.UserStore) *Guard {
	return &Guard{verifier: verifier, users: users}
}

// Verified rejects the request with 401 unless it carries a valid bearer
// token, then calls next with the decoded identity.
func (g *Guard) Verified(next AuthedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := g.verifier.Verify(r.Header.Get("Authorization"))
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("token verification failed")
			presenter.Error(w, r, MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		logger := log.Ctx(r.Context())
		logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("email", id.Email)
		})

		next(w, r, id)
	}
}

// AdminOnly composes Verified with the admin gate: the stored record for the
// verified email must exist and hold the admin role, otherwise 403.
func (g *Guard) AdminOnly(next AuthedHandler) http.HandlerFunc {
	return g.Verified(func(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
		user, err := g.users.GetUserByEmail(r.Context(), id.Email)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			log.Ctx(r.Context()).Error().Err(err).Msg("admin gate store lookup failed")
			presenter.Error(w, r, "failed to check privileges", http.StatusInternalServerError)
			return
		}
		if !user.IsAdmin() {
			log.Ctx(r.Context()).Warn().Msg("admin gate rejected request")
			presenter.Error(w, r, MsgForbidden, http.StatusForbidden)
			return
		}
		next(w, r, id)
	})
}
