package api

import (
	"context"
	"net/http"

	"github.com/sohelranaweb/hotelier-server/internal/api/middleware"
	"github.com/sohelranaweb/hotelier-server/internal/auth"
	"github.com/sohelranaweb/hotelier-server/internal/core"
	"github.com/sohelranaweb/hotelier-server/internal/stripeapi"
)

// PaymentIntents is the slice of the Stripe client the server needs.
type PaymentIntents interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*stripeapi.Intent, error)
}

type Server struct {
	store    core.Store
	issuer   *auth.Issuer
	guard    *middleware.Guard
	payments PaymentIntents
}

// NewServer wires the store, the credential issuer/verifier and the payment
// client into the handler set. Everything a handler needs is an explicit
// dependency; there are no package-level handles.
func NewServer(
	store core.Store,
	issuer *auth.Issuer,
	verifier *auth.Verifier,
	payments PaymentIntents,
) *Server {
	return &Server{
		store:    store,
		issuer:   issuer,
		guard:    middleware.NewGuard(verifier, store),
		payments: payments,
	}
}

// Routes builds the full route table. Three compositions exist: public
// (handler only), verified (bearer token required) and admin (verified plus
// role gate). Every mutating or privileged route is at least verified; role
// elevation and deletion are admin-gated.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.HandleFunc("POST "+IssueTokenRoute, s.handleIssueToken)
	mux.HandleFunc("POST "+CreateUserRoute, s.handleCreateUser)
	mux.HandleFunc("GET "+ListMealsRoute, s.handleListMeals)
	mux.HandleFunc("GET "+GetMealRoute, s.handleGetMeal)
	mux.HandleFunc("GET "+ListUpcomingMealsRoute, s.handleListUpcomingMeals)
	mux.HandleFunc("GET "+ListBadgesRoute, s.handleListBadges)
	mux.HandleFunc("GET "+GetBadgeRoute, s.handleGetBadge)

	// verified routes
	mux.HandleFunc("GET "+AdminFlagRoute, s.guard.Verified(s.handleAdminFlag))
	mux.HandleFunc("GET "+GetUserRoute, s.guard.Verified(s.handleGetUser))
	mux.HandleFunc("PATCH "+SetBadgeRoute, s.guard.Verified(s.handleSetBadge))
	mux.HandleFunc("POST "+CreatePaymentIntentRoute, s.guard.Verified(s.handleCreatePaymentIntent))
	mux.HandleFunc("POST "+CreatePaymentRoute, s.guard.Verified(s.handleCreatePayment))

	// admin routes
	mux.HandleFunc("GET "+ListUsersRoute, s.guard.AdminOnly(s.handleListUsers))
	mux.HandleFunc("PATCH "+PromoteUserRoute, s.guard.AdminOnly(s.handlePromoteUser))
	mux.HandleFunc("DELETE "+DeleteUserRoute, s.guard.AdminOnly(s.handleDeleteUser))
	mux.HandleFunc("POST "+CreateMealRoute, s.guard.AdminOnly(s.handleCreateMeal))
	mux.HandleFunc("PUT "+UpsertMealRoute, s.guard.AdminOnly(s.handleUpsertMeal))
	mux.HandleFunc("DELETE "+DeleteMealRoute, s.guard.AdminOnly(s.handleDeleteMeal))
	mux.HandleFunc("POST "+CreateUpcomingMealRoute, s.guard.AdminOnly(s.handleCreateUpcomingMeal))

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.CORSMiddleware(
				middleware.LoggingMiddleware(
					mux))))
}
