package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/icanhazhotelier"

	IssueTokenRoute = "/jwt"

	ListUsersRoute   = "/users"
	CreateUserRoute  = "/users"
	GetUserRoute     = "/users/{email}"
	SetBadgeRoute    = "/users/{email}"
	AdminFlagRoute   = "/users/admin/{email}"
	PromoteUserRoute = "/users/admin/{id}"
	DeleteUserRoute  = "/users/{id}"

	ListMealsRoute  = "/meals"
	CreateMealRoute = "/meals"
	GetMealRoute    = "/meal/{id}"
	UpsertMealRoute = "/meals/{id}"
	DeleteMealRoute = "/meals/{id}"

	ListUpcomingMealsRoute  = "/upcoming-meals"
	CreateUpcomingMealRoute = "/upcoming-meals"

	ListBadgesRoute = "/badge"
	GetBadgeRoute   = "/badge/{package_name}"

	CreatePaymentIntentRoute = "/create-payment-intent"
	CreatePaymentRoute       = "/payments"
)
