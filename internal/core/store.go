package core

import (
	"context"
	"errors"
)

// Sentinel store errors. Stores must return these (possibly wrapped) so
// handlers can map them to HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// InsertResult mirrors the shape the original API exposed to its clients:
// the id of the freshly inserted document.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult reports how many documents an update touched. UpsertedID is
// set when an upsert created the document instead of matching an existing one.
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UserStore persists user accounts. Users are keyed by id and unique by
// email; CreateUser returns ErrAlreadyExists for a duplicate email.
type UserStore interface {
	CreateUser(ctx context.Context, user User) (InsertResult, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)

	// SetUserBadge updates the badge of the user with the given email,
	// creating the record if it does not exist (upsert).
	SetUserBadge(ctx context.Context, email, badge string) (UpdateResult, error)

	// PromoteUser sets the role of the user with the given id to admin.
	// Role elevation is its own explicit operation; no other update writes
	// the role field.
	PromoteUser(ctx context.Context, id string) (UpdateResult, error)

	DeleteUser(ctx context.Context, id string) (DeleteResult, error)
}

// MealStore persists published meals.
type MealStore interface {
	ListMeals(ctx context.Context) ([]Meal, error)
	GetMeal(ctx context.Context, id string) (*Meal, error)
	CreateMeal(ctx context.Context, meal Meal) (InsertResult, error)

	// UpsertMeal replaces the mutable fields of the meal with the given id,
	// creating the document if it does not exist.
	UpsertMeal(ctx context.Context, id string, meal Meal) (UpdateResult, error)

	DeleteMeal(ctx context.Context, id string) (DeleteResult, error)
}

// UpcomingMealStore persists announced-but-unpublished meals.
type UpcomingMealStore interface {
	ListUpcomingMeals(ctx context.Context) ([]UpcomingMeal, error)
	CreateUpcomingMeal(ctx context.Context, meal UpcomingMeal) (InsertResult, error)
}

// BadgeStore persists membership packages.
type BadgeStore interface {
	ListBadges(ctx context.Context) ([]Badge, error)
	GetBadgeByPackage(ctx context.Context, packageName string) (*Badge, error)
}

// PaymentStore records completed payments.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment Payment) (InsertResult, error)
}

// Store aggregates all collections behind a single handle, matching how one
// database connection is shared by every request handler.
type Store interface {
	UserStore
	MealStore
	UpcomingMealStore
	BadgeStore
	PaymentStore
}
