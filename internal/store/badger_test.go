package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/sohelranaweb/hotelier-server/internal/core"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("opening badger: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewBadgerStore(db)
}

func TestBadgerUserLifecycle(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	inserted, err := s.CreateUser(ctx, core.User{Email: "a@x.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	if _, err := s.CreateUser(ctx, core.User{Email: "a@x.com"}); !errors.Is(err, core.ErrAlreadyExists) {
		t.Fatalf("duplicate CreateUser() error = %v, want ErrAlreadyExists", err)
	}

	user, err := s.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if user.ID != inserted.InsertedID || user.Name != "Alice" {
		t.Errorf("user = %+v", user)
	}

	result, err := s.PromoteUser(ctx, inserted.InsertedID)
	if err != nil {
		t.Fatalf("PromoteUser() error: %v", err)
	}
	if result.ModifiedCount != 1 {
		t.Errorf("promote result = %+v, want modified=1", result)
	}
	user, _ = s.GetUserByEmail(ctx, "a@x.com")
	if !user.IsAdmin() {
		t.Error("user not admin after promotion")
	}

	// badge upsert keeps the role
	if _, err := s.SetUserBadge(ctx, "a@x.com", "Gold"); err != nil {
		t.Fatalf("SetUserBadge() error: %v", err)
	}
	user, _ = s.GetUserByEmail(ctx, "a@x.com")
	if user.Badge != "Gold" || !user.IsAdmin() {
		t.Errorf("user after badge update = %+v", user)
	}

	// badge upsert for an unknown email creates the record
	upsert, err := s.SetUserBadge(ctx, "new@x.com", "Silver")
	if err != nil {
		t.Fatalf("SetUserBadge() error: %v", err)
	}
	if upsert.UpsertedID == "" {
		t.Errorf("upsert result = %+v, want an upserted id", upsert)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("listed %d users, want 2", len(users))
	}

	deleted, err := s.DeleteUser(ctx, inserted.InsertedID)
	if err != nil {
		t.Fatalf("DeleteUser() error: %v", err)
	}
	if deleted.DeletedCount != 1 {
		t.Errorf("delete result = %+v, want deleted=1", deleted)
	}
	if _, err := s.GetUserByEmail(ctx, "a@x.com"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetUserByEmail() after delete error = %v, want ErrNotFound", err)
	}
	// the email index is cleaned up with the document
	if _, err := s.CreateUser(ctx, core.User{Email: "a@x.com"}); err != nil {
		t.Errorf("CreateUser() after delete error: %v", err)
	}
}

func TestBadgerMealsAndBadges(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	inserted, err := s.CreateMeal(ctx, core.Meal{Title: "Biryani", Price: 12.5})
	if err != nil {
		t.Fatalf("CreateMeal() error: %v", err)
	}

	update, err := s.UpsertMeal(ctx, inserted.InsertedID, core.Meal{Title: "Chicken Biryani", Price: 13})
	if err != nil {
		t.Fatalf("UpsertMeal() error: %v", err)
	}
	if update.MatchedCount != 1 {
		t.Errorf("update result = %+v, want matched=1", update)
	}

	meal, err := s.GetMeal(ctx, inserted.InsertedID)
	if err != nil {
		t.Fatalf("GetMeal() error: %v", err)
	}
	if meal.Title != "Chicken Biryani" || meal.ID != inserted.InsertedID {
		t.Errorf("meal = %+v", meal)
	}

	// seeding twice under one package name keeps a single badge
	if err := s.SeedBadge(core.Badge{PackageName: "Gold", Price: 40}); err != nil {
		t.Fatalf("SeedBadge() error: %v", err)
	}
	if err := s.SeedBadge(core.Badge{PackageName: "Gold", Price: 49.99}); err != nil {
		t.Fatalf("SeedBadge() error: %v", err)
	}
	badges, err := s.ListBadges(ctx)
	if err != nil {
		t.Fatalf("ListBadges() error: %v", err)
	}
	if len(badges) != 1 || badges[0].Price != 49.99 {
		t.Errorf("badges = %+v", badges)
	}

	badge, err := s.GetBadgeByPackage(ctx, "Gold")
	if err != nil {
		t.Fatalf("GetBadgeByPackage() error: %v", err)
	}
	if badge.Price != 49.99 {
		t.Errorf("badge = %+v", badge)
	}
}
