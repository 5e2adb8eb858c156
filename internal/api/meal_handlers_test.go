package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/sohelranaweb/hotelier-server/internal/core"
)

func TestMealRoutesComposition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.store.CreateUser(ctx, core.User{Email: "chef@x.com", Role: core.AdminRole}); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	chefToken := env.tokenFor(t, "chef@x.com")
	guestToken := env.tokenFor(t, "guest@x.com")

	// creation is admin-only
	body := `{"title":"Biryani","category":"dinner","price":12.5,"ingredients":["rice","chicken"]}`
	if rec := env.do(t, http.MethodPost, "/meals", "", body); rec.Code != http.StatusUnauthorized {
		t.Errorf("create without token: status = %d, want 401", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/meals", guestToken, body); rec.Code != http.StatusForbidden {
		t.Errorf("create as guest: status = %d, want 403", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/meals", chefToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create as admin: status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var inserted core.InsertResult
	decodeBody(t, rec, &inserted)
	if inserted.InsertedID == "" {
		t.Fatal("insert returned no id")
	}

	// reads are public
	rec = env.do(t, http.MethodGet, "/meals", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list meals: status = %d, want 200", rec.Code)
	}
	var meals []core.Meal
	decodeBody(t, rec, &meals)
	if len(meals) != 1 || meals[0].Title != "Biryani" {
		t.Errorf("meals = %+v", meals)
	}
	if meals[0].AdminEmail != "chef@x.com" {
		t.Errorf("admin_email = %q, want the creator's", meals[0].AdminEmail)
	}

	rec = env.do(t, http.MethodGet, "/meal/"+inserted.InsertedID, "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("get meal: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/meal/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("get unknown meal: status = %d, want 404", rec.Code)
	}

	// update and delete are admin-only
	update := `{"title":"Chicken Biryani","price":13}`
	if rec := env.do(t, http.MethodPut, "/meals/"+inserted.InsertedID, guestToken, update); rec.Code != http.StatusForbidden {
		t.Errorf("update as guest: status = %d, want 403", rec.Code)
	}
	if rec := env.do(t, http.MethodPut, "/meals/"+inserted.InsertedID, chefToken, update); rec.Code != http.StatusOK {
		t.Errorf("update as admin: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/meals/"+inserted.InsertedID, guestToken, ""); rec.Code != http.StatusForbidden {
		t.Errorf("delete as guest: status = %d, want 403", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/meals/"+inserted.InsertedID, chefToken, ""); rec.Code != http.StatusOK {
		t.Errorf("delete as admin: status = %d, want 200", rec.Code)
	}
}

func TestUpcomingMealRoutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.store.CreateUser(ctx, core.User{Email: "chef@x.com", Role: core.AdminRole}); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	body := `{"title":"Spring Rolls","category":"snack","price":4.5}`
	if rec := env.do(t, http.MethodPost, "/upcoming-meals", env.tokenFor(t, "guest@x.com"), body); rec.Code != http.StatusForbidden {
		t.Errorf("create as guest: status = %d, want 403", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/upcoming-meals", env.tokenFor(t, "chef@x.com"), body); rec.Code != http.StatusCreated {
		t.Errorf("create as admin: status = %d, want 201", rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/upcoming-meals", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d, want 200", rec.Code)
	}
	var meals []core.UpcomingMeal
	decodeBody(t, rec, &meals)
	if len(meals) != 1 {
		t.Errorf("listed %d upcoming meals, want 1", len(meals))
	}
}

func TestBadgeRoutes(t *testing.T) {
	env := newTestEnv(t)

	env.store.SeedBadge(core.Badge{PackageName: "Gold", Price: 49.99})

	rec := env.do(t, http.MethodGet, "/badge", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list badges: status = %d, want 200", rec.Code)
	}
	var badges []core.Badge
	decodeBody(t, rec, &badges)
	if len(badges) != 1 {
		t.Errorf("listed %d badges, want 1", len(badges))
	}

	rec = env.do(t, http.MethodGet, "/badge/Gold", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get badge: status = %d, want 200", rec.Code)
	}
	var badge core.Badge
	decodeBody(t, rec, &badge)
	if badge.Price != 49.99 {
		t.Errorf("price = %v, want 49.99", badge.Price)
	}

	if rec := env.do(t, http.MethodGet, "/badge/Diamond", "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown badge: status = %d, want 404", rec.Code)
	}
}
