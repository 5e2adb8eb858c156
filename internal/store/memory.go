package store

import (
	"context"
	"sync"

	"github.com/rs/xid"

	"github.com/sohelranaweb/hotelier-server/internal/core"
)

// InMemoryStore keeps all collections in process memory. It backs the tests
// and small single-node deployments; the badger store is the durable option.
type InMemoryStore struct {
	mu         sync.RWMutex
	users      map[string]core.User // keyed by id
	userEmails map[string]string    // email -> id
	meals      map[string]core.Meal
	upcoming   map[string]core.UpcomingMeal
	badges     map[string]core.Badge
	payments   map[string]core.Payment
}

var _ core.Store = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:      make(map[string]core.User),
		userEmails: make(map[string]string),
		meals:      make(map[string]core.Meal),
		upcoming:   make(map[string]core.UpcomingMeal),
		badges:     make(map[string]core.Badge),
		payments:   make(map[string]core.Payment),
	}
}

func (s *InMemoryStore) CreateUser(_ context.Context, user core.User) (core.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userEmails[user.Email]; exists {
		return core.InsertResult{}, core.ErrAlreadyExists
	}
	if user.ID == "" {
		user.ID = xid.New().String()
	}
	s.users[user.ID] = user
	s.userEmails[user.Email] = user.ID
	return core.InsertResult{InsertedID: user.ID}, nil
}

func (s *InMemoryStore) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userEmails[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *InMemoryStore) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *InMemoryStore) SetUserBadge(_ context.Context, email, badge string) (core.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.userEmails[email]
	if !ok {
		// upsert: create a minimal record carrying the badge
		user := core.User{ID: xid.New().String(), Email: email, Badge: badge}
		s.users[user.ID] = user
		s.userEmails[email] = user.ID
		return core.UpdateResult{UpsertedID: user.ID}, nil
	}

	user := s.users[id]
	result := core.UpdateResult{MatchedCount: 1}
	if user.Badge != badge {
		user.Badge = badge
		s.users[id] = user
		result.ModifiedCount = 1
	}
	return result, nil
}

func (s *InMemoryStore) PromoteUser(_ context.Context, id string) (core.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return core.UpdateResult{}, nil
	}
	result := core.UpdateResult{MatchedCount: 1}
	if user.Role != core.AdminRole {
		user.Role = core.AdminRole
		s.users[id] = user
		result.ModifiedCount = 1
	}
	return result, nil
}

func (s *InMemoryStore) DeleteUser(_ context.Context, id string) (core.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return core.DeleteResult{}, nil
	}
	delete(s.users, id)
	delete(s.userEmails, user.Email)
	return core.DeleteResult{DeletedCount: 1}, nil
}

func (s *InMemoryStore) ListMeals(_ context.Context) ([]core.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meals := make([]core.Meal, 0, len(s.meals))
	for _, m := range s.meals {
		meals = append(meals, m)
	}
	return meals, nil
}

func (s *InMemoryStore) GetMeal(_ context.Context, id string) (*core.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meal, ok := s.meals[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &meal, nil
}

func (s *InMemoryStore) CreateMeal(_ context.Context, meal core.Meal) (core.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if meal.ID == "" {
		meal.ID = xid.New().String()
	}
	s.meals[meal.ID] = meal
	return core.InsertResult{InsertedID: meal.ID}, nil
}

func (s *InMemoryStore) UpsertMeal(_ context.Context, id string, meal core.Meal) (core.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal.ID = id
	if _, ok := s.meals[id]; !ok {
		s.meals[id] = meal
		return core.UpdateResult{UpsertedID: id}, nil
	}
	s.meals[id] = meal
	return core.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *InMemoryStore) DeleteMeal(_ context.Context, id string) (core.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meals[id]; !ok {
		return core.DeleteResult{}, nil
	}
	delete(s.meals, id)
	return core.DeleteResult{DeletedCount: 1}, nil
}

func (s *InMemoryStore) ListUpcomingMeals(_ context.Context) ([]core.UpcomingMeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meals := make([]core.UpcomingMeal, 0, len(s.upcoming))
	for _, m := range s.upcoming {
		meals = append(meals, m)
	}
	return meals, nil
}

func (s *InMemoryStore) CreateUpcomingMeal(_ context.Context, meal core.UpcomingMeal) (core.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if meal.ID == "" {
		meal.ID = xid.New().String()
	}
	s.upcoming[meal.ID] = meal
	return core.InsertResult{InsertedID: meal.ID}, nil
}

func (s *InMemoryStore) ListBadges(_ context.Context) ([]core.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	badges := make([]core.Badge, 0, len(s.badges))
	for _, b := range s.badges {
		badges = append(badges, b)
	}
	return badges, nil
}

func (s *InMemoryStore) GetBadgeByPackage(_ context.Context, packageName string) (*core.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.badges {
		if b.PackageName == packageName {
			badge := b
			return &badge, nil
		}
	}
	return nil, core.ErrNotFound
}

// SeedBadge inserts a membership package directly. Badges are reference data
// loaded at startup, not managed through the HTTP surface.
func (s *InMemoryStore) SeedBadge(badge core.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, b := range s.badges {
		if b.PackageName == badge.PackageName {
			badge.ID = id
			s.badges[id] = badge
			return nil
		}
	}
	if badge.ID == "" {
		badge.ID = xid.New().String()
	}
	s.badges[badge.ID] = badge
	return nil
}

func (s *InMemoryStore) CreatePayment(_ context.Context, payment core.Payment) (core.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.ID == "" {
		payment.ID = xid.New().String()
	}
	s.payments[payment.ID] = payment
	return core.InsertResult{InsertedID: payment.ID}, nil
}

// ListPayments returns every recorded payment.
func (s *InMemoryStore) ListPayments(_ context.Context) ([]core.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]core.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		payments = append(payments, p)
	}
	return payments, nil
}
