package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/xid"

	"github.com/sohelranaweb/hotelier-server/internal/core"
)

// Key prefixes for the badger keyspace, one per collection plus two lookup
// indexes (email -> user id, package name -> badge id).
const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
	mealKeyPrefix      = "meal:"
	upcomingKeyPrefix  = "upcoming:"
	badgeKeyPrefix     = "badge:"
	badgePkgKeyPrefix  = "badge_pkg:"
	paymentKeyPrefix   = "payment:"
)

// BadgerStore implements core.Store on BadgerDB with JSON-encoded documents.
// A single badger transaction per operation is the only write-serialization
// boundary; concurrent updates to the same document are last write wins.
type BadgerStore struct {
	db *badger.DB
}

var _ core.Store = (*BadgerStore)(nil)

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Open opens (or creates) the badger database at path.
func Open(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger store at %s: %w", path, err)
	}
	return NewBadgerStore(db), nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

func getJSON(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}

func getString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	var out string
	err = item.Value(func(val []byte) error {
		out = string(val)
		return nil
	})
	return out, err
}

func listJSON[T any](db *badger.DB, prefix string) ([]T, error) {
	out := make([]T, 0)
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var doc T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return err
			}
			out = append(out, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) CreateUser(_ context.Context, user core.User) (core.InsertResult, error) {
	if user.ID == "" {
		user.ID = xid.New().String()
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := getString(txn, userEmailKeyPrefix+user.Email); err == nil {
			return core.ErrAlreadyExists
		} else if !errors.Is(err, core.ErrNotFound) {
			return err
		}
		if err := setJSON(txn, userKeyPrefix+user.ID, user); err != nil {
			return err
		}
		return txn.Set([]byte(userEmailKeyPrefix+user.Email), []byte(user.ID))
	})
	if err != nil {
		return core.InsertResult{}, err
	}
	return core.InsertResult{InsertedID: user.ID}, nil
}

func (s *BadgerStore) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	var user core.User
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := getString(txn, userEmailKeyPrefix+email)
		if err != nil {
			return err
		}
		return getJSON(txn, userKeyPrefix+id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *BadgerStore) ListUsers(_ context.Context) ([]core.User, error) {
	return listJSON[core.User](s.db, userKeyPrefix)
}

func (s *BadgerStore) SetUserBadge(_ context.Context, email, badge string) (core.UpdateResult, error) {
	var result core.UpdateResult
	err := s.db.Update(func(txn *badger.Txn) error {
		id, err := getString(txn, userEmailKeyPrefix+email)
		if errors.Is(err, core.ErrNotFound) {
			// upsert: create a minimal record carrying the badge
			user := core.User{ID: xid.New().String(), Email: email, Badge: badge}
			if err := setJSON(txn, userKeyPrefix+user.ID, user); err != nil {
				return err
			}
			if err := txn.Set([]byte(userEmailKeyPrefix+email), []byte(user.ID)); err != nil {
				return err
			}
			result = core.UpdateResult{UpsertedID: user.ID}
			return nil
		}
		if err != nil {
			return err
		}

		var user core.User
		if err := getJSON(txn, userKeyPrefix+id, &user); err != nil {
			return err
		}
		result = core.UpdateResult{MatchedCount: 1}
		if user.Badge != badge {
			user.Badge = badge
			if err := setJSON(txn, userKeyPrefix+id, user); err != nil {
				return err
			}
			result.ModifiedCount = 1
		}
		return nil
	})
	if err != nil {
		return core.UpdateResult{}, err
	}
	return result, nil
}

func (s *BadgerStore) PromoteUser(_ context.Context, id string) (core.UpdateResult, error) {
	var result core.UpdateResult
	err := s.db.Update(func(txn *badger.Txn) error {
		var user core.User
		err := getJSON(txn, userKeyPrefix+id, &user)
		if errors.Is(err, core.ErrNotFound) {
			return nil // no match, zero counts
		}
		if err != nil {
			return err
		}
		result.MatchedCount = 1
		if user.Role != core.AdminRole {
			user.Role = core.AdminRole
			if err := setJSON(txn, userKeyPrefix+id, user); err != nil {
				return err
			}
			result.ModifiedCount = 1
		}
		return nil
	})
	if err != nil {
		return core.UpdateResult{}, err
	}
	return result, nil
}

func (s *BadgerStore) DeleteUser(_ context.Context, id string) (core.DeleteResult, error) {
	var result core.DeleteResult
	err := s.db.Update(func(txn *badger.Txn) error {
		var user core.User
		err := getJSON(txn, userKeyPrefix+id, &user)
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(userKeyPrefix + id)); err != nil {
			return err
		}
		if err := txn.Delete([]byte(userEmailKeyPrefix + user.Email)); err != nil {
			return err
		}
		result.DeletedCount = 1
		return nil
	})
	if err != nil {
		return core.DeleteResult{}, err
	}
	return result, nil
}

func (s *BadgerStore) ListMeals(_ context.Context) ([]core.Meal, error) {
	return listJSON[core.Meal](s.db, mealKeyPrefix)
}

func (s *BadgerStore) GetMeal(_ context.Context, id string) (*core.Meal, error) {
	var meal core.Meal
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, mealKeyPrefix+id, &meal)
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *BadgerStore) CreateMeal(_ context.Context, meal core.Meal) (core.InsertResult, error) {
	if meal.ID == "" {
		meal.ID = xid.New().String()
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, mealKeyPrefix+meal.ID, meal)
	})
	if err != nil {
		return core.InsertResult{}, err
	}
	return core.InsertResult{InsertedID: meal.ID}, nil
}

func (s *BadgerStore) UpsertMeal(_ context.Context, id string, meal core.Meal) (core.UpdateResult, error) {
	var result core.UpdateResult
	meal.ID = id
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(mealKeyPrefix + id))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			result = core.UpdateResult{UpsertedID: id}
		case err != nil:
			return err
		default:
			result = core.UpdateResult{MatchedCount: 1, ModifiedCount: 1}
		}
		return setJSON(txn, mealKeyPrefix+id, meal)
	})
	if err != nil {
		return core.UpdateResult{}, err
	}
	return result, nil
}

func (s *BadgerStore) DeleteMeal(_ context.Context, id string) (core.DeleteResult, error) {
	var result core.DeleteResult
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(mealKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(mealKeyPrefix + id)); err != nil {
			return err
		}
		result.DeletedCount = 1
		return nil
	})
	if err != nil {
		return core.DeleteResult{}, err
	}
	return result, nil
}

func (s *BadgerStore) ListUpcomingMeals(_ context.Context) ([]core.UpcomingMeal, error) {
	return listJSON[core.UpcomingMeal](s.db, upcomingKeyPrefix)
}

func (s *BadgerStore) CreateUpcomingMeal(_ context.Context, meal core.UpcomingMeal) (core.InsertResult, error) {
	if meal.ID == "" {
		meal.ID = xid.New().String()
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, upcomingKeyPrefix+meal.ID, meal)
	})
	if err != nil {
		return core.InsertResult{}, err
	}
	return core.InsertResult{InsertedID: meal.ID}, nil
}

func (s *BadgerStore) ListBadges(_ context.Context) ([]core.Badge, error) {
	return listJSON[core.Badge](s.db, badgeKeyPrefix)
}

func (s *BadgerStore) GetBadgeByPackage(_ context.Context, packageName string) (*core.Badge, error) {
	var badge core.Badge
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := getString(txn, badgePkgKeyPrefix+packageName)
		if err != nil {
			return err
		}
		return getJSON(txn, badgeKeyPrefix+id, &badge)
	})
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

// SeedBadge writes a membership package, replacing any badge already stored
// under the same package name. Badges are reference data loaded at startup.
func (s *BadgerStore) SeedBadge(badge core.Badge) error {
	return s.db.Update(func(txn *badger.Txn) error {
		id, err := getString(txn, badgePkgKeyPrefix+badge.PackageName)
		switch {
		case errors.Is(err, core.ErrNotFound):
			if badge.ID == "" {
				badge.ID = xid.New().String()
			}
		case err != nil:
			return err
		default:
			badge.ID = id
		}
		if err := setJSON(txn, badgeKeyPrefix+badge.ID, badge); err != nil {
			return err
		}
		return txn.Set([]byte(badgePkgKeyPrefix+badge.PackageName), []byte(badge.ID))
	})
}

func (s *BadgerStore) CreatePayment(_ context.Context, payment core.Payment) (core.InsertResult, error) {
	if payment.ID == "" {
		payment.ID = xid.New().String()
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, paymentKeyPrefix+payment.ID, payment)
	})
	if err != nil {
		return core.InsertResult{}, err
	}
	return core.InsertResult{InsertedID: payment.ID}, nil
}
