// Package inventory holds the ingredient store: the canonical record of what
// the user owns and how much of it.
package inventory

import (
	"sync"

	"github.com/hammamikhairi/barmate/internal/collection"
	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
)

// Store is an ordered, in-memory ingredient collection. Newest entries sit
// at the front. Safe for concurrent access.
//
// Mutators never return errors: invalid input makes them a no-op and the
// boolean result reports whether the collection changed.
type Store struct {
	mu    sync.RWMutex
	items []domain.Ingredient
	newID domain.IDFunc
	log   *logger.Logger
}

// NewStore creates an empty ingredient store that mints ids with newID.
func NewStore(newID domain.IDFunc, log *logger.Logger) *Store {
	return &Store{
		items: []domain.Ingredient{},
		newID: newID,
		log:   log,
	}
}

// Add inserts a new ingredient at the front with amount 0. Rejected when
// the trimmed name is empty.
func (s *Store) Add(name string) (domain.Ingredient, bool) {
	clean, ok := domain.CleanName(name)
	if !ok {
		s.log.Debug("ingredient add rejected: empty name")
		return domain.Ingredient{}, false
	}

	ing := domain.Ingredient{ID: s.newID(), Name: clean, Amount: 0}

	s.mu.Lock()
	s.items = collection.Prepend(s.items, ing)
	s.mu.Unlock()

	s.log.Debug("ingredient added: %s (%s)", ing.Name, ing.ID)
	return ing, true
}

// Edit replaces the name and amount of the ingredient with the given id,
// keeping its identity and position. Rejected when the trimmed name is
// empty, the amount is negative, or the id is unknown.
func (s *Store) Edit(id, name string, amount float64) bool {
	clean, ok := domain.CleanName(name)
	if !ok || !domain.ValidAmount(amount) {
		s.log.Debug("ingredient edit rejected: id=%s name=%q amount=%v", id, name, amount)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, hit := collection.UpdateWhere(s.items, byID(id), func(ing domain.Ingredient) domain.Ingredient {
		ing.Name = clean
		ing.Amount = amount
		return ing
	})
	if !hit {
		s.log.Debug("ingredient edit: %s not found", id)
		return false
	}
	s.items = next
	return true
}

// Delete removes the ingredient with the given id. Recipes referencing it
// are left alone and now hold a dangling reference.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := collection.RemoveWhere(s.items, byID(id))
	if removed {
		s.items = next
		s.log.Debug("ingredient deleted: %s", id)
	}
	return removed
}

// Get returns the ingredient with the given id.
func (s *Store) Get(id string) (domain.Ingredient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Find(s.items, byID(id))
}

// List returns a copy of the collection in store order.
func (s *Store) List() []domain.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Clone(s.items)
}

// Replace swaps the whole collection, e.g. after loading from storage.
func (s *Store) Replace(all []domain.Ingredient) {
	s.mu.Lock()
	s.items = collection.Clone(all)
	s.mu.Unlock()
}

// Len returns the number of ingredients.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func byID(id string) func(domain.Ingredient) bool {
	return func(ing domain.Ingredient) bool { return ing.ID == id }
}
