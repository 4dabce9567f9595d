// Package recipe provides the recipe store and the draft used to edit a
// recipe before it is submitted.
package recipe

import (
	"sync"

	"github.com/hammamikhairi/barmate/internal/collection"
	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
)

// Store holds recipes in memory, newest first. Safe for concurrent access.
//
// Referenced ingredient ids are not checked on write; dangling references
// are resolved lazily by the derive package.
type Store struct {
	mu      sync.RWMutex
	recipes []domain.Recipe
	newID   domain.IDFunc
	log     *logger.Logger
}

// NewStore creates an empty recipe store that mints ids with newID.
func NewStore(newID domain.IDFunc, log *logger.Logger) *Store {
	return &Store{
		recipes: []domain.Recipe{},
		newID:   newID,
		log:     log,
	}
}

// Add inserts a recipe at the front. Rejected when the trimmed name is
// empty or items are empty, carry a negative amount, or repeat an
// ingredient.
func (s *Store) Add(name string, items []domain.RecipeItem) (domain.Recipe, bool) {
	clean, ok := domain.CleanName(name)
	if !ok || !domain.ValidItems(items) {
		s.log.Debug("recipe add rejected: name=%q items=%d", name, len(items))
		return domain.Recipe{}, false
	}

	r := domain.Recipe{ID: s.newID(), Name: clean, Items: collection.Clone(items)}

	s.mu.Lock()
	s.recipes = collection.Prepend(s.recipes, r)
	s.mu.Unlock()

	s.log.Debug("recipe added: %s (%s, %d items)", r.Name, r.ID, len(r.Items))
	return r.Clone(), true
}

// Edit replaces name and items of the recipe with the given id in place.
// Same validation as Add; unknown ids are a no-op.
func (s *Store) Edit(id, name string, items []domain.RecipeItem) bool {
	clean, ok := domain.CleanName(name)
	if !ok || !domain.ValidItems(items) {
		s.log.Debug("recipe edit rejected: id=%s name=%q items=%d", id, name, len(items))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, hit := collection.UpdateWhere(s.recipes, byID(id), func(r domain.Recipe) domain.Recipe {
		r.Name = clean
		r.Items = collection.Clone(items)
		return r
	})
	if !hit {
		s.log.Debug("recipe edit: %s not found", id)
		return false
	}
	s.recipes = next
	return true
}

// Delete removes the recipe with the given id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := collection.RemoveWhere(s.recipes, byID(id))
	if removed {
		s.recipes = next
		s.log.Debug("recipe deleted: %s", id)
	}
	return removed
}

// Get returns a copy of the recipe with the given id.
func (s *Store) Get(id string) (domain.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := collection.Find(s.recipes, byID(id))
	if !ok {
		return domain.Recipe{}, false
	}
	return r.Clone(), true
}

// List returns a deep copy of all recipes in store order.
func (s *Store) List() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Replace swaps the whole collection, e.g. after loading from storage.
func (s *Store) Replace(all []domain.Recipe) {
	cp := make([]domain.Recipe, len(all))
	for i, r := range all {
		cp[i] = r.Clone()
	}
	s.mu.Lock()
	s.recipes = cp
	s.mu.Unlock()
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

func byID(id string) func(domain.Recipe) bool {
	return func(r domain.Recipe) bool { return r.ID == id }
}
