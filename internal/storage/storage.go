// Package storage persists the ingredient and recipe collections.
//
// A KeyValueStore backend holds raw JSON documents. Adapter sits on top and
// implements domain.CollectionStore: reads fall back to an empty collection
// when a document is missing or unreadable, writes log and count failures
// instead of returning them.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
	"github.com/hammamikhairi/barmate/internal/metrics"
)

// Compile-time interface check.
var _ domain.CollectionStore = (*Adapter)(nil)

// DefaultNamespace prefixes every key when none is configured.
const DefaultNamespace = "barmate"

// Adapter maps the two collections onto "<namespace>.ingredients" and
// "<namespace>.recipes" in a KeyValueStore.
type Adapter struct {
	kv        domain.KeyValueStore
	driver    string
	namespace string
	log       *logger.Logger
}

// NewAdapter wraps kv. driver is only used to label metrics.
func NewAdapter(kv domain.KeyValueStore, driver, namespace string, log *logger.Logger) *Adapter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Adapter{kv: kv, driver: driver, namespace: namespace, log: log}
}

// IngredientsKey is the document key for the ingredient collection.
func (a *Adapter) IngredientsKey() string { return a.namespace + ".ingredients" }

// RecipesKey is the document key for the recipe collection.
func (a *Adapter) RecipesKey() string { return a.namespace + ".recipes" }

// LoadIngredients implements domain.CollectionStore.
func (a *Adapter) LoadIngredients(ctx context.Context) []domain.Ingredient {
	out := read[[]domain.Ingredient](ctx, a, a.IngredientsKey())
	if out == nil {
		out = []domain.Ingredient{}
	}
	return out
}

// SaveIngredients implements domain.CollectionStore.
func (a *Adapter) SaveIngredients(ctx context.Context, list []domain.Ingredient) {
	if list == nil {
		list = []domain.Ingredient{}
	}
	write(ctx, a, a.IngredientsKey(), list)
}

// LoadRecipes implements domain.CollectionStore.
func (a *Adapter) LoadRecipes(ctx context.Context) []domain.Recipe {
	out := read[[]domain.Recipe](ctx, a, a.RecipesKey())
	if out == nil {
		return []domain.Recipe{}
	}
	for i := range out {
		if out[i].Items == nil {
			out[i].Items = []domain.RecipeItem{}
		}
	}
	return out
}

// SaveRecipes implements domain.CollectionStore.
func (a *Adapter) SaveRecipes(ctx context.Context, list []domain.Recipe) {
	if list == nil {
		list = []domain.Recipe{}
	}
	write(ctx, a, a.RecipesKey(), list)
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.kv.Close()
}

// read returns the zero value of T when the key is absent, the backend
// fails, or the document does not parse. A JSON null also decodes to zero.
func read[T any](ctx context.Context, a *Adapter, key string) T {
	var zero T

	data, err := a.kv.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.log.Debug("storage: %s not present, starting empty", key)
		metrics.RecordRead(a.driver, key, metrics.ResultMissing)
		return zero
	case err != nil:
		a.log.Warn("storage: reading %s: %v", key, err)
		metrics.RecordRead(a.driver, key, metrics.ResultError)
		return zero
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		a.log.Warn("storage: %s is not valid JSON, ignoring: %v", key, err)
		metrics.RecordRead(a.driver, key, metrics.ResultCorrupt)
		return zero
	}
	metrics.RecordRead(a.driver, key, metrics.ResultOK)
	return out
}

func write(ctx context.Context, a *Adapter, key string, value any) {
	start := time.Now()

	data, err := json.Marshal(value)
	if err == nil {
		err = a.kv.Put(ctx, key, data)
	}
	metrics.RecordWrite(a.driver, key, err, time.Since(start))

	if err != nil {
		a.log.Error("storage: writing %s: %v", key, err)
		return
	}
	a.log.Debug("storage: wrote %s (%d bytes)", key, len(data))
}
