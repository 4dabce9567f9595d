package domain

import "context"

// KeyValueStore is a raw byte store addressed by string keys. Implementations
// can be in-memory, a directory of files, SQLite, Postgres, Redis, or S3.
// Get returns ErrNotFound when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CollectionStore persists whole collections. Loads never fail: a missing or
// corrupt collection comes back empty. Saves never fail either; problems are
// logged by the implementation and the in-memory state stays authoritative.
type CollectionStore interface {
	LoadIngredients(ctx context.Context) []Ingredient
	SaveIngredients(ctx context.Context, list []Ingredient)
	LoadRecipes(ctx context.Context) []Recipe
	SaveRecipes(ctx context.Context, list []Recipe)
}

// IntentParser converts a line typed into the shell into a structured intent.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}
