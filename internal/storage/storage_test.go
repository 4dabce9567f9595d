package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
	"github.com/hammamikhairi/barmate/internal/metrics"
)

func testLogger() *logger.Logger {
	return logger.New(logger.LevelOff, nil)
}

func sampleIngredients() []domain.Ingredient {
	return []domain.Ingredient{
		{ID: "a", Name: "Gin", Amount: 10},
		{ID: "b", Name: "Lime", Amount: 2.5},
	}
}

func sampleRecipes() []domain.Recipe {
	return []domain.Recipe{{
		ID:   "r1",
		Name: "Gimlet",
		Items: []domain.RecipeItem{
			{IngredientID: "a", Amount: 2},
			{IngredientID: "b", Amount: 1},
		},
	}}
}

// roundTrip exercises an adapter against any backend.
func roundTrip(t *testing.T, a *Adapter) {
	t.Helper()
	ctx := context.Background()

	if got := a.LoadIngredients(ctx); len(got) != 0 || got == nil {
		t.Fatalf("fresh store should load empty non-nil ingredients, got %#v", got)
	}
	if got := a.LoadRecipes(ctx); len(got) != 0 || got == nil {
		t.Fatalf("fresh store should load empty non-nil recipes, got %#v", got)
	}

	a.SaveIngredients(ctx, sampleIngredients())
	a.SaveRecipes(ctx, sampleRecipes())

	if diff := cmp.Diff(sampleIngredients(), a.LoadIngredients(ctx)); diff != "" {
		t.Fatalf("ingredients mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleRecipes(), a.LoadRecipes(ctx)); diff != "" {
		t.Fatalf("recipes mismatch (-want +got):\n%s", diff)
	}

	a.SaveIngredients(ctx, nil)
	if got := a.LoadIngredients(ctx); len(got) != 0 {
		t.Fatalf("expected empty after saving nil, got %v", got)
	}
}

func TestAdapterMemoryRoundTrip(t *testing.T) {
	roundTrip(t, NewAdapter(NewMemoryStore(testLogger()), DriverMemory, "", testLogger()))
}

func TestAdapterKeys(t *testing.T) {
	a := NewAdapter(NewMemoryStore(testLogger()), DriverMemory, "", testLogger())
	if a.IngredientsKey() != "barmate.ingredients" || a.RecipesKey() != "barmate.recipes" {
		t.Fatalf("unexpected keys %s %s", a.IngredientsKey(), a.RecipesKey())
	}
	b := NewAdapter(NewMemoryStore(testLogger()), DriverMemory, "test", testLogger())
	if b.IngredientsKey() != "test.ingredients" {
		t.Fatalf("namespace not applied: %s", b.IngredientsKey())
	}
}

func TestAdapterFallbacks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		doc  string
	}{
		{"corrupt", "{not json"},
		{"null", "null"},
		{"wrong shape", `{"id":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryStore(testLogger())
			a := NewAdapter(kv, DriverMemory, "fb", testLogger())
			_ = kv.Put(ctx, a.IngredientsKey(), []byte(tt.doc))
			_ = kv.Put(ctx, a.RecipesKey(), []byte(tt.doc))

			if got := a.LoadIngredients(ctx); len(got) != 0 {
				t.Errorf("ingredients = %v, want empty", got)
			}
			if got := a.LoadRecipes(ctx); len(got) != 0 {
				t.Errorf("recipes = %v, want empty", got)
			}
		})
	}
}

func TestAdapterNullItemsBecomeEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore(testLogger())
	a := NewAdapter(kv, DriverMemory, "items", testLogger())
	_ = kv.Put(ctx, a.RecipesKey(), []byte(`[{"id":"r","name":"Empty","items":null}]`))

	got := a.LoadRecipes(ctx)
	if len(got) != 1 || got[0].Items == nil {
		t.Fatalf("expected non-nil items, got %#v", got)
	}
}

type failingKV struct {
	getErr error
}

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.getErr }
func (f failingKV) Put(context.Context, string, []byte) error   { return errors.New("disk full") }
func (f failingKV) Delete(context.Context, string) error        { return nil }
func (f failingKV) Close() error                                { return nil }

func TestAdapterWriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(failingKV{getErr: errors.New("io")}, "failing", "wf", testLogger())

	before := testutil.ToFloat64(metrics.Writes("failing", "wf.ingredients", metrics.ResultError))
	a.SaveIngredients(ctx, sampleIngredients())
	after := testutil.ToFloat64(metrics.Writes("failing", "wf.ingredients", metrics.ResultError))
	if after != before+1 {
		t.Fatalf("failed writes = %v, want %v", after, before+1)
	}

	if got := a.LoadIngredients(ctx); len(got) != 0 {
		t.Fatalf("read error should fall back to empty, got %v", got)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(testLogger())

	buf := []byte("abc")
	_ = s.Put(ctx, "k", buf)
	buf[0] = 'z'

	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "abc" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	got[1] = 'z'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated: %q", again)
	}

	_ = s.Delete(ctx, "k")
	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
