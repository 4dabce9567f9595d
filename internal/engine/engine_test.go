package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/barmate/internal/derive"
	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/ident"
	"github.com/hammamikhairi/barmate/internal/inventory"
	"github.com/hammamikhairi/barmate/internal/logger"
	"github.com/hammamikhairi/barmate/internal/recipe"
	"github.com/hammamikhairi/barmate/internal/storage"
)

// countingStore records how often each collection was written.
type countingStore struct {
	mu          sync.Mutex
	ingredients []domain.Ingredient
	recipes     []domain.Recipe
	ingSaves    int
	recSaves    int
}

func (c *countingStore) LoadIngredients(context.Context) []domain.Ingredient { return c.ingredients }
func (c *countingStore) LoadRecipes(context.Context) []domain.Recipe         { return c.recipes }

func (c *countingStore) SaveIngredients(_ context.Context, list []domain.Ingredient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingSaves++
	c.ingredients = list
}

func (c *countingStore) SaveRecipes(_ context.Context, list []domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recSaves++
	c.recipes = list
}

func setupEngine(t *testing.T, persist domain.CollectionStore) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	eng := New(
		inventory.NewStore(ident.Sequence("ing"), log),
		recipe.NewStore(ident.Sequence("rec"), log),
		persist,
		log,
	)
	return eng, context.Background()
}

func TestMutationsPersistOnlyWhenApplied(t *testing.T) {
	store := &countingStore{}
	eng, ctx := setupEngine(t, store)

	gin, ok := eng.AddIngredient(ctx, "Gin")
	if !ok {
		t.Fatal("add gin rejected")
	}
	if _, ok := eng.AddIngredient(ctx, "   "); ok {
		t.Fatal("blank name accepted")
	}
	if store.ingSaves != 1 {
		t.Fatalf("ingredient saves = %d, want 1", store.ingSaves)
	}

	if !eng.EditIngredient(ctx, gin.ID, "Gin", 10) {
		t.Fatal("edit rejected")
	}
	if eng.EditIngredient(ctx, gin.ID, "Gin", -1) {
		t.Fatal("negative amount accepted")
	}
	if eng.EditIngredient(ctx, "nope", "x", 1) {
		t.Fatal("unknown id accepted")
	}
	if store.ingSaves != 2 {
		t.Fatalf("ingredient saves = %d, want 2", store.ingSaves)
	}

	r, ok := eng.AddRecipe(ctx, "Gin Shot", []domain.RecipeItem{{IngredientID: gin.ID, Amount: 1}})
	if !ok {
		t.Fatal("add recipe rejected")
	}
	if _, ok := eng.AddRecipe(ctx, "Empty", nil); ok {
		t.Fatal("recipe without items accepted")
	}
	if eng.DeleteRecipe(ctx, "nope") {
		t.Fatal("deleted unknown recipe")
	}
	if store.recSaves != 1 {
		t.Fatalf("recipe saves = %d, want 1", store.recSaves)
	}

	if !eng.DeleteRecipe(ctx, r.ID) || store.recSaves != 2 || len(store.recipes) != 0 {
		t.Fatalf("delete recipe not persisted: saves=%d recipes=%v", store.recSaves, store.recipes)
	}
}

func TestLoadAndRoundTripThroughStorage(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	adapter := storage.NewAdapter(storage.NewMemoryStore(log), storage.DriverMemory, "", log)

	eng, ctx := setupEngine(t, adapter)
	gin, _ := eng.AddIngredient(ctx, "Gin")
	eng.EditIngredient(ctx, gin.ID, "Gin", 10)
	lime, _ := eng.AddIngredient(ctx, "Lime")
	eng.EditIngredient(ctx, lime.ID, "Lime", 2)
	eng.AddRecipe(ctx, "Gimlet", []domain.RecipeItem{
		{IngredientID: gin.ID, Amount: 2},
		{IngredientID: lime.ID, Amount: 1},
	})

	fresh, _ := setupEngine(t, adapter)
	fresh.Load(ctx)

	if diff := cmp.Diff(eng.Ingredients(), fresh.Ingredients()); diff != "" {
		t.Fatalf("ingredients differ after reload:\n%s", diff)
	}
	if diff := cmp.Diff(eng.Recipes(derive.DefaultQuery()), fresh.Recipes(derive.DefaultQuery())); diff != "" {
		t.Fatalf("recipes differ after reload:\n%s", diff)
	}
}

func TestDeletingIngredientLeavesDanglingItem(t *testing.T) {
	eng, ctx := setupEngine(t, &countingStore{})

	gin, _ := eng.AddIngredient(ctx, "Gin")
	eng.EditIngredient(ctx, gin.ID, "Gin", 10)
	r, _ := eng.AddRecipe(ctx, "Gin Shot", []domain.RecipeItem{{IngredientID: gin.ID, Amount: 1}})

	view, _ := eng.Recipe(r.ID)
	if !view.Satisfiable {
		t.Fatal("expected satisfiable before delete")
	}

	eng.DeleteIngredient(ctx, gin.ID)
	view, ok := eng.Recipe(r.ID)
	if !ok {
		t.Fatal("recipe vanished with its ingredient")
	}
	if view.Satisfiable || view.Items[0].Name != domain.DeletedIngredientLabel {
		t.Fatalf("expected dangling item, got %+v", view)
	}
}

func TestRecipesQuery(t *testing.T) {
	eng, ctx := setupEngine(t, &countingStore{})

	gin, _ := eng.AddIngredient(ctx, "Gin")
	eng.EditIngredient(ctx, gin.ID, "Gin", 3)
	eng.AddRecipe(ctx, "Zombie", []domain.RecipeItem{{IngredientID: gin.ID, Amount: 1}})
	eng.AddRecipe(ctx, "Aviation", []domain.RecipeItem{{IngredientID: gin.ID, Amount: 5}})

	all := eng.Recipes(derive.Query{SortBy: derive.ByName, Ascending: true})
	if len(all) != 2 || all[0].Name != "Aviation" {
		t.Fatalf("unexpected order %+v", all)
	}

	inStock := eng.Recipes(derive.Query{Filter: derive.Filter{InStock: true}, SortBy: derive.ByName})
	if len(inStock) != 1 || inStock[0].Name != "Zombie" {
		t.Fatalf("unexpected in-stock list %+v", inStock)
	}
}

func TestDraftCommit(t *testing.T) {
	store := &countingStore{}
	eng, ctx := setupEngine(t, store)

	gin, _ := eng.AddIngredient(ctx, "Gin")
	lime, _ := eng.AddIngredient(ctx, "Lime")
	r, _ := eng.AddRecipe(ctx, "Gimlet", []domain.RecipeItem{{IngredientID: gin.ID, Amount: 2}})

	if got := eng.AvailableIngredients(r.Items); len(got) != 1 || got[0].ID != lime.ID {
		t.Fatalf("available = %+v", got)
	}

	d, ok := eng.Draft(r.ID)
	if !ok {
		t.Fatal("draft not found")
	}
	d.AddItem(lime.ID)
	d.SetAmount(lime.ID, 0.5)
	if !eng.CommitDraft(ctx, r.ID, d) {
		t.Fatal("commit rejected")
	}

	view, _ := eng.Recipe(r.ID)
	if len(view.Items) != 2 || view.Items[1].Amount != 0.5 {
		t.Fatalf("draft not applied: %+v", view.Items)
	}

	d.RemoveItem(0)
	d.RemoveItem(0)
	if eng.CommitDraft(ctx, r.ID, d) {
		t.Fatal("empty draft committed")
	}
}

func TestResolveIngredient(t *testing.T) {
	eng, ctx := setupEngine(t, &countingStore{})

	gin, _ := eng.AddIngredient(ctx, "Gin")
	eng.AddIngredient(ctx, "Lime")
	eng.AddIngredient(ctx, "lime")

	tests := []struct {
		ref     string
		wantID  string
		wantErr error
	}{
		{gin.ID, gin.ID, nil},
		{"GIN", gin.ID, nil},
		{" gin ", gin.ID, nil},
		{"lime", "", domain.ErrAmbiguousIngredient},
		{"rum", "", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := eng.ResolveIngredient(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got.ID != tt.wantID {
				t.Fatalf("got %+v, %v", got, err)
			}
		})
	}
}

func TestResolveRecipe(t *testing.T) {
	eng, ctx := setupEngine(t, &countingStore{})
	r, _ := eng.AddRecipe(ctx, "Gimlet", []domain.RecipeItem{{IngredientID: "x", Amount: 1}})

	if got, err := eng.ResolveRecipe("gimlet"); err != nil || got.ID != r.ID {
		t.Fatalf("got %+v, %v", got, err)
	}
	if _, err := eng.ResolveRecipe("negroni"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
