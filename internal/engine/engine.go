// Package engine ties the ingredient and recipe stores to persistence and
// the derived views. It is the single entry point the CLI and shell use.
package engine

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/hammamikhairi/barmate/internal/derive"
	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/inventory"
	"github.com/hammamikhairi/barmate/internal/logger"
	"github.com/hammamikhairi/barmate/internal/metrics"
	"github.com/hammamikhairi/barmate/internal/recipe"
)

// Option configures the engine.
type Option func(*Engine)

// WithLocale sets the collation locale used for name sorting.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

// Engine owns both stores and writes the touched collection after every
// applied mutation. Rejected mutations never touch storage.
type Engine struct {
	ingredients *inventory.Store
	recipes     *recipe.Store
	persist     domain.CollectionStore
	log         *logger.Logger
	locale      language.Tag
}

// New creates an engine with the given dependencies and options.
func New(ingredients *inventory.Store, recipes *recipe.Store, persist domain.CollectionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		ingredients: ingredients,
		recipes:     recipes,
		persist:     persist,
		log:         log,
		locale:      derive.DefaultLocale,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Locale returns the collation locale.
func (e *Engine) Locale() language.Tag { return e.locale }

// Load replaces both stores with what storage holds.
func (e *Engine) Load(ctx context.Context) {
	e.ingredients.Replace(e.persist.LoadIngredients(ctx))
	e.recipes.Replace(e.persist.LoadRecipes(ctx))

	e.log.Info("loaded %d ingredients, %d recipes", e.ingredients.Len(), e.recipes.Len())
	metrics.SetCollectionSize("ingredients", e.ingredients.Len())
	metrics.SetCollectionSize("recipes", e.recipes.Len())
}

func (e *Engine) saveIngredients(ctx context.Context) {
	list := e.ingredients.List()
	e.persist.SaveIngredients(ctx, list)
	metrics.SetCollectionSize("ingredients", len(list))
}

func (e *Engine) saveRecipes(ctx context.Context) {
	list := e.recipes.List()
	e.persist.SaveRecipes(ctx, list)
	metrics.SetCollectionSize("recipes", len(list))
}

// AddIngredient creates an ingredient with amount 0.
func (e *Engine) AddIngredient(ctx context.Context, name string) (domain.Ingredient, bool) {
	ing, ok := e.ingredients.Add(name)
	if !ok {
		e.log.Debug("add ingredient rejected: %q", name)
		return domain.Ingredient{}, false
	}
	e.saveIngredients(ctx)
	e.log.Info("added ingredient %s (%s)", ing.Name, ing.ID)
	return ing, true
}

// EditIngredient replaces the name and amount of an ingredient.
func (e *Engine) EditIngredient(ctx context.Context, id, name string, amount float64) bool {
	if !e.ingredients.Edit(id, name, amount) {
		e.log.Debug("edit ingredient %s rejected", id)
		return false
	}
	e.saveIngredients(ctx)
	return true
}

// DeleteIngredient removes an ingredient. Recipes that reference it are
// left alone and will show the item as deleted.
func (e *Engine) DeleteIngredient(ctx context.Context, id string) bool {
	if !e.ingredients.Delete(id) {
		return false
	}
	e.saveIngredients(ctx)
	e.log.Info("deleted ingredient %s", id)
	return true
}

// AddRecipe creates a recipe from name and items.
func (e *Engine) AddRecipe(ctx context.Context, name string, items []domain.RecipeItem) (domain.Recipe, bool) {
	r, ok := e.recipes.Add(name, items)
	if !ok {
		e.log.Debug("add recipe rejected: %q (%d items)", name, len(items))
		return domain.Recipe{}, false
	}
	e.saveRecipes(ctx)
	e.log.Info("added recipe %s (%s)", r.Name, r.ID)
	return r, true
}

// EditRecipe replaces name and items of an existing recipe.
func (e *Engine) EditRecipe(ctx context.Context, id, name string, items []domain.RecipeItem) bool {
	if !e.recipes.Edit(id, name, items) {
		e.log.Debug("edit recipe %s rejected", id)
		return false
	}
	e.saveRecipes(ctx)
	return true
}

// DeleteRecipe removes a recipe.
func (e *Engine) DeleteRecipe(ctx context.Context, id string) bool {
	if !e.recipes.Delete(id) {
		return false
	}
	e.saveRecipes(ctx)
	e.log.Info("deleted recipe %s", id)
	return true
}

// Draft opens an editable copy of a stored recipe.
func (e *Engine) Draft(id string) (*recipe.Draft, bool) {
	r, ok := e.recipes.Get(id)
	if !ok {
		return nil, false
	}
	return recipe.NewDraft(r), true
}

// CommitDraft writes a draft back over recipe id.
func (e *Engine) CommitDraft(ctx context.Context, id string, d *recipe.Draft) bool {
	return e.EditRecipe(ctx, id, d.Name, d.Items)
}

// Ingredients returns all ingredients sorted by name.
func (e *Engine) Ingredients() []domain.Ingredient {
	return derive.SortIngredientsLocale(e.ingredients.List(), e.locale)
}

// Ingredient returns one ingredient.
func (e *Engine) Ingredient(id string) (domain.Ingredient, bool) {
	return e.ingredients.Get(id)
}

// AvailableIngredients lists ingredients not yet used by items, sorted by
// name.
func (e *Engine) AvailableIngredients(items []domain.RecipeItem) []domain.Ingredient {
	return derive.AvailableIngredients(e.Ingredients(), items)
}

// Recipes runs the list pipeline over the current snapshot. A query without
// a locale uses the engine's.
func (e *Engine) Recipes(q derive.Query) []derive.RecipeView {
	if q.Locale == language.Und {
		q.Locale = e.locale
	}
	return derive.View(e.recipes.List(), e.ingredients.List(), q)
}

// Recipe returns one recipe joined to its ingredients.
func (e *Engine) Recipe(id string) (derive.RecipeView, bool) {
	r, ok := e.recipes.Get(id)
	if !ok {
		return derive.RecipeView{}, false
	}
	return derive.JoinRecipe(r, e.ingredients.List()), true
}

// ResolveIngredient finds an ingredient by exact id, or failing that by a
// case-insensitive name that matches exactly one ingredient.
func (e *Engine) ResolveIngredient(ref string) (domain.Ingredient, error) {
	ref = strings.TrimSpace(ref)
	if ing, ok := e.ingredients.Get(ref); ok {
		return ing, nil
	}

	var matches []domain.Ingredient
	for _, ing := range e.ingredients.List() {
		if strings.EqualFold(ing.Name, ref) {
			matches = append(matches, ing)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Ingredient{}, fmt.Errorf("ingredient %q: %w", ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Ingredient{}, fmt.Errorf("%w: %q matches %d ingredients, use the id", domain.ErrAmbiguousIngredient, ref, len(matches))
	}
}

// ResolveRecipe finds a recipe by id or unique case-insensitive name.
func (e *Engine) ResolveRecipe(ref string) (domain.Recipe, error) {
	ref = strings.TrimSpace(ref)
	if r, ok := e.recipes.Get(ref); ok {
		return r, nil
	}

	var matches []domain.Recipe
	for _, r := range e.recipes.List() {
		if strings.EqualFold(r.Name, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Recipe{}, fmt.Errorf("recipe %q: %w", ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Recipe{}, fmt.Errorf("recipe %q is ambiguous (%d matches), use the id", ref, len(matches))
	}
}
