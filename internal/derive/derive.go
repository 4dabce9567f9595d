// Package derive computes read-only views over ingredient and recipe
// snapshots: resolving recipe items, stock sufficiency, filtering and
// sorting. Every function is pure. Inputs are never mutated and nothing is
// cached between calls.
package derive

import (
	"github.com/hammamikhairi/barmate/internal/collection"
	"github.com/hammamikhairi/barmate/internal/domain"
)

// ResolvedItem is a recipe item joined to its ingredient record.
type ResolvedItem struct {
	IngredientID string  `json:"ingredientId" yaml:"ingredientId"`
	Name         string  `json:"name" yaml:"name"`
	Amount       float64 `json:"amount" yaml:"amount"`
	OnHand       float64 `json:"onHand" yaml:"onHand"`
	Missing      bool    `json:"missing" yaml:"missing"`
}

// Sufficient reports whether the ingredient exists and covers the amount.
func (r ResolvedItem) Sufficient() bool {
	return !r.Missing && r.OnHand >= r.Amount
}

// RecipeView is a recipe with every item resolved.
type RecipeView struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Items       []ResolvedItem `json:"items" yaml:"items"`
	Satisfiable bool           `json:"satisfiable" yaml:"satisfiable"`
}

// Index maps ingredient ids to records. On duplicate ids the later record
// wins.
func Index(ingredients []domain.Ingredient) map[string]domain.Ingredient {
	idx := make(map[string]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		idx[ing.ID] = ing
	}
	return idx
}

// ResolveItem looks up the item's ingredient. A dangling reference yields
// the deleted-ingredient label and Missing=true.
func ResolveItem(item domain.RecipeItem, ingredients []domain.Ingredient) ResolvedItem {
	return resolve(item, Index(ingredients))
}

func resolve(item domain.RecipeItem, idx map[string]domain.Ingredient) ResolvedItem {
	ing, ok := idx[item.IngredientID]
	if !ok {
		return ResolvedItem{
			IngredientID: item.IngredientID,
			Name:         domain.DeletedIngredientLabel,
			Amount:       item.Amount,
			Missing:      true,
		}
	}
	return ResolvedItem{
		IngredientID: item.IngredientID,
		Name:         ing.Name,
		Amount:       item.Amount,
		OnHand:       ing.Amount,
	}
}

// IsSatisfiable reports whether every item references an existing
// ingredient whose amount on hand is at least the required amount. A recipe
// without items is trivially satisfiable.
func IsSatisfiable(r domain.Recipe, ingredients []domain.Ingredient) bool {
	return satisfiable(r, Index(ingredients))
}

func satisfiable(r domain.Recipe, idx map[string]domain.Ingredient) bool {
	for _, it := range r.Items {
		if !resolve(it, idx).Sufficient() {
			return false
		}
	}
	return true
}

// Filter selects which recipes survive FilterRecipes.
type Filter struct {
	InStock bool
}

// FilterRecipes keeps only satisfiable recipes when f.InStock is set and
// otherwise returns a copy of recipes unchanged.
func FilterRecipes(recipes []domain.Recipe, ingredients []domain.Ingredient, f Filter) []domain.Recipe {
	if !f.InStock {
		return collection.Clone(recipes)
	}
	idx := Index(ingredients)
	return collection.Filter(recipes, func(r domain.Recipe) bool {
		return satisfiable(r, idx)
	})
}

// JoinRecipe resolves every item of r.
func JoinRecipe(r domain.Recipe, ingredients []domain.Ingredient) RecipeView {
	return join(r, Index(ingredients))
}

func join(r domain.Recipe, idx map[string]domain.Ingredient) RecipeView {
	v := RecipeView{
		ID:          r.ID,
		Name:        r.Name,
		Items:       make([]ResolvedItem, len(r.Items)),
		Satisfiable: true,
	}
	for i, it := range r.Items {
		v.Items[i] = resolve(it, idx)
		if !v.Items[i].Sufficient() {
			v.Satisfiable = false
		}
	}
	return v
}

// AvailableIngredients returns the ingredients not yet referenced by items,
// in their original order.
func AvailableIngredients(ingredients []domain.Ingredient, items []domain.RecipeItem) []domain.Ingredient {
	used := make(map[string]struct{}, len(items))
	for _, it := range items {
		used[it.IngredientID] = struct{}{}
	}
	return collection.Filter(ingredients, func(ing domain.Ingredient) bool {
		_, taken := used[ing.ID]
		return !taken
	})
}
