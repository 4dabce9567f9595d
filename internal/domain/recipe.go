// Package domain defines the core types and interfaces for the bar tracker.
// All other packages depend on domain; domain depends on nothing.
package domain

// DeletedIngredientLabel is shown in place of an ingredient name when a
// recipe item references an ingredient that no longer exists.
const DeletedIngredientLabel = "(deleted ingredient)"

// Ingredient is something the user owns, with the quantity on hand.
type Ingredient struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// RecipeItem is a weak reference to an ingredient plus the quantity a recipe
// needs. IngredientID may dangle once the ingredient is deleted.
type RecipeItem struct {
	IngredientID string  `json:"ingredientId" yaml:"ingredientId"`
	Amount       float64 `json:"amount" yaml:"amount"`
}

// Recipe is a named list of ingredient references, at most one per
// ingredient.
type Recipe struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Items []RecipeItem `json:"items" yaml:"items"`
}

// Clone returns a deep copy so callers can't alias the item slice.
func (r Recipe) Clone() Recipe {
	items := make([]RecipeItem, len(r.Items))
	copy(items, r.Items)
	r.Items = items
	return r
}

// HasIngredient reports whether the recipe already references id.
func (r Recipe) HasIngredient(id string) bool {
	for _, it := range r.Items {
		if it.IngredientID == id {
			return true
		}
	}
	return false
}

// IDFunc produces a fresh, globally unique, opaque identifier.
type IDFunc func() string
