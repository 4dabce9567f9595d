package recipe

import (
	"github.com/hammamikhairi/barmate/internal/collection"
	"github.com/hammamikhairi/barmate/internal/domain"
)

// Draft is the editing buffer for a recipe. Nothing touches the store until
// the caller submits Name and Items through Store.Add or Store.Edit.
type Draft struct {
	Name  string
	Items []domain.RecipeItem
}

// NewDraft starts a draft from an existing recipe. The zero Recipe gives an
// empty draft for a new one.
func NewDraft(r domain.Recipe) *Draft {
	return &Draft{Name: r.Name, Items: collection.Clone(r.Items)}
}

// AddItem appends the ingredient with amount 0. Empty ids and ingredients
// already in the draft are ignored.
func (d *Draft) AddItem(ingredientID string) bool {
	if ingredientID == "" || (domain.Recipe{Items: d.Items}).HasIngredient(ingredientID) {
		return false
	}
	d.Items = append(collection.Clone(d.Items), domain.RecipeItem{IngredientID: ingredientID})
	return true
}

// RemoveItem drops the item at index. Out of range is a no-op.
func (d *Draft) RemoveItem(index int) bool {
	if index < 0 || index >= len(d.Items) {
		return false
	}
	out := make([]domain.RecipeItem, 0, len(d.Items)-1)
	out = append(out, d.Items[:index]...)
	d.Items = append(out, d.Items[index+1:]...)
	return true
}

// SetAmount changes the required amount for an ingredient already in the
// draft. Negative amounts are ignored.
func (d *Draft) SetAmount(ingredientID string, amount float64) bool {
	if !domain.ValidAmount(amount) {
		return false
	}
	next, hit := collection.UpdateWhere(d.Items,
		func(it domain.RecipeItem) bool { return it.IngredientID == ingredientID },
		func(it domain.RecipeItem) domain.RecipeItem {
			it.Amount = amount
			return it
		})
	if hit {
		d.Items = next
	}
	return hit
}

// Valid reports whether the draft would be accepted by the store.
func (d *Draft) Valid() bool {
	_, ok := domain.CleanName(d.Name)
	return ok && domain.ValidItems(d.Items)
}

