package domain

import (
	"math"
	"strings"
)

// CleanName trims surrounding whitespace. The second result is false when
// nothing is left.
func CleanName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	return trimmed, trimmed != ""
}

// ValidAmount reports whether a is a usable quantity: finite and >= 0.
func ValidAmount(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0) && a >= 0
}

// ValidItems reports whether items can back a recipe: non-empty, every amount
// valid, and no ingredient referenced twice.
func ValidItems(items []RecipeItem) bool {
	if len(items) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if !ValidAmount(it.Amount) {
			return false
		}
		if _, dup := seen[it.IngredientID]; dup {
			return false
		}
		seen[it.IngredientID] = struct{}{}
	}
	return true
}
