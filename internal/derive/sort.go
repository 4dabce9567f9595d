package derive

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/barmate/internal/collection"
	"github.com/hammamikhairi/barmate/internal/domain"
)

// Criterion selects the recipe sort key.
type Criterion string

const (
	// ByName orders by collated recipe name.
	ByName Criterion = "name"
	// ByIngredients orders by number of items, fewest first.
	ByIngredients Criterion = "ingredients"
)

// DefaultLocale is used by the locale-less sort functions.
var DefaultLocale = language.English

// ParseCriterion validates a user-supplied criterion. Empty means ByName.
func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ByName, nil
	case ByName, ByIngredients:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q (want name or ingredients)", domain.ErrInvalidCriterion, s)
	}
}

// SortRecipes sorts with the default locale. See SortRecipesLocale.
func SortRecipes(recipes []domain.Recipe, by Criterion, ascending bool) []domain.Recipe {
	return SortRecipesLocale(recipes, by, ascending, DefaultLocale)
}

// SortRecipesLocale returns a stably sorted copy of recipes. When ascending
// is false the ascending result is reversed as a whole, so recipes with
// equal keys come out in the reverse of their input order. An unknown
// criterion keeps input order (and still honours the reversal).
func SortRecipesLocale(recipes []domain.Recipe, by Criterion, ascending bool, tag language.Tag) []domain.Recipe {
	out := collection.Clone(recipes)

	switch by {
	case ByName:
		col := collate.New(tag)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	case ByIngredients:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Items) < len(out[j].Items)
		})
	}

	if !ascending {
		return collection.Reversed(out)
	}
	return out
}

// SortIngredients sorts by collated name with the default locale.
func SortIngredients(ingredients []domain.Ingredient) []domain.Ingredient {
	return SortIngredientsLocale(ingredients, DefaultLocale)
}

// SortIngredientsLocale returns a stably name-sorted copy of ingredients.
func SortIngredientsLocale(ingredients []domain.Ingredient, tag language.Tag) []domain.Ingredient {
	out := collection.Clone(ingredients)
	col := collate.New(tag)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
