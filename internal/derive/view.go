package derive

import (
	"golang.org/x/text/language"

	"github.com/hammamikhairi/barmate/internal/domain"
)

// Query bundles the user's list settings.
type Query struct {
	Filter    Filter
	SortBy    Criterion
	Ascending bool
	Locale    language.Tag
}

// DefaultQuery lists every recipe by name, A to Z.
func DefaultQuery() Query {
	return Query{SortBy: ByName, Ascending: true, Locale: DefaultLocale}
}

// View runs the list pipeline: filter, then sort, then join each recipe to
// its ingredients. Filtering always happens first so no sort criterion can
// bring back a filtered-out recipe.
func View(recipes []domain.Recipe, ingredients []domain.Ingredient, q Query) []RecipeView {
	tag := q.Locale
	if tag == language.Und {
		tag = DefaultLocale
	}
	sorted := SortRecipesLocale(FilterRecipes(recipes, ingredients, q.Filter), q.SortBy, q.Ascending, tag)

	idx := Index(ingredients)
	out := make([]RecipeView, len(sorted))
	for i, r := range sorted {
		out[i] = join(r, idx)
	}
	return out
}
