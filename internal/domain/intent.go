package domain

// IntentType classifies what the shell user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListIngredients
	IntentAddIngredient
	IntentEditIngredient
	IntentDeleteIngredient
	IntentListRecipes
	IntentShowRecipe
	IntentAddRecipe
	IntentDeleteRecipe
	IntentSortRecipes
	IntentToggleInStock
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentListIngredients:
		return "list_ingredients"
	case IntentAddIngredient:
		return "add_ingredient"
	case IntentEditIngredient:
		return "edit_ingredient"
	case IntentDeleteIngredient:
		return "delete_ingredient"
	case IntentListRecipes:
		return "list_recipes"
	case IntentShowRecipe:
		return "show_recipe"
	case IntentAddRecipe:
		return "add_recipe"
	case IntentDeleteRecipe:
		return "delete_recipe"
	case IntentSortRecipes:
		return "sort_recipes"
	case IntentToggleInStock:
		return "toggle_in_stock"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed shell command. Args holds the positional
// arguments that followed the keyword, already trimmed.
type Intent struct {
	Type IntentType
	Args []string
}

// Arg returns the i-th argument or "" when absent.
func (in *Intent) Arg(i int) string {
	if i < 0 || i >= len(in.Args) {
		return ""
	}
	return in.Args[i]
}
