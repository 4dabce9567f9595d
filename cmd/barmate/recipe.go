package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/barmate/internal/derive"
	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/engine"
)

var errRecipeRejected = errors.New("recipe rejected: it needs a name and at least one item, each ingredient once, with non-negative amounts")

// parseItemSpec turns "ING=AMOUNT" into a recipe item. ING is an id or a
// unique ingredient name. A bare "ING" means amount 0.
func parseItemSpec(eng *engine.Engine, spec string) (domain.RecipeItem, error) {
	ref, amountStr := spec, ""
	if i := strings.LastIndex(spec, "="); i >= 0 {
		ref, amountStr = spec[:i], spec[i+1:]
	}

	ing, err := eng.ResolveIngredient(ref)
	if err != nil {
		return domain.RecipeItem{}, err
	}

	amount := 0.0
	if s := strings.TrimSpace(amountStr); s != "" {
		amount, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.RecipeItem{}, fmt.Errorf("item %q: invalid amount %q", spec, s)
		}
	}
	return domain.RecipeItem{IngredientID: ing.ID, Amount: amount}, nil
}

func parseItemSpecs(eng *engine.Engine, specs []string) ([]domain.RecipeItem, error) {
	items := make([]domain.RecipeItem, 0, len(specs))
	for _, s := range specs {
		it, err := parseItemSpec(eng, s)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func newRecipeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes", "r"},
		Short:   "Manage recipes",
	}
	cmd.AddCommand(
		newRecipeAddCmd(a),
		newRecipeEditCmd(a),
		newRecipeDeleteCmd(a),
		newRecipeListCmd(a),
		newRecipeShowCmd(a),
	)
	return cmd
}

func newRecipeAddCmd(a *app) *cobra.Command {
	var specs []string
	cmd := &cobra.Command{
		Use:     "add NAME --item ING=AMOUNT...",
		Short:   "Add a recipe",
		Example: `  barmate recipe add Gimlet --item gin=2 --item lime=1`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := parseItemSpecs(a.engine, specs)
			if err != nil {
				return err
			}
			r, ok := a.engine.AddRecipe(cmd.Context(), strings.Join(args, " "), items)
			if !ok {
				return errRecipeRejected
			}
			view, _ := a.engine.Recipe(r.ID)
			return a.printer.Recipe(view)
		},
	}
	cmd.Flags().StringArrayVar(&specs, "item", nil, "ingredient and amount as ING=AMOUNT (repeatable)")
	return cmd
}

func newRecipeEditCmd(a *app) *cobra.Command {
	var (
		name    string
		adds    []string
		removes []int
		amounts []string
	)
	cmd := &cobra.Command{
		Use:   "edit ID|NAME",
		Short: "Rename a recipe or change its items",
		Long: `Edit a recipe. Changes are applied in order: items are removed by their
index in the current recipe (see "recipe show"), then new items are added
with amount 0, then amounts are set. The result must still be a valid
recipe or nothing is saved.`,
		Example: `  barmate recipe edit gimlet --add-item sugar --set-amount sugar=0.5
  barmate recipe edit gimlet --remove-item 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.engine.ResolveRecipe(args[0])
			if err != nil {
				return err
			}
			d, _ := a.engine.Draft(r.ID)

			if cmd.Flags().Changed("name") {
				d.Name = name
			}

			// Indices refer to the recipe as stored. Check them all before
			// touching the draft, then remove each once, highest first.
			for _, idx := range removes {
				if idx < 0 || idx >= len(d.Items) {
					return fmt.Errorf("no item at index %d", idx)
				}
			}
			sorted := slices.Compact(slices.Sorted(slices.Values(removes)))
			slices.Reverse(sorted)
			for _, idx := range sorted {
				d.RemoveItem(idx)
			}

			for _, ref := range adds {
				ing, err := a.engine.ResolveIngredient(ref)
				if err != nil {
					return err
				}
				if !d.AddItem(ing.ID) {
					return fmt.Errorf("%s is already in %s", ing.Name, r.Name)
				}
			}

			for _, spec := range amounts {
				it, err := parseItemSpec(a.engine, spec)
				if err != nil {
					return err
				}
				if !d.SetAmount(it.IngredientID, it.Amount) {
					return fmt.Errorf("item %q: not in recipe or negative amount", spec)
				}
			}

			if !a.engine.CommitDraft(cmd.Context(), r.ID, d) {
				return errRecipeRejected
			}
			view, _ := a.engine.Recipe(r.ID)
			return a.printer.Recipe(view)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringArrayVar(&adds, "add-item", nil, "add an ingredient with amount 0 (repeatable)")
	cmd.Flags().IntSliceVar(&removes, "remove-item", nil, "remove the item at this index (repeatable)")
	cmd.Flags().StringArrayVar(&amounts, "set-amount", nil, "set an item's amount as ING=AMOUNT (repeatable)")
	return cmd
}

func newRecipeDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID|NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.engine.ResolveRecipe(args[0])
			if err != nil {
				return err
			}
			view, _ := a.engine.Recipe(r.ID)
			a.engine.DeleteRecipe(cmd.Context(), r.ID)
			return a.printer.Recipe(view)
		},
	}
}

func newRecipeListCmd(a *app) *cobra.Command {
	var (
		sortBy  string
		desc    bool
		inStock bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recipes",
		Example: `  barmate recipe list --in-stock
  barmate recipe list --sort ingredients --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := derive.ParseCriterion(sortBy)
			if err != nil {
				return err
			}
			return a.printer.Recipes(a.engine.Recipes(derive.Query{
				Filter:    derive.Filter{InStock: inStock},
				SortBy:    by,
				Ascending: !desc,
			}))
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", string(derive.ByName), "sort by: name, ingredients")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().BoolVar(&inStock, "in-stock", false, "only recipes you can make now")
	return cmd
}

func newRecipeShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID|NAME",
		Short: "Show a recipe with the stock of each item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.engine.ResolveRecipe(args[0])
			if err != nil {
				return err
			}
			view, _ := a.engine.Recipe(r.ID)
			return a.printer.Recipe(view)
		},
	}
}
