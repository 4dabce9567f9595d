package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var errIngredientRejected = errors.New("ingredient rejected: name must not be blank and amount must be a non-negative number")

func newIngredientCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredient",
		Aliases: []string{"ingredients", "ing", "i"},
		Short:   "Manage the ingredients on hand",
	}
	cmd.AddCommand(
		newIngredientAddCmd(a),
		newIngredientEditCmd(a),
		newIngredientDeleteCmd(a),
		newIngredientListCmd(a),
	)
	return cmd
}

func newIngredientAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add an ingredient with nothing on hand",
		Example: `  barmate ingredient add Gin
  barmate ingredient add "Angostura Bitters"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ing, ok := a.engine.AddIngredient(cmd.Context(), strings.Join(args, " "))
			if !ok {
				return errIngredientRejected
			}
			return a.printer.Ingredient(ing)
		},
	}
}

func newIngredientEditCmd(a *app) *cobra.Command {
	var (
		name   string
		amount float64
	)
	cmd := &cobra.Command{
		Use:   "edit ID|NAME",
		Short: "Rename an ingredient or change the amount on hand",
		Example: `  barmate ingredient edit gin --amount 70
  barmate ingredient edit 3f2c... --name "London Dry Gin"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ing, err := a.engine.ResolveIngredient(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				ing.Name = name
			}
			if cmd.Flags().Changed("amount") {
				ing.Amount = amount
			}
			if !a.engine.EditIngredient(cmd.Context(), ing.ID, ing.Name, ing.Amount) {
				return errIngredientRejected
			}
			updated, _ := a.engine.Ingredient(ing.ID)
			return a.printer.Ingredient(updated)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount on hand")
	return cmd
}

func newIngredientDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID|NAME",
		Aliases: []string{"rm"},
		Short:   "Delete an ingredient",
		Long: `Delete an ingredient. Recipes that use it keep the item and show it as
"(deleted ingredient)" until you edit them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ing, err := a.engine.ResolveIngredient(args[0])
			if err != nil {
				return err
			}
			a.engine.DeleteIngredient(cmd.Context(), ing.ID)
			return a.printer.Ingredient(ing)
		},
	}
}

func newIngredientListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ingredients by name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printer.Ingredients(a.engine.Ingredients())
		},
	}
}
