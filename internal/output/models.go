package output

import (
	"io"
	"strconv"

	"github.com/hammamikhairi/barmate/internal/derive"
	"github.com/hammamikhairi/barmate/internal/domain"
)

// Amount renders a quantity without trailing zeros.
func Amount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// IngredientsTable lays out the ingredient list.
func IngredientsTable(list []domain.Ingredient) Data {
	d := Data{Headers: []string{"ID", "Name", "Amount"}, RightAlign: map[int]bool{2: true}}
	for _, ing := range list {
		d.Rows = append(d.Rows, []string{ing.ID, ing.Name, Amount(ing.Amount)})
	}
	return d
}

// RecipesTable lays out recipe summaries.
func RecipesTable(views []derive.RecipeView) Data {
	d := Data{Headers: []string{"ID", "Name", "Items", "In stock"}, RightAlign: map[int]bool{2: true}}
	for _, v := range views {
		d.Rows = append(d.Rows, []string{v.ID, v.Name, strconv.Itoa(len(v.Items)), yesNo(v.Satisfiable)})
	}
	return d
}

// RecipeTable lays out one recipe's resolved items.
func RecipeTable(v derive.RecipeView) Data {
	d := Data{
		Headers:    []string{"#", "Ingredient", "Needed", "On hand", "OK"},
		RightAlign: map[int]bool{0: true, 2: true, 3: true},
	}
	for i, it := range v.Items {
		onHand := Amount(it.OnHand)
		if it.Missing {
			onHand = "-"
		}
		d.Rows = append(d.Rows, []string{
			strconv.Itoa(i),
			it.Name,
			Amount(it.Amount),
			onHand,
			yesNo(it.Sufficient()),
		})
	}
	return d
}

// Printer picks the right shape for each result type.
type Printer struct {
	Out    io.Writer
	Format Format
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{Out: out, Format: format}
}

func (p *Printer) emit(table Data, raw any) error {
	f := NewFormatter(p.Format)
	if p.Format == FormatJSON || p.Format == FormatYAML {
		return f.Format(p.Out, raw)
	}
	return f.Format(p.Out, table)
}

// Ingredients prints the ingredient list.
func (p *Printer) Ingredients(list []domain.Ingredient) error {
	if list == nil {
		list = []domain.Ingredient{}
	}
	return p.emit(IngredientsTable(list), list)
}

// Ingredient prints one ingredient.
func (p *Printer) Ingredient(ing domain.Ingredient) error {
	return p.emit(IngredientsTable([]domain.Ingredient{ing}), ing)
}

// Recipes prints recipe summaries.
func (p *Printer) Recipes(views []derive.RecipeView) error {
	if views == nil {
		views = []derive.RecipeView{}
	}
	return p.emit(RecipesTable(views), views)
}

// Recipe prints one recipe with its items.
func (p *Printer) Recipe(v derive.RecipeView) error {
	if p.Format == FormatJSON || p.Format == FormatYAML {
		return NewFormatter(p.Format).Format(p.Out, v)
	}
	if _, err := io.WriteString(p.Out, v.Name+" ("+v.ID+"), in stock: "+yesNo(v.Satisfiable)+"\n"); err != nil {
		return err
	}
	return p.emit(RecipeTable(v), v)
}
