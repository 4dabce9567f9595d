package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/barmate/internal/conversation"
	"github.com/hammamikhairi/barmate/internal/derive"
	"github.com/hammamikhairi/barmate/internal/display"
	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/engine"
	"github.com/hammamikhairi/barmate/internal/logger"
	"github.com/hammamikhairi/barmate/internal/metrics"
	"github.com/hammamikhairi/barmate/internal/output"
)

func newShellCmd(a *app) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if metricsAddr != "" {
				stop := serveMetrics(metricsAddr, a.log)
				defer stop()
			}

			sh := newShell(a.engine, conversation.NewKeywordParser(a.log), a.log)
			ui := display.NewUI(sh.status)
			sh.out = ui

			fmt.Fprint(cmd.OutOrStdout(), display.RenderBanner())
			fmt.Fprintln(cmd.OutOrStdout())

			go func() {
				ui.WaitReady()
				sh.run(ctx, ui.InputChan())
				ui.Quit()
			}()

			// Bubble Tea owns the terminal until quit.
			err := ui.Run()
			cancel()
			return err
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

// serveMetrics exposes the registry over HTTP until the returned func runs.
func serveMetrics(addr string, log *logger.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// shellOutput is the slice of display.UI the shell writes through.
type shellOutput interface {
	PrintHeader(text string)
	PrintLine(text string)
	PrintBlock(text string)
	PrintOK(text string)
	PrintHint(text string)
	PrintUrgent(text string)
}

type shell struct {
	engine *engine.Engine
	parser domain.IntentParser
	out    shellOutput
	log    *logger.Logger

	// query is read by the UI goroutine for the status bar.
	mu    sync.Mutex
	query derive.Query
}

func newShell(eng *engine.Engine, parser domain.IntentParser, log *logger.Logger) *shell {
	return &shell{
		engine: eng,
		parser: parser,
		log:    log,
		query:  derive.Query{SortBy: derive.ByName, Ascending: true, Locale: eng.Locale()},
	}
}

func (s *shell) currentQuery() derive.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *shell) status() display.Status {
	q := s.currentQuery()
	return display.Status{
		Ingredients: len(s.engine.Ingredients()),
		Recipes:     len(s.engine.Recipes(derive.DefaultQuery())),
		Makeable:    len(s.engine.Recipes(derive.Query{Filter: derive.Filter{InStock: true}})),
		SortBy:      string(q.SortBy),
		Ascending:   q.Ascending,
		InStockOnly: q.Filter.InStock,
	}
}

func (s *shell) run(ctx context.Context, input <-chan string) {
	s.out.PrintHint(`type "help" for commands`)
	s.showRecipes()

	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		intent, err := s.parser.Parse(ctx, line)
		if err != nil {
			s.log.Error("parsing input: %v", err)
			continue
		}
		s.log.Debug("intent: %s (args=%q)", intent.Type, intent.Args)
		if s.handle(ctx, intent) {
			return
		}
	}
}

// handle runs one intent. It returns true when the shell should exit.
func (s *shell) handle(ctx context.Context, in *domain.Intent) bool {
	switch in.Type {
	case domain.IntentQuit:
		s.out.PrintHint("cheers!")
		return true
	case domain.IntentHelp:
		s.showHelp()
	case domain.IntentListIngredients:
		s.showIngredients()
	case domain.IntentAddIngredient:
		s.addIngredient(ctx, in.Arg(0))
	case domain.IntentEditIngredient:
		s.setAmount(ctx, in.Arg(0), in.Arg(1))
	case domain.IntentDeleteIngredient:
		s.deleteIngredient(ctx, in.Arg(0))
	case domain.IntentListRecipes:
		s.showRecipes()
	case domain.IntentShowRecipe:
		s.showRecipe(in.Arg(0))
	case domain.IntentAddRecipe:
		var specs []string
		if len(in.Args) > 1 {
			specs = in.Args[1:]
		}
		s.addRecipe(ctx, in.Arg(0), specs)
	case domain.IntentDeleteRecipe:
		s.deleteRecipe(ctx, in.Arg(0))
	case domain.IntentSortRecipes:
		s.sortRecipes(in.Arg(0), in.Arg(1))
	case domain.IntentToggleInStock:
		s.toggleInStock()
	default:
		s.out.PrintHint(fmt.Sprintf("I don't know %q. Type \"help\" for commands.", in.Arg(0)))
	}
	return false
}

func (s *shell) table(d output.Data) {
	var buf bytes.Buffer
	if err := output.NewFormatter(output.FormatTable).Format(&buf, d); err != nil {
		s.out.PrintUrgent(err.Error())
		return
	}
	s.out.PrintBlock(buf.String())
}

func (s *shell) showHelp() {
	s.out.PrintHeader("Ingredients")
	s.out.PrintLine("ingredients                    list what's on the shelf")
	s.out.PrintLine("add ingredient NAME            add an ingredient (amount 0)")
	s.out.PrintLine("set NAME AMOUNT                set the amount on hand")
	s.out.PrintLine("delete ingredient NAME         remove an ingredient")
	s.out.PrintHeader("Recipes")
	s.out.PrintLine("recipes                        list recipes")
	s.out.PrintLine("show NAME                      show a recipe and its stock")
	s.out.PrintLine("add recipe NAME: ING=AMT, ...  add a recipe")
	s.out.PrintLine("delete recipe NAME             remove a recipe")
	s.out.PrintLine("sort [name|ingredients] [asc|desc]")
	s.out.PrintLine("available                      toggle showing only makeable recipes")
	s.out.PrintHint("quit to exit")
}

func (s *shell) showIngredients() {
	list := s.engine.Ingredients()
	if len(list) == 0 {
		s.out.PrintHint("no ingredients yet, try: add ingredient Gin")
		return
	}
	s.table(output.IngredientsTable(list))
}

func (s *shell) addIngredient(ctx context.Context, name string) {
	ing, ok := s.engine.AddIngredient(ctx, name)
	if !ok {
		s.out.PrintUrgent("ingredient name must not be blank")
		return
	}
	s.out.PrintOK(fmt.Sprintf("added %s", ing.Name))
}

func (s *shell) setAmount(ctx context.Context, ref, amountStr string) {
	ing, err := s.engine.ResolveIngredient(ref)
	if err != nil {
		s.out.PrintUrgent(err.Error())
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || !s.engine.EditIngredient(ctx, ing.ID, ing.Name, amount) {
		s.out.PrintUrgent(fmt.Sprintf("%q is not a valid amount", amountStr))
		return
	}
	s.out.PrintOK(fmt.Sprintf("%s: %s on hand", ing.Name, output.Amount(amount)))
}

func (s *shell) deleteIngredient(ctx context.Context, ref string) {
	ing, err := s.engine.ResolveIngredient(ref)
	if err != nil {
		s.out.PrintUrgent(err.Error())
		return
	}
	s.engine.DeleteIngredient(ctx, ing.ID)
	s.out.PrintOK(fmt.Sprintf("deleted %s", ing.Name))
}

func (s *shell) showRecipes() {
	q := s.currentQuery()
	views := s.engine.Recipes(q)
	if len(views) == 0 {
		if q.Filter.InStock {
			s.out.PrintHint("nothing you can make right now")
		} else {
			s.out.PrintHint("no recipes yet, try: add recipe Gimlet: gin=2, lime=1")
		}
		return
	}
	s.table(output.RecipesTable(views))
}

func (s *shell) showRecipe(ref string) {
	r, err := s.engine.ResolveRecipe(ref)
	if err != nil {
		s.out.PrintUrgent(err.Error())
		return
	}
	view, _ := s.engine.Recipe(r.ID)
	header := view.Name
	if view.Satisfiable {
		header += " (you can make this)"
	}
	s.out.PrintHeader(header)
	s.table(output.RecipeTable(view))
}

func (s *shell) addRecipe(ctx context.Context, name string, specs []string) {
	items, err := parseItemSpecs(s.engine, specs)
	if err != nil {
		s.out.PrintUrgent(err.Error())
		return
	}
	r, ok := s.engine.AddRecipe(ctx, name, items)
	if !ok {
		s.out.PrintUrgent(errRecipeRejected.Error())
		return
	}
	s.out.PrintOK(fmt.Sprintf("added %s with %d items", r.Name, len(r.Items)))
}

func (s *shell) deleteRecipe(ctx context.Context, ref string) {
	r, err := s.engine.ResolveRecipe(ref)
	if err != nil {
		s.out.PrintUrgent(err.Error())
		return
	}
	s.engine.DeleteRecipe(ctx, r.ID)
	s.out.PrintOK(fmt.Sprintf("deleted %s", r.Name))
}

// sortRecipes updates the sort. With no direction, picking the current
// criterion again flips it and picking a new one starts ascending.
func (s *shell) sortRecipes(crit, dir string) {
	switch strings.ToLower(crit) {
	case "asc", "ascending", "desc", "descending":
		crit, dir = "", crit
	}

	s.mu.Lock()
	by := s.query.SortBy
	if crit != "" {
		parsed, err := derive.ParseCriterion(crit)
		if err != nil {
			s.mu.Unlock()
			s.out.PrintUrgent(err.Error())
			return
		}
		by = parsed
	}
	switch strings.ToLower(dir) {
	case "asc", "ascending":
		s.query.Ascending = true
	case "desc", "descending":
		s.query.Ascending = false
	default:
		if by == s.query.SortBy {
			s.query.Ascending = !s.query.Ascending
		} else {
			s.query.Ascending = true
		}
	}
	s.query.SortBy = by
	s.mu.Unlock()

	s.showRecipes()
}

func (s *shell) toggleInStock() {
	s.mu.Lock()
	s.query.Filter.InStock = !s.query.Filter.InStock
	on := s.query.Filter.InStock
	s.mu.Unlock()

	if on {
		s.out.PrintHint("showing only recipes you can make")
	} else {
		s.out.PrintHint("showing all recipes")
	}
	s.showRecipes()
}
