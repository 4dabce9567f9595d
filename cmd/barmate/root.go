package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/barmate/internal/config"
	"github.com/hammamikhairi/barmate/internal/engine"
	"github.com/hammamikhairi/barmate/internal/ident"
	"github.com/hammamikhairi/barmate/internal/inventory"
	"github.com/hammamikhairi/barmate/internal/logger"
	"github.com/hammamikhairi/barmate/internal/output"
	"github.com/hammamikhairi/barmate/internal/recipe"
	"github.com/hammamikhairi/barmate/internal/storage"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	output     string
	verbose    bool
	quiet      bool
}

// app is the wired application handed to each command once the root's
// PersistentPreRunE has run.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *storage.Adapter
	engine  *engine.Engine
	printer *output.Printer
	logFile io.Closer
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	a := &app{}
	v := config.New()

	root := &cobra.Command{
		Use:   "barmate",
		Short: "Track bar ingredients and the cocktails you can make",
		Long: `Barmate keeps an inventory of ingredients with the amount on hand and a
list of recipes that reference them. It tells you which recipes you can
make right now.

Run "barmate shell" for an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags, v)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is ./.barmate.yaml or $HOME/.barmate.yaml)")
	pf.StringVarP(&flags.output, "output", "o", "", "output format: table, json, yaml (default: table on a terminal, json otherwise)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "disable all logging")
	pf.String("driver", "", "storage driver: memory, file, sqlite, postgres, redis, s3")
	pf.String("data", "", "data directory for the file and sqlite drivers")
	pf.String("namespace", "", "key prefix for stored collections")

	// Flags win over env and file, but only when set.
	_ = v.BindPFlag("storage.driver", pf.Lookup("driver"))
	_ = v.BindPFlag("storage.path", pf.Lookup("data"))
	_ = v.BindPFlag("namespace", pf.Lookup("namespace"))

	root.AddCommand(
		newIngredientCmd(a),
		newRecipeCmd(a),
		newShellCmd(a),
	)
	return root
}

// setup loads config, opens storage, and hydrates the engine.
func (a *app) setup(cmd *cobra.Command, flags *globalFlags, v *viper.Viper) error {
	cfg, err := config.Load(v, flags.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	format, err := output.ParseFormat(flags.output)
	if err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flags.verbose {
		level = logger.LevelVerbose
	}
	if flags.quiet {
		level = logger.LevelOff
	}

	// Logs go to a file by default so table output and the shell stay clean.
	var logOut io.Writer = os.Stderr
	if level != logger.LevelOff {
		out, closer, err := logOutput(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut, a.logFile = out, closer
		}
	}
	a.log = logger.New(level, logOut)
	if cfg.ConfigFile != "" {
		a.log.Debug("using config file %s", cfg.ConfigFile)
	}

	store, err := storage.Open(cmd.Context(), cfg.StorageConfig(), a.log)
	if err != nil {
		return err
	}
	a.store = store

	a.engine = engine.New(
		inventory.NewStore(ident.NewUUID, a.log),
		recipe.NewStore(ident.NewUUID, a.log),
		store,
		a.log,
		engine.WithLocale(cfg.LocaleTag()),
	)
	a.engine.Load(cmd.Context())

	a.printer = output.NewPrinter(cmd.OutOrStdout(), output.DetectFormat(string(format)))
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("closing storage: %v", err)
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// logOutput opens the log file, creating its directory. "stderr" or an
// empty path logs to stderr.
func logOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" || path == "stderr" {
		return os.Stderr, nil, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
