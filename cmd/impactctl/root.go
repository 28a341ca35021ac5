package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"impactcompare/internal/adapters/llm"
	"impactcompare/internal/adapters/sqlite"
	"impactcompare/internal/config"
	"impactcompare/internal/ports"
	"impactcompare/internal/services/analyzer"
)

var version = "dev"

// Replaced in tests.
var (
	newAnalyzer = defaultAnalyzer
	openStore   = func(ctx context.Context, path string) (historyStore, error) { return sqlite.Open(ctx, path) }
)

type historyStore interface {
	ports.ComparisonStore
	Close() error
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impactctl",
		Short: "Compare the projected UX impact of two design variants",
		Long: `impactctl runs the variant analysis pipeline locally: it extracts features
from two screenshots, scores them, asks a reasoning model for a comparison and
prints the per-metric table. Results can be kept in a local SQLite history.`,
		Version:      version,
		SilenceUsage: true,
	}

	debug := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("db", "", "History database path (default from SQLITE_PATH)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if *debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newHistoryCommand())
	return cmd
}

// loadConfig tolerates missing settings; the CLI needs neither a database URL
// nor, for history commands, a credential.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	var missing *config.MissingError
	if err != nil && !errors.As(err, &missing) {
		return cfg, err
	}
	return cfg, nil
}

func defaultAnalyzer(cfg config.Config) (ports.Analyzer, error) {
	backend, err := llm.New(cfg.LLM(), slog.Default())
	if err != nil {
		return nil, err
	}
	return analyzer.New(backend, backend, cfg.BackendTimeoutDuration(), slog.Default()), nil
}

func storePath(cmd *cobra.Command, cfg config.Config) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	return cfg.SQLitePath
}
