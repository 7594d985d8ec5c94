package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jkowalczyk/retain/internal/app"
	"github.com/jkowalczyk/retain/internal/clock"
	"github.com/jkowalczyk/retain/internal/config"
	"github.com/jkowalczyk/retain/internal/logger"
	"github.com/jkowalczyk/retain/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "retain",
	Short: "Terminal flashcards with SM-2 spaced repetition",
	Long: "Retain — a terminal flashcard app. Reviews are scheduled with the SM-2\n" +
		"algorithm against a simulated day counter that you advance explicitly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return app.Run(app.Options{
			DB:          env.db,
			Clock:       env.clk,
			Log:         env.log,
			DefaultDeck: env.cfg.DefaultDeck,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RETAIN_DB)")

	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// env bundles the opened dependencies shared by all commands.
type env struct {
	cfg *config.Config
	db  *store.DB
	clk *clock.Simulated
	log *zap.Logger
}

// openEnv loads config, opens the database, and restores the simulated
// clock. The --db flag wins over RETAIN_DB and the config file.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		dbPath = p
	}
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	clk, err := clock.Load(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, err
	}

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = logger.DefaultLogPath(dbPath)
	}
	log, err := logger.New(logPath, cfg.Debug)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &env{cfg: cfg, db: db, clk: clk, log: log}, nil
}

func (e *env) Close() {
	_ = e.log.Sync()
	_ = e.db.Close()
}
