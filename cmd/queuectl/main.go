// Command queuectl runs a durable, single-host background job queue.
//
// It is a thin front end over the queuectl package: schema setup,
// flag parsing, and process wiring live here; claim ordering, retry
// math, and state transitions all live in the library.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/store"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "queuectl",
	Short: "Durable, single-host background job queue",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "queuectl.db", "path to the SQLite database file")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func openStore(ctx context.Context) (*bun.DB, error) {
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.InitDB(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

func loadConfig(ctx context.Context, db *bun.DB) (*queuectl.Config, error) {
	return queuectl.LoadConfig(ctx, store.NewConfigStore(db))
}
