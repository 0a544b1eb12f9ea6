// memtrail: single-user command memory MCP server
//
// Records the free-text commands a user gives their coding assistant,
// persists them in SQLite, and answers heuristic questions about them
// (preferences, stats, contextual subsets) over MCP stdio or REST.
//
// Usage:
//
//	memtrail serve           # Start MCP server (stdio transport)
//	memtrail rest            # Start REST server
//	memtrail version         # Print version
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/dreyes/memtrail/internal/httpapi"
	"github.com/dreyes/memtrail/internal/memory"
	"github.com/dreyes/memtrail/internal/server"
)

var (
	dbPath   string
	restAddr string
)

var rootCmd = &cobra.Command{
	Use:   "memtrail",
	Short: "Single-user command memory for AI coding assistants",
	Long: "memtrail records the free-text instructions a user gives their coding " +
		"assistant and serves recency, search, and heuristic preference analysis " +
		"over MCP stdio or a thin REST API. SQLite-backed, single binary.",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := server.New(storeConfig())
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		// stdout belongs to the MCP stdio transport; everything else
		// goes to stderr.
		return mcpserver.ServeStdio(s)
	},
}

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Start the REST server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		store, err := memory.New(storeConfig())
		if err != nil {
			return fmt.Errorf("creating command store: %w", err)
		}
		defer store.Close()

		e := httpapi.New(store, logger).Router()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- e.Start(restAddr)
		}()
		logger.Info("rest server listening", slog.String("addr", restAddr))

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("rest server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stderr, "memtrail v%s\n", server.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "",
		"Database path (default: $MEMTRAIL_DB or ~/.memtrail/memory.db)")
	restCmd.Flags().StringVar(&restAddr, "addr", ":8480", "REST listen address")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(restCmd)
	rootCmd.AddCommand(versionCmd)
}

func storeConfig() memory.Config {
	cfg := memory.DefaultConfig()
	if dbPath != "" {
		cfg.Path = dbPath
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
