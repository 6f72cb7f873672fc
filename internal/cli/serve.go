package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/mcp"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the liftsearch MCP server using stdio transport.

This server exposes 5 tools to AI clients:
  • exercise_search       - Familiarity-ranked search with related exercises
  • exercise_explore      - Precision/discovery search with refiners
  • exercise_add          - Create a custom exercise
  • exercise_select       - Record a pick so ranking learns from it
  • exercise_instructions - Keyword search over instructions

The catalog is loaded once at startup; learning data is shared with the CLI.`,
		Example: `  # Run directly
  liftsearch serve

  # Add to an MCP client
  claude mcp add liftsearch -- liftsearch serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	return cmd
}

// runServe starts the MCP server with stdio transport and signal handling.
// Implements graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
func runServe(cmd *cobra.Command) error {
	e, cfg, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Printf("Error closing engine: %v", err)
		}
	}()

	server := mcp.NewServer(e, cfg.Learning.LearnAliases)

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	// Run server in separate goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	// Wait for either signal or server error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down gracefully...", sig)

		if err := server.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
			return err
		}

		log.Println("Shutdown complete")
		return nil

	case err := <-errChan:
		// Server.Run() returned (stdin closed or error)
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("Error during cleanup: %v", closeErr)
		}
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
