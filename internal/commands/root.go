// Package commands implements the farmledger command-line interface.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/buildinfo"
	"github.com/agrifaas/farmledger/internal/id"
	"github.com/agrifaas/farmledger/internal/logger"
	"github.com/agrifaas/farmledger/internal/workspace"
)

// EnvWorkspace selects the workspace directory when --workspace is not given.
const EnvWorkspace = "FARMLEDGER_WORKSPACE"

// globals holds the persistent flags and per-invocation state shared by all
// subcommands.
type globals struct {
	workspace string
	verbose   bool
	runID     string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "farmledger",
		Short:   "Double-entry bookkeeping, reports and projections for farms",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "workspace directory (default $"+EnvWorkspace+" or the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(g))
	rootCmd.AddCommand(newAccountCommand(g))
	rootCmd.AddCommand(newJournalCommand(g))
	rootCmd.AddCommand(newReportCommand(g))
	rootCmd.AddCommand(newProjectCommand(g))

	return rootCmd
}

// setup loads .env, resolves the workspace directory and attaches a logger
// to the command context.
func (g *globals) setup(cmd *cobra.Command) error {
	start := g.workspace
	if start == "" {
		start = "."
	}
	if err := godotenv.Load(filepath.Join(start, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if g.workspace == "" {
		g.workspace = os.Getenv(EnvWorkspace)
	}
	if g.workspace == "" {
		g.workspace = "."
	}

	g.runID = id.NewRunID()
	log := logger.New(g.verbose).With().Str("run", g.runID).Logger()
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}

func (g *globals) open(cmd *cobra.Command) (*workspace.Workspace, error) {
	return workspace.Open(cmd.Context(), g.workspace)
}
