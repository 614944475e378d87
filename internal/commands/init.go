package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/auditlog"
	"github.com/agrifaas/farmledger/internal/config"
	"github.com/agrifaas/farmledger/internal/gitops"
	"github.com/agrifaas/farmledger/internal/workspace"
)

type initOptions struct {
	name     string
	currency string
	driver   string
	noGit    bool
}

func newInitCommand(g *globals) *cobra.Command {
	var o initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new farm ledger workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := g.workspace
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, g, absDir, o)
		},
	}

	cmd.Flags().StringVar(&o.name, "name", "", "farm name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&o.currency, "currency", "USD", "reporting currency (ISO 4217)")
	cmd.Flags().StringVar(&o.driver, "driver", config.DriverCSV, "storage driver: csv or sqlite")
	cmd.Flags().BoolVar(&o.noGit, "no-git", false, "do not create a git repository or commit changes")

	return cmd
}

func runInit(cmd *cobra.Command, g *globals, dir string, o initOptions) error {
	ctx := cmd.Context()

	cfg := config.Default(o.name, o.currency)
	cfg.Storage.Driver = o.driver
	if o.driver == config.DriverSQLite {
		cfg.Storage.Path = "ledger.db"
	}
	cfg.Git.AutoCommit = !o.noGit

	ws, err := workspace.Init(ctx, dir, cfg, accounts.DefaultChart(cfg.Workspace.Currency))
	if err != nil {
		return err
	}
	defer ws.Close()

	// Keep the import tree in git even while empty.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), nil, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	gitignore := ".env\n*.db-journal\n*.db-wal\n*.db-shm\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if cfg.Git.AutoCommit && !gitops.IsRepo(dir) {
		if err := gitops.Init(ctx, dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}

	hash := record(ctx, dir, cfg, g.runID, mutation{
		action:  auditlog.ActionInit,
		details: fmt.Sprintf("%s (%s, %s storage)", cfg.Workspace.Name, cfg.Workspace.Currency, cfg.Storage.Driver),
		message: "init: Initialize " + cfg.Workspace.Name,
	})

	out := cmd.OutOrStdout()
	if hash != "" {
		fmt.Fprintf(out, "Initialized farm ledger at %s (%s)\n", dir, hash)
	} else {
		fmt.Fprintf(out, "Initialized farm ledger at %s\n", dir)
	}
	return nil
}
