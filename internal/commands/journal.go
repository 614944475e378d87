package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/auditlog"
	"github.com/agrifaas/farmledger/internal/importer"
	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/logger"
	"github.com/agrifaas/farmledger/internal/model"
)

func newJournalCommand(g *globals) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Record, import and check journal entries",
	}
	journalCmd.AddCommand(newJournalAddCommand(g))
	journalCmd.AddCommand(newJournalImportCommand(g))
	journalCmd.AddCommand(newJournalCheckCommand(g))
	return journalCmd
}

func newJournalAddCommand(g *globals) *cobra.Command {
	var (
		date        string
		description string
		category    string
		currency    string
		lines       []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a balanced journal entry",
		Long: `Add a balanced journal entry.

Each --line is side:account:amount[:plot[:season]], where side is debit or
credit (dr/cr) and account is an account ID or name. For example:

  farmledger journal add --desc "Maize sale" \
    --line dr:1010:1500 --line cr:"Crop Sales":1500:plot-a:2025-long`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			on := model.Day(time.Now())
			if date != "" {
				var err error
				on, err = time.Parse(journal.DateFormat, date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
			}

			entry := model.JournalEntry{
				Date:        on,
				Description: description,
				Category:    category,
				Currency:    model.NormalizeCurrency(currency),
			}
			for _, arg := range lines {
				l, err := parseLine(arg)
				if err != nil {
					return err
				}
				entry.Lines = append(entry.Lines, l)
			}

			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()

			chart, err := ws.Chart()
			if err != nil {
				return err
			}
			entries := []model.JournalEntry{entry}
			importer.ResolveAccounts(entries, chart)

			stored, err := ws.Store.AddEntries(entries)
			if err != nil {
				return err
			}
			e := stored[0]
			debits, _ := e.Totals()

			record(cmd.Context(), ws.Root, ws.Config, g.runID, mutation{
				action:   auditlog.ActionAddEntry,
				details:  fmt.Sprintf("%s %s %s", e.Currency, debits.StringFixed(2), e.Description),
				entryIDs: []string{e.ID},
				message:  fmt.Sprintf("journal: Add %s %s", e.ID, e.Description),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s %s)\n", e.ID, e.Currency, debits.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category, e.g. "+strings.Join(model.Categories[:3], ", "))
	cmd.Flags().StringVar(&currency, "currency", "", "entry currency (default: currency of the first account)")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "side:account:amount[:plot[:season]] (repeatable)")
	_ = cmd.MarkFlagRequired("line")
	return cmd
}

// parseLine parses side:account:amount[:plot[:season]].
func parseLine(arg string) (model.JournalEntryLine, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 3 || len(parts) > 5 {
		return model.JournalEntryLine{}, fmt.Errorf("invalid --line %q: want side:account:amount[:plot[:season]]", arg)
	}
	side, err := model.ParseLineType(parts[0])
	if err != nil {
		return model.JournalEntryLine{}, fmt.Errorf("invalid --line %q: %w", arg, err)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(parts[2]), ",", ""))
	if err != nil {
		return model.JournalEntryLine{}, fmt.Errorf("invalid --line %q: amount: %w", arg, err)
	}
	l := model.JournalEntryLine{
		AccountID: strings.TrimSpace(parts[1]),
		Type:      side,
		Amount:    amount,
	}
	if len(parts) > 3 {
		l.PlotID = strings.TrimSpace(parts[3])
	}
	if len(parts) > 4 {
		l.SeasonID = strings.TrimSpace(parts[4])
	}
	return l, nil
}

func newJournalImportCommand(g *globals) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import journal entries from CSV files",
		Long: `Import journal entries from CSV files.

With no arguments every CSV in the workspace's import/ directory is imported
and moved to import/processed/. Files may be in journal.csv format or the
single-amount cashbook format; the format is detected from the header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()
			log := logger.FromContext(cmd.Context())

			var files []importer.FileInfo
			if len(args) == 0 {
				files, err = importer.Scan(ws.Root)
				if err != nil {
					return err
				}
			} else {
				for _, a := range args {
					p, err := filepath.Abs(a)
					if err != nil {
						return fmt.Errorf("resolving %s: %w", a, err)
					}
					files = append(files, importer.FileInfo{Name: filepath.Base(p), Path: p})
				}
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files to import")
				return nil
			}

			chart, err := ws.Chart()
			if err != nil {
				return err
			}
			registry := importer.DefaultRegistry()
			importDir := filepath.Join(ws.Root, "import")
			out := cmd.OutOrStdout()

			for _, f := range files {
				entries, parser, err := registry.ParseFile(f.Path)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					log.Info().Str("file", f.Name).Msg("no entries")
					continue
				}
				importer.ResolveAccounts(entries, chart)

				if dryRun {
					var verrs []journal.ValidationError
					for _, e := range entries {
						verrs = append(verrs, journal.ValidateEntry(e, chart)...)
					}
					if len(verrs) > 0 {
						return fmt.Errorf("%s: %w", f.Name, journal.Err(verrs))
					}
					fmt.Fprintf(out, "%s: %d entries OK (%s)\n", f.Name, len(entries), parser.Format())
					continue
				}

				stored, err := ws.Store.AddEntries(entries)
				if err != nil {
					return fmt.Errorf("%s: %w", f.Name, err)
				}
				if filepath.Dir(f.Path) == importDir {
					if err := importer.MarkProcessed(ws.Root, f.Name); err != nil {
						return err
					}
				}

				ids := make([]string, len(stored))
				for i, e := range stored {
					ids[i] = e.ID
				}
				record(cmd.Context(), ws.Root, ws.Config, g.runID, mutation{
					action:   auditlog.ActionImport,
					details:  fmt.Sprintf("%s (%s)", f.Name, parser.Format()),
					entryIDs: ids,
					message:  fmt.Sprintf("import: %s (%d entries)", f.Name, len(stored)),
				})
				fmt.Fprintf(out, "%s: imported %d entries (%s to %s)\n", f.Name, len(stored), ids[0], ids[len(ids)-1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without storing anything")
	return cmd
}

func newJournalCheckCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report orphan accounts, unbalanced entries and currency mismatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()

			accts, err := ws.Store.LoadAccounts()
			if err != nil {
				return err
			}
			entries, err := ws.Store.LoadEntries()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			diags := ledger.Check(accts, entries)
			for _, d := range diags {
				fmt.Fprintln(out, d.String())
			}
			if len(diags) > 0 {
				return fmt.Errorf("%d problem(s) in %d entries", len(diags), len(entries))
			}
			fmt.Fprintf(out, "%d entries checked, no problems found\n", len(entries))
			return nil
		},
	}
}
