package commands

import (
	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
	"github.com/agrifaas/farmledger/internal/reports"
)

func newReportCommand(g *globals) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build financial reports",
	}
	reportCmd.AddCommand(newReportSubcommand(g, "balance-sheet", "Balance sheet as of a date", true, "",
		func(book ledger.Book, f model.Filter, _ ledger.GroupBy) reports.Table {
			return reports.BuildBalanceSheet(book, f).Table()
		}))
	reportCmd.AddCommand(newReportSubcommand(g, "trial-balance", "Trial balance as of a date", true, "",
		func(book ledger.Book, f model.Filter, _ ledger.GroupBy) reports.Table {
			return reports.BuildTrialBalance(book, f).Table()
		}))
	reportCmd.AddCommand(newReportSubcommand(g, "income-statement", "Income statement for a period", false, "",
		func(book ledger.Book, f model.Filter, _ ledger.GroupBy) reports.Table {
			return reports.BuildIncomeStatement(book, f).Table()
		}))
	reportCmd.AddCommand(newReportSubcommand(g, "profitability", "Income, expenses and net by plot, season, category or account", false, ledger.GroupByPlot,
		func(book ledger.Book, f model.Filter, by ledger.GroupBy) reports.Table {
			return reports.BuildProfitability(book, f, by).Table()
		}))
	reportCmd.AddCommand(newReportSubcommand(g, "expenses", "Expense breakdown with shares of the total", false, ledger.GroupByCategory,
		func(book ledger.Book, f model.Filter, by ledger.GroupBy) reports.Table {
			return reports.BuildExpenseBreakdown(book, f, by).Table()
		}))
	return reportCmd
}

type buildFunc func(book ledger.Book, f model.Filter, by ledger.GroupBy) reports.Table

// newReportSubcommand wires the shared filter and output flags to one report
// builder. A non-empty defaultBy adds a --by flag.
func newReportSubcommand(g *globals, use, short string, pointInTime bool, defaultBy ledger.GroupBy, build buildFunc) *cobra.Command {
	var (
		ff filterFlags
		of outputFlags
		by string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()

			f, err := ff.filter(ws.Config.Fiscal)
			if err != nil {
				return err
			}
			var group ledger.GroupBy
			if defaultBy != "" {
				if group, err = ledger.ParseGroupBy(by); err != nil {
					return err
				}
			}

			currency := ff.currency
			if currency == "" {
				currency = ws.Config.Workspace.Currency
			}
			book, _, err := ws.Book(currency)
			if err != nil {
				return err
			}

			t := titled(build(book, f, group), f, pointInTime, model.NormalizeCurrency(currency))
			return of.emit(cmd, t, currency)
		},
	}

	ff.register(cmd, pointInTime)
	of.register(cmd)
	if defaultBy != "" {
		cmd.Flags().StringVar(&by, "by", string(defaultBy), "group by plot, season, category or account")
	}
	return cmd
}
