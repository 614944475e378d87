package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/auditlog"
	"github.com/agrifaas/farmledger/internal/model"
)

func newAccountCommand(g *globals) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	accountCmd.AddCommand(newAccountListCommand(g))
	accountCmd.AddCommand(newAccountAddCommand(g))
	return accountCmd
}

func newAccountListCommand(g *globals) *cobra.Command {
	var typeName, currency string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()

			chart, err := ws.Chart()
			if err != nil {
				return err
			}
			accts := chart.All()
			if typeName != "" {
				t, err := model.ParseAccountType(typeName)
				if err != nil {
					return err
				}
				accts = chart.ByType(t)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCURRENCY\tINITIAL")
			for _, a := range accts {
				if currency != "" && model.NormalizeCurrency(currency) != a.Currency {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, a.Currency, a.InitialBalance.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only accounts of this type")
	cmd.Flags().StringVar(&currency, "currency", "", "only accounts in this currency")
	return cmd
}

func newAccountAddCommand(g *globals) *cobra.Command {
	var (
		accountID   string
		name        string
		typeName    string
		initial     string
		currency    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account to the chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseAccountType(typeName)
			if err != nil {
				return err
			}
			opening := decimal.Zero
			if initial != "" {
				opening, err = decimal.NewFromString(initial)
				if err != nil {
					return fmt.Errorf("invalid --initial %q: %w", initial, err)
				}
			}

			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()

			if currency == "" {
				currency = ws.Config.Workspace.Currency
			}
			added, err := ws.Store.AddAccount(model.Account{
				ID:             accountID,
				Name:           name,
				Type:           t,
				InitialBalance: opening,
				Currency:       model.NormalizeCurrency(currency),
				Description:    description,
			})
			if err != nil {
				return err
			}

			record(cmd.Context(), ws.Root, ws.Config, g.runID, mutation{
				action:  auditlog.ActionAddAccount,
				details: fmt.Sprintf("%s %s (%s)", added.ID, added.Name, added.Type),
				message: fmt.Sprintf("account: Add %s %s", added.ID, added.Name),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %s %s\n", added.ID, added.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "id", "", "account code (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&typeName, "type", "", "asset, liability, equity, income or expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&initial, "initial", "", "opening balance in the account's natural direction")
	cmd.Flags().StringVar(&currency, "currency", "", "account currency (default: workspace currency)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	return cmd
}
