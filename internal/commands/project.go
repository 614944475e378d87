package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/logger"
	"github.com/agrifaas/farmledger/internal/model"
	"github.com/agrifaas/farmledger/internal/projection"
)

// defaultProjectionYears applies when neither --years nor projection.years
// is set.
const defaultProjectionYears = 5

func newProjectCommand(g *globals) *cobra.Command {
	var (
		scenario string
		years    int
		asOf     string
		currency string
		of       outputFlags
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project income statement, balance sheet and cash flow forward",
		Long: `Project the three statements forward from a base year.

The base year is derived from actual entries: the income statement over the
twelve months ending on --as-of and the balance sheet as of that date. Each
projected year applies the scenario's growth, margin, working-capital and
financing assumptions, optionally overridden in farmledger.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()
			cfg := ws.Config
			log := logger.FromContext(cmd.Context())

			if scenario == "" {
				scenario = cfg.Projection.Scenario
			}
			if scenario == "" {
				scenario = string(projection.ScenarioBase)
			}
			sc, err := projection.ParseScenario(scenario)
			if err != nil {
				return err
			}
			a := cfg.Assumptions(sc)
			if err := a.Validate(); err != nil {
				return fmt.Errorf("%s scenario: %w", sc, err)
			}

			if years == 0 {
				years = cfg.Projection.Years
			}
			if years == 0 {
				years = defaultProjectionYears
			}
			if years < 0 {
				return fmt.Errorf("--years must be positive")
			}

			at := model.Day(time.Now())
			if asOf != "" {
				if at, err = time.Parse(journal.DateFormat, asOf); err != nil {
					return fmt.Errorf("invalid --as-of %q: %w", asOf, err)
				}
			}
			if currency == "" {
				currency = cfg.Workspace.Currency
			}

			book, _, err := ws.Book(currency)
			if err != nil {
				return err
			}
			bindings, _, err := ws.Bindings()
			if err != nil {
				return err
			}
			cls, err := ws.Classifier()
			if err != nil {
				return err
			}

			base, warnings := projection.DeriveBaseYear(book, at, bindings, cls)
			for _, w := range warnings {
				log.Warn().Msg(w)
			}
			projected := projection.Project(base, a, years)

			title := fmt.Sprintf("Projection, %s scenario, base year to %s (%s)", sc, at.Format(journal.DateFormat), model.NormalizeCurrency(currency))
			t := projection.Table(title, append([]projection.YearData{base}, projected...))
			t.Notes = append(t.Notes, warnings...)
			return of.emit(cmd, t, currency)
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "base, optimistic or pessimistic (default: projection.scenario)")
	cmd.Flags().IntVar(&years, "years", 0, "years to project (default: projection.years)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "last day of the base year YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency (default: workspace currency)")
	of.register(cmd)
	return cmd
}
