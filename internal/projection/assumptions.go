package projection

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scenario names a bundle of assumptions.
type Scenario string

const (
	ScenarioBase        Scenario = "base"
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioPessimistic Scenario = "pessimistic"
)

// Scenarios lists the built-in scenarios.
var Scenarios = []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioPessimistic}

// ParseScenario accepts a scenario name in any case.
func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios {
		if strings.EqualFold(strings.TrimSpace(s), string(sc)) {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q (want base, optimistic or pessimistic)", s)
}

// Assumptions drives one projected year. Ratios and rates are whole-number
// percentages (12 means 12%); day counts are days of a 365-day year; the
// financing fields are amounts in the workspace currency.
type Assumptions struct {
	RevenueGrowth    decimal.Decimal `yaml:"revenue_growth"`    // % over prior revenue
	COGSRatio        decimal.Decimal `yaml:"cogs_ratio"`        // % of revenue
	SGARatio         decimal.Decimal `yaml:"sga_ratio"`         // % of revenue
	DepreciationRate decimal.Decimal `yaml:"depreciation_rate"` // % of prior net book value
	InterestRate     decimal.Decimal `yaml:"interest_rate"`     // % of prior debt
	TaxRate          decimal.Decimal `yaml:"tax_rate"`          // % of positive profit before tax
	ReceivablesDays  decimal.Decimal `yaml:"receivables_days"`  // of revenue
	InventoryDays    decimal.Decimal `yaml:"inventory_days"`    // of COGS
	PayablesDays     decimal.Decimal `yaml:"payables_days"`     // of COGS
	CapexRatio       decimal.Decimal `yaml:"capex_ratio"`       // % of revenue
	PayoutRatio      decimal.Decimal `yaml:"payout_ratio"`      // % of positive profit after tax
	CapitalInjection decimal.Decimal `yaml:"capital_injection"`
	NewDebt          decimal.Decimal `yaml:"new_debt"`
	DebtRepayment    decimal.Decimal `yaml:"debt_repayment"`
}

// Overrides replaces selected fields of an Assumptions bundle. Nil fields
// keep the bundle's value.
type Overrides struct {
	RevenueGrowth    *decimal.Decimal `yaml:"revenue_growth,omitempty"`
	COGSRatio        *decimal.Decimal `yaml:"cogs_ratio,omitempty"`
	SGARatio         *decimal.Decimal `yaml:"sga_ratio,omitempty"`
	DepreciationRate *decimal.Decimal `yaml:"depreciation_rate,omitempty"`
	InterestRate     *decimal.Decimal `yaml:"interest_rate,omitempty"`
	TaxRate          *decimal.Decimal `yaml:"tax_rate,omitempty"`
	ReceivablesDays  *decimal.Decimal `yaml:"receivables_days,omitempty"`
	InventoryDays    *decimal.Decimal `yaml:"inventory_days,omitempty"`
	PayablesDays     *decimal.Decimal `yaml:"payables_days,omitempty"`
	CapexRatio       *decimal.Decimal `yaml:"capex_ratio,omitempty"`
	PayoutRatio      *decimal.Decimal `yaml:"payout_ratio,omitempty"`
	CapitalInjection *decimal.Decimal `yaml:"capital_injection,omitempty"`
	NewDebt          *decimal.Decimal `yaml:"new_debt,omitempty"`
	DebtRepayment    *decimal.Decimal `yaml:"debt_repayment,omitempty"`
}

// With returns a copy of a with the non-nil overrides applied.
func (a Assumptions) With(o Overrides) Assumptions {
	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.RevenueGrowth, o.RevenueGrowth)
	set(&a.COGSRatio, o.COGSRatio)
	set(&a.SGARatio, o.SGARatio)
	set(&a.DepreciationRate, o.DepreciationRate)
	set(&a.InterestRate, o.InterestRate)
	set(&a.TaxRate, o.TaxRate)
	set(&a.ReceivablesDays, o.ReceivablesDays)
	set(&a.InventoryDays, o.InventoryDays)
	set(&a.PayablesDays, o.PayablesDays)
	set(&a.CapexRatio, o.CapexRatio)
	set(&a.PayoutRatio, o.PayoutRatio)
	set(&a.CapitalInjection, o.CapitalInjection)
	set(&a.NewDebt, o.NewDebt)
	set(&a.DebtRepayment, o.DebtRepayment)
	return a
}

// Validate rejects bundles the recurrence cannot use.
func (a Assumptions) Validate() error {
	nonNegative := map[string]decimal.Decimal{
		"cogs_ratio":        a.COGSRatio,
		"sga_ratio":         a.SGARatio,
		"depreciation_rate": a.DepreciationRate,
		"interest_rate":     a.InterestRate,
		"tax_rate":          a.TaxRate,
		"receivables_days":  a.ReceivablesDays,
		"inventory_days":    a.InventoryDays,
		"payables_days":     a.PayablesDays,
		"capex_ratio":       a.CapexRatio,
		"payout_ratio":      a.PayoutRatio,
		"capital_injection": a.CapitalInjection,
		"new_debt":          a.NewDebt,
		"debt_repayment":    a.DebtRepayment,
	}
	for _, name := range sortedKeys(nonNegative) {
		if nonNegative[name].IsNegative() {
			return fmt.Errorf("assumption %s must not be negative, got %s", name, nonNegative[name])
		}
	}
	if a.RevenueGrowth.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return fmt.Errorf("assumption revenue_growth must be above -100, got %s", a.RevenueGrowth)
	}
	return nil
}

// DefaultScenarios returns the built-in assumption bundles for a small
// mixed farm.
func DefaultScenarios() map[Scenario]Assumptions {
	base := Assumptions{
		RevenueGrowth:    decimal.NewFromInt(5),
		COGSRatio:        decimal.NewFromInt(55),
		SGARatio:         decimal.NewFromInt(20),
		DepreciationRate: decimal.NewFromInt(10),
		InterestRate:     decimal.NewFromInt(12),
		TaxRate:          decimal.NewFromInt(30),
		ReceivablesDays:  decimal.NewFromInt(30),
		InventoryDays:    decimal.NewFromInt(60),
		PayablesDays:     decimal.NewFromInt(45),
		CapexRatio:       decimal.NewFromInt(5),
		PayoutRatio:      decimal.Zero,
		CapitalInjection: decimal.Zero,
		NewDebt:          decimal.Zero,
		DebtRepayment:    decimal.Zero,
	}

	optimistic := base
	optimistic.RevenueGrowth = decimal.NewFromInt(12)
	optimistic.COGSRatio = decimal.NewFromInt(50)
	optimistic.SGARatio = decimal.NewFromInt(18)
	optimistic.ReceivablesDays = decimal.NewFromInt(21)

	pessimistic := base
	pessimistic.RevenueGrowth = decimal.NewFromInt(-5)
	pessimistic.COGSRatio = decimal.NewFromInt(62)
	pessimistic.SGARatio = decimal.NewFromInt(23)
	pessimistic.ReceivablesDays = decimal.NewFromInt(45)
	pessimistic.InventoryDays = decimal.NewFromInt(75)

	return map[Scenario]Assumptions{
		ScenarioBase:        base,
		ScenarioOptimistic:  optimistic,
		ScenarioPessimistic: pessimistic,
	}
}
