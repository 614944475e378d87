// Package projection forward-simulates a farm's income statement, balance
// sheet and cash flow statement over several years from a base year and a
// set of scenario assumptions.
//
// Each projected year is a pure function of the previous year's output and
// that year's assumptions. Nothing else is carried between years.
package projection

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	yearDays = decimal.NewFromInt(365)
)

// IncomeStatement is one year's projected profit and loss.
type IncomeStatement struct {
	Revenue         decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
	SGA             decimal.Decimal
	EBITDA          decimal.Decimal
	Depreciation    decimal.Decimal
	PBIT            decimal.Decimal
	InterestExpense decimal.Decimal
	PBT             decimal.Decimal
	Tax             decimal.Decimal
	PAT             decimal.Decimal
}

// BalanceSheet is the closing position of a year. PPE is at cost;
// AccumulatedDepreciation is a positive amount deducted from it.
type BalanceSheet struct {
	PPE                     decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	NBV                     decimal.Decimal
	Inventory               decimal.Decimal
	Receivables             decimal.Decimal
	Cash                    decimal.Decimal
	TotalAssets             decimal.Decimal

	Payables         decimal.Decimal
	Debt             decimal.Decimal
	TotalLiabilities decimal.Decimal

	Capital          decimal.Decimal
	IncomeSurplus    decimal.Decimal
	ShareholdersFund decimal.Decimal

	TotalLiabilitiesAndEquity decimal.Decimal

	// BalanceCheck is TotalAssets minus TotalLiabilitiesAndEquity. The
	// recurrence keeps it at zero; a non-zero value means a miscomputed term.
	BalanceCheck decimal.Decimal
}

// CashFlow is one year's cash flow statement. Working-capital deltas are
// signed by their cash effect: an increase in an asset is negative.
type CashFlow struct {
	OpeningCash      decimal.Decimal
	OpProfitBeforeWC decimal.Decimal
	DeltaInventory   decimal.Decimal
	DeltaReceivables decimal.Decimal
	DeltaPayables    decimal.Decimal
	CashFromOps      decimal.Decimal
	TaxPaid          decimal.Decimal
	NetCFO           decimal.Decimal
	Capex            decimal.Decimal
	NetCFI           decimal.Decimal
	CapitalInjection decimal.Decimal
	NewDebt          decimal.Decimal
	DebtRepayment    decimal.Decimal
	DividendsPaid    decimal.Decimal
	NetCFF           decimal.Decimal
	NetChange        decimal.Decimal
	ClosingCash      decimal.Decimal
}

// YearData is one year of statements. The base year uses the same shape,
// with a CashFlow holding only the closing cash.
type YearData struct {
	Year            int
	IncomeStatement IncomeStatement
	BalanceSheet    BalanceSheet
	CashFlow        CashFlow
}

func pct(v, rate decimal.Decimal) decimal.Decimal {
	return v.Mul(rate).Div(hundred)
}

func days(v, n decimal.Decimal) decimal.Decimal {
	return v.Mul(n).Div(yearDays)
}

// Step computes the year after prev under a.
func Step(prev YearData, a Assumptions) YearData {
	pb := prev.BalanceSheet

	var is IncomeStatement
	is.Revenue = prev.IncomeStatement.Revenue.Mul(hundred.Add(a.RevenueGrowth)).Div(hundred)
	is.COGS = pct(is.Revenue, a.COGSRatio)
	is.GrossProfit = is.Revenue.Sub(is.COGS)
	is.SGA = pct(is.Revenue, a.SGARatio)
	if pb.NBV.IsPositive() {
		is.Depreciation = pct(pb.NBV, a.DepreciationRate)
	}
	is.PBIT = is.GrossProfit.Sub(is.SGA).Sub(is.Depreciation)
	is.InterestExpense = pct(pb.Debt, a.InterestRate)
	is.PBT = is.PBIT.Sub(is.InterestExpense)
	if is.PBT.IsPositive() {
		is.Tax = pct(is.PBT, a.TaxRate)
	}
	is.PAT = is.PBT.Sub(is.Tax)
	is.EBITDA = is.PBIT.Add(is.Depreciation)

	receivables := days(is.Revenue, a.ReceivablesDays)
	inventory := days(is.COGS, a.InventoryDays)
	payables := days(is.COGS, a.PayablesDays)

	var cf CashFlow
	cf.OpeningCash = pb.Cash
	cf.OpProfitBeforeWC = is.PBT.Add(is.Depreciation)
	cf.DeltaInventory = pb.Inventory.Sub(inventory)
	cf.DeltaReceivables = pb.Receivables.Sub(receivables)
	cf.DeltaPayables = payables.Sub(pb.Payables)
	cf.CashFromOps = cf.OpProfitBeforeWC.Add(cf.DeltaInventory).Add(cf.DeltaReceivables).Add(cf.DeltaPayables)
	cf.TaxPaid = is.Tax
	cf.NetCFO = cf.CashFromOps.Sub(cf.TaxPaid)
	cf.Capex = pct(is.Revenue, a.CapexRatio)
	cf.NetCFI = cf.Capex.Neg()
	cf.CapitalInjection = a.CapitalInjection
	cf.NewDebt = a.NewDebt
	cf.DebtRepayment = a.DebtRepayment
	if is.PAT.IsPositive() {
		cf.DividendsPaid = pct(is.PAT, a.PayoutRatio)
	}
	cf.NetCFF = cf.CapitalInjection.Add(cf.NewDebt).Sub(cf.DebtRepayment).Sub(cf.DividendsPaid)
	cf.NetChange = cf.NetCFO.Add(cf.NetCFI).Add(cf.NetCFF)
	cf.ClosingCash = cf.OpeningCash.Add(cf.NetChange)

	var bs BalanceSheet
	bs.PPE = pb.PPE.Add(cf.Capex)
	bs.AccumulatedDepreciation = pb.AccumulatedDepreciation.Add(is.Depreciation)
	bs.Inventory = inventory
	bs.Receivables = receivables
	bs.Cash = cf.ClosingCash
	bs.Payables = payables
	bs.Debt = pb.Debt.Add(a.NewDebt).Sub(a.DebtRepayment)
	bs.Capital = pb.Capital.Add(a.CapitalInjection)
	bs.IncomeSurplus = pb.IncomeSurplus.Add(is.PAT).Sub(cf.DividendsPaid)
	bs.total()

	return YearData{
		Year:            prev.Year + 1,
		IncomeStatement: is,
		BalanceSheet:    bs,
		CashFlow:        cf,
	}
}

// total fills the derived totals and the balance check from the line items.
func (bs *BalanceSheet) total() {
	bs.NBV = bs.PPE.Sub(bs.AccumulatedDepreciation)
	bs.TotalAssets = bs.NBV.Add(bs.Inventory).Add(bs.Receivables).Add(bs.Cash)
	bs.TotalLiabilities = bs.Payables.Add(bs.Debt)
	bs.ShareholdersFund = bs.Capital.Add(bs.IncomeSurplus)
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.ShareholdersFund)
	bs.BalanceCheck = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
}

// Project runs the recurrence for years under the same assumptions and
// returns the projected years in increasing order. The base year itself is
// not included.
func Project(base YearData, a Assumptions, years int) []YearData {
	schedule := make([]Assumptions, max(years, 0))
	for i := range schedule {
		schedule[i] = a
	}
	return ProjectSchedule(base, schedule)
}

// ProjectSchedule runs one year per element of schedule, each year under its
// own assumptions.
func ProjectSchedule(base YearData, schedule []Assumptions) []YearData {
	out := make([]YearData, 0, len(schedule))
	prev := base
	for _, a := range schedule {
		next := Step(prev, a)
		out = append(out, next)
		prev = next
	}
	return out
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
