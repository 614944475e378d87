package projection

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/reports"
)

// Table lays the years out side by side, one column per year, with the
// income statement, cash flow and balance sheet as sections.
func Table(title string, years []YearData) reports.Table {
	t := reports.Table{Title: title, Columns: []string{"Line"}}
	for _, y := range years {
		t.Columns = append(t.Columns, strconv.Itoa(y.Year))
	}

	col := func(f func(YearData) decimal.Decimal) []decimal.Decimal {
		out := make([]decimal.Decimal, len(years))
		for i, y := range years {
			out[i] = f(y)
		}
		return out
	}
	data := func(label string, f func(YearData) decimal.Decimal) {
		t.Rows = append(t.Rows, reports.DataRow{Label: label, Values: col(f)})
	}
	sub := func(label string, f func(YearData) decimal.Decimal) {
		t.Rows = append(t.Rows, reports.SubtotalRow{Label: label, Values: col(f)})
	}
	total := func(label string, f func(YearData) decimal.Decimal) {
		t.Rows = append(t.Rows, reports.TotalRow{Label: label, Values: col(f)})
	}
	header := func(label string) {
		t.Rows = append(t.Rows, reports.HeaderRow{Label: label})
	}

	header("Income Statement")
	data("Revenue", func(y YearData) decimal.Decimal { return y.IncomeStatement.Revenue })
	data("Cost of Sales", func(y YearData) decimal.Decimal { return y.IncomeStatement.COGS })
	sub("Gross Profit", func(y YearData) decimal.Decimal { return y.IncomeStatement.GrossProfit })
	data("SG&A", func(y YearData) decimal.Decimal { return y.IncomeStatement.SGA })
	sub("EBITDA", func(y YearData) decimal.Decimal { return y.IncomeStatement.EBITDA })
	data("Depreciation", func(y YearData) decimal.Decimal { return y.IncomeStatement.Depreciation })
	sub("Profit Before Interest & Tax", func(y YearData) decimal.Decimal { return y.IncomeStatement.PBIT })
	data("Interest Expense", func(y YearData) decimal.Decimal { return y.IncomeStatement.InterestExpense })
	sub("Profit Before Tax", func(y YearData) decimal.Decimal { return y.IncomeStatement.PBT })
	data("Tax", func(y YearData) decimal.Decimal { return y.IncomeStatement.Tax })
	sub("Profit After Tax", func(y YearData) decimal.Decimal { return y.IncomeStatement.PAT })

	header("Cash Flow")
	data("Opening Cash", func(y YearData) decimal.Decimal { return y.CashFlow.OpeningCash })
	data("Operating Profit Before Working Capital", func(y YearData) decimal.Decimal { return y.CashFlow.OpProfitBeforeWC })
	data("Change in Inventory", func(y YearData) decimal.Decimal { return y.CashFlow.DeltaInventory })
	data("Change in Receivables", func(y YearData) decimal.Decimal { return y.CashFlow.DeltaReceivables })
	data("Change in Payables", func(y YearData) decimal.Decimal { return y.CashFlow.DeltaPayables })
	data("Tax Paid", func(y YearData) decimal.Decimal { return y.CashFlow.TaxPaid.Neg() })
	sub("Net Cash from Operations", func(y YearData) decimal.Decimal { return y.CashFlow.NetCFO })
	data("Capital Expenditure", func(y YearData) decimal.Decimal { return y.CashFlow.Capex.Neg() })
	sub("Net Cash from Investing", func(y YearData) decimal.Decimal { return y.CashFlow.NetCFI })
	data("Capital Injection", func(y YearData) decimal.Decimal { return y.CashFlow.CapitalInjection })
	data("New Debt", func(y YearData) decimal.Decimal { return y.CashFlow.NewDebt })
	data("Debt Repayment", func(y YearData) decimal.Decimal { return y.CashFlow.DebtRepayment.Neg() })
	data("Dividends Paid", func(y YearData) decimal.Decimal { return y.CashFlow.DividendsPaid.Neg() })
	sub("Net Cash from Financing", func(y YearData) decimal.Decimal { return y.CashFlow.NetCFF })
	sub("Closing Cash", func(y YearData) decimal.Decimal { return y.CashFlow.ClosingCash })

	header("Balance Sheet")
	data("Property, Plant & Equipment", func(y YearData) decimal.Decimal { return y.BalanceSheet.PPE })
	data("Accumulated Depreciation", func(y YearData) decimal.Decimal { return y.BalanceSheet.AccumulatedDepreciation.Neg() })
	data("Net Book Value", func(y YearData) decimal.Decimal { return y.BalanceSheet.NBV })
	data("Inventory", func(y YearData) decimal.Decimal { return y.BalanceSheet.Inventory })
	data("Receivables", func(y YearData) decimal.Decimal { return y.BalanceSheet.Receivables })
	data("Cash", func(y YearData) decimal.Decimal { return y.BalanceSheet.Cash })
	sub("Total Assets", func(y YearData) decimal.Decimal { return y.BalanceSheet.TotalAssets })
	data("Payables", func(y YearData) decimal.Decimal { return y.BalanceSheet.Payables })
	data("Debt", func(y YearData) decimal.Decimal { return y.BalanceSheet.Debt })
	sub("Total Liabilities", func(y YearData) decimal.Decimal { return y.BalanceSheet.TotalLiabilities })
	data("Capital", func(y YearData) decimal.Decimal { return y.BalanceSheet.Capital })
	data("Income Surplus", func(y YearData) decimal.Decimal { return y.BalanceSheet.IncomeSurplus })
	sub("Shareholders' Fund", func(y YearData) decimal.Decimal { return y.BalanceSheet.ShareholdersFund })
	total("Total Liabilities & Equity", func(y YearData) decimal.Decimal { return y.BalanceSheet.TotalLiabilitiesAndEquity })

	for _, y := range years {
		if !y.BalanceSheet.BalanceCheck.Round(2).IsZero() {
			t.Notes = append(t.Notes, strconv.Itoa(y.Year)+": balance sheet out by "+y.BalanceSheet.BalanceCheck.StringFixed(2))
		}
	}
	return t
}
