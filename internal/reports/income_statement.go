package reports

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

// IncomeStatement is revenue and expense movement over the filter's range.
type IncomeStatement struct {
	Filter        model.Filter
	Revenue       []ledger.AccountAmount
	Expenses      []ledger.AccountAmount
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// BuildIncomeStatement wraps the period calculator.
func BuildIncomeStatement(book ledger.Book, f model.Filter) IncomeStatement {
	p := ledger.ComputePeriodPerformance(book.Accounts, book.Entries, f)
	return IncomeStatement{
		Filter:        f,
		Revenue:       p.IncomeAccounts,
		Expenses:      p.ExpenseAccounts,
		TotalRevenue:  p.TotalIncome,
		TotalExpenses: p.TotalExpenses,
		NetIncome:     p.NetIncome,
	}
}

// Table renders the income statement.
func (is IncomeStatement) Table() Table {
	t := Table{Title: "Income Statement", Columns: []string{"Account", "Amount"}}
	t.Rows = append(t.Rows, HeaderRow{Label: "Revenue"})
	for _, a := range is.Revenue {
		t.Rows = append(t.Rows, DataRow{Label: a.Name, Values: amounts(a.Balance)})
	}
	t.Rows = append(t.Rows, SubtotalRow{Label: "Total Revenue", Values: amounts(is.TotalRevenue)})
	t.Rows = append(t.Rows, HeaderRow{Label: "Expenses"})
	for _, a := range is.Expenses {
		t.Rows = append(t.Rows, DataRow{Label: a.Name, Values: amounts(a.Balance)})
	}
	t.Rows = append(t.Rows, SubtotalRow{Label: "Total Expenses", Values: amounts(is.TotalExpenses)})
	t.Rows = append(t.Rows, TotalRow{Label: "Net Income", Values: amounts(is.NetIncome)})
	return t
}
