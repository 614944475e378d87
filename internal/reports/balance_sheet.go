// Package reports assembles financial statements from the ledger
// calculators and renders them as typed tables.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

// RetainedEarningsLabel names the synthetic equity line that carries
// earnings not yet closed into an equity account.
const RetainedEarningsLabel = "Retained Earnings (Period)"

// Line is one account's figure within a section.
type Line struct {
	AccountID string // empty for synthetic lines
	Name      string
	Balance   decimal.Decimal
}

// Section groups lines of one account type.
type Section struct {
	Type  model.AccountType
	Lines []Line
	Total decimal.Decimal
}

// add counts the line towards the total and lists it unless hide is set.
func (s *Section) add(l Line, hide bool) {
	if !hide {
		s.Lines = append(s.Lines, l)
	}
	s.Total = s.Total.Add(l.Balance)
}

// BalanceSheet is the point-in-time position at the filter's end date.
type BalanceSheet struct {
	Filter                    model.Filter
	Assets                    Section
	Liabilities               Section
	Equity                    Section
	RetainedEarnings          decimal.Decimal
	TotalAssets               decimal.Decimal
	TotalLiabilities          decimal.Decimal
	TotalEquity               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Difference                decimal.Decimal // assets - (liabilities + equity)
	IsBalanced                bool
	Warnings                  []ledger.Diagnostic
}

// BuildBalanceSheet groups closing balances into assets, liabilities and
// equity. Income and expense balances are not closed into equity by any
// entry, so their cumulative net up to the end date is shown as a synthetic
// retained-earnings line; it appears whenever it is non-zero or the filter
// carries dates. Zero-balance asset and liability accounts are omitted.
func BuildBalanceSheet(book ledger.Book, f model.Filter) BalanceSheet {
	balances := ledger.ComputeBalances(book.Accounts, book.Entries, f)

	bs := BalanceSheet{
		Filter:      f,
		Assets:      Section{Type: model.AccountTypeAsset},
		Liabilities: Section{Type: model.AccountTypeLiability},
		Equity:      Section{Type: model.AccountTypeEquity},
		Warnings:    ledger.Check(book.Accounts, book.Entries),
	}

	for _, a := range book.Accounts {
		l := Line{AccountID: a.ID, Name: a.Name, Balance: balances.Of(a.ID)}
		switch a.Type {
		case model.AccountTypeAsset:
			bs.Assets.add(l, ledger.Negligible(l.Balance))
		case model.AccountTypeLiability:
			bs.Liabilities.add(l, ledger.Negligible(l.Balance))
		case model.AccountTypeEquity:
			bs.Equity.add(l, false)
		}
	}

	bs.RetainedEarnings = retainedEarnings(book, f)
	if !bs.RetainedEarnings.IsZero() || f.HasDates() {
		bs.Equity.add(Line{Name: RetainedEarningsLabel, Balance: bs.RetainedEarnings}, false)
	}

	bs.TotalAssets = bs.Assets.Total
	bs.TotalLiabilities = bs.Liabilities.Total
	bs.TotalEquity = bs.Equity.Total
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	bs.Difference = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
	bs.IsBalanced = ledger.WithinTolerance(bs.TotalAssets, bs.TotalLiabilitiesAndEquity)
	return bs
}

// retainedEarnings is the period calculator's net income from the beginning
// of the book up to the end date, plus any opening balances carried on income
// and expense accounts.
func retainedEarnings(book ledger.Book, f model.Filter) decimal.Decimal {
	net := ledger.ComputePeriodPerformance(book.Accounts, book.Entries, f.Cumulative()).NetIncome
	for _, a := range book.Accounts {
		switch a.Type {
		case model.AccountTypeIncome:
			net = net.Add(a.InitialBalance)
		case model.AccountTypeExpense:
			net = net.Sub(a.InitialBalance)
		}
	}
	return net
}

// Table renders the balance sheet.
func (bs BalanceSheet) Table() Table {
	t := Table{Title: "Balance Sheet", Columns: []string{"Account", "Balance"}}
	for _, s := range []Section{bs.Assets, bs.Liabilities, bs.Equity} {
		t.Rows = append(t.Rows, HeaderRow{Label: s.Type.Label()})
		for _, l := range s.Lines {
			t.Rows = append(t.Rows, DataRow{Label: l.Name, Values: amounts(l.Balance)})
		}
		t.Rows = append(t.Rows, SubtotalRow{Label: "Total " + s.Type.Label(), Values: amounts(s.Total)})
	}
	t.Rows = append(t.Rows, TotalRow{Label: "Total Liabilities & Equity", Values: amounts(bs.TotalLiabilitiesAndEquity)})
	if !bs.IsBalanced {
		t.Notes = append(t.Notes, "Out of balance by "+bs.Difference.StringFixed(2))
	}
	return withWarnings(t, bs.Warnings)
}

func withWarnings(t Table, diags []ledger.Diagnostic) Table {
	for _, d := range diags {
		t.Notes = append(t.Notes, "warning: "+d.String())
	}
	return t
}
