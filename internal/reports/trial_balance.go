package reports

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

// TrialBalanceRow is one account in debit/credit column form.
type TrialBalanceRow struct {
	AccountID string
	Name      string
	Type      model.AccountType
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalance lists every account with a non-zero closing balance.
type TrialBalance struct {
	Filter      model.Filter
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	IsBalanced  bool
	Warnings    []ledger.Diagnostic
}

// BuildTrialBalance places each closing balance on its account's natural
// side; a negative natural balance moves to the opposite column.
func BuildTrialBalance(book ledger.Book, f model.Filter) TrialBalance {
	balances := ledger.ComputeBalances(book.Accounts, book.Entries, f)
	tb := TrialBalance{Filter: f, Warnings: ledger.Check(book.Accounts, book.Entries)}

	for _, a := range book.Accounts {
		debit, credit := Columns(a.Type, balances.Of(a.ID))
		if debit.IsZero() && credit.IsZero() {
			continue
		}
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountID: a.ID,
			Name:      a.Name,
			Type:      a.Type,
			Debit:     debit,
			Credit:    credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}
	tb.IsBalanced = ledger.WithinTolerance(tb.TotalDebit, tb.TotalCredit)
	return tb
}

// Columns splits a natural-direction balance into debit and credit columns.
func Columns(t model.AccountType, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	natural, opposite := balance, decimal.Zero
	if balance.IsNegative() {
		natural, opposite = decimal.Zero, balance.Neg()
	}
	if t.DebitNormal() {
		return natural, opposite
	}
	return opposite, natural
}

// Table renders the trial balance.
func (tb TrialBalance) Table() Table {
	t := Table{Title: "Trial Balance", Columns: []string{"Account", "Debit", "Credit"}}
	for _, r := range tb.Rows {
		t.Rows = append(t.Rows, DataRow{Label: r.Name, Values: amounts(r.Debit, r.Credit)})
	}
	t.Rows = append(t.Rows, TotalRow{Label: "Total", Values: amounts(tb.TotalDebit, tb.TotalCredit)})
	if !tb.IsBalanced {
		t.Notes = append(t.Notes, "Debits and credits differ by "+tb.TotalDebit.Sub(tb.TotalCredit).StringFixed(2))
	}
	return withWarnings(t, tb.Warnings)
}
