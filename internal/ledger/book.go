// Package ledger derives balances and period movements from a chart of
// accounts and a list of journal entries. Every function is a pure function
// of its inputs: nothing is cached and nothing is mutated, so callers may
// recompute on every read or memoize on (accounts, entries, filter).
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// Tolerance is the absolute difference below which two amounts are treated as
// equal when checking that debits match credits or that a report balances.
var Tolerance = decimal.New(1, -2)

// Book is the input every calculator consumes.
type Book struct {
	Accounts []model.Account
	Entries  []model.JournalEntry
}

// InCurrency returns the accounts and entries denominated in currency. The
// calculators never convert between currencies; callers select one first.
func (b Book) InCurrency(currency string) Book {
	currency = model.NormalizeCurrency(currency)
	var out Book
	for _, a := range b.Accounts {
		if model.NormalizeCurrency(a.Currency) == currency {
			out.Accounts = append(out.Accounts, a)
		}
	}
	for _, e := range b.Entries {
		if model.NormalizeCurrency(e.Currency) == currency {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

// Currencies returns the distinct account currencies in chart order.
func (b Book) Currencies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range b.Accounts {
		c := model.NormalizeCurrency(a.Currency)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func index(accounts []model.Account) map[string]model.Account {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID
}

// Negligible reports whether v rounds to zero at two decimal places.
func Negligible(v decimal.Decimal) bool {
	return v.Round(2).IsZero()
}

// WithinTolerance reports whether |a-b| < Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}
