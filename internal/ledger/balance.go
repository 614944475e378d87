package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// Balances maps account ID to closing balance in the account's natural
// direction.
type Balances map[string]decimal.Decimal

// Of returns the balance of an account, zero if unknown.
func (b Balances) Of(accountID string) decimal.Decimal {
	return b[accountID]
}

// Sum adds the balances of the given accounts.
func (b Balances) Sum(accountIDs ...string) decimal.Decimal {
	total := decimal.Zero
	for _, id := range accountIDs {
		total = total.Add(b[id])
	}
	return total
}

// ComputeBalances returns the closing balance of every account as of the
// filter's end date. Each account starts at its InitialBalance; every line of
// every entry dated on or before f.End that passes the plot and season
// filters is folded in. The start bound of f is ignored.
//
// Lines referencing unknown accounts are skipped. Entries are trusted to be
// balanced; use Check to find those that are not.
func ComputeBalances(accounts []model.Account, entries []model.JournalEntry, f model.Filter) Balances {
	f = f.Cumulative()
	byID := index(accounts)

	balances := make(Balances, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.InitialBalance
	}

	for _, e := range entries {
		if !f.Includes(e.Date) {
			continue
		}
		for _, l := range e.Lines {
			if !f.MatchesLine(l) {
				continue
			}
			acct, ok := byID[l.AccountID]
			if !ok {
				continue
			}
			balances[acct.ID] = balances[acct.ID].Add(model.Effect(acct.Type, l.Type, l.Amount))
		}
	}
	return balances
}
