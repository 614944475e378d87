package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// AccountAmount is a named per-account figure in a report.
type AccountAmount struct {
	AccountID string
	Name      string
	Balance   decimal.Decimal
}

// Performance is the income and expense movement over a period.
type Performance struct {
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	NetIncome       decimal.Decimal
	IncomeAccounts  []AccountAmount
	ExpenseAccounts []AccountAmount
}

// ComputePeriodPerformance measures movement on income and expense accounts
// for entries dated within the filter's range. Opening balances are ignored
// and asset, liability and equity lines do not contribute.
//
// Accounts whose movement rounds to zero are left out of the per-account
// lists but still count towards the totals. Lists follow chart order.
func ComputePeriodPerformance(accounts []model.Account, entries []model.JournalEntry, f model.Filter) Performance {
	byID := index(accounts)
	movement := make(map[string]decimal.Decimal)

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
			if acct.Type != model.AccountTypeIncome && acct.Type != model.AccountTypeExpense {
				continue
			}
			movement[acct.ID] = movement[acct.ID].Add(model.Effect(acct.Type, l.Type, l.Amount))
		}
	}

	var p Performance
	for _, a := range accounts {
		amount := movement[a.ID]
		row := AccountAmount{AccountID: a.ID, Name: a.Name, Balance: amount}
		switch a.Type {
		case model.AccountTypeIncome:
			p.TotalIncome = p.TotalIncome.Add(amount)
			if !Negligible(amount) {
				p.IncomeAccounts = append(p.IncomeAccounts, row)
			}
		case model.AccountTypeExpense:
			p.TotalExpenses = p.TotalExpenses.Add(amount)
			if !Negligible(amount) {
				p.ExpenseAccounts = append(p.ExpenseAccounts, row)
			}
		}
	}
	p.NetIncome = p.TotalIncome.Sub(p.TotalExpenses)
	return p
}
