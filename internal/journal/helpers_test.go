package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

type mockAccounts map[string]model.Account

func (m mockAccounts) Get(id string) (model.Account, bool) {
	a, ok := m[id]
	return a, ok
}

func newMockAccounts(currency string, ids ...string) mockAccounts {
	m := make(mockAccounts)
	for _, id := range ids {
		m[id] = model.Account{ID: id, Name: "Account " + id, Type: model.AccountTypeAsset, Currency: currency}
	}
	return m
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func line(acct string, lt model.LineType, amount string) model.JournalEntryLine {
	return model.JournalEntryLine{AccountID: acct, Type: lt, Amount: dec(amount)}
}

func simpleEntry(d time.Time, debitAcct, creditAcct, amount string) model.JournalEntry {
	return model.JournalEntry{
		Date:        d,
		Description: "Fertilizer for maize",
		Category:    "Fertilizer",
		Currency:    "KES",
		Lines: []model.JournalEntryLine{
			line(debitAcct, model.Debit, amount),
			line(creditAcct, model.Credit, amount),
		},
	}
}
