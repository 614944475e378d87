package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func acct(id, name string, typ model.AccountType, initial string) model.Account {
	return model.Account{ID: id, Name: name, Type: typ, InitialBalance: dec(initial), Currency: "USD"}
}

func dr(accountID, amount string) model.JournalEntryLine {
	return model.JournalEntryLine{AccountID: accountID, Type: model.Debit, Amount: dec(amount)}
}

func cr(accountID, amount string) model.JournalEntryLine {
	return model.JournalEntryLine{AccountID: accountID, Type: model.Credit, Amount: dec(amount)}
}

func tagged(l model.JournalEntryLine, plot, season string) model.JournalEntryLine {
	l.PlotID = plot
	l.SeasonID = season
	return l
}

func entry(id string, on time.Time, category string, lines ...model.JournalEntryLine) model.JournalEntry {
	return model.JournalEntry{ID: id, Date: on, Description: id, Category: category, Currency: "USD", Lines: lines}
}
