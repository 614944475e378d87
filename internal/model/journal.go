package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineType is the side of a journal line.
type LineType string

const (
	Debit  LineType = "debit"
	Credit LineType = "credit"
)

// ParseLineType accepts "debit"/"credit" or the short forms "dr"/"cr".
func ParseLineType(s string) (LineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "dr", "d":
		return Debit, nil
	case "credit", "cr", "c":
		return Credit, nil
	}
	return "", fmt.Errorf("unknown line type %q", s)
}

// JournalEntryLine is one side of a double entry. PlotID and SeasonID are
// optional dimension tags used only for filtering.
type JournalEntryLine struct {
	AccountID string
	Type      LineType
	Amount    decimal.Decimal // unsigned
	PlotID    string
	SeasonID  string
}

// JournalEntry is a dated, balanced set of lines in a single currency.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Description string
	Category    string
	Currency    string
	Lines       []JournalEntryLine
}

// Totals returns the sum of debit and credit amounts across the entry's lines.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	for _, l := range e.Lines {
		switch l.Type {
		case Debit:
			debits = debits.Add(l.Amount)
		case Credit:
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}

// Effect returns the signed change a line of type lt and the given amount
// applies to an account of type t. Debits increase debit-normal accounts and
// decrease credit-normal ones; credits do the opposite. Every balance fold in
// the ledger goes through this function.
func Effect(t AccountType, lt LineType, amount decimal.Decimal) decimal.Decimal {
	increases := (lt == Debit) == t.DebitNormal()
	if increases {
		return amount
	}
	return amount.Neg()
}

// Categories is the suggested category list offered when recording entries.
// Entries may carry any free-text category.
var Categories = []string{
	"Sales",
	"Seeds",
	"Fertilizer",
	"Crop Protection",
	"Feed",
	"Labor",
	"Payroll",
	"Fuel",
	"Equipment",
	"Repairs & Maintenance",
	"Transport",
	"Utilities",
	"Rent",
	"Insurance",
	"Loan",
	"Capital",
	"Other",
}
