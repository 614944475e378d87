package ledger

import (
	"fmt"

	"github.com/agrifaas/farmledger/internal/model"
)

// DiagnosticKind classifies a data-quality finding.
type DiagnosticKind string

const (
	// DiagOrphanAccount marks a line whose account is not in the chart.
	DiagOrphanAccount DiagnosticKind = "orphan-account"
	// DiagUnbalanced marks an entry whose debits and credits differ.
	DiagUnbalanced DiagnosticKind = "unbalanced"
	// DiagEmpty marks an entry with fewer than two lines or a zero total.
	DiagEmpty DiagnosticKind = "empty"
	// DiagCurrencyMismatch marks a line whose account currency differs from
	// the entry's currency.
	DiagCurrencyMismatch DiagnosticKind = "currency-mismatch"
)

// Diagnostic is one data-quality finding. Calculators tolerate every
// condition reported here; Check only makes them visible.
type Diagnostic struct {
	Kind      DiagnosticKind
	EntryID   string
	AccountID string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s]: %s", d.Kind, d.EntryID, d.Message)
}

// Check scans stored entries for conditions the calculators silently
// tolerate. It never fails; an empty result means the book is clean.
func Check(accounts []model.Account, entries []model.JournalEntry) []Diagnostic {
	byID := index(accounts)
	var out []Diagnostic

	for _, e := range entries {
		debits, credits := e.Totals()
		if !WithinTolerance(debits, credits) {
			out = append(out, Diagnostic{
				Kind:    DiagUnbalanced,
				EntryID: e.ID,
				Message: fmt.Sprintf("debits (%s) != credits (%s)", debits.StringFixed(2), credits.StringFixed(2)),
			})
		}
		if len(e.Lines) < 2 || !debits.IsPositive() {
			out = append(out, Diagnostic{
				Kind:    DiagEmpty,
				EntryID: e.ID,
				Message: fmt.Sprintf("%d lines totalling %s", len(e.Lines), debits.StringFixed(2)),
			})
		}
		for _, l := range e.Lines {
			acct, ok := byID[l.AccountID]
			if !ok {
				out = append(out, Diagnostic{
					Kind:      DiagOrphanAccount,
					EntryID:   e.ID,
					AccountID: l.AccountID,
					Message:   fmt.Sprintf("unknown account %q", l.AccountID),
				})
				continue
			}
			if e.Currency != "" && model.NormalizeCurrency(acct.Currency) != model.NormalizeCurrency(e.Currency) {
				out = append(out, Diagnostic{
					Kind:      DiagCurrencyMismatch,
					EntryID:   e.ID,
					AccountID: l.AccountID,
					Message:   fmt.Sprintf("account %s is %s, entry is %s", acct.ID, acct.Currency, e.Currency),
				})
			}
		}
	}
	return out
}
