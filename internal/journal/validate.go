package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/id"
	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

// ErrValidation is wrapped by every error returned for a rejected entry.
var ErrValidation = errors.New("journal entry rejected")

// Validation rule names.
const (
	RuleLines     = "lines"
	RuleAmount    = "amount"
	RulePrecision = "precision"
	RuleBalanced  = "balanced"
	RuleNonZero   = "non-zero"
	RuleAccount   = "account"
	RuleCurrency  = "currency"
	RuleDate      = "date"
	RuleDuplicate = "duplicate"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        string
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.EntryID, e.Description)
}

// AccountLookup resolves account IDs against the chart of accounts.
type AccountLookup interface {
	Get(id string) (model.Account, bool)
}

// ValidateEntry checks an entry before it is stored. All violations are
// returned; an empty result means the entry is accepted.
func ValidateEntry(e model.JournalEntry, accounts AccountLookup) []ValidationError {
	var errs []ValidationError
	add := func(rule, ref, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, EntryID: ref, Description: fmt.Sprintf(format, args...)})
	}

	if e.Date.IsZero() {
		add(RuleDate, e.ID, "date is required")
	}

	if err := model.ValidateCurrency(e.Currency); err != nil {
		add(RuleCurrency, e.ID, "%v", err)
	}

	if len(e.Lines) < 2 {
		add(RuleLines, e.ID, "entry needs at least 2 lines, has %d", len(e.Lines))
	}

	for i, l := range e.Lines {
		ref := id.FormatLineRef(e.ID, i+1)

		if l.Type != model.Debit && l.Type != model.Credit {
			add(RuleLines, ref, "line type %q is neither debit nor credit", l.Type)
		}
		if l.Amount.IsNegative() {
			add(RuleAmount, ref, "amount %s is negative", l.Amount)
		}
		if !l.Amount.Equal(l.Amount.Round(2)) {
			add(RulePrecision, ref, "amount %s has more than 2 decimal places", l.Amount)
		}

		acct, ok := accounts.Get(l.AccountID)
		if !ok {
			add(RuleAccount, ref, "unknown account %q", l.AccountID)
			continue
		}
		if model.NormalizeCurrency(acct.Currency) != model.NormalizeCurrency(e.Currency) {
			add(RuleCurrency, ref, "account %s (%s) is in %s, entry is in %s", acct.ID, acct.Name, acct.Currency, e.Currency)
		}
	}

	debits, credits := e.Totals()
	if !ledger.WithinTolerance(debits, credits) {
		add(RuleBalanced, e.ID, "debits (%s) != credits (%s)", debits.StringFixed(2), credits.StringFixed(2))
	}
	if !debits.GreaterThan(decimal.Zero) {
		add(RuleNonZero, e.ID, "entry total must be greater than zero")
	}

	return errs
}

// Err joins validation errors into one error wrapping ErrValidation, or
// returns nil when there are none.
func Err(verrs []ValidationError) error {
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
