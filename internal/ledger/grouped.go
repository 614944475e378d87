package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// GroupBy selects the dimension ComputeGrouped aggregates on.
type GroupBy string

const (
	GroupByPlot     GroupBy = "plot"
	GroupBySeason   GroupBy = "season"
	GroupByCategory GroupBy = "category"
	GroupByAccount  GroupBy = "account"
)

// ParseGroupBy validates a grouping name.
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case GroupByPlot, GroupBySeason, GroupByCategory, GroupByAccount:
		return g, nil
	}
	return "", fmt.Errorf("unknown grouping %q", s)
}

// Movement is the income and expense movement attributed to one group.
type Movement struct {
	Key      string // empty for lines without a value for the dimension
	Label    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net is income minus expenses.
func (m Movement) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// ComputeGrouped applies the period calculator's selection rules (date range,
// plot, season, income and expense accounts only, opening balances ignored)
// but buckets each line by the chosen dimension instead of by account type.
//
// Groups are sorted by key; the unassigned group, if any, comes last. Groups
// with no income and no expense movement are dropped.
func ComputeGrouped(accounts []model.Account, entries []model.JournalEntry, f model.Filter, by GroupBy) []Movement {
	byID := index(accounts)
	groups := make(map[string]*Movement)

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

			key, label := groupKey(by, e, l, acct)
			g, ok := groups[key]
			if !ok {
				g = &Movement{Key: key, Label: label}
				groups[key] = g
			}
			amount := model.Effect(acct.Type, l.Type, l.Amount)
			if acct.Type == model.AccountTypeIncome {
				g.Income = g.Income.Add(amount)
			} else {
				g.Expenses = g.Expenses.Add(amount)
			}
		}
	}

	out := make([]Movement, 0, len(groups))
	for _, g := range groups {
		if Negligible(g.Income) && Negligible(g.Expenses) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Key == "") != (out[j].Key == "") {
			return out[j].Key == ""
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func groupKey(by GroupBy, e model.JournalEntry, l model.JournalEntryLine, acct model.Account) (key, label string) {
	switch by {
	case GroupByPlot:
		return orUnassigned(l.PlotID, "Unassigned")
	case GroupBySeason:
		return orUnassigned(l.SeasonID, "Unassigned")
	case GroupByCategory:
		return orUnassigned(e.Category, "Uncategorized")
	default:
		return acct.ID, acct.Name
	}
}

func orUnassigned(key, fallback string) (string, string) {
	if key == "" {
		return "", fallback
	}
	return key, key
}
