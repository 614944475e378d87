package reports

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/ledger"
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

func line(accountID string, side model.LineType, amount string) model.JournalEntryLine {
	return model.JournalEntryLine{AccountID: accountID, Type: side, Amount: dec(amount)}
}

func entry(id string, on time.Time, lines ...model.JournalEntryLine) model.JournalEntry {
	return model.JournalEntry{ID: id, Date: on, Currency: "USD", Lines: lines}
}

// randomBook builds a chart with balanced opening balances and n random
// balanced entries. All lines of an entry share one plot and season tag.
func randomBook(seed uint64, n int) ledger.Book {
	r := rand.New(rand.NewPCG(seed, seed*7+1))
	cents := func(max int) decimal.Decimal {
		return decimal.New(int64(r.IntN(max)+1), -2)
	}

	var accounts []model.Account
	plug := decimal.Zero
	for i, typ := range []model.AccountType{
		model.AccountTypeLiability, model.AccountTypeLiability,
		model.AccountTypeEquity, model.AccountTypeEquity,
		model.AccountTypeIncome, model.AccountTypeIncome,
		model.AccountTypeExpense, model.AccountTypeExpense, model.AccountTypeExpense,
	} {
		a := model.Account{ID: fmt.Sprintf("%s-%d", typ, i), Name: fmt.Sprintf("%s %d", typ, i), Type: typ, Currency: "USD"}
		if r.IntN(3) > 0 {
			a.InitialBalance = cents(500000)
		}
		// credit-normal openings must be matched by debit-normal ones
		if typ.DebitNormal() {
			plug = plug.Sub(a.InitialBalance)
		} else {
			plug = plug.Add(a.InitialBalance)
		}
		accounts = append(accounts, a)
	}
	accounts = append(accounts,
		model.Account{ID: "asset-a", Name: "Cash", Type: model.AccountTypeAsset, Currency: "USD", InitialBalance: plug},
		model.Account{ID: "asset-b", Name: "Inventory", Type: model.AccountTypeAsset, Currency: "USD"},
	)

	plots := []string{"", "north", "south"}
	seasons := []string{"", "wet", "dry"}
	var entries []model.JournalEntry
	for i := 0; i < n; i++ {
		plot := plots[r.IntN(len(plots))]
		season := seasons[r.IntN(len(seasons))]
		e := model.JournalEntry{
			ID:       fmt.Sprintf("e%03d", i),
			Date:     date(2023, 1, 1).AddDate(0, 0, r.IntN(900)),
			Currency: "USD",
		}
		debits := r.IntN(3) + 1
		total := decimal.Zero
		for j := 0; j < debits; j++ {
			amt := cents(200000)
			total = total.Add(amt)
			e.Lines = append(e.Lines, model.JournalEntryLine{
				AccountID: accounts[r.IntN(len(accounts))].ID, Type: model.Debit, Amount: amt, PlotID: plot, SeasonID: season,
			})
		}
		// split the total over one or two credit lines
		first := total
		if r.IntN(2) == 0 && total.GreaterThan(dec("0.01")) {
			first = total.Div(decimal.NewFromInt(2)).Round(2)
			e.Lines = append(e.Lines, model.JournalEntryLine{
				AccountID: accounts[r.IntN(len(accounts))].ID, Type: model.Credit, Amount: total.Sub(first), PlotID: plot, SeasonID: season,
			})
		}
		e.Lines = append(e.Lines, model.JournalEntryLine{
			AccountID: accounts[r.IntN(len(accounts))].ID, Type: model.Credit, Amount: first, PlotID: plot, SeasonID: season,
		})
		entries = append(entries, e)
	}
	return ledger.Book{Accounts: accounts, Entries: entries}
}

func propertyFilters() []model.Filter {
	return []model.Filter{
		model.AllTime(),
		model.CalendarYear(2023),
		model.CalendarYear(2024),
		model.DateRange(date(2024, 3, 1), date(2024, 9, 30)),
		model.AsOf(date(2023, 6, 30)),
		model.AllTime().WithPlot("north"),
		model.CalendarYear(2024).WithSeason("dry"),
		model.DateRange(date(2023, 5, 1), date(2025, 1, 1)).WithPlot("south").WithSeason("wet"),
	}
}
