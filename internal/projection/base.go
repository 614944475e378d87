package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

// TrailingYear returns the filter covering the twelve months ending on asOf.
func TrailingYear(asOf time.Time) model.Filter {
	return model.DateRange(asOf.AddDate(-1, 0, 1), asOf)
}

// DeriveBaseYear builds the base year from actual entries: the income
// statement from the twelve months ending on asOf, and the balance sheet
// from balances as of asOf summed over role-bound accounts.
//
// IncomeSurplus is the balancing figure, so the base year always balances.
// Warnings list roles with no bound account.
func DeriveBaseYear(book ledger.Book, asOf time.Time, roles accounts.Bindings, cls Classifier) (YearData, []string) {
	var warnings []string

	perf := ledger.ComputePeriodPerformance(book.Accounts, book.Entries, TrailingYear(asOf))
	byID := make(map[string]model.Account, len(book.Accounts))
	for _, a := range book.Accounts {
		byID[a.ID] = a
	}

	var is IncomeStatement
	is.Revenue = perf.TotalIncome
	for _, row := range perf.ExpenseAccounts {
		switch cls.Classify(byID[row.AccountID]) {
		case ClassCOGS:
			is.COGS = is.COGS.Add(row.Balance)
		case ClassDepreciation:
			is.Depreciation = is.Depreciation.Add(row.Balance)
		case ClassInterest:
			is.InterestExpense = is.InterestExpense.Add(row.Balance)
		case ClassTax:
			is.Tax = is.Tax.Add(row.Balance)
		default:
			is.SGA = is.SGA.Add(row.Balance)
		}
	}
	is.GrossProfit = is.Revenue.Sub(is.COGS)
	is.PBIT = is.GrossProfit.Sub(is.SGA).Sub(is.Depreciation)
	is.PBT = is.PBIT.Sub(is.InterestExpense)
	is.PAT = is.PBT.Sub(is.Tax)
	is.EBITDA = is.PBIT.Add(is.Depreciation)

	balances := ledger.ComputeBalances(book.Accounts, book.Entries, model.AsOf(asOf))
	sum := func(role accounts.Role) decimal.Decimal {
		ids := roles[role]
		if len(ids) == 0 {
			warnings = append(warnings, fmt.Sprintf("no account bound to role %s; using zero", role))
		}
		return balances.Sum(ids...)
	}

	var bs BalanceSheet
	bs.Cash = sum(accounts.RoleCash)
	bs.Receivables = sum(accounts.RoleReceivables)
	bs.Inventory = sum(accounts.RoleInventory)
	bs.PPE = sum(accounts.RolePPE)
	// Contra-asset accounts carry a negative balance.
	bs.AccumulatedDepreciation = sum(accounts.RoleAccumulatedDepreciation).Abs()
	bs.Payables = sum(accounts.RolePayables)
	bs.Debt = sum(accounts.RoleDebt)
	bs.Capital = sum(accounts.RoleCapital)
	bs.total()
	bs.IncomeSurplus = bs.TotalAssets.Sub(bs.TotalLiabilities).Sub(bs.Capital)
	bs.total()

	return YearData{
		Year:            asOf.Year(),
		IncomeStatement: is,
		BalanceSheet:    bs,
		CashFlow:        CashFlow{ClosingCash: bs.Cash},
	}, warnings
}
