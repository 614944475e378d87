package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every account type in balance-sheet then P&L order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
}

// ParseAccountType accepts the type name in any case. "revenue" is accepted
// as an alias of income.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset":
		return AccountTypeAsset, nil
	case "liability":
		return AccountTypeLiability, nil
	case "equity":
		return AccountTypeEquity, nil
	case "income", "revenue":
		return AccountTypeIncome, nil
	case "expense":
		return AccountTypeExpense, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// DebitNormal reports whether a debit increases accounts of this type.
// Assets and expenses are debit-normal; liabilities, equity and income are
// credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Label is the plural heading used in reports.
func (t AccountType) Label() string {
	switch t {
	case AccountTypeAsset:
		return "Assets"
	case AccountTypeLiability:
		return "Liabilities"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeIncome:
		return "Revenue"
	case AccountTypeExpense:
		return "Expenses"
	}
	return string(t)
}

// Account is one entry of a workspace's chart of accounts.
//
// InitialBalance is signed in the account's natural direction: a positive
// opening balance on a liability is an amount owed.
type Account struct {
	ID             string
	Name           string
	Type           AccountType
	InitialBalance decimal.Decimal
	Currency       string
	Description    string
}
