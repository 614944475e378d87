package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// DefaultChart returns the starter chart of accounts for a farm, every
// account denominated in currency with a zero opening balance.
func DefaultChart(currency string) []model.Account {
	currency = model.NormalizeCurrency(currency)
	chart := []model.Account{
		{ID: "1010", Name: "Cash at Bank", Type: model.AccountTypeAsset, Description: "Operating bank account"},
		{ID: "1020", Name: "Cash on Hand", Type: model.AccountTypeAsset, Description: "Petty cash and mobile money"},
		{ID: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Description: "Amounts owed by buyers"},
		{ID: "1200", Name: "Produce Inventory", Type: model.AccountTypeAsset, Description: "Harvested crops held for sale"},
		{ID: "1210", Name: "Input Inventory", Type: model.AccountTypeAsset, Description: "Seed, fertilizer and chemicals in store"},
		{ID: "1500", Name: "Farm Equipment", Type: model.AccountTypeAsset, Description: "Tractors, implements and tools at cost"},
		{ID: "1510", Name: "Accumulated Depreciation", Type: model.AccountTypeAsset, Description: "Contra asset, carried as a negative balance"},
		{ID: "1600", Name: "Land & Buildings", Type: model.AccountTypeAsset},
		{ID: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, Description: "Amounts owed to suppliers"},
		{ID: "2100", Name: "Wages Payable", Type: model.AccountTypeLiability},
		{ID: "2500", Name: "Bank Loan", Type: model.AccountTypeLiability},
		{ID: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity},
		{ID: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity},
		{ID: "4010", Name: "Crop Sales", Type: model.AccountTypeIncome},
		{ID: "4020", Name: "Livestock Sales", Type: model.AccountTypeIncome},
		{ID: "4900", Name: "Other Income", Type: model.AccountTypeIncome},
		{ID: "5010", Name: "Seeds", Type: model.AccountTypeExpense},
		{ID: "5020", Name: "Fertilizer", Type: model.AccountTypeExpense},
		{ID: "5030", Name: "Crop Protection", Type: model.AccountTypeExpense, Description: "Herbicides, pesticides, fungicides"},
		{ID: "5040", Name: "Animal Feed", Type: model.AccountTypeExpense},
		{ID: "5050", Name: "Casual Labor", Type: model.AccountTypeExpense},
		{ID: "5100", Name: "Salaries & Wages", Type: model.AccountTypeExpense},
		{ID: "5200", Name: "Fuel & Oil", Type: model.AccountTypeExpense},
		{ID: "5210", Name: "Repairs & Maintenance", Type: model.AccountTypeExpense},
		{ID: "5300", Name: "Transport", Type: model.AccountTypeExpense},
		{ID: "5400", Name: "Utilities", Type: model.AccountTypeExpense},
		{ID: "5500", Name: "Insurance", Type: model.AccountTypeExpense},
		{ID: "5600", Name: "Depreciation Expense", Type: model.AccountTypeExpense},
		{ID: "5700", Name: "Interest Expense", Type: model.AccountTypeExpense},
	}
	for i := range chart {
		chart[i].Currency = currency
		chart[i].InitialBalance = decimal.Zero
	}
	return chart
}

// DefaultBindings returns the role bindings matching DefaultChart.
func DefaultBindings() Bindings {
	return Bindings{
		RoleCash:                    {"1010", "1020"},
		RoleReceivables:             {"1100"},
		RoleInventory:               {"1200", "1210"},
		RolePPE:                     {"1500", "1600"},
		RoleAccumulatedDepreciation: {"1510"},
		RolePayables:                {"2010", "2100"},
		RoleDebt:                    {"2500"},
		RoleCapital:                 {"3010"},
		RoleRetainedEarnings:        {"3100"},
	}
}
