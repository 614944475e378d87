package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/model"
)

func TestMarshalAccount(t *testing.T) {
	row := MarshalAccount(model.Account{
		ID:             "2500",
		Name:           "Bank Loan",
		Type:           model.AccountTypeLiability,
		InitialBalance: decimal.RequireFromString("12000.5"),
		Currency:       "KES",
		Description:    "Equity Bank, 3 years",
	})
	assert.Equal(t, []string{"2500", "Bank Loan", "liability", "12000.50", "KES", "Equity Bank, 3 years"}, row)
}

func TestUnmarshalAccount(t *testing.T) {
	acct, err := UnmarshalAccount([]string{"4010", "Crop Sales", "Revenue", "", "kes", ""})
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeIncome, acct.Type)
	assert.True(t, acct.InitialBalance.IsZero())
	assert.Equal(t, "KES", acct.Currency)

	_, err = UnmarshalAccount([]string{"", "Crop Sales", "income", "", "KES", ""})
	assert.ErrorContains(t, err, "account_id")

	_, err = UnmarshalAccount([]string{"4010", "Crop Sales", "sales", "", "KES", ""})
	assert.Error(t, err)

	_, err = UnmarshalAccount([]string{"4010", "Crop Sales", "income", "lots", "KES", ""})
	assert.ErrorContains(t, err, "initial_balance")
}

func TestReadWriteAccounts(t *testing.T) {
	var buf bytes.Buffer
	chart := DefaultChart("USD")
	require.NoError(t, WriteAccounts(&buf, chart))

	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(Header, ",")+"\n"))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(chart))
	for i := range chart {
		assert.Equal(t, chart[i].ID, got[i].ID)
		assert.Equal(t, chart[i].Name, got[i].Name)
		assert.Equal(t, chart[i].Type, got[i].Type)
	}
}

func TestReadAccountsBadRow(t *testing.T) {
	in := strings.Join(Header, ",") + "\n1010,Cash,asset,0,USD,\n1020,Petty,cash,0,USD,\n"
	_, err := ReadAccounts(strings.NewReader(in))
	assert.ErrorContains(t, err, "row 3")
}

func TestReadAccountsEmpty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
