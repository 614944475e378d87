package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/model"
)

func TestBindDefaultChartByName(t *testing.T) {
	svc := NewService(DefaultChart("USD"))

	got, problems := svc.Bind(nil)
	assert.Empty(t, problems)
	assert.Equal(t, DefaultBindings(), got)

	cash, ok := got.Primary(RoleCash)
	require.True(t, ok)
	assert.Equal(t, "1010", cash)
}

func TestBindConfigured(t *testing.T) {
	svc := NewService(DefaultChart("USD"))

	got, problems := svc.Bind(map[string][]string{
		"cash": {"1020"},
		"debt": {"Bank Loan", "9999"},
		"land": {"1600"},
	})
	assert.Equal(t, []string{"role debt: unknown account \"9999\"", "unknown account role \"land\""}, problems)
	assert.Equal(t, []string{"1020"}, got[RoleCash])
	assert.Equal(t, []string{"2500"}, got[RoleDebt])
	assert.Equal(t, []string{"1100"}, got[RoleReceivables])
}

func TestBindUnbound(t *testing.T) {
	svc := NewService([]model.Account{
		{ID: "A", Name: "Cash", Type: model.AccountTypeAsset, Currency: "USD"},
	})

	got, problems := svc.Bind(nil)
	assert.Equal(t, []string{"A"}, got[RoleCash])
	assert.Len(t, problems, len(AllRoles)-1)

	_, ok := got.Primary(RoleDebt)
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("accumulated_depreciation")
	require.NoError(t, err)
	assert.Equal(t, RoleAccumulatedDepreciation, r)

	_, err = ParseRole("tractor")
	assert.Error(t, err)
}
