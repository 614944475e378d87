package projection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario(" Optimistic ")
	require.NoError(t, err)
	assert.Equal(t, ScenarioOptimistic, s)

	_, err = ParseScenario("drought")
	assert.Error(t, err)
}

func TestDefaultScenariosValid(t *testing.T) {
	scenarios := DefaultScenarios()
	require.Len(t, scenarios, len(Scenarios))
	for _, s := range Scenarios {
		a, ok := scenarios[s]
		require.True(t, ok, s)
		assert.NoError(t, a.Validate(), s)
	}
	assert.True(t, scenarios[ScenarioOptimistic].RevenueGrowth.GreaterThan(scenarios[ScenarioBase].RevenueGrowth))
	assert.True(t, scenarios[ScenarioPessimistic].RevenueGrowth.IsNegative())
}

func TestAssumptionsWith(t *testing.T) {
	base := DefaultScenarios()[ScenarioBase]
	growth := dec("8")
	debt := dec("25000")

	got := base.With(Overrides{RevenueGrowth: &growth, NewDebt: &debt})
	assert.True(t, got.RevenueGrowth.Equal(growth))
	assert.True(t, got.NewDebt.Equal(debt))
	assert.True(t, got.COGSRatio.Equal(base.COGSRatio))
	assert.True(t, base.RevenueGrowth.Equal(decimal.NewFromInt(5)), "receiver is not modified")
}

func TestAssumptionsValidate(t *testing.T) {
	a := DefaultScenarios()[ScenarioBase]
	a.TaxRate = dec("-1")
	assert.ErrorContains(t, a.Validate(), "tax_rate")

	a = DefaultScenarios()[ScenarioBase]
	a.RevenueGrowth = dec("-100")
	assert.ErrorContains(t, a.Validate(), "revenue_growth")
}
