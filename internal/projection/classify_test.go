package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/model"
)

func TestClassify(t *testing.T) {
	cls, err := NewClassifier(map[string]string{"X1": "SGA"}, nil)
	require.NoError(t, err)

	tests := []struct {
		id, name string
		want     Class
	}{
		{"5010", "Seeds", ClassCOGS},
		{"5020", "Fertilizer", ClassCOGS},
		{"5040", "Animal Feed", ClassCOGS},
		{"5050", "Casual Labor", ClassCOGS},
		{"5100", "Salaries & Wages", ClassSGA},
		{"5500", "Insurance", ClassSGA},
		{"5600", "Depreciation Expense", ClassDepreciation},
		{"5700", "Interest Expense", ClassInterest},
		{"5800", "Income Tax", ClassTax},
		{"X1", "Seed Cleaning", ClassSGA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cls.Classify(model.Account{ID: tt.id, Name: tt.name, Type: model.AccountTypeExpense})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_CustomKeywords(t *testing.T) {
	cls, err := NewClassifier(nil, []string{"diesel"})
	require.NoError(t, err)

	assert.Equal(t, ClassCOGS, cls.Classify(model.Account{Name: "Diesel for pumps"}))
	assert.Equal(t, ClassSGA, cls.Classify(model.Account{Name: "Seeds"}))
}

func TestNewClassifier_BadClass(t *testing.T) {
	cls, err := NewClassifier(map[string]string{"5010": "cogs", "5200": "overhead"}, nil)
	assert.ErrorContains(t, err, "account 5200")
	assert.Equal(t, ClassCOGS, cls.Table["5010"])
}
