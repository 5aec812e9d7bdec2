package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), INR)
		require.NoError(t, err)
		assert.Equal(t, INR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyINRFromInt(1000)
	b := NewMoneyINRFromInt(180)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(NewMoneyINRFromInt(1180)))

	diff, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(a))

	assert.True(t, a.Half().Equals(NewMoneyINRFromInt(500)))
	assert.True(t, b.Negate().Equals(NewMoneyINRFromInt(-180)))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	inr := NewMoneyINRFromInt(10)
	usd, err := NewMoney(decimal.NewFromInt(10), USD)
	require.NoError(t, err)

	_, err = inr.Add(usd)
	assert.Error(t, err)
	_, err = inr.Subtract(usd)
	assert.Error(t, err)
	_, err = inr.GreaterThan(usd)
	assert.Error(t, err)
}

func TestMoney_CalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		percent  string
		expected string
	}{
		{"18 percent of 1000", 1000, "18", "180"},
		{"5 percent of 200", 200, "5", "10"},
		{"0 percent", 1000, "0", "0"},
		{"28 percent of 999", 999, "28", "279.72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, err := decimal.NewFromString(tt.percent)
			require.NoError(t, err)
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)

			got := NewMoneyINRFromInt(tt.amount).CalculatePercentage(percent)
			assert.True(t, got.Amount().Equal(expected),
				"expected %s got %s", expected, got.Amount())
		})
	}
}

func TestMoney_HalfIsExact(t *testing.T) {
	// Splitting tax into CGST/SGST halves must be drift-free: the two
	// halves always recombine to the original amount.
	amounts := []string{"180", "0.01", "99.99", "123456789.55"}
	for _, s := range amounts {
		m, err := NewMoneyINRFromString(s)
		require.NoError(t, err)
		half := m.Half()
		assert.True(t, half.MustAdd(half).Equals(m), "halves of %s do not recombine", s)
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyINRFromFloat(1180.50)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("1180.00"))
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(1180)))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(struct{}{}))
}
