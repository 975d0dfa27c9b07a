package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productsapi/internal/domain"
)

func TestMoneyJSONHasTwoDecimals(t *testing.T) {
	for in, want := range map[string]string{
		"10":    `"10.00"`,
		"49.99": `"49.99"`,
		"0.5":   `"0.50"`,
	} {
		raw, err := json.Marshal(domain.Product{Price: domain.Money{Decimal: decimal.RequireFromString(in)}})
		require.NoError(t, err)
		var out map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, want, string(out["price"]), in)
	}
}

func TestMoneyScansStoreValues(t *testing.T) {
	var m domain.Money
	require.NoError(t, m.Scan(int64(10)))
	assert.Equal(t, "10.00", m.StringFixed(2))
	require.NoError(t, m.Scan(12.5))
	assert.True(t, m.Equal(decimal.RequireFromString("12.5")))
}
