package domain

import "github.com/shopspring/decimal"

// Money is a stored price. It renders with two decimals whatever type the
// store hands back: SQLite returns 10.00 as the integer 10.
type Money struct {
	decimal.Decimal
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
