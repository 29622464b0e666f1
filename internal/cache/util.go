package cache

import "github.com/shopspring/decimal"

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "null"
	}
	return d.Decimal.String()
}
