package models

import "github.com/shopspring/decimal"

func init() {
	// Hours and totals serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
