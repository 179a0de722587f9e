package types

import "github.com/shopspring/decimal"

// Money renders integer cents as a fixed-point decimal string for API payloads.
// All storage and arithmetic stay in cents; only the edge shifts the point.
func Money(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
