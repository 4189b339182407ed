package models

import "github.com/shopspring/decimal"

// Balance is derived on every read from the owner's statements; it is
// never stored.
type Balance struct {
	UserID     string          `json:"user_id"`
	Balance    decimal.Decimal `json:"balance"`
	Statements []*Statement    `json:"statement"`
}

// Fold sums the signed amounts of statements.
func Fold(statements []*Statement) decimal.Decimal {
	total := decimal.Zero
	for _, s := range statements {
		total = total.Add(s.Signed())
	}
	return total
}
