package model

import "time"

// BalanceReport feeds the Excel export: one contract with its line items and
// current balances.
type BalanceReport struct {
	Contract    Contract
	School      School
	GeneratedAt time.Time
}
