package repository

import "errors"

// ErrBalanceExceeded is returned when a ledger mutation would push a contract
// item's acquired quantity past its contracted quantity. The guarded UPDATE
// makes the check and the write a single statement, so two concurrent orders
// cannot jointly overdraw a line.
var ErrBalanceExceeded = errors.New("contract item balance exceeded")
