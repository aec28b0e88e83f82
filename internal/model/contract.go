package model

import (
	"time"

	"github.com/google/uuid"
)

type Contract struct {
	ID           uuid.UUID
	SchoolID     uuid.UUID
	SupplierName string
	SupplierDoc  string
	Description  string
	StartAt      time.Time
	EndAt        time.Time
	CreatedAt    time.Time
	Items        []ContractItem `gorm:"-"`
}

// ContractItem is one purchasable product entry within a supply contract.
// AcquiredQuantity is mutated only by order create/update/delete and must
// stay within [0, ContractedQuantity].
type ContractItem struct {
	ID                 uuid.UUID
	ContractID         uuid.UUID
	Description        string
	Unit               string
	UnitPrice          float64
	ContractedQuantity float64
	AcquiredQuantity   float64
}

// Balance is the quantity still available to order against this line.
func (i ContractItem) Balance() float64 {
	return i.ContractedQuantity - i.AcquiredQuantity
}

// ItemDelta is a signed ledger adjustment for one contract item's acquired
// quantity.
type ItemDelta struct {
	ContractItemID uuid.UUID
	Delta          float64
}
