package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FormatOrderNumber renders the per-contract guide number for a sequence
// value, e.g. 7 becomes "GUIA-007".
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("GUIA-%03d", seq)
}

type Order struct {
	ID           uuid.UUID
	OrderNumber  string
	ContractID   uuid.UUID
	IssueDate    time.Time
	DeliveryDate time.Time
	TotalValue   float64
	Observations string
	CreatedByID  uuid.UUID
	CreatedAt    time.Time
	Items        []OrderItem `gorm:"-"`
}

// OrderItem is a snapshot line: description, unit and price are copied from
// the contract item at order time and never re-read from the live contract.
type OrderItem struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ContractItemID uuid.UUID
	Description    string
	Unit           string
	Quantity       float64
	UnitPrice      float64
}

func (i OrderItem) LineTotal() float64 {
	return i.Quantity * i.UnitPrice
}

// OrderDocument carries everything the PDF generator needs to render an
// order guide.
type OrderDocument struct {
	Order    Order
	Contract Contract
	School   School
}
