package model

import "time"

// Movement types recorded by the stock ledger.
const (
	MovementDebit  = "debit"
	MovementCredit = "credit"
	MovementAdjust = "adjustment"
)

// StockMovement is one audit row per ledger mutation.
type StockMovement struct {
	ID             string    `db:"id" json:"_id"`
	ProductID      string    `db:"product_id" json:"product"`
	Size           string    `db:"size" json:"size"`
	MovementType   string    `db:"movement_type" json:"movementType"`
	QuantityChange int       `db:"quantity_change" json:"quantityChange"`
	QuantityBefore int       `db:"quantity_before" json:"quantityBefore"`
	QuantityAfter  int       `db:"quantity_after" json:"quantityAfter"`
	ReferenceType  string    `db:"reference_type" json:"referenceType"`
	ReferenceID    string    `db:"reference_id" json:"referenceId"`
	Notes          string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
