package dto

// MovementRef ties a ledger mutation to the action that caused it.
type MovementRef struct {
	Type  string // "order", "cancellation", "manual"
	ID    string
	Notes string
}

type AdjustStockInput struct {
	ProductID      string
	Size           string
	QuantityChange int
	Reason         string
	UserID         string
}
