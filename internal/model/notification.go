package model

import "time"

// Notification kinds shown on the admin dashboard.
const (
	NotificationOrderPlaced = "order_placed"
	NotificationOrderStatus = "order_status"
)

type Notification struct {
	ID          string    `db:"id" json:"_id"`
	Type        string    `db:"type" json:"type"`
	Message     string    `db:"message" json:"message"`
	ReferenceID string    `db:"reference_id" json:"reference,omitempty"`
	IsRead      bool      `db:"is_read" json:"isRead"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
