package model

import (
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderUserRef is the order's owning-user field. It marshals as the bare id
// for the owner's own listings, or as an embedded {_id, name, email} document
// when an admin listing resolved the user.
type OrderUserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (u OrderUserRef) MarshalJSON() ([]byte, error) {
	if u.Name == "" && u.Email == "" {
		return json.Marshal(u.ID)
	}
	type ref OrderUserRef
	return json.Marshal(ref(u))
}

type Order struct {
	ID            string       `db:"id" json:"_id"`
	UserID        string       `db:"user_id" json:"-"`
	User          OrderUserRef `db:"-" json:"user"`
	UserName      string       `db:"user_name" json:"userName"`
	UserEmail     string       `db:"user_email" json:"userEmail"`
	Items         []OrderItem  `db:"-" json:"items"`
	Subtotal      float64      `db:"subtotal" json:"subtotal"`
	GST           float64      `db:"gst" json:"gst"`
	Total         float64      `db:"total" json:"total"`
	Status        OrderStatus  `db:"status" json:"status"`
	PaymentMethod string       `db:"payment_method" json:"paymentMethod"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updatedAt"`
}

// OrderItem is a value snapshot of the product at order time. Later catalog
// edits or deletions never change it.
type OrderItem struct {
	OrderID      string  `db:"order_id" json:"-"`
	LineNo       int     `db:"line_no" json:"-"`
	ProductID    string  `db:"product_id" json:"product"`
	Name         string  `db:"name" json:"name"`
	Price        float64 `db:"price" json:"price"`
	Quantity     int     `db:"quantity" json:"quantity"`
	SelectedSize string  `db:"selected_size" json:"selectedSize"`
	Image        string  `db:"image" json:"image"`
}
