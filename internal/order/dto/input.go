package dto

type OrderItemInput struct {
	ProductID    string
	SelectedSize string
	Quantity     int
	Image        string
}

type CreateOrderInput struct {
	UserID        string
	Items         []OrderItemInput
	Subtotal      float64
	GST           float64
	Total         float64
	PaymentMethod string
}
