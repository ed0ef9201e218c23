package dto

type SizeInput struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type CreateProductInput struct {
	Name        string
	Price       float64
	CategoryID  string
	Description string
	Image       []string
	Sizes       []SizeInput
	IsFeatured  bool
}

type UpdateProductInput struct {
	ID          string
	Name        string
	Price       float64
	CategoryID  string
	Description string
	Image       []string
	Sizes       []SizeInput
	IsFeatured  bool
	IsActive    bool
}
