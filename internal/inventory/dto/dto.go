package dto

type MovementFilters struct {
	ProductID    string
	Size         string
	MovementType string
	Page         int
	PageSize     int
}
