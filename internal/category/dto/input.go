package dto

type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
	IsFeatured  bool
	ParentID    *string
}

type UpdateCategoryInput struct {
	ID          string
	Name        *string
	Description *string
	Image       *string
	IsFeatured  *bool
	IsActive    *bool
	ParentID    *string
	ParentSet   bool // distinguishes "parent omitted" from "parent set to null"
}
