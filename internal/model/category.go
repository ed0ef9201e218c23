package model

type Category struct {
	BaseModel
	Name          string     `db:"name" json:"name"`
	Slug          string     `db:"slug" json:"slug"`
	ParentID      *string    `db:"parent_id" json:"parent"`
	Description   string     `db:"description" json:"description"`
	Image         string     `db:"image" json:"image"`
	IsFeatured    bool       `db:"is_featured" json:"isFeatured"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	SubCategories []Category `db:"-" json:"subCategories,omitempty"`
}

// IsRoot reports whether the category sits at the top of the 2-level tree.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
