package model

type Product struct {
	BaseModel
	Name        string        `db:"name" json:"name"`
	Slug        string        `db:"slug" json:"slug"`
	Price       float64       `db:"price" json:"price"`
	CategoryID  string        `db:"category_id" json:"category"`
	Description string        `db:"description" json:"description"`
	Image       StringList    `db:"image" json:"image"`
	IsFeatured  bool          `db:"is_featured" json:"isFeatured"`
	IsActive    bool          `db:"is_active" json:"isActive"`
	Sizes       []SizeVariant `db:"-" json:"sizes"`
	Category    *Category     `db:"-" json:"categoryDetail,omitempty"`
}

// SizeVariant is the unit of stock tracking: one (size label, quantity) pair
// per product, labels unique within a product.
type SizeVariant struct {
	ProductID string `db:"product_id" json:"-"`
	Size      string `db:"size" json:"size"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// FindSize returns the variant with the given label, or nil.
func (p *Product) FindSize(size string) *SizeVariant {
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			return &p.Sizes[i]
		}
	}
	return nil
}

// FirstImage is what order line items snapshot for display.
func (p *Product) FirstImage() string {
	if len(p.Image) > 0 {
		return p.Image[0]
	}
	return ""
}
