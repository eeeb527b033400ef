package domain

import "strings"

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

// Product is read-only reference data owned by the catalog.
type Product struct {
	ID              string  `db:"id" json:"id"`
	CategoryID      string  `db:"category_id" json:"categoryId"`
	Category        string  `db:"category" json:"category"`
	Name            string  `db:"name" json:"name"`
	Description     string  `db:"description" json:"description"`
	LongDescription string  `db:"long_description" json:"longDescription,omitempty"`
	ImageURL        string  `db:"image_url" json:"imageUrl"`
	Size            string  `db:"size" json:"size,omitempty"`
	Origin          string  `db:"origin" json:"origin,omitempty"`
	UsageTips       string  `db:"usage_tips" json:"usageTips,omitempty"`
	Price           float64 `db:"price" json:"price"`
	Stock           *int    `db:"stock" json:"stock,omitempty"` // nil = untracked
	IsFeatured      bool    `db:"is_featured" json:"isFeatured"`
	CharsJSON       string  `db:"characteristics_json" json:"-"`
	CreatedAt       string  `db:"created_at" json:"createdAt,omitempty"`

	Characteristics []string `db:"-" json:"characteristics"`
}

// HasCharacteristic reports whether tag is one of the product's characteristics (case-insensitive).
func (p Product) HasCharacteristic(tag string) bool {
	for _, c := range p.Characteristics {
		if strings.EqualFold(c, tag) {
			return true
		}
	}
	return false
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK | UNTRACKED
	Qty    int    `json:"qty"`
}
