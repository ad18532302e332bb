package product

import (
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot the pricing engine reads: unit price,
// available stock and category membership. Catalog management itself is
// out of scope.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CategoryIDs []string        `json:"category_ids" db:"category_ids"`

	types.BaseModel
}

// InCategory reports whether the product belongs to the given category
func (p *Product) InCategory(categoryID string) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}
