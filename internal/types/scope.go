package types

import "github.com/samber/lo"

// ScopeKind discriminates the targeting of a discount rule
type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"
	ScopeProducts   ScopeKind = "products"
	ScopeCategories ScopeKind = "categories"
)

// DiscountScope is the tagged targeting of an automatic discount rule.
// ProductIDs is meaningful only for ScopeProducts, CategoryIDs only for
// ScopeCategories.
type DiscountScope struct {
	Kind        ScopeKind `json:"kind"`
	ProductIDs  []string  `json:"product_ids,omitempty"`
	CategoryIDs []string  `json:"category_ids,omitempty"`
}

// NewScopeAll targets every product
func NewScopeAll() DiscountScope {
	return DiscountScope{Kind: ScopeAll}
}

// NewScopeProducts targets an explicit product list
func NewScopeProducts(productIDs ...string) DiscountScope {
	return DiscountScope{Kind: ScopeProducts, ProductIDs: productIDs}
}

// NewScopeCategories targets products by category membership
func NewScopeCategories(categoryIDs ...string) DiscountScope {
	return DiscountScope{Kind: ScopeCategories, CategoryIDs: categoryIDs}
}

// Matches reports whether a product with the given id and categories is
// targeted by the scope.
func (s DiscountScope) Matches(productID string, categoryIDs []string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeProducts:
		return lo.Contains(s.ProductIDs, productID)
	case ScopeCategories:
		return len(lo.Intersect(s.CategoryIDs, categoryIDs)) > 0
	}
	return false
}

func (s DiscountScope) Validate() bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeProducts:
		return len(s.ProductIDs) > 0
	case ScopeCategories:
		return len(s.CategoryIDs) > 0
	}
	return false
}
