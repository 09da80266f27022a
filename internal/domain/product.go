package domain

import "time"

type ProductCategory string

const (
	CategoryFloral   ProductCategory = "floral"
	CategoryWoody    ProductCategory = "woody"
	CategoryOriental ProductCategory = "oriental"
	CategoryFresh    ProductCategory = "fresh"
)

var ProductCategories = []ProductCategory{
	CategoryFloral,
	CategoryWoody,
	CategoryOriental,
	CategoryFresh,
}

func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

type ProductBadge string

const (
	BadgeNone       ProductBadge = "none"
	BadgeNew        ProductBadge = "new"
	BadgeBestseller ProductBadge = "bestseller"
	BadgeLimited    ProductBadge = "limited"
	BadgeSale       ProductBadge = "sale"
)

func (b ProductBadge) Valid() bool {
	switch b {
	case BadgeNone, BadgeNew, BadgeBestseller, BadgeLimited, BadgeSale:
		return true
	}
	return false
}

type Product struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"size:191;not null"`
	Description string          `json:"description"`
	Price       float64         `json:"price" gorm:"not null"`
	Category    ProductCategory `json:"category" gorm:"size:16;index"`
	Notes       []string        `json:"notes" gorm:"serializer:json"`
	Image       string          `json:"image"`
	Badge       ProductBadge    `json:"badge" gorm:"size:16;default:'none'"`
	InStock     bool            `json:"inStock" gorm:"index"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
