package services

import (
	"time"

	"perfume-shop/internal/domain"
)

// SampleProducts is the fixed catalog served when the primary store is
// unreachable, and the seed set for the destructive reseed path. IDs are
// stable so line items created against the fallback stay resolvable.
func SampleProducts() []domain.Product {
	seeded := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{
			ID:          1,
			Name:        "Midnight Oud",
			Description: "Deep agarwood heart with smoked amber and a leather drydown.",
			Price:       4500,
			Category:    domain.CategoryWoody,
			Notes:       []string{"oud", "amber", "leather"},
			Badge:       domain.BadgeBestseller,
			InStock:     true,
			Quantity:    12,
			CreatedAt:   seeded,
			UpdatedAt:   seeded,
		},
		{
			ID:          2,
			Name:        "Rose Mahal",
			Description: "Taif rose over soft musk, a classic attar silhouette.",
			Price:       3200,
			Category:    domain.CategoryFloral,
			Notes:       []string{"rose", "musk", "saffron"},
			Badge:       domain.BadgeNone,
			InStock:     true,
			Quantity:    8,
			CreatedAt:   seeded,
			UpdatedAt:   seeded,
		},
		{
			ID:          3,
			Name:        "Amber Nights",
			Description: "Resinous amber, vanilla and a whisper of incense.",
			Price:       3800,
			Category:    domain.CategoryOriental,
			Notes:       []string{"amber", "vanilla", "incense"},
			Badge:       domain.BadgeLimited,
			InStock:     true,
			Quantity:    5,
			CreatedAt:   seeded,
			UpdatedAt:   seeded,
		},
		{
			ID:          4,
			Name:        "Citrus Veil",
			Description: "Bergamot and neroli over a clean white-musk base.",
			Price:       2400,
			Category:    domain.CategoryFresh,
			Notes:       []string{"bergamot", "neroli", "white musk"},
			Badge:       domain.BadgeNew,
			InStock:     true,
			Quantity:    20,
			CreatedAt:   seeded,
			UpdatedAt:   seeded,
		},
		{
			ID:          5,
			Name:        "Sandal Dusk",
			Description: "Creamy Mysore-style sandalwood with cardamom spark.",
			Price:       4100,
			Category:    domain.CategoryWoody,
			Notes:       []string{"sandalwood", "cardamom", "tonka"},
			Badge:       domain.BadgeNone,
			InStock:     false,
			Quantity:    0,
			CreatedAt:   seeded,
			UpdatedAt:   seeded,
		},
		{
			ID:          6,
			Name:        "Jasmine Monsoon",
			Description: "Night-blooming jasmine with wet green facets.",
			Price:       2900,
			Category:    domain.CategoryFloral,
			Notes:       []string{"jasmine", "green leaves", "rain accord"},
			Badge:       domain.BadgeSale,
			InStock:     true,
			Quantity:    15,
			CreatedAt:   seeded,
			UpdatedAt:   seeded,
		},
	}
}
