package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
)

// ProductDTO is the listing-card shape of a product.
type ProductDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	MediaAssetID  *uuid.UUID       `json:"media_asset_id,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	CategoryLabel string           `json:"category_label"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	Badge         *string          `json:"badge,omitempty"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	TrendingScore int              `json:"trending_score"`
	Stock         int              `json:"stock"`
	InStock       bool             `json:"in_stock"`
	VariantGroup  *string          `json:"variant_group_id,omitempty"`
	IsVisible     bool             `json:"is_visible"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ProductDetailDTO adds the resolved category, schema-driven values, and
// variant siblings to the card shape.
type ProductDetailDTO struct {
	ProductDTO
	CategoryName    *string          `json:"category_name,omitempty"`
	CategorySlug    *string          `json:"category_slug,omitempty"`
	AttributeValues []AttributeValue `json:"attribute_values"`
	Variants        []VariantSummary `json:"variants"`
}

// VariantSummary is one sibling inside a variant group, annotated with the
// label-keyed values that distinguish it.
type VariantSummary struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"`
	ImageURL   *string           `json:"image_url,omitempty"`
	InStock    bool              `json:"in_stock"`
	Attributes map[string]string `json:"attributes"`
}

// NewProductDTO converts a loaded product row into its card shape. Other
// packages assembling product payloads use this instead of reimplementing the
// mapping.
func NewProductDTO(product models.Product) ProductDTO {
	return toProductDTO(product)
}

func toProductDTO(product models.Product) ProductDTO {
	dto := ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		MediaAssetID:  product.MediaAssetID,
		CategoryLabel: product.CategoryLabel,
		CategoryID:    product.CategoryID,
		Badge:         product.Badge,
		Rating:        product.Rating,
		ReviewCount:   product.ReviewCount,
		TrendingScore: product.TrendingScore,
		Stock:         product.Stock,
		InStock:       product.InStock(),
		VariantGroup:  product.VariantGroupID,
		IsVisible:     product.IsVisible,
		CreatedAt:     product.CreatedAt,
	}
	if product.MediaAsset != nil {
		url := product.MediaAsset.URL
		dto.ImageURL = &url
	}
	return dto
}

func toVariantSummary(product models.Product) VariantSummary {
	attrs := make(map[string]string, len(product.AttributeValues))
	for _, row := range product.AttributeValues {
		attrs[row.CategoryAttribute.Label] = row.Value
	}
	summary := VariantSummary{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		InStock:    product.InStock(),
		Attributes: attrs,
	}
	if product.MediaAsset != nil {
		url := product.MediaAsset.URL
		summary.ImageURL = &url
	}
	return summary
}
