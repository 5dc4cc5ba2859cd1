package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockUnlimited is the sentinel stock value meaning the product never runs out.
const StockUnlimited = -1

// Product is a storefront listing. CategoryLabel is the legacy free-text
// grouping shown on cards; CategoryID is the structured category that drives
// the attribute schema. Products sharing a non-empty VariantGroupID are
// variants of one logical item.
type Product struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string                  `gorm:"column:name;not null"`
	Description     string                  `gorm:"column:description;not null;default:''"`
	Price           decimal.Decimal         `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice   *decimal.Decimal        `gorm:"column:original_price;type:numeric(12,2)"`
	MediaAssetID    *uuid.UUID              `gorm:"column:media_asset_id;type:uuid"`
	MediaAsset      *MediaAsset             `gorm:"foreignKey:MediaAssetID;constraint:OnDelete:SET NULL"`
	CategoryLabel   string                  `gorm:"column:category_label;not null;default:''"`
	CategoryID      *uuid.UUID              `gorm:"column:category_id;type:uuid"`
	Category        *Category               `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Badge           *string                 `gorm:"column:badge"`
	Rating          float64                 `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	ReviewCount     int                     `gorm:"column:review_count;not null;default:0"`
	TrendingScore   int                     `gorm:"column:trending_score;not null;default:0"`
	Stock           int                     `gorm:"column:stock;not null;default:-1"`
	VariantGroupID  *string                 `gorm:"column:variant_group_id;index:products_variant_group_idx"`
	IsVisible       bool                    `gorm:"column:is_visible;not null;default:true"`
	AttributeValues []ProductAttributeValue `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// InStock reports whether the product can currently be bought.
func (p Product) InStock() bool {
	return p.Stock == StockUnlimited || p.Stock > 0
}
