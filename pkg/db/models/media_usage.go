package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaUsage records that an asset is referenced by one field of one entity.
// The quadruple is unique so repeated linking stays idempotent.
type MediaUsage struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MediaAssetID uuid.UUID `gorm:"column:media_asset_id;type:uuid;not null;uniqueIndex:media_usages_quadruple_key"`
	EntityType   string    `gorm:"column:entity_type;not null;uniqueIndex:media_usages_quadruple_key;index:media_usages_entity_idx"`
	EntityID     uuid.UUID `gorm:"column:entity_id;type:uuid;not null;uniqueIndex:media_usages_quadruple_key;index:media_usages_entity_idx"`
	FieldName    string    `gorm:"column:field_name;not null;uniqueIndex:media_usages_quadruple_key"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

const (
	UsageEntityProduct       = "product"
	UsageEntityCategory      = "category"
	UsageEntityCollection    = "collection"
	UsageEntityCarouselSlide = "carousel_slide"
	UsageEntitySocialIcon    = "social_icon"
)
