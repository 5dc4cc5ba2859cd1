package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/weaponlions/ecommerce-server/pkg/enums"
)

// MediaAsset captures metadata for files held in the upload store. The stored
// file name is globally unique; the original name is kept for display only.
type MediaAsset struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FileName     string              `gorm:"column:file_name;not null;uniqueIndex"`
	OriginalName string              `gorm:"column:original_name;not null"`
	Category     enums.MediaCategory `gorm:"column:category;not null;default:general"`
	ContentType  string              `gorm:"column:content_type;not null"`
	SizeBytes    int64               `gorm:"column:size_bytes;not null"`
	Width        *int                `gorm:"column:width"`
	Height       *int                `gorm:"column:height"`
	URL          string              `gorm:"column:url;not null"`
	AltText      *string             `gorm:"column:alt_text"`
	Title        *string             `gorm:"column:title"`
	Usages       []MediaUsage        `gorm:"foreignKey:MediaAssetID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
