package models

import (
	"time"

	"github.com/google/uuid"
)

// DashboardSection controls which storefront sections are assembled and in
// what order. Rows are seeded once; admin updates toggle visibility, titles
// and ordering but never the key.
type DashboardSection struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SectionKey   string    `gorm:"column:section_key;not null;uniqueIndex"`
	Title        string    `gorm:"column:title;not null"`
	Layout       *string   `gorm:"column:layout"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	IsVisible    bool      `gorm:"column:is_visible;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Section keys the assembler knows how to populate.
const (
	SectionKeyNavbar          = "navbar"
	SectionKeyCarousel        = "carousel"
	SectionKeyTrending        = "trending"
	SectionKeyRecentlyVisited = "recently_visited"
	SectionKeyCollections     = "collections"
	SectionKeyFooter          = "footer"
)
