package models

import (
	"time"

	"github.com/google/uuid"
)

// NavbarLink is one node of the storefront navigation tree. Links with a nil
// ParentID are top-level; children reference their parent's id.
type NavbarLink struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Label        string     `gorm:"column:label;not null"`
	URL          string     `gorm:"column:url;not null"`
	Icon         *string    `gorm:"column:icon"`
	ParentID     *uuid.UUID `gorm:"column:parent_id;type:uuid;index:navbar_links_parent_idx"`
	DisplayOrder int        `gorm:"column:display_order;not null;default:0"`
	IsVisible    bool       `gorm:"column:is_visible;not null;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
