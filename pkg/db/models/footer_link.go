package models

import (
	"time"

	"github.com/google/uuid"
)

// FooterLink is one footer entry, grouped into columns by GroupName.
type FooterLink struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupName    string    `gorm:"column:group_name;not null"`
	Label        string    `gorm:"column:label;not null"`
	URL          string    `gorm:"column:url;not null"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	IsVisible    bool      `gorm:"column:is_visible;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
