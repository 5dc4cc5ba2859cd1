package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/weaponlions/ecommerce-server/pkg/enums"
)

// CategoryAttribute defines one dynamic product field for a category. Name is
// the machine identifier, unique within the category; Options only carry
// meaning for select and multi_select attributes.
type CategoryAttribute struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID   uuid.UUID               `gorm:"column:category_id;type:uuid;not null;uniqueIndex:category_attributes_category_name_key"`
	Name         string                  `gorm:"column:name;not null;uniqueIndex:category_attributes_category_name_key"`
	Label        string                  `gorm:"column:label;not null"`
	DataType     enums.AttributeDataType `gorm:"column:data_type;not null"`
	Options      StringList              `gorm:"column:options;type:text;not null;default:'[]'"`
	IsRequired   bool                    `gorm:"column:is_required;not null;default:false"`
	IsFilterable bool                    `gorm:"column:is_filterable;not null;default:false"`
	DisplayOrder int                     `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
