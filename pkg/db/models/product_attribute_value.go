package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductAttributeValue holds one product's value for one category attribute.
// Values are string-encoded per the attribute's data type; multi_select values
// are JSON string arrays.
type ProductAttributeValue struct {
	ID                  uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID           uuid.UUID         `gorm:"column:product_id;type:uuid;not null;uniqueIndex:product_attribute_values_pair_key"`
	CategoryAttributeID uuid.UUID         `gorm:"column:category_attribute_id;type:uuid;not null;uniqueIndex:product_attribute_values_pair_key"`
	CategoryAttribute   CategoryAttribute `gorm:"foreignKey:CategoryAttributeID;constraint:OnDelete:CASCADE"`
	Value               string            `gorm:"column:value;not null"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime"`
}
