package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCollection joins a product into a collection with a per-pairing
// display order. Re-adding an existing pair updates the order in place.
type ProductCollection struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:product_collections_pair_key"`
	CollectionID uuid.UUID `gorm:"column:collection_id;type:uuid;not null;uniqueIndex:product_collections_pair_key;index:product_collections_collection_idx"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
