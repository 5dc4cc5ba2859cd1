package models

import (
	"time"

	"github.com/google/uuid"
)

// RecentlyVisitedCap bounds how many visit rows are kept per user.
const RecentlyVisitedCap = 20

// RecentlyVisitedProduct records that a user viewed a product. Revisit bumps
// VisitedAt; rows beyond the per-user cap are evicted oldest-first.
type RecentlyVisitedProduct struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:recently_visited_user_product_key;index:recently_visited_user_idx"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:recently_visited_user_product_key"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	VisitedAt time.Time `gorm:"column:visited_at;not null"`
}
