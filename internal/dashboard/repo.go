package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
)

// Repository tracks per-user product visits.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dashboard repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// UpsertVisit records a product view; revisiting bumps the timestamp in place.
func (r *Repository) UpsertVisit(ctx context.Context, userID string, productID uuid.UUID, visitedAt time.Time) error {
	visit := models.RecentlyVisitedProduct{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		VisitedAt: visitedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "product_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"visited_at"}),
		}).
		Create(&visit).Error
}

// EvictBeyondCap drops a user's oldest visit rows past the retention cap.
func (r *Repository) EvictBeyondCap(ctx context.Context, userID string, cap int) error {
	var keep []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.RecentlyVisitedProduct{}).
		Where("user_id = ?", userID).
		Order("visited_at DESC").
		Limit(cap).
		Pluck("id", &keep).Error; err != nil {
		return err
	}
	if len(keep) < cap {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN ?", userID, keep).
		Delete(&models.RecentlyVisitedProduct{}).Error
}

// ListVisits returns a user's most recent visits with the product rows
// attached, newest first.
func (r *Repository) ListVisits(ctx context.Context, userID string, limit int) ([]models.RecentlyVisitedProduct, error) {
	var visits []models.RecentlyVisitedProduct
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.MediaAsset").
		Where("user_id = ?", userID).
		Order("visited_at DESC").
		Limit(limit).
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}
