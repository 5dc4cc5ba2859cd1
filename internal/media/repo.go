package media

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

// Repository wraps GORM operations for media assets and their usage links.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a media repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an asset record.
func (r *Repository) Create(ctx context.Context, asset *models.MediaAsset) (*models.MediaAsset, error) {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// FindByID retrieves an asset by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// Update persists the mutable metadata columns of an asset.
func (r *Repository) Update(ctx context.Context, asset *models.MediaAsset) error {
	return r.db.WithContext(ctx).Model(asset).
		Select("category", "url", "alt_text", "title", "updated_at").
		Updates(asset).Error
}

// Delete removes an asset row. Usage rows cascade via the FK; the explicit
// delete keeps sqlite test databases honest too.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_asset_id = ?", id).Delete(&models.MediaUsage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.MediaAsset{}).Error
	})
}

// ListFilters narrow the asset listing.
type ListFilters struct {
	Search   string
	Category enums.MediaCategory
}

// List returns a page of assets, newest first, with the total computed before
// the page slice.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.MediaAsset, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.MediaAsset{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(original_name) LIKE ? OR LOWER(COALESCE(alt_text, '')) LIKE ? OR LOWER(COALESCE(title, '')) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []models.MediaAsset
	if err := query.
		Order("created_at DESC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// UsageRepository wraps GORM operations for media_usages.
type UsageRepository struct {
	db *gorm.DB
}

// NewUsageRepository builds a usage repository bound to the provided DB.
func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Link inserts a usage row inside the provided transaction. Re-linking the
// same quadruple is a no-op.
func (r *UsageRepository) Link(ctx context.Context, tx *gorm.DB, usage *models.MediaUsage) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "media_asset_id"},
				{Name: "entity_type"},
				{Name: "entity_id"},
				{Name: "field_name"},
			},
			DoNothing: true,
		}).
		Create(usage).Error
}

// UnlinkAllForEntity removes every usage row an entity holds, across assets
// and fields. Called when the entity is deleted or re-linked wholesale.
func (r *UsageRepository) UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&models.MediaUsage{}).Error
}

// FindUsageByID retrieves a single usage row.
func (r *UsageRepository) FindUsageByID(ctx context.Context, id uuid.UUID) (*models.MediaUsage, error) {
	var usage models.MediaUsage
	if err := r.db.WithContext(ctx).First(&usage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &usage, nil
}

// UnlinkByID removes one usage row by its primary key.
func (r *UsageRepository) UnlinkByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.MediaUsage{}).Error
}

// ListForEntity returns every usage link an entity holds.
func (r *UsageRepository) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.MediaUsage, error) {
	var usages []models.MediaUsage
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// ListForAsset returns every usage link pointing at the asset.
func (r *UsageRepository) ListForAsset(ctx context.Context, assetID uuid.UUID) ([]models.MediaUsage, error) {
	var usages []models.MediaUsage
	if err := r.db.WithContext(ctx).
		Where("media_asset_id = ?", assetID).
		Order("created_at ASC").
		Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}
