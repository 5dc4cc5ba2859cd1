package schema

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
)

// Repository wraps GORM operations for categories and their attributes.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a schema repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateCategory persists a category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryByID retrieves a category with its attributes ordered for display.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Preload("Attributes", func(q *gorm.DB) *gorm.DB {
			return q.Order("display_order ASC, name ASC")
		}).
		First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindCategoryBySlug retrieves a category by its URL slug.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Preload("Attributes", func(q *gorm.DB) *gorm.DB {
			return q.Order("display_order ASC, name ASC")
		}).
		First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns every category, optionally only active ones.
func (r *Repository) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := r.db.WithContext(ctx).
		Preload("Attributes", func(q *gorm.DB) *gorm.DB {
			return q.Order("display_order ASC, name ASC")
		}).
		Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategory persists the mutable columns of a category.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Model(category).
		Select("name", "slug", "description", "media_asset_id", "is_active", "updated_at").
		Updates(map[string]any{
			"name":           category.Name,
			"slug":           category.Slug,
			"description":    category.Description,
			"media_asset_id": category.MediaAssetID,
			"is_active":      category.IsActive,
		}).Error
}

// DeleteCategory removes a category and, explicitly, its dependents so sqlite
// test databases behave like the postgres FK cascade.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("category_attribute_id IN (?)",
			r.db.Model(&models.CategoryAttribute{}).Select("id").Where("category_id = ?", id)).
		Delete(&models.ProductAttributeValue{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("category_id = ?", id).Delete(&models.CategoryAttribute{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// CreateAttribute persists an attribute definition.
func (r *Repository) CreateAttribute(ctx context.Context, attr *models.CategoryAttribute) (*models.CategoryAttribute, error) {
	if err := r.db.WithContext(ctx).Create(attr).Error; err != nil {
		return nil, err
	}
	return attr, nil
}

// FindAttributeByID retrieves one attribute definition.
func (r *Repository) FindAttributeByID(ctx context.Context, id uuid.UUID) (*models.CategoryAttribute, error) {
	var attr models.CategoryAttribute
	if err := r.db.WithContext(ctx).First(&attr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

// ListAttributes returns a category's attribute definitions in display order.
func (r *Repository) ListAttributes(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryAttribute, error) {
	var attrs []models.CategoryAttribute
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("display_order ASC, name ASC").
		Find(&attrs).Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

// UpdateAttribute persists the mutable columns of an attribute definition.
func (r *Repository) UpdateAttribute(ctx context.Context, attr *models.CategoryAttribute) error {
	return r.db.WithContext(ctx).Model(attr).
		Select("name", "label", "data_type", "options", "is_required", "is_filterable", "display_order", "updated_at").
		Updates(map[string]any{
			"name":          attr.Name,
			"label":         attr.Label,
			"data_type":     attr.DataType,
			"options":       attr.Options,
			"is_required":   attr.IsRequired,
			"is_filterable": attr.IsFilterable,
			"display_order": attr.DisplayOrder,
		}).Error
}

// DeleteAttribute removes an attribute definition and its stored values.
func (r *Repository) DeleteAttribute(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("category_attribute_id = ?", id).Delete(&models.ProductAttributeValue{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CategoryAttribute{}).Error
}
