package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
)

// Repository wraps GORM operations for products, their attribute values and
// collection memberships.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct persists a product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID retrieves a product with its category and its attribute
// values joined to their definitions.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("MediaAsset").
		Preload("AttributeValues").
		Preload("AttributeValues.CategoryAttribute").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct persists the mutable columns of a product.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Model(product).
		Select("name", "description", "price", "original_price", "media_asset_id",
			"category_label", "category_id", "badge", "rating", "review_count",
			"trending_score", "stock", "variant_group_id", "is_visible", "updated_at").
		Updates(map[string]any{
			"name":             product.Name,
			"description":      product.Description,
			"price":            product.Price,
			"original_price":   product.OriginalPrice,
			"media_asset_id":   product.MediaAssetID,
			"category_label":   product.CategoryLabel,
			"category_id":      product.CategoryID,
			"badge":            product.Badge,
			"rating":           product.Rating,
			"review_count":     product.ReviewCount,
			"trending_score":   product.TrendingScore,
			"stock":            product.Stock,
			"variant_group_id": product.VariantGroupID,
			"is_visible":       product.IsVisible,
		}).Error
}

// DeleteProduct removes the product row only; callers clean up memberships,
// values and usage links first, inside the same transaction.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListVisibleProducts loads the listing candidate set with attribute values
// attached for filter evaluation.
func (r *Repository) ListVisibleProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("MediaAsset").
		Preload("AttributeValues").
		Preload("AttributeValues.CategoryAttribute").
		Where("is_visible = ?", true).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListVariantSiblings returns the other visible products sharing a variant
// group.
func (r *Repository) ListVariantSiblings(ctx context.Context, groupID string, excludeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("MediaAsset").
		Preload("AttributeValues").
		Preload("AttributeValues.CategoryAttribute").
		Where("variant_group_id = ? AND id <> ? AND is_visible = ?", groupID, excludeID, true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceValues deletes every stored value for the product and inserts the
// provided rows. Full replace, never a merge.
func (r *Repository) ReplaceValues(ctx context.Context, productID uuid.UUID, rows []models.ProductAttributeValue) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductAttributeValue{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListValuesForProduct returns the stored values with their attribute
// definitions, in the attributes' display order.
func (r *Repository) ListValuesForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductAttributeValue, error) {
	var rows []models.ProductAttributeValue
	if err := r.db.WithContext(ctx).
		Preload("CategoryAttribute").
		Where("product_id = ?", productID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAttributesForCategory returns the attribute definitions save operations
// validate against.
func (r *Repository) ListAttributesForCategory(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryAttribute, error) {
	var attrs []models.CategoryAttribute
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("display_order ASC, name ASC").
		Find(&attrs).Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

// FindCategoryBySlug resolves a slug for the listing's category filter.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpsertMembership adds a product to a collection; re-adding the same pair
// updates the display order in place.
func (r *Repository) UpsertMembership(ctx context.Context, membership *models.ProductCollection) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "product_id"},
				{Name: "collection_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"display_order"}),
		}).
		Create(membership).Error
}

// RemoveMembership deletes one (product, collection) pairing.
func (r *Repository) RemoveMembership(ctx context.Context, productID, collectionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND collection_id = ?", productID, collectionID).
		Delete(&models.ProductCollection{}).Error
}

// RemoveMembershipsForProduct deletes every collection pairing a product holds.
func (r *Repository) RemoveMembershipsForProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductCollection{}).Error
}

// MembershipProductIDs returns the set of product ids inside a collection.
func (r *Repository) MembershipProductIDs(ctx context.Context, collectionID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.ProductCollection{}).
		Where("collection_id = ?", collectionID).
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListCollectionProducts returns a collection's visible members in their
// pairing display order.
func (r *Repository) ListCollectionProducts(ctx context.Context, collectionID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("MediaAsset").
		Joins("JOIN product_collections pc ON pc.product_id = products.id").
		Where("pc.collection_id = ? AND products.is_visible = ?", collectionID, true).
		Order("pc.display_order ASC, products.name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindCollectionByID checks a membership target exists.
func (r *Repository) FindCollectionByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListTrending returns the top visible products by trending score.
func (r *Repository) ListTrending(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("MediaAsset").
		Where("is_visible = ?", true).
		Order("trending_score DESC, created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
