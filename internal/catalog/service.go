package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

type mediaLinker interface {
	Require(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	LinkUsage(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, entityType string, entityID uuid.UUID, fieldName string) error
	UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error
}

// Service owns product CRUD, the attribute value store, variant lookups and
// collection membership.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDetailDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDetailDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*ProductDetailDTO, error)
	List(ctx context.Context, query ListQuery) (pagination.Page[ProductDTO], error)
	GetVariantSiblings(ctx context.Context, id uuid.UUID) ([]VariantSummary, error)

	AddProductToCollection(ctx context.Context, productID, collectionID uuid.UUID, displayOrder int) error
	RemoveProductFromCollection(ctx context.Context, productID, collectionID uuid.UUID) error
	ListCollectionProducts(ctx context.Context, collectionID uuid.UUID) ([]ProductDTO, error)
}

type service struct {
	repo   *Repository
	values *valueStore
	client *db.Client
	media  mediaLinker
}

// NewService constructs a catalog service.
func NewService(repo *Repository, client *db.Client, media mediaLinker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if media == nil {
		return nil, fmt.Errorf("media service required")
	}
	return &service{
		repo:   repo,
		values: &valueStore{repo: repo},
		client: client,
		media:  media,
	}, nil
}

// CreateProductInput is the payload to create a product.
type CreateProductInput struct {
	Name            string
	Description     string
	Price           decimal.Decimal
	OriginalPrice   *decimal.Decimal
	MediaAssetID    *uuid.UUID
	CategoryLabel   string
	CategoryID      *uuid.UUID
	Badge           *string
	Rating          float64
	ReviewCount     int
	TrendingScore   int
	Stock           int
	VariantGroupID  *string
	IsVisible       bool
	AttributeValues map[string]string
}

// UpdateProductInput carries optional mutations; nil fields are untouched.
// AttributeValues, when present, replace the stored set wholesale.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	OriginalPrice   *decimal.Decimal
	MediaAssetID    *uuid.UUID
	ClearMediaAsset bool
	CategoryLabel   *string
	CategoryID      *uuid.UUID
	ClearCategory   bool
	Badge           *string
	Rating          *float64
	ReviewCount     *int
	TrendingScore   *int
	Stock           *int
	VariantGroupID  *string
	IsVisible       *bool
	AttributeValues map[string]string
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDetailDTO, error) {
	if err := validateProductBasics(input.Name, input.Price, input.Rating, input.Stock); err != nil {
		return nil, err
	}
	if input.MediaAssetID != nil {
		if _, err := s.media.Require(ctx, *input.MediaAssetID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		OriginalPrice:  input.OriginalPrice,
		MediaAssetID:   input.MediaAssetID,
		CategoryLabel:  input.CategoryLabel,
		CategoryID:     input.CategoryID,
		Badge:          input.Badge,
		Rating:         input.Rating,
		ReviewCount:    input.ReviewCount,
		TrendingScore:  input.TrendingScore,
		Stock:          input.Stock,
		VariantGroupID: normalizeVariantGroup(input.VariantGroupID),
		IsVisible:      input.IsVisible,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.CreateProduct(ctx, product); err != nil {
			return db.Classify(err, "creating product")
		}
		if product.MediaAssetID != nil {
			if err := s.media.LinkUsage(ctx, tx, *product.MediaAssetID, models.UsageEntityProduct, product.ID, "media_asset_id"); err != nil {
				return err
			}
		}
		if product.CategoryID != nil && len(input.AttributeValues) > 0 {
			txValues := &valueStore{repo: txRepo}
			if err := txValues.SaveValues(ctx, product.ID, *product.CategoryID, input.AttributeValues); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDetailDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "product not found")
	}

	previousCategory := product.CategoryID
	previousAsset := product.MediaAssetID

	applyProductUpdate(product, input)
	if err := validateProductBasics(product.Name, product.Price, product.Rating, product.Stock); err != nil {
		return nil, err
	}
	if product.MediaAssetID != nil && !uuidPtrEqual(previousAsset, product.MediaAssetID) {
		if _, err := s.media.Require(ctx, *product.MediaAssetID); err != nil {
			return nil, err
		}
	}

	categoryChanged := !uuidPtrEqual(previousCategory, product.CategoryID)
	assetChanged := !uuidPtrEqual(previousAsset, product.MediaAssetID)

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateProduct(ctx, product); err != nil {
			return db.Classify(err, "updating product")
		}

		if assetChanged {
			if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityProduct, product.ID); err != nil {
				return err
			}
			if product.MediaAssetID != nil {
				if err := s.media.LinkUsage(ctx, tx, *product.MediaAssetID, models.UsageEntityProduct, product.ID, "media_asset_id"); err != nil {
					return err
				}
			}
		}

		txValues := &valueStore{repo: txRepo}
		switch {
		case categoryChanged && (product.CategoryID == nil || input.AttributeValues == nil):
			// Values stored under the old category never carry over, and
			// without replacements the product is left valueless rather
			// than failing the recategorization.
			return txValues.ClearValues(ctx, product.ID)
		case categoryChanged:
			return txValues.SaveValues(ctx, product.ID, *product.CategoryID, input.AttributeValues)
		case input.AttributeValues != nil && product.CategoryID != nil:
			return txValues.SaveValues(ctx, product.ID, *product.CategoryID, input.AttributeValues)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		return db.Classify(err, "product not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.RemoveMembershipsForProduct(ctx, id); err != nil {
			return db.Classify(err, "removing collection memberships")
		}
		if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityProduct, id); err != nil {
			return err
		}
		txValues := &valueStore{repo: txRepo}
		if err := txValues.ClearValues(ctx, id); err != nil {
			return err
		}
		if err := txRepo.DeleteProduct(ctx, id); err != nil {
			return db.Classify(err, "deleting product")
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDetailDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "product not found")
	}

	values, err := s.values.GetValues(ctx, id)
	if err != nil {
		return nil, err
	}
	variants, err := s.GetVariantSiblings(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetailDTO{
		ProductDTO:      toProductDTO(*product),
		AttributeValues: values,
		Variants:        variants,
	}
	if product.Category != nil {
		detail.CategoryName = &product.Category.Name
		detail.CategorySlug = &product.Category.Slug
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (pagination.Page[ProductDTO], error) {
	empty := pagination.NewPage([]ProductDTO{}, 0, query.Page)

	// Slug is the fallback when no id is given; a slug that does not
	// resolve yields an empty page, not an error.
	if query.CategoryID == nil && strings.TrimSpace(query.CategorySlug) != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, strings.ToLower(strings.TrimSpace(query.CategorySlug)))
		if err != nil {
			if pkgerrors.As(db.Classify(err, "")).Code() == pkgerrors.CodeNotFound {
				return empty, nil
			}
			return empty, db.Classify(err, "resolving category slug")
		}
		query.CategoryID = &category.ID
	}

	var members map[uuid.UUID]struct{}
	if query.CollectionID != nil {
		var err error
		members, err = s.repo.MembershipProductIDs(ctx, *query.CollectionID)
		if err != nil {
			return empty, db.Classify(err, "loading collection membership")
		}
	}

	products, err := s.repo.ListVisibleProducts(ctx)
	if err != nil {
		return empty, db.Classify(err, "loading products")
	}

	candidates := make([]candidate, 0, len(products))
	for _, product := range products {
		candidates = append(candidates, newCandidate(product))
	}

	filtered := applyFilters(candidates, query, members)
	sortCandidates(filtered, query.Sort, query.Descending)
	pageItems, total := paginate(filtered, query.Page)

	items := make([]ProductDTO, 0, len(pageItems))
	for _, c := range pageItems {
		items = append(items, toProductDTO(c.product))
	}
	return pagination.NewPage(items, total, query.Page), nil
}

func (s *service) GetVariantSiblings(ctx context.Context, id uuid.UUID) ([]VariantSummary, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "product not found")
	}
	if product.VariantGroupID == nil || *product.VariantGroupID == "" {
		return []VariantSummary{}, nil
	}

	siblings, err := s.repo.ListVariantSiblings(ctx, *product.VariantGroupID, product.ID)
	if err != nil {
		return nil, db.Classify(err, "loading variant siblings")
	}
	out := make([]VariantSummary, 0, len(siblings))
	for _, sibling := range siblings {
		out = append(out, toVariantSummary(sibling))
	}
	return out, nil
}

func (s *service) AddProductToCollection(ctx context.Context, productID, collectionID uuid.UUID, displayOrder int) error {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		return db.Classify(err, "product not found")
	}
	if _, err := s.repo.FindCollectionByID(ctx, collectionID); err != nil {
		return db.Classify(err, "collection not found")
	}
	membership := &models.ProductCollection{
		ID:           uuid.New(),
		ProductID:    productID,
		CollectionID: collectionID,
		DisplayOrder: displayOrder,
	}
	if err := s.repo.UpsertMembership(ctx, membership); err != nil {
		return db.Classify(err, "adding product to collection")
	}
	return nil
}

func (s *service) RemoveProductFromCollection(ctx context.Context, productID, collectionID uuid.UUID) error {
	if err := s.repo.RemoveMembership(ctx, productID, collectionID); err != nil {
		return db.Classify(err, "removing product from collection")
	}
	return nil
}

func (s *service) ListCollectionProducts(ctx context.Context, collectionID uuid.UUID) ([]ProductDTO, error) {
	if _, err := s.repo.FindCollectionByID(ctx, collectionID); err != nil {
		return nil, db.Classify(err, "collection not found")
	}
	products, err := s.repo.ListCollectionProducts(ctx, collectionID)
	if err != nil {
		return nil, db.Classify(err, "listing collection products")
	}
	out := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		out = append(out, toProductDTO(product))
	}
	return out, nil
}

func validateProductBasics(name string, price decimal.Decimal, rating float64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if rating < 0 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	if stock < models.StockUnlimited {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be -1 (unlimited) or non-negative")
	}
	return nil
}

func applyProductUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = input.OriginalPrice
	}
	if input.ClearMediaAsset {
		product.MediaAssetID = nil
	} else if input.MediaAssetID != nil {
		product.MediaAssetID = input.MediaAssetID
	}
	if input.CategoryLabel != nil {
		product.CategoryLabel = *input.CategoryLabel
	}
	if input.ClearCategory {
		product.CategoryID = nil
	} else if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Badge != nil {
		product.Badge = input.Badge
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.ReviewCount != nil {
		product.ReviewCount = *input.ReviewCount
	}
	if input.TrendingScore != nil {
		product.TrendingScore = *input.TrendingScore
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.VariantGroupID != nil {
		product.VariantGroupID = normalizeVariantGroup(input.VariantGroupID)
	}
	if input.IsVisible != nil {
		product.IsVisible = *input.IsVisible
	}
}

func normalizeVariantGroup(groupID *string) *string {
	if groupID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*groupID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
