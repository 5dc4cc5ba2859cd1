package schema

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
)

var (
	slugRe     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	attrNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)
)

type mediaLinker interface {
	Require(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	LinkUsage(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, entityType string, entityID uuid.UUID, fieldName string) error
	UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error
}

// Service manages categories and their dynamic attribute definitions.
type Service interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)

	CreateAttribute(ctx context.Context, categoryID uuid.UUID, input AttributeInput) (*models.CategoryAttribute, error)
	UpdateAttribute(ctx context.Context, id uuid.UUID, input AttributeInput) (*models.CategoryAttribute, error)
	DeleteAttribute(ctx context.Context, id uuid.UUID) error
	ListAttributes(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryAttribute, error)
}

type service struct {
	repo   *Repository
	client *db.Client
	media  mediaLinker
}

// NewService constructs a category schema service.
func NewService(repo *Repository, client *db.Client, media mediaLinker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schema repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if media == nil {
		return nil, fmt.Errorf("media service required")
	}
	return &service{repo: repo, client: client, media: media}, nil
}

// CategoryInput is the payload for creating or replacing a category.
type CategoryInput struct {
	Name         string
	Slug         string
	Description  *string
	MediaAssetID *uuid.UUID
	IsActive     bool
}

// AttributeInput is the payload for creating or replacing an attribute
// definition.
type AttributeInput struct {
	Name         string
	Label        string
	DataType     enums.AttributeDataType
	Options      []string
	IsRequired   bool
	IsFilterable bool
	DisplayOrder int
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	normalized, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}
	if normalized.MediaAssetID != nil {
		if _, err := s.media.Require(ctx, *normalized.MediaAssetID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		ID:           uuid.New(),
		Name:         normalized.Name,
		Slug:         normalized.Slug,
		Description:  normalized.Description,
		MediaAssetID: normalized.MediaAssetID,
		IsActive:     normalized.IsActive,
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).CreateCategory(ctx, category); err != nil {
			return db.Classify(err, "creating category")
		}
		if category.MediaAssetID != nil {
			return s.media.LinkUsage(ctx, tx, *category.MediaAssetID, models.UsageEntityCategory, category.ID, "media_asset_id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	normalized, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "category not found")
	}
	if normalized.MediaAssetID != nil {
		if _, err := s.media.Require(ctx, *normalized.MediaAssetID); err != nil {
			return nil, err
		}
	}

	assetChanged := !uuidPtrEqual(category.MediaAssetID, normalized.MediaAssetID)
	category.Name = normalized.Name
	category.Slug = normalized.Slug
	category.Description = normalized.Description
	category.MediaAssetID = normalized.MediaAssetID
	category.IsActive = normalized.IsActive

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateCategory(ctx, category); err != nil {
			return db.Classify(err, "updating category")
		}
		if assetChanged {
			if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityCategory, category.ID); err != nil {
				return err
			}
			if category.MediaAssetID != nil {
				return s.media.LinkUsage(ctx, tx, *category.MediaAssetID, models.UsageEntityCategory, category.ID, "media_asset_id")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		return db.Classify(err, "category not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityCategory, id); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).DeleteCategory(ctx, id); err != nil {
			return db.Classify(err, "deleting category")
		}
		return nil
	})
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "category not found")
	}
	return category, nil
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.repo.FindCategoryBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, db.Classify(err, "category not found")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, db.Classify(err, "listing categories")
	}
	return categories, nil
}

func (s *service) CreateAttribute(ctx context.Context, categoryID uuid.UUID, input AttributeInput) (*models.CategoryAttribute, error) {
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, db.Classify(err, "category not found")
	}
	normalized, err := validateAttributeInput(input)
	if err != nil {
		return nil, err
	}

	attr := &models.CategoryAttribute{
		ID:           uuid.New(),
		CategoryID:   categoryID,
		Name:         normalized.Name,
		Label:        normalized.Label,
		DataType:     normalized.DataType,
		Options:      models.StringList(normalized.Options),
		IsRequired:   normalized.IsRequired,
		IsFilterable: normalized.IsFilterable,
		DisplayOrder: normalized.DisplayOrder,
	}
	if _, err := s.repo.CreateAttribute(ctx, attr); err != nil {
		return nil, db.Classify(err, "creating attribute")
	}
	return attr, nil
}

func (s *service) UpdateAttribute(ctx context.Context, id uuid.UUID, input AttributeInput) (*models.CategoryAttribute, error) {
	attr, err := s.repo.FindAttributeByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "attribute not found")
	}
	normalized, err := validateAttributeInput(input)
	if err != nil {
		return nil, err
	}

	attr.Name = normalized.Name
	attr.Label = normalized.Label
	attr.DataType = normalized.DataType
	attr.Options = models.StringList(normalized.Options)
	attr.IsRequired = normalized.IsRequired
	attr.IsFilterable = normalized.IsFilterable
	attr.DisplayOrder = normalized.DisplayOrder

	if err := s.repo.UpdateAttribute(ctx, attr); err != nil {
		return nil, db.Classify(err, "updating attribute")
	}
	return attr, nil
}

func (s *service) DeleteAttribute(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindAttributeByID(ctx, id); err != nil {
		return db.Classify(err, "attribute not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteAttribute(ctx, id); err != nil {
			return db.Classify(err, "deleting attribute")
		}
		return nil
	})
}

func (s *service) ListAttributes(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryAttribute, error) {
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, db.Classify(err, "category not found")
	}
	attrs, err := s.repo.ListAttributes(ctx, categoryID)
	if err != nil {
		return nil, db.Classify(err, "listing attributes")
	}
	return attrs, nil
}

func validateCategoryInput(input CategoryInput) (CategoryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugRe.MatchString(input.Slug) {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase words separated by hyphens").
			WithDetails(map[string]any{"slug": input.Slug})
	}
	return input, nil
}

func validateAttributeInput(input AttributeInput) (AttributeInput, error) {
	input.Name = strings.ToLower(strings.TrimSpace(input.Name))
	if !attrNameRe.MatchString(input.Name) {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "attribute name must be lowercase letters, digits or underscores").
			WithDetails(map[string]any{"name": input.Name})
	}
	input.Label = strings.TrimSpace(input.Label)
	if input.Label == "" {
		input.Label = input.Name
	}
	if !input.DataType.IsValid() {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "invalid attribute data type")
	}

	usesOptions := input.DataType == enums.AttributeDataTypeSelect || input.DataType == enums.AttributeDataTypeMultiSelect
	if usesOptions {
		options := make([]string, 0, len(input.Options))
		seen := map[string]struct{}{}
		for _, option := range input.Options {
			option = strings.TrimSpace(option)
			if option == "" {
				continue
			}
			if _, dup := seen[option]; dup {
				continue
			}
			seen[option] = struct{}{}
			options = append(options, option)
		}
		if len(options) == 0 {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "select attributes need at least one option")
		}
		input.Options = options
	} else {
		input.Options = nil
	}
	return input, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
