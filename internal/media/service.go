package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

var allowedContentTypes = map[string]string{
	"image/jpeg":               "image/jpeg",
	"image/png":                "image/png",
	"image/gif":                "image/gif",
	"image/webp":               "image/webp",
	"image/svg+xml":            "image/svg+xml",
	"image/bmp":                "image/bmp",
	"image/x-icon":             "image/x-icon",
	"image/vnd.microsoft.icon": "image/x-icon",
}

type assetRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) (*models.MediaAsset, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	Update(ctx context.Context, asset *models.MediaAsset) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.MediaAsset, int64, error)
}

type usageRepository interface {
	Link(ctx context.Context, tx *gorm.DB, usage *models.MediaUsage) error
	UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error
	FindUsageByID(ctx context.Context, id uuid.UUID) (*models.MediaUsage, error)
	UnlinkByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListForAsset(ctx context.Context, assetID uuid.UUID) ([]models.MediaUsage, error)
	ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.MediaUsage, error)
}

type blobStore interface {
	Save(category enums.MediaCategory, fileName string, data io.Reader) (string, error)
	Move(from, to enums.MediaCategory, fileName string) (string, error)
	Remove(category enums.MediaCategory, fileName string) error
	PublicURL(category enums.MediaCategory, fileName string) string
}

// Service owns the media asset library: blob storage, metadata and the usage
// ledger other entities link through.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*models.MediaAsset, error)
	List(ctx context.Context, input ListInput) (pagination.Page[AssetWithUsage], error)
	Get(ctx context.Context, id uuid.UUID) (*AssetWithUsage, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.MediaAsset, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Require resolves an asset another entity wants to reference.
	Require(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	LinkUsage(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, entityType string, entityID uuid.UUID, fieldName string) error
	UnlinkUsageByID(ctx context.Context, usageID uuid.UUID) error
	UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error
	UsagesForAsset(ctx context.Context, assetID uuid.UUID) ([]models.MediaUsage, error)
	UsagesForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.MediaUsage, error)
}

type service struct {
	repo           assetRepository
	usages         usageRepository
	store          blobStore
	maxUploadBytes int64
}

// NewService constructs a media service backed by the provided repositories
// and blob store.
func NewService(repo assetRepository, usages usageRepository, store blobStore, maxUploadBytes int64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if usages == nil {
		return nil, fmt.Errorf("usage repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if maxUploadBytes <= 0 {
		return nil, fmt.Errorf("max upload bytes must be positive")
	}
	return &service{
		repo:           repo,
		usages:         usages,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}, nil
}

// UploadInput models one multipart upload.
type UploadInput struct {
	FileName    string
	ContentType string
	Category    enums.MediaCategory
	AltText     *string
	Title       *string
	Data        io.Reader
}

// ListInput narrows and pages the asset listing.
type ListInput struct {
	Search   string
	Category enums.MediaCategory
	Page     pagination.Params
}

// UpdateInput carries the mutable metadata of an asset. Nil fields are left
// untouched.
type UpdateInput struct {
	AltText  *string
	Title    *string
	Category *enums.MediaCategory
}

// AssetWithUsage decorates an asset with its reference count so admins can
// judge whether a delete is safe.
type AssetWithUsage struct {
	models.MediaAsset
	UsageCount int `json:"usage_count"`
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*models.MediaAsset, error) {
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}

	contentType, ok := allowedContentTypes[strings.ToLower(strings.TrimSpace(input.ContentType))]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported content type").
			WithDetails(map[string]any{"content_type": input.ContentType})
	}

	category := input.Category
	if category == "" {
		category = enums.MediaCategoryGeneral
	}
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media category")
	}

	if input.Data == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file payload is required")
	}
	data, err := io.ReadAll(io.LimitReader(input.Data, s.maxUploadBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload payload")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file payload is empty")
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.maxUploadBytes))
	}

	assetID := uuid.New()
	storedName := buildStoredName(assetID, fileName)
	width, height := probeDimensions(contentType, data)

	url, err := s.store.Save(category, storedName, bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing upload blob")
	}

	asset := &models.MediaAsset{
		ID:           assetID,
		FileName:     storedName,
		OriginalName: fileName,
		Category:     category,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
		Width:        width,
		Height:       height,
		URL:          url,
		AltText:      input.AltText,
		Title:        input.Title,
	}
	if _, err := s.repo.Create(ctx, asset); err != nil {
		_ = s.store.Remove(category, storedName)
		return nil, db.Classify(err, "persisting media asset")
	}
	return asset, nil
}

func (s *service) List(ctx context.Context, input ListInput) (pagination.Page[AssetWithUsage], error) {
	if input.Category != "" && !input.Category.IsValid() {
		return pagination.Page[AssetWithUsage]{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid media category")
	}

	assets, total, err := s.repo.List(ctx, ListFilters{Search: input.Search, Category: input.Category}, input.Page)
	if err != nil {
		return pagination.Page[AssetWithUsage]{}, db.Classify(err, "listing media assets")
	}

	items := make([]AssetWithUsage, 0, len(assets))
	for _, asset := range assets {
		usages, err := s.usages.ListForAsset(ctx, asset.ID)
		if err != nil {
			return pagination.Page[AssetWithUsage]{}, db.Classify(err, "counting asset usage")
		}
		items = append(items, AssetWithUsage{MediaAsset: asset, UsageCount: len(usages)})
	}
	return pagination.NewPage(items, int(total), input.Page), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AssetWithUsage, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "media asset not found")
	}
	usages, err := s.usages.ListForAsset(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "counting asset usage")
	}
	return &AssetWithUsage{MediaAsset: *asset, UsageCount: len(usages)}, nil
}

func (s *service) UpdateMetadata(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.MediaAsset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "media asset not found")
	}

	if input.AltText != nil {
		asset.AltText = input.AltText
	}
	if input.Title != nil {
		asset.Title = input.Title
	}
	if input.Category != nil && *input.Category != asset.Category {
		newCategory := *input.Category
		if !newCategory.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media category")
		}
		url, err := s.store.Move(asset.Category, newCategory, asset.FileName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "relocating asset blob")
		}
		asset.Category = newCategory
		asset.URL = url
	}

	if err := s.repo.Update(ctx, asset); err != nil {
		return nil, db.Classify(err, "updating media asset")
	}
	return asset, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return db.Classify(err, "media asset not found")
	}
	if err := s.store.Remove(asset.Category, asset.FileName); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing asset blob")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return db.Classify(err, "deleting media asset")
	}
	return nil
}

func (s *service) Require(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidReference, err, "referenced media asset does not exist").
			WithDetails(map[string]any{"media_asset_id": id})
	}
	return asset, nil
}

func (s *service) LinkUsage(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, entityType string, entityID uuid.UUID, fieldName string) error {
	if assetID == uuid.Nil || entityID == uuid.Nil || entityType == "" || fieldName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "usage link requires asset, entity and field")
	}
	usage := &models.MediaUsage{
		ID:           uuid.New(),
		MediaAssetID: assetID,
		EntityType:   entityType,
		EntityID:     entityID,
		FieldName:    fieldName,
	}
	if err := s.usages.Link(ctx, tx, usage); err != nil {
		return db.Classify(err, "linking media usage")
	}
	return nil
}

func (s *service) UnlinkUsageByID(ctx context.Context, usageID uuid.UUID) error {
	if _, err := s.usages.FindUsageByID(ctx, usageID); err != nil {
		return db.Classify(err, "usage link not found")
	}
	if err := s.usages.UnlinkByID(ctx, nil, usageID); err != nil {
		return db.Classify(err, "unlinking media usage")
	}
	return nil
}

func (s *service) UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error {
	if err := s.usages.UnlinkAllForEntity(ctx, tx, entityType, entityID); err != nil {
		return db.Classify(err, "unlinking entity media usage")
	}
	return nil
}

func (s *service) UsagesForAsset(ctx context.Context, assetID uuid.UUID) ([]models.MediaUsage, error) {
	usages, err := s.usages.ListForAsset(ctx, assetID)
	if err != nil {
		return nil, db.Classify(err, "listing asset usage")
	}
	return usages, nil
}

func (s *service) UsagesForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.MediaUsage, error) {
	usages, err := s.usages.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, db.Classify(err, "listing entity media usage")
	}
	return usages, nil
}

func buildStoredName(id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = "file"
	}
	return fmt.Sprintf("%s-%s", id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" || clean == "." || clean == ".." {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range strings.ToLower(clean) {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
