package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

type stubAssetRepo struct {
	assets  map[uuid.UUID]*models.MediaAsset
	created []*models.MediaAsset
	deleted []uuid.UUID
}

func newStubAssetRepo() *stubAssetRepo {
	return &stubAssetRepo{assets: map[uuid.UUID]*models.MediaAsset{}}
}

func (r *stubAssetRepo) Create(_ context.Context, asset *models.MediaAsset) (*models.MediaAsset, error) {
	r.created = append(r.created, asset)
	r.assets[asset.ID] = asset
	return asset, nil
}

func (r *stubAssetRepo) FindByID(_ context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *asset
	return &copied, nil
}

func (r *stubAssetRepo) Update(_ context.Context, asset *models.MediaAsset) error {
	r.assets[asset.ID] = asset
	return nil
}

func (r *stubAssetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.assets, id)
	return nil
}

func (r *stubAssetRepo) List(_ context.Context, _ ListFilters, _ pagination.Params) ([]models.MediaAsset, int64, error) {
	out := make([]models.MediaAsset, 0, len(r.assets))
	for _, asset := range r.assets {
		out = append(out, *asset)
	}
	return out, int64(len(out)), nil
}

type stubUsageRepo struct {
	links   []*models.MediaUsage
	unlinks int
}

func (r *stubUsageRepo) Link(_ context.Context, _ *gorm.DB, usage *models.MediaUsage) error {
	r.links = append(r.links, usage)
	return nil
}

func (r *stubUsageRepo) UnlinkAllForEntity(_ context.Context, _ *gorm.DB, _ string, _ uuid.UUID) error {
	r.unlinks++
	return nil
}

func (r *stubUsageRepo) FindUsageByID(_ context.Context, id uuid.UUID) (*models.MediaUsage, error) {
	for _, usage := range r.links {
		if usage.ID == id {
			return usage, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsageRepo) UnlinkByID(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	kept := r.links[:0]
	for _, usage := range r.links {
		if usage.ID == id {
			r.unlinks++
			continue
		}
		kept = append(kept, usage)
	}
	r.links = kept
	return nil
}

func (r *stubUsageRepo) ListForEntity(_ context.Context, entityType string, entityID uuid.UUID) ([]models.MediaUsage, error) {
	var out []models.MediaUsage
	for _, usage := range r.links {
		if usage.EntityType == entityType && usage.EntityID == entityID {
			out = append(out, *usage)
		}
	}
	return out, nil
}

func (r *stubUsageRepo) ListForAsset(_ context.Context, assetID uuid.UUID) ([]models.MediaUsage, error) {
	var out []models.MediaUsage
	for _, usage := range r.links {
		if usage.MediaAssetID == assetID {
			out = append(out, *usage)
		}
	}
	return out, nil
}

type stubBlobStore struct {
	saved   map[string][]byte
	moves   []string
	removed []string
	saveErr error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{saved: map[string][]byte{}}
}

func (s *stubBlobStore) Save(category enums.MediaCategory, fileName string, data io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	payload, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.saved[string(category)+"/"+fileName] = payload
	return s.PublicURL(category, fileName), nil
}

func (s *stubBlobStore) Move(from, to enums.MediaCategory, fileName string) (string, error) {
	s.moves = append(s.moves, string(from)+"->"+string(to)+"/"+fileName)
	return s.PublicURL(to, fileName), nil
}

func (s *stubBlobStore) Remove(category enums.MediaCategory, fileName string) error {
	s.removed = append(s.removed, string(category)+"/"+fileName)
	return nil
}

func (s *stubBlobStore) PublicURL(category enums.MediaCategory, fileName string) string {
	return "/uploads/" + string(category) + "/" + fileName
}

func newTestService(t *testing.T) (Service, *stubAssetRepo, *stubUsageRepo, *stubBlobStore) {
	t.Helper()

	repo := newStubAssetRepo()
	usages := &stubUsageRepo{}
	store := newStubBlobStore()
	svc, err := NewService(repo, usages, store, 10*1024*1024)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, usages, store
}

func pngPayload(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadStoresBlobAndProbesDimensions(t *testing.T) {
	svc, repo, _, store := newTestService(t)

	payload := pngPayload(t, 4, 3)
	asset, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "Hero Banner.PNG",
		ContentType: "image/png",
		Category:    enums.MediaCategoryCarousel,
		Data:        bytes.NewReader(payload),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.Width == nil || *asset.Width != 4 || asset.Height == nil || *asset.Height != 3 {
		t.Fatalf("expected 4x3 dimensions, got %v x %v", asset.Width, asset.Height)
	}
	if !strings.HasSuffix(asset.FileName, "-hero-banner.png") {
		t.Fatalf("expected sanitized stored name, got %q", asset.FileName)
	}
	if asset.URL != "/uploads/carousel/"+asset.FileName {
		t.Fatalf("unexpected url %q", asset.URL)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created row, got %d", len(repo.created))
	}
	if _, ok := store.saved["carousel/"+asset.FileName]; !ok {
		t.Fatalf("blob not saved under carousel/")
	}
}

func TestUploadRejectsUnsupportedContentType(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		Data:        strings.NewReader("x"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	repo := newStubAssetRepo()
	svc, err := NewService(repo, &stubUsageRepo{}, newStubBlobStore(), 16)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Upload(context.Background(), UploadInput{
		FileName:    "big.png",
		ContentType: "image/png",
		Data:        strings.NewReader(strings.Repeat("a", 64)),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("oversized upload must not persist a row")
	}
}

func TestUploadCleansUpBlobWhenPersistFails(t *testing.T) {
	store := newStubBlobStore()
	repo := &failingAssetRepo{}
	svc, err := NewService(repo, &stubUsageRepo{}, store, 10*1024*1024)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Upload(context.Background(), UploadInput{
		FileName:    "pic.png",
		ContentType: "image/png",
		Data:        bytes.NewReader(pngPayload(t, 1, 1)),
	})
	if err == nil {
		t.Fatalf("expected persist failure")
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected orphaned blob to be removed, got %d removals", len(store.removed))
	}
}

type failingAssetRepo struct{ stubAssetRepo }

func (r *failingAssetRepo) Create(_ context.Context, _ *models.MediaAsset) (*models.MediaAsset, error) {
	return nil, errors.New("insert failed")
}

func TestUpdateMetadataRelocatesBlobOnCategoryChange(t *testing.T) {
	svc, repo, _, store := newTestService(t)

	asset := &models.MediaAsset{
		ID:       uuid.New(),
		FileName: "abc-pic.png",
		Category: enums.MediaCategoryGeneral,
		URL:      "/uploads/general/abc-pic.png",
	}
	repo.assets[asset.ID] = asset

	newCategory := enums.MediaCategoryProduct
	altText := "a product shot"
	updated, err := svc.UpdateMetadata(context.Background(), asset.ID, UpdateInput{
		AltText:  &altText,
		Category: &newCategory,
	})
	if err != nil {
		t.Fatalf("UpdateMetadata: %v", err)
	}

	if updated.Category != enums.MediaCategoryProduct {
		t.Fatalf("expected product category, got %s", updated.Category)
	}
	if updated.URL != "/uploads/product/abc-pic.png" {
		t.Fatalf("unexpected url %q", updated.URL)
	}
	if len(store.moves) != 1 {
		t.Fatalf("expected one blob move, got %d", len(store.moves))
	}
	if updated.AltText == nil || *updated.AltText != altText {
		t.Fatalf("alt text not applied")
	}
}

func TestDeleteRemovesBlobAndRow(t *testing.T) {
	svc, repo, _, store := newTestService(t)

	asset := &models.MediaAsset{
		ID:       uuid.New(),
		FileName: "abc-gone.png",
		Category: enums.MediaCategoryGeneral,
	}
	repo.assets[asset.ID] = asset

	if err := svc.Delete(context.Background(), asset.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected blob removal")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != asset.ID {
		t.Fatalf("expected row delete for %s", asset.ID)
	}
}

func TestDeleteMissingAssetIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLinkUsageValidatesArguments(t *testing.T) {
	svc, _, usages, _ := newTestService(t)

	err := svc.LinkUsage(context.Background(), nil, uuid.Nil, "product", uuid.New(), "media_asset_id")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(usages.links) != 0 {
		t.Fatalf("invalid link must not reach the repo")
	}

	if err := svc.LinkUsage(context.Background(), nil, uuid.New(), "product", uuid.New(), "media_asset_id"); err != nil {
		t.Fatalf("LinkUsage: %v", err)
	}
	if len(usages.links) != 1 {
		t.Fatalf("expected one link, got %d", len(usages.links))
	}
}

func TestRequireMissingAssetIsInvalidReference(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Require(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidReference {
		t.Fatalf("expected INVALID_REFERENCE, got %v", err)
	}
}
