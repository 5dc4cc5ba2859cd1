package media

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

func setupMediaTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	assets := `
CREATE TABLE IF NOT EXISTS media_assets (
  id TEXT PRIMARY KEY,
  file_name TEXT NOT NULL UNIQUE,
  original_name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'general',
  content_type TEXT NOT NULL,
  size_bytes INTEGER NOT NULL,
  width INTEGER,
  height INTEGER,
  url TEXT NOT NULL,
  alt_text TEXT,
  title TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	usages := `
CREATE TABLE IF NOT EXISTS media_usages (
  id TEXT PRIMARY KEY,
  media_asset_id TEXT NOT NULL,
  entity_type TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  field_name TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (media_asset_id, entity_type, entity_id, field_name)
);`
	require.NoError(t, conn.Exec(assets).Error)
	require.NoError(t, conn.Exec(usages).Error)
	return conn
}

func seedAsset(t *testing.T, conn *gorm.DB, name string, category enums.MediaCategory) *models.MediaAsset {
	t.Helper()

	asset := &models.MediaAsset{
		ID:           uuid.New(),
		FileName:     name,
		OriginalName: name,
		Category:     category,
		ContentType:  "image/png",
		SizeBytes:    10,
		URL:          "/uploads/" + string(category) + "/" + name,
	}
	require.NoError(t, conn.Create(asset).Error)
	return asset
}

func TestUsageLinkIsIdempotent(t *testing.T) {
	conn := setupMediaTestDB(t)
	repo := NewUsageRepository(conn)
	asset := seedAsset(t, conn, "a-one.png", enums.MediaCategoryProduct)
	entityID := uuid.New()

	link := func() {
		require.NoError(t, repo.Link(context.Background(), nil, &models.MediaUsage{
			ID:           uuid.New(),
			MediaAssetID: asset.ID,
			EntityType:   models.UsageEntityProduct,
			EntityID:     entityID,
			FieldName:    "media_asset_id",
		}))
	}
	link()
	link()

	usages, err := repo.ListForAsset(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
}

func TestUnlinkAllForEntityLeavesOtherEntitiesAlone(t *testing.T) {
	conn := setupMediaTestDB(t)
	repo := NewUsageRepository(conn)
	asset := seedAsset(t, conn, "a-two.png", enums.MediaCategoryProduct)
	keepID, dropID := uuid.New(), uuid.New()

	for _, entityID := range []uuid.UUID{keepID, dropID} {
		require.NoError(t, repo.Link(context.Background(), nil, &models.MediaUsage{
			ID:           uuid.New(),
			MediaAssetID: asset.ID,
			EntityType:   models.UsageEntityProduct,
			EntityID:     entityID,
			FieldName:    "media_asset_id",
		}))
	}

	require.NoError(t, repo.UnlinkAllForEntity(context.Background(), nil, models.UsageEntityProduct, dropID))

	usages, err := repo.ListForAsset(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	require.Equal(t, keepID, usages[0].EntityID)
}

func TestAssetDeleteCascadesUsageRows(t *testing.T) {
	conn := setupMediaTestDB(t)
	assetRepo := NewRepository(conn)
	usageRepo := NewUsageRepository(conn)
	asset := seedAsset(t, conn, "a-three.png", enums.MediaCategoryGeneral)

	require.NoError(t, usageRepo.Link(context.Background(), nil, &models.MediaUsage{
		ID:           uuid.New(),
		MediaAssetID: asset.ID,
		EntityType:   models.UsageEntityCategory,
		EntityID:     uuid.New(),
		FieldName:    "media_asset_id",
	}))

	require.NoError(t, assetRepo.Delete(context.Background(), asset.ID))

	var count int64
	require.NoError(t, conn.Model(&models.MediaUsage{}).Where("media_asset_id = ?", asset.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestListFiltersByCategoryAndSearch(t *testing.T) {
	conn := setupMediaTestDB(t)
	repo := NewRepository(conn)

	seedAsset(t, conn, "a-banner.png", enums.MediaCategoryCarousel)
	shirt := seedAsset(t, conn, "a-shirt.png", enums.MediaCategoryProduct)
	seedAsset(t, conn, "a-shoes.png", enums.MediaCategoryProduct)

	assets, total, err := repo.List(context.Background(), ListFilters{Category: enums.MediaCategoryProduct}, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, assets, 2)

	assets, total, err = repo.List(context.Background(), ListFilters{Search: "SHIRT"}, pagination.Params{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, shirt.ID, assets[0].ID)
}
