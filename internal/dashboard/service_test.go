package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
)

type stubContentSource struct {
	sections    []models.DashboardSection
	navbarLinks []models.NavbarLink
	slides      []models.CarouselSlide
	footerLinks []models.FooterLink
	socialIcons []models.SocialIcon
	collections []models.Collection
}

func (s *stubContentSource) ListDashboardSections(context.Context, bool) ([]models.DashboardSection, error) {
	return s.sections, nil
}

func (s *stubContentSource) ListNavbarLinks(context.Context, bool) ([]models.NavbarLink, error) {
	return s.navbarLinks, nil
}

func (s *stubContentSource) ListCarouselSlides(context.Context, bool) ([]models.CarouselSlide, error) {
	return s.slides, nil
}

func (s *stubContentSource) ListFooterLinks(context.Context, bool) ([]models.FooterLink, error) {
	return s.footerLinks, nil
}

func (s *stubContentSource) ListSocialIcons(context.Context, bool) ([]models.SocialIcon, error) {
	return s.socialIcons, nil
}

func (s *stubContentSource) ListTopCollections(context.Context, int) ([]models.Collection, error) {
	return s.collections, nil
}

type stubProductSource struct {
	trending []models.Product
	known    map[uuid.UUID]models.Product
}

func (s *stubProductSource) ListTrending(context.Context, int) ([]models.Product, error) {
	return s.trending, nil
}

func (s *stubProductSource) FindProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.known[id]; ok {
		return &product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func setupVisitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS media_assets (
  id TEXT PRIMARY KEY,
  file_name TEXT NOT NULL UNIQUE,
  original_name TEXT NOT NULL,
  content_type TEXT NOT NULL,
  size_bytes INTEGER NOT NULL DEFAULT 0,
  width INTEGER,
  height INTEGER,
  category TEXT NOT NULL DEFAULT 'general',
  url TEXT NOT NULL,
  alt_text TEXT,
  title TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  original_price NUMERIC,
  media_asset_id TEXT,
  category_label TEXT NOT NULL DEFAULT '',
  category_id TEXT,
  badge TEXT,
  rating NUMERIC NOT NULL DEFAULT 0,
  review_count INTEGER NOT NULL DEFAULT 0,
  trending_score INTEGER NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT -1,
  variant_group_id TEXT,
  is_visible INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS recently_visited_products (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  visited_at DATETIME NOT NULL,
  UNIQUE (user_id, product_id)
);`}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name string) models.Product {
	t.Helper()

	product := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.NewFromInt(10),
		Stock:     models.StockUnlimited,
		IsVisible: true,
	}
	require.NoError(t, conn.Create(&product).Error)
	return product
}

func newVisitService(t *testing.T, conn *gorm.DB, products *stubProductSource) *service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), &stubContentSource{}, products)
	require.NoError(t, err)
	return svc.(*service)
}

func TestAssembleOrdersSectionsAndNullsUnknownKeys(t *testing.T) {
	content := &stubContentSource{
		sections: []models.DashboardSection{
			{SectionKey: models.SectionKeyTrending, Title: "Trending", DisplayOrder: 1},
			{SectionKey: "mystery", Title: "Mystery", DisplayOrder: 2},
		},
	}
	products := &stubProductSource{trending: []models.Product{
		{ID: uuid.New(), Name: "Hot", Price: decimal.NewFromInt(5), Stock: 1, IsVisible: true},
	}}

	conn := setupVisitTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), content, products)
	require.NoError(t, err)

	dashboard, err := svc.Assemble(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, dashboard.Sections, 2)
	require.Equal(t, models.SectionKeyTrending, dashboard.Sections[0].Key)
	require.NotNil(t, dashboard.Sections[0].Payload)
	require.Equal(t, "mystery", dashboard.Sections[1].Key)
	require.Nil(t, dashboard.Sections[1].Payload)

	_, err = svc.SectionPayload(context.Background(), "mystery", "")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestNavbarPayloadBuildsTree(t *testing.T) {
	parent := models.NavbarLink{ID: uuid.New(), Label: "Shop", URL: "/shop"}
	child := models.NavbarLink{ID: uuid.New(), Label: "Shoes", URL: "/shop/shoes", ParentID: &parent.ID}
	orphanParent := uuid.New()
	orphan := models.NavbarLink{ID: uuid.New(), Label: "Orphan", URL: "/orphan", ParentID: &orphanParent}

	// Two rows pointing at each other must not recurse forever.
	cycleA := models.NavbarLink{ID: uuid.New(), Label: "A", URL: "/a"}
	cycleB := models.NavbarLink{ID: uuid.New(), Label: "B", URL: "/b", ParentID: &cycleA.ID}
	cycleA.ParentID = &cycleB.ID

	content := &stubContentSource{navbarLinks: []models.NavbarLink{parent, child, orphan, cycleA, cycleB}}
	conn := setupVisitTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), content, &stubProductSource{})
	require.NoError(t, err)

	payload, err := svc.SectionPayload(context.Background(), models.SectionKeyNavbar, "")
	require.NoError(t, err)
	tree := payload.([]NavbarNodeDTO)

	labels := map[string]bool{}
	var walk func(nodes []NavbarNodeDTO)
	walk = func(nodes []NavbarNodeDTO) {
		for _, node := range nodes {
			require.False(t, labels[node.Label], "node %q appeared twice", node.Label)
			labels[node.Label] = true
			walk(node.Children)
		}
	}
	walk(tree)

	require.Len(t, labels, 5)
	for _, root := range tree {
		if root.Label == "Shop" {
			require.Len(t, root.Children, 1)
			require.Equal(t, "Shoes", root.Children[0].Label)
		}
	}
}

func TestCarouselPayloadFiltersByWindow(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	content := &stubContentSource{slides: []models.CarouselSlide{
		{ID: uuid.New(), Title: "Always", ImageURL: "/a.png"},
		{ID: uuid.New(), Title: "Active", ImageURL: "/b.png", StartsAt: &past, EndsAt: &future},
		{ID: uuid.New(), Title: "Expired", ImageURL: "/c.png", EndsAt: &past},
		{ID: uuid.New(), Title: "Upcoming", ImageURL: "/d.png", StartsAt: &future},
	}}

	conn := setupVisitTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), content, &stubProductSource{})
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return now }

	payload, err := svc.SectionPayload(context.Background(), models.SectionKeyCarousel, "")
	require.NoError(t, err)
	slides := payload.([]CarouselSlideDTO)
	require.Len(t, slides, 2)
	require.Equal(t, "Always", slides[0].Title)
	require.Equal(t, "Active", slides[1].Title)
}

func TestFooterPayloadGroupsLinks(t *testing.T) {
	content := &stubContentSource{
		footerLinks: []models.FooterLink{
			{ID: uuid.New(), GroupName: "Company", Label: "About", URL: "/about"},
			{ID: uuid.New(), GroupName: "Company", Label: "Careers", URL: "/careers"},
			{ID: uuid.New(), GroupName: "Help", Label: "Contact", URL: "/contact"},
		},
		socialIcons: []models.SocialIcon{
			{ID: uuid.New(), Platform: "instagram", IconRef: "fa-instagram", URL: "https://instagram.com/shop"},
		},
	}

	conn := setupVisitTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), content, &stubProductSource{})
	require.NoError(t, err)

	payload, err := svc.SectionPayload(context.Background(), models.SectionKeyFooter, "")
	require.NoError(t, err)
	footer := payload.(*FooterDTO)
	require.Len(t, footer.Groups, 2)
	require.Equal(t, "Company", footer.Groups[0].Name)
	require.Len(t, footer.Groups[0].Links, 2)
	require.Len(t, footer.SocialIcons, 1)
}

func TestRecentlyVisitedEmptyWithoutUser(t *testing.T) {
	conn := setupVisitTestDB(t)
	svc := newVisitService(t, conn, &stubProductSource{})

	products, err := svc.RecentlyVisited(context.Background(), "  ")
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestTrackVisitUpsertsAndBumpsTimestamp(t *testing.T) {
	conn := setupVisitTestDB(t)
	product := seedProduct(t, conn, "Viewed")
	source := &stubProductSource{known: map[uuid.UUID]models.Product{product.ID: product}}
	svc := newVisitService(t, conn, source)

	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	require.NoError(t, svc.TrackVisit(context.Background(), "user-1", product.ID))

	svc.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, svc.TrackVisit(context.Background(), "user-1", product.ID))

	var visits []models.RecentlyVisitedProduct
	require.NoError(t, conn.Where("user_id = ?", "user-1").Find(&visits).Error)
	require.Len(t, visits, 1)
	require.True(t, visits[0].VisitedAt.After(base))

	err := svc.TrackVisit(context.Background(), "user-1", uuid.New())
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.TrackVisit(context.Background(), "", product.ID)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestTrackVisitEvictsBeyondCap(t *testing.T) {
	conn := setupVisitTestDB(t)
	source := &stubProductSource{known: map[uuid.UUID]models.Product{}}
	svc := newVisitService(t, conn, source)

	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < models.RecentlyVisitedCap+5; i++ {
		product := seedProduct(t, conn, fmt.Sprintf("Product %02d", i))
		source.known[product.ID] = product
		tick := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return tick }
		require.NoError(t, svc.TrackVisit(context.Background(), "user-1", product.ID))
	}

	var count int64
	require.NoError(t, conn.Model(&models.RecentlyVisitedProduct{}).Where("user_id = ?", "user-1").Count(&count).Error)
	require.Equal(t, int64(models.RecentlyVisitedCap), count)

	// The survivors are the newest visits.
	recent, err := svc.RecentlyVisited(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recent, models.RecentlyVisitedCap)
	require.Equal(t, fmt.Sprintf("Product %02d", models.RecentlyVisitedCap+4), recent[0].Name)
}
