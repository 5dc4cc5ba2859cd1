// Command seed populates an empty database with demo storefront data so the
// dashboard renders something out of the box. Running it twice is safe for
// sections and memberships but will duplicate the demo catalog rows.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/internal/catalog"
	"github.com/weaponlions/ecommerce-server/internal/content"
	"github.com/weaponlions/ecommerce-server/internal/media"
	"github.com/weaponlions/ecommerce-server/internal/schema"
	"github.com/weaponlions/ecommerce-server/pkg/config"
	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
	"github.com/weaponlions/ecommerce-server/pkg/migrate"
	"github.com/weaponlions/ecommerce-server/pkg/storage/local"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	fatalOn(logg, "config", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	fatalOn(logg, "database", err)
	defer dbClient.Close()

	fatalOn(logg, "migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	store, err := local.New(cfg.Storage)
	fatalOn(logg, "storage", err)

	mediaService, err := media.NewService(
		media.NewRepository(dbClient.DB()),
		media.NewUsageRepository(dbClient.DB()),
		store,
		cfg.Media.MaxUploadBytes,
	)
	fatalOn(logg, "media service", err)

	schemaService, err := schema.NewService(schema.NewRepository(dbClient.DB()), dbClient, mediaService)
	fatalOn(logg, "schema service", err)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient, mediaService)
	fatalOn(logg, "catalog service", err)

	contentService, err := content.NewService(content.NewRepository(dbClient.DB()), dbClient, mediaService)
	fatalOn(logg, "content service", err)

	fatalOn(logg, "seeding", run(ctx, schemaService, catalogService, contentService))
	logg.Info(ctx, "demo data seeded")
}

func run(ctx context.Context, schemaSvc schema.Service, catalogSvc catalog.Service, contentSvc content.Service) error {
	apparel, err := schemaSvc.CreateCategory(ctx, schema.CategoryInput{
		Name:     "Apparel",
		Slug:     "apparel",
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("creating apparel category: %w", err)
	}

	attributes := []schema.AttributeInput{
		{
			Name:         "size",
			Label:        "Size",
			DataType:     enums.AttributeDataTypeSelect,
			Options:      []string{"Small", "Medium", "Large"},
			IsRequired:   true,
			IsFilterable: true,
			DisplayOrder: 1,
		},
		{
			Name:         "color",
			Label:        "Color",
			DataType:     enums.AttributeDataTypeMultiSelect,
			Options:      []string{"Red", "Blue", "Black"},
			IsFilterable: true,
			DisplayOrder: 2,
		},
	}
	for _, attr := range attributes {
		if _, err := schemaSvc.CreateAttribute(ctx, apparel.ID, attr); err != nil {
			return fmt.Errorf("creating %s attribute: %w", attr.Name, err)
		}
	}

	products := []catalog.CreateProductInput{
		{
			Name:          "Classic Tee",
			Description:   "Everyday cotton tee.",
			Price:         decimal.NewFromFloat(19.99),
			CategoryID:    &apparel.ID,
			CategoryLabel: "Apparel",
			Rating:        4.5,
			ReviewCount:   128,
			TrendingScore: 90,
			Stock:         250,
			IsVisible:     true,
			AttributeValues: map[string]string{
				"size":  "Medium",
				"color": `["Red","Black"]`,
			},
		},
		{
			Name:          "Zip Hoodie",
			Description:   "Fleece-lined zip hoodie.",
			Price:         decimal.NewFromFloat(49.99),
			CategoryID:    &apparel.ID,
			CategoryLabel: "Apparel",
			Rating:        4.8,
			ReviewCount:   64,
			TrendingScore: 75,
			Stock:         120,
			IsVisible:     true,
			AttributeValues: map[string]string{
				"size":  "Large",
				"color": `["Blue"]`,
			},
		},
		{
			Name:          "Canvas Tote",
			Description:   "Heavy-duty canvas tote bag.",
			Price:         decimal.NewFromFloat(14.50),
			CategoryLabel: "Accessories",
			Rating:        4.2,
			ReviewCount:   31,
			TrendingScore: 60,
			Stock:         -1,
			IsVisible:     true,
		},
	}
	created := make([]*catalog.ProductDetailDTO, 0, len(products))
	for _, input := range products {
		detail, err := catalogSvc.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("creating product %s: %w", input.Name, err)
		}
		created = append(created, detail)
	}

	summer, err := contentSvc.CreateCollection(ctx, content.CollectionInput{
		Name:         "Summer Picks",
		DisplayOrder: 1,
		IsVisible:    true,
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	for i, detail := range created[:2] {
		if err := catalogSvc.AddProductToCollection(ctx, detail.ID, summer.ID, i+1); err != nil {
			return fmt.Errorf("pairing product with collection: %w", err)
		}
	}

	navbar := []content.NavbarLinkInput{
		{Label: "Home", URL: "/", DisplayOrder: 1, IsVisible: true},
		{Label: "Shop", URL: "/products", DisplayOrder: 2, IsVisible: true},
		{Label: "Collections", URL: "/collections", DisplayOrder: 3, IsVisible: true},
	}
	for _, link := range navbar {
		if _, err := contentSvc.CreateNavbarLink(ctx, link); err != nil {
			return fmt.Errorf("creating navbar link %s: %w", link.Label, err)
		}
	}

	if _, err := contentSvc.CreateCarouselSlide(ctx, content.CarouselSlideInput{
		Title:        "New Season Arrivals",
		ImageURL:     "/uploads/carousel/new-season.jpg",
		DisplayOrder: 1,
		IsVisible:    true,
	}); err != nil {
		return fmt.Errorf("creating carousel slide: %w", err)
	}

	footer := []content.FooterLinkInput{
		{GroupName: "Company", Label: "About", URL: "/about", DisplayOrder: 1, IsVisible: true},
		{GroupName: "Company", Label: "Contact", URL: "/contact", DisplayOrder: 2, IsVisible: true},
		{GroupName: "Help", Label: "Shipping", URL: "/shipping", DisplayOrder: 1, IsVisible: true},
	}
	for _, link := range footer {
		if _, err := contentSvc.CreateFooterLink(ctx, link); err != nil {
			return fmt.Errorf("creating footer link %s: %w", link.Label, err)
		}
	}

	if _, err := contentSvc.CreateSocialIcon(ctx, content.SocialIconInput{
		Platform:     "instagram",
		IconRef:      "instagram",
		URL:          "https://instagram.com/example",
		DisplayOrder: 1,
		IsVisible:    true,
	}); err != nil {
		return fmt.Errorf("creating social icon: %w", err)
	}

	return nil
}

func fatalOn(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "seed failed: "+resource, err)
	os.Exit(1)
}
