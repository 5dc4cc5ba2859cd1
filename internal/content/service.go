package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
)

type mediaLinker interface {
	Require(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	LinkUsage(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, entityType string, entityID uuid.UUID, fieldName string) error
	UnlinkAllForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error
}

// Service owns the admin-managed storefront content: navigation, carousel,
// footer, social icons, collections and the dashboard section registry.
type Service interface {
	CreateNavbarLink(ctx context.Context, input NavbarLinkInput) (*models.NavbarLink, error)
	UpdateNavbarLink(ctx context.Context, id uuid.UUID, input NavbarLinkInput) (*models.NavbarLink, error)
	DeleteNavbarLink(ctx context.Context, id uuid.UUID) error
	ListNavbarLinks(ctx context.Context, visibleOnly bool) ([]models.NavbarLink, error)

	CreateCarouselSlide(ctx context.Context, input CarouselSlideInput) (*models.CarouselSlide, error)
	UpdateCarouselSlide(ctx context.Context, id uuid.UUID, input CarouselSlideInput) (*models.CarouselSlide, error)
	DeleteCarouselSlide(ctx context.Context, id uuid.UUID) error
	ListCarouselSlides(ctx context.Context, visibleOnly bool) ([]models.CarouselSlide, error)

	CreateFooterLink(ctx context.Context, input FooterLinkInput) (*models.FooterLink, error)
	UpdateFooterLink(ctx context.Context, id uuid.UUID, input FooterLinkInput) (*models.FooterLink, error)
	DeleteFooterLink(ctx context.Context, id uuid.UUID) error
	ListFooterLinks(ctx context.Context, visibleOnly bool) ([]models.FooterLink, error)

	CreateSocialIcon(ctx context.Context, input SocialIconInput) (*models.SocialIcon, error)
	UpdateSocialIcon(ctx context.Context, id uuid.UUID, input SocialIconInput) (*models.SocialIcon, error)
	DeleteSocialIcon(ctx context.Context, id uuid.UUID) error
	ListSocialIcons(ctx context.Context, visibleOnly bool) ([]models.SocialIcon, error)

	CreateCollection(ctx context.Context, input CollectionInput) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id uuid.UUID, input CollectionInput) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error
	ListCollections(ctx context.Context, visibleOnly bool) ([]models.Collection, error)
	ListTopCollections(ctx context.Context, limit int) ([]models.Collection, error)
	VisitCollection(ctx context.Context, id uuid.UUID) error

	ListDashboardSections(ctx context.Context, visibleOnly bool) ([]models.DashboardSection, error)
	UpdateDashboardSection(ctx context.Context, id uuid.UUID, input DashboardSectionInput) (*models.DashboardSection, error)
}

type service struct {
	repo   *Repository
	client *db.Client
	media  mediaLinker
}

// NewService constructs a content service.
func NewService(repo *Repository, client *db.Client, media mediaLinker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if media == nil {
		return nil, fmt.Errorf("media service required")
	}
	return &service{repo: repo, client: client, media: media}, nil
}

// NavbarLinkInput is the create/update payload for a navigation node.
type NavbarLinkInput struct {
	Label        string
	URL          string
	Icon         *string
	ParentID     *uuid.UUID
	DisplayOrder int
	IsVisible    bool
}

// CarouselSlideInput is the create/update payload for a hero slide. ImageURL
// may be given directly; when MediaAssetID is set the asset's URL wins.
type CarouselSlideInput struct {
	Title        string
	Subtitle     *string
	ImageURL     string
	MediaAssetID *uuid.UUID
	LinkURL      *string
	ButtonText   *string
	DisplayOrder int
	IsVisible    bool
	StartsAt     *time.Time
	EndsAt       *time.Time
}

// FooterLinkInput is the create/update payload for a footer entry.
type FooterLinkInput struct {
	GroupName    string
	Label        string
	URL          string
	DisplayOrder int
	IsVisible    bool
}

// SocialIconInput is the create/update payload for a social link. One of
// IconRef or MediaAssetID is required; the asset's URL becomes the icon ref.
type SocialIconInput struct {
	Platform     string
	IconRef      string
	MediaAssetID *uuid.UUID
	URL          string
	DisplayOrder int
	IsVisible    bool
}

// CollectionInput is the create/update payload for a curated collection.
type CollectionInput struct {
	Name         string
	Description  *string
	MediaAssetID *uuid.UUID
	ImageURL     *string
	LinkURL      *string
	DisplayOrder int
	IsVisible    bool
}

// DashboardSectionInput carries the admin-editable section fields.
type DashboardSectionInput struct {
	Title        string
	Layout       *string
	DisplayOrder int
	IsVisible    bool
}

// --- navbar links ---

func (s *service) CreateNavbarLink(ctx context.Context, input NavbarLinkInput) (*models.NavbarLink, error) {
	if err := validateNavbarLink(input); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if _, err := s.repo.FindNavbarLink(ctx, *input.ParentID); err != nil {
			return nil, db.Classify(err, "parent navbar link not found")
		}
	}
	link := &models.NavbarLink{
		ID:           uuid.New(),
		Label:        strings.TrimSpace(input.Label),
		URL:          strings.TrimSpace(input.URL),
		Icon:         input.Icon,
		ParentID:     input.ParentID,
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
	}
	if err := s.repo.CreateNavbarLink(ctx, link); err != nil {
		return nil, db.Classify(err, "creating navbar link")
	}
	return link, nil
}

func (s *service) UpdateNavbarLink(ctx context.Context, id uuid.UUID, input NavbarLinkInput) (*models.NavbarLink, error) {
	if err := validateNavbarLink(input); err != nil {
		return nil, err
	}
	link, err := s.repo.FindNavbarLink(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "navbar link not found")
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "navbar link cannot be its own parent")
		}
		if _, err := s.repo.FindNavbarLink(ctx, *input.ParentID); err != nil {
			return nil, db.Classify(err, "parent navbar link not found")
		}
	}
	link.Label = strings.TrimSpace(input.Label)
	link.URL = strings.TrimSpace(input.URL)
	link.Icon = input.Icon
	link.ParentID = input.ParentID
	link.DisplayOrder = input.DisplayOrder
	link.IsVisible = input.IsVisible
	if err := s.repo.UpdateNavbarLink(ctx, link); err != nil {
		return nil, db.Classify(err, "updating navbar link")
	}
	return link, nil
}

func (s *service) DeleteNavbarLink(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindNavbarLink(ctx, id); err != nil {
		return db.Classify(err, "navbar link not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteNavbarLink(ctx, id); err != nil {
			return db.Classify(err, "deleting navbar link")
		}
		return nil
	})
}

func (s *service) ListNavbarLinks(ctx context.Context, visibleOnly bool) ([]models.NavbarLink, error) {
	links, err := s.repo.ListNavbarLinks(ctx, visibleOnly)
	if err != nil {
		return nil, db.Classify(err, "listing navbar links")
	}
	return links, nil
}

func validateNavbarLink(input NavbarLinkInput) error {
	if strings.TrimSpace(input.Label) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "navbar link label is required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "navbar link url is required")
	}
	return nil
}

// --- carousel slides ---

func (s *service) CreateCarouselSlide(ctx context.Context, input CarouselSlideInput) (*models.CarouselSlide, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carousel slide title is required")
	}
	imageURL, err := s.resolveImageURL(ctx, input.MediaAssetID, strings.TrimSpace(input.ImageURL))
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carousel slide requires an image url or media asset")
	}
	if err := validateWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	slide := &models.CarouselSlide{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Subtitle:     input.Subtitle,
		ImageURL:     imageURL,
		MediaAssetID: input.MediaAssetID,
		LinkURL:      input.LinkURL,
		ButtonText:   input.ButtonText,
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
		StartsAt:     input.StartsAt,
		EndsAt:       input.EndsAt,
	}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateCarouselSlide(ctx, slide); err != nil {
			return db.Classify(err, "creating carousel slide")
		}
		if slide.MediaAssetID != nil {
			return s.media.LinkUsage(ctx, tx, *slide.MediaAssetID, models.UsageEntityCarouselSlide, slide.ID, "media_asset_id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *service) UpdateCarouselSlide(ctx context.Context, id uuid.UUID, input CarouselSlideInput) (*models.CarouselSlide, error) {
	slide, err := s.repo.FindCarouselSlide(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "carousel slide not found")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carousel slide title is required")
	}
	if err := validateWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	assetChanged := !uuidPtrEqual(slide.MediaAssetID, input.MediaAssetID)
	imageURL := strings.TrimSpace(input.ImageURL)
	if input.MediaAssetID != nil && (assetChanged || imageURL == "") {
		resolved, err := s.resolveImageURL(ctx, input.MediaAssetID, "")
		if err != nil {
			return nil, err
		}
		imageURL = resolved
	}
	if imageURL == "" {
		imageURL = slide.ImageURL
	}
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carousel slide requires an image url or media asset")
	}

	slide.Title = strings.TrimSpace(input.Title)
	slide.Subtitle = input.Subtitle
	slide.ImageURL = imageURL
	slide.MediaAssetID = input.MediaAssetID
	slide.LinkURL = input.LinkURL
	slide.ButtonText = input.ButtonText
	slide.DisplayOrder = input.DisplayOrder
	slide.IsVisible = input.IsVisible
	slide.StartsAt = input.StartsAt
	slide.EndsAt = input.EndsAt

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateCarouselSlide(ctx, slide); err != nil {
			return db.Classify(err, "updating carousel slide")
		}
		if assetChanged {
			if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityCarouselSlide, slide.ID); err != nil {
				return err
			}
			if slide.MediaAssetID != nil {
				return s.media.LinkUsage(ctx, tx, *slide.MediaAssetID, models.UsageEntityCarouselSlide, slide.ID, "media_asset_id")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *service) DeleteCarouselSlide(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCarouselSlide(ctx, id); err != nil {
		return db.Classify(err, "carousel slide not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityCarouselSlide, id); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).DeleteCarouselSlide(ctx, id); err != nil {
			return db.Classify(err, "deleting carousel slide")
		}
		return nil
	})
}

func (s *service) ListCarouselSlides(ctx context.Context, visibleOnly bool) ([]models.CarouselSlide, error) {
	slides, err := s.repo.ListCarouselSlides(ctx, visibleOnly)
	if err != nil {
		return nil, db.Classify(err, "listing carousel slides")
	}
	return slides, nil
}

func validateWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule window ends before it starts")
	}
	return nil
}

// --- footer links ---

func (s *service) CreateFooterLink(ctx context.Context, input FooterLinkInput) (*models.FooterLink, error) {
	if err := validateFooterLink(input); err != nil {
		return nil, err
	}
	link := &models.FooterLink{
		ID:           uuid.New(),
		GroupName:    strings.TrimSpace(input.GroupName),
		Label:        strings.TrimSpace(input.Label),
		URL:          strings.TrimSpace(input.URL),
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
	}
	if err := s.repo.CreateFooterLink(ctx, link); err != nil {
		return nil, db.Classify(err, "creating footer link")
	}
	return link, nil
}

func (s *service) UpdateFooterLink(ctx context.Context, id uuid.UUID, input FooterLinkInput) (*models.FooterLink, error) {
	if err := validateFooterLink(input); err != nil {
		return nil, err
	}
	link, err := s.repo.FindFooterLink(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "footer link not found")
	}
	link.GroupName = strings.TrimSpace(input.GroupName)
	link.Label = strings.TrimSpace(input.Label)
	link.URL = strings.TrimSpace(input.URL)
	link.DisplayOrder = input.DisplayOrder
	link.IsVisible = input.IsVisible
	if err := s.repo.UpdateFooterLink(ctx, link); err != nil {
		return nil, db.Classify(err, "updating footer link")
	}
	return link, nil
}

func (s *service) DeleteFooterLink(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindFooterLink(ctx, id); err != nil {
		return db.Classify(err, "footer link not found")
	}
	if err := s.repo.DeleteFooterLink(ctx, id); err != nil {
		return db.Classify(err, "deleting footer link")
	}
	return nil
}

func (s *service) ListFooterLinks(ctx context.Context, visibleOnly bool) ([]models.FooterLink, error) {
	links, err := s.repo.ListFooterLinks(ctx, visibleOnly)
	if err != nil {
		return nil, db.Classify(err, "listing footer links")
	}
	return links, nil
}

func validateFooterLink(input FooterLinkInput) error {
	if strings.TrimSpace(input.GroupName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "footer link group is required")
	}
	if strings.TrimSpace(input.Label) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "footer link label is required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "footer link url is required")
	}
	return nil
}

// --- social icons ---

func (s *service) CreateSocialIcon(ctx context.Context, input SocialIconInput) (*models.SocialIcon, error) {
	if err := validateSocialIcon(input); err != nil {
		return nil, err
	}
	iconRef := strings.TrimSpace(input.IconRef)
	if input.MediaAssetID != nil {
		asset, err := s.media.Require(ctx, *input.MediaAssetID)
		if err != nil {
			return nil, err
		}
		iconRef = asset.URL
	}

	icon := &models.SocialIcon{
		ID:           uuid.New(),
		Platform:     strings.TrimSpace(input.Platform),
		IconRef:      iconRef,
		MediaAssetID: input.MediaAssetID,
		URL:          strings.TrimSpace(input.URL),
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateSocialIcon(ctx, icon); err != nil {
			return db.Classify(err, "creating social icon")
		}
		if icon.MediaAssetID != nil {
			return s.media.LinkUsage(ctx, tx, *icon.MediaAssetID, models.UsageEntitySocialIcon, icon.ID, "media_asset_id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return icon, nil
}

func (s *service) UpdateSocialIcon(ctx context.Context, id uuid.UUID, input SocialIconInput) (*models.SocialIcon, error) {
	if err := validateSocialIcon(input); err != nil {
		return nil, err
	}
	icon, err := s.repo.FindSocialIcon(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "social icon not found")
	}

	assetChanged := !uuidPtrEqual(icon.MediaAssetID, input.MediaAssetID)
	iconRef := strings.TrimSpace(input.IconRef)
	if input.MediaAssetID != nil {
		asset, err := s.media.Require(ctx, *input.MediaAssetID)
		if err != nil {
			return nil, err
		}
		iconRef = asset.URL
	}

	icon.Platform = strings.TrimSpace(input.Platform)
	icon.IconRef = iconRef
	icon.MediaAssetID = input.MediaAssetID
	icon.URL = strings.TrimSpace(input.URL)
	icon.DisplayOrder = input.DisplayOrder
	icon.IsVisible = input.IsVisible

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateSocialIcon(ctx, icon); err != nil {
			return db.Classify(err, "updating social icon")
		}
		if assetChanged {
			if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntitySocialIcon, icon.ID); err != nil {
				return err
			}
			if icon.MediaAssetID != nil {
				return s.media.LinkUsage(ctx, tx, *icon.MediaAssetID, models.UsageEntitySocialIcon, icon.ID, "media_asset_id")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return icon, nil
}

func (s *service) DeleteSocialIcon(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindSocialIcon(ctx, id); err != nil {
		return db.Classify(err, "social icon not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntitySocialIcon, id); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).DeleteSocialIcon(ctx, id); err != nil {
			return db.Classify(err, "deleting social icon")
		}
		return nil
	})
}

func (s *service) ListSocialIcons(ctx context.Context, visibleOnly bool) ([]models.SocialIcon, error) {
	icons, err := s.repo.ListSocialIcons(ctx, visibleOnly)
	if err != nil {
		return nil, db.Classify(err, "listing social icons")
	}
	return icons, nil
}

func validateSocialIcon(input SocialIconInput) error {
	if strings.TrimSpace(input.Platform) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "social icon platform is required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "social icon url is required")
	}
	if strings.TrimSpace(input.IconRef) == "" && input.MediaAssetID == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "social icon requires an icon ref or media asset")
	}
	return nil
}

// --- collections ---

func (s *service) CreateCollection(ctx context.Context, input CollectionInput) (*models.Collection, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection name is required")
	}
	imageURL := input.ImageURL
	if input.MediaAssetID != nil {
		asset, err := s.media.Require(ctx, *input.MediaAssetID)
		if err != nil {
			return nil, err
		}
		imageURL = &asset.URL
	}

	collection := &models.Collection{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		MediaAssetID: input.MediaAssetID,
		ImageURL:     imageURL,
		LinkURL:      input.LinkURL,
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateCollection(ctx, collection); err != nil {
			return db.Classify(err, "creating collection")
		}
		if collection.MediaAssetID != nil {
			return s.media.LinkUsage(ctx, tx, *collection.MediaAssetID, models.UsageEntityCollection, collection.ID, "media_asset_id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *service) UpdateCollection(ctx context.Context, id uuid.UUID, input CollectionInput) (*models.Collection, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection name is required")
	}
	collection, err := s.repo.FindCollection(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "collection not found")
	}

	assetChanged := !uuidPtrEqual(collection.MediaAssetID, input.MediaAssetID)
	imageURL := input.ImageURL
	if input.MediaAssetID != nil {
		asset, err := s.media.Require(ctx, *input.MediaAssetID)
		if err != nil {
			return nil, err
		}
		imageURL = &asset.URL
	}

	collection.Name = strings.TrimSpace(input.Name)
	collection.Description = input.Description
	collection.MediaAssetID = input.MediaAssetID
	collection.ImageURL = imageURL
	collection.LinkURL = input.LinkURL
	collection.DisplayOrder = input.DisplayOrder
	collection.IsVisible = input.IsVisible

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateCollection(ctx, collection); err != nil {
			return db.Classify(err, "updating collection")
		}
		if assetChanged {
			if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityCollection, collection.ID); err != nil {
				return err
			}
			if collection.MediaAssetID != nil {
				return s.media.LinkUsage(ctx, tx, *collection.MediaAssetID, models.UsageEntityCollection, collection.ID, "media_asset_id")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *service) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCollection(ctx, id); err != nil {
		return db.Classify(err, "collection not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.media.UnlinkAllForEntity(ctx, tx, models.UsageEntityCollection, id); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).DeleteCollection(ctx, id); err != nil {
			return db.Classify(err, "deleting collection")
		}
		return nil
	})
}

func (s *service) ListCollections(ctx context.Context, visibleOnly bool) ([]models.Collection, error) {
	collections, err := s.repo.ListCollections(ctx, visibleOnly)
	if err != nil {
		return nil, db.Classify(err, "listing collections")
	}
	return collections, nil
}

func (s *service) ListTopCollections(ctx context.Context, limit int) ([]models.Collection, error) {
	collections, err := s.repo.ListTopCollections(ctx, limit)
	if err != nil {
		return nil, db.Classify(err, "listing top collections")
	}
	return collections, nil
}

func (s *service) VisitCollection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCollection(ctx, id); err != nil {
		return db.Classify(err, "collection not found")
	}
	if err := s.repo.IncrementCollectionVisit(ctx, id); err != nil {
		return db.Classify(err, "recording collection visit")
	}
	return nil
}

// --- dashboard sections ---

func (s *service) ListDashboardSections(ctx context.Context, visibleOnly bool) ([]models.DashboardSection, error) {
	sections, err := s.repo.ListDashboardSections(ctx, visibleOnly)
	if err != nil {
		return nil, db.Classify(err, "listing dashboard sections")
	}
	return sections, nil
}

func (s *service) UpdateDashboardSection(ctx context.Context, id uuid.UUID, input DashboardSectionInput) (*models.DashboardSection, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "section title is required")
	}
	section, err := s.repo.FindDashboardSection(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "dashboard section not found")
	}
	section.Title = strings.TrimSpace(input.Title)
	section.Layout = input.Layout
	section.DisplayOrder = input.DisplayOrder
	section.IsVisible = input.IsVisible
	if err := s.repo.UpdateDashboardSection(ctx, section); err != nil {
		return nil, db.Classify(err, "updating dashboard section")
	}
	return section, nil
}

func (s *service) resolveImageURL(ctx context.Context, assetID *uuid.UUID, fallback string) (string, error) {
	if assetID == nil {
		return fallback, nil
	}
	asset, err := s.media.Require(ctx, *assetID)
	if err != nil {
		return "", err
	}
	return asset.URL, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
