package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
)

// Repository wraps GORM operations for the storefront content entities:
// navbar links, carousel slides, footer links, social icons, collections and
// dashboard sections.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a content repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// --- navbar links ---

func (r *Repository) CreateNavbarLink(ctx context.Context, link *models.NavbarLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *Repository) FindNavbarLink(ctx context.Context, id uuid.UUID) (*models.NavbarLink, error) {
	var link models.NavbarLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *Repository) UpdateNavbarLink(ctx context.Context, link *models.NavbarLink) error {
	return r.db.WithContext(ctx).Model(link).
		Select("label", "url", "icon", "parent_id", "display_order", "is_visible", "updated_at").
		Updates(map[string]any{
			"label":         link.Label,
			"url":           link.URL,
			"icon":          link.Icon,
			"parent_id":     link.ParentID,
			"display_order": link.DisplayOrder,
			"is_visible":    link.IsVisible,
		}).Error
}

// DeleteNavbarLink removes a link and reparents its children to the top level.
func (r *Repository) DeleteNavbarLink(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.NavbarLink{}).
		Where("parent_id = ?", id).
		Update("parent_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.NavbarLink{}).Error
}

func (r *Repository) ListNavbarLinks(ctx context.Context, visibleOnly bool) ([]models.NavbarLink, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC, label ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var links []models.NavbarLink
	if err := q.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// --- carousel slides ---

func (r *Repository) CreateCarouselSlide(ctx context.Context, slide *models.CarouselSlide) error {
	return r.db.WithContext(ctx).Create(slide).Error
}

func (r *Repository) FindCarouselSlide(ctx context.Context, id uuid.UUID) (*models.CarouselSlide, error) {
	var slide models.CarouselSlide
	if err := r.db.WithContext(ctx).First(&slide, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *Repository) UpdateCarouselSlide(ctx context.Context, slide *models.CarouselSlide) error {
	return r.db.WithContext(ctx).Model(slide).
		Select("title", "subtitle", "image_url", "media_asset_id", "link_url",
			"button_text", "display_order", "is_visible", "starts_at", "ends_at", "updated_at").
		Updates(map[string]any{
			"title":          slide.Title,
			"subtitle":       slide.Subtitle,
			"image_url":      slide.ImageURL,
			"media_asset_id": slide.MediaAssetID,
			"link_url":       slide.LinkURL,
			"button_text":    slide.ButtonText,
			"display_order":  slide.DisplayOrder,
			"is_visible":     slide.IsVisible,
			"starts_at":      slide.StartsAt,
			"ends_at":        slide.EndsAt,
		}).Error
}

func (r *Repository) DeleteCarouselSlide(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarouselSlide{}).Error
}

func (r *Repository) ListCarouselSlides(ctx context.Context, visibleOnly bool) ([]models.CarouselSlide, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC, created_at ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var slides []models.CarouselSlide
	if err := q.Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

// --- footer links ---

func (r *Repository) CreateFooterLink(ctx context.Context, link *models.FooterLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *Repository) FindFooterLink(ctx context.Context, id uuid.UUID) (*models.FooterLink, error) {
	var link models.FooterLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *Repository) UpdateFooterLink(ctx context.Context, link *models.FooterLink) error {
	return r.db.WithContext(ctx).Model(link).
		Select("group_name", "label", "url", "display_order", "is_visible", "updated_at").
		Updates(map[string]any{
			"group_name":    link.GroupName,
			"label":         link.Label,
			"url":           link.URL,
			"display_order": link.DisplayOrder,
			"is_visible":    link.IsVisible,
		}).Error
}

func (r *Repository) DeleteFooterLink(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FooterLink{}).Error
}

func (r *Repository) ListFooterLinks(ctx context.Context, visibleOnly bool) ([]models.FooterLink, error) {
	q := r.db.WithContext(ctx).Order("group_name ASC, display_order ASC, label ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var links []models.FooterLink
	if err := q.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// --- social icons ---

func (r *Repository) CreateSocialIcon(ctx context.Context, icon *models.SocialIcon) error {
	return r.db.WithContext(ctx).Create(icon).Error
}

func (r *Repository) FindSocialIcon(ctx context.Context, id uuid.UUID) (*models.SocialIcon, error) {
	var icon models.SocialIcon
	if err := r.db.WithContext(ctx).First(&icon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &icon, nil
}

func (r *Repository) UpdateSocialIcon(ctx context.Context, icon *models.SocialIcon) error {
	return r.db.WithContext(ctx).Model(icon).
		Select("platform", "icon_ref", "media_asset_id", "url", "display_order", "is_visible", "updated_at").
		Updates(map[string]any{
			"platform":       icon.Platform,
			"icon_ref":       icon.IconRef,
			"media_asset_id": icon.MediaAssetID,
			"url":            icon.URL,
			"display_order":  icon.DisplayOrder,
			"is_visible":     icon.IsVisible,
		}).Error
}

func (r *Repository) DeleteSocialIcon(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SocialIcon{}).Error
}

func (r *Repository) ListSocialIcons(ctx context.Context, visibleOnly bool) ([]models.SocialIcon, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC, platform ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var icons []models.SocialIcon
	if err := q.Find(&icons).Error; err != nil {
		return nil, err
	}
	return icons, nil
}

// --- collections ---

func (r *Repository) CreateCollection(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *Repository) FindCollection(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *Repository) UpdateCollection(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Model(collection).
		Select("name", "description", "media_asset_id", "image_url", "link_url",
			"display_order", "is_visible", "updated_at").
		Updates(map[string]any{
			"name":           collection.Name,
			"description":    collection.Description,
			"media_asset_id": collection.MediaAssetID,
			"image_url":      collection.ImageURL,
			"link_url":       collection.LinkURL,
			"display_order":  collection.DisplayOrder,
			"is_visible":     collection.IsVisible,
		}).Error
}

// DeleteCollection removes the collection and its product pairings.
func (r *Repository) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("collection_id = ?", id).
		Delete(&models.ProductCollection{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Collection{}).Error
}

func (r *Repository) ListCollections(ctx context.Context, visibleOnly bool) ([]models.Collection, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC, name ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var collections []models.Collection
	if err := q.Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// ListTopCollections returns the most visited visible collections.
func (r *Repository) ListTopCollections(ctx context.Context, limit int) ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.db.WithContext(ctx).
		Where("is_visible = ?", true).
		Order("visit_count DESC, display_order ASC").
		Limit(limit).
		Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// IncrementCollectionVisit bumps the visit counter atomically.
func (r *Repository) IncrementCollectionVisit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("id = ?", id).
		UpdateColumn("visit_count", gorm.Expr("visit_count + 1")).Error
}

// --- dashboard sections ---

func (r *Repository) ListDashboardSections(ctx context.Context, visibleOnly bool) ([]models.DashboardSection, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC, section_key ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var sections []models.DashboardSection
	if err := q.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *Repository) FindDashboardSection(ctx context.Context, id uuid.UUID) (*models.DashboardSection, error) {
	var section models.DashboardSection
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// UpdateDashboardSection persists the admin-editable columns. The section key
// is seeded and never changes.
func (r *Repository) UpdateDashboardSection(ctx context.Context, section *models.DashboardSection) error {
	return r.db.WithContext(ctx).Model(section).
		Select("title", "layout", "display_order", "is_visible", "updated_at").
		Updates(map[string]any{
			"title":         section.Title,
			"layout":        section.Layout,
			"display_order": section.DisplayOrder,
			"is_visible":    section.IsVisible,
		}).Error
}
