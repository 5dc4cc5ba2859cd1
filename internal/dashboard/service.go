package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/internal/catalog"
	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
)

const (
	trendingLimit    = 12
	collectionsLimit = 10
)

type contentSource interface {
	ListDashboardSections(ctx context.Context, visibleOnly bool) ([]models.DashboardSection, error)
	ListNavbarLinks(ctx context.Context, visibleOnly bool) ([]models.NavbarLink, error)
	ListCarouselSlides(ctx context.Context, visibleOnly bool) ([]models.CarouselSlide, error)
	ListFooterLinks(ctx context.Context, visibleOnly bool) ([]models.FooterLink, error)
	ListSocialIcons(ctx context.Context, visibleOnly bool) ([]models.SocialIcon, error)
	ListTopCollections(ctx context.Context, limit int) ([]models.Collection, error)
}

type productSource interface {
	ListTrending(ctx context.Context, limit int) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service assembles the storefront dashboard from its configured sections and
// records per-user product visits.
type Service interface {
	Assemble(ctx context.Context, userID string) (*DashboardDTO, error)
	SectionPayload(ctx context.Context, key, userID string) (any, error)
	RecentlyVisited(ctx context.Context, userID string) ([]catalog.ProductDTO, error)
	TrackVisit(ctx context.Context, userID string, productID uuid.UUID) error
}

type service struct {
	repo     *Repository
	client   *db.Client
	content  contentSource
	products productSource
	now      func() time.Time
}

// NewService constructs a dashboard service.
func NewService(repo *Repository, client *db.Client, content contentSource, products productSource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if content == nil {
		return nil, fmt.Errorf("content service required")
	}
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	return &service{
		repo:     repo,
		client:   client,
		content:  content,
		products: products,
		now:      time.Now,
	}, nil
}

// DashboardDTO is the full storefront payload: every visible section in its
// configured order with a per-key payload.
type DashboardDTO struct {
	Sections []SectionDTO `json:"sections"`
}

// SectionDTO is one assembled dashboard section. Payload is nil for keys the
// assembler does not recognize.
type SectionDTO struct {
	Key          string  `json:"key"`
	Title        string  `json:"title"`
	Layout       *string `json:"layout,omitempty"`
	DisplayOrder int     `json:"display_order"`
	Payload      any     `json:"payload"`
}

// NavbarNodeDTO is one navigation entry with its nested children.
type NavbarNodeDTO struct {
	ID           uuid.UUID       `json:"id"`
	Label        string          `json:"label"`
	URL          string          `json:"url"`
	Icon         *string         `json:"icon,omitempty"`
	DisplayOrder int             `json:"display_order"`
	Children     []NavbarNodeDTO `json:"children"`
}

// CarouselSlideDTO is one active hero slide.
type CarouselSlideDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle,omitempty"`
	ImageURL     string    `json:"image_url"`
	LinkURL      *string   `json:"link_url,omitempty"`
	ButtonText   *string   `json:"button_text,omitempty"`
	DisplayOrder int       `json:"display_order"`
}

// CollectionDTO is one curated collection card.
type CollectionDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	LinkURL     *string   `json:"link_url,omitempty"`
	VisitCount  int       `json:"visit_count"`
}

// FooterGroupDTO is one footer column.
type FooterGroupDTO struct {
	Name  string          `json:"name"`
	Links []FooterLinkDTO `json:"links"`
}

// FooterLinkDTO is one footer entry.
type FooterLinkDTO struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	URL   string    `json:"url"`
}

// SocialIconDTO is one footer social link.
type SocialIconDTO struct {
	ID       uuid.UUID `json:"id"`
	Platform string    `json:"platform"`
	IconRef  string    `json:"icon_ref"`
	URL      string    `json:"url"`
}

// FooterDTO combines the grouped links with the social icons.
type FooterDTO struct {
	Groups      []FooterGroupDTO `json:"groups"`
	SocialIcons []SocialIconDTO  `json:"social_icons"`
}

func (s *service) Assemble(ctx context.Context, userID string) (*DashboardDTO, error) {
	sections, err := s.content.ListDashboardSections(ctx, true)
	if err != nil {
		return nil, err
	}

	out := make([]SectionDTO, 0, len(sections))
	for _, section := range sections {
		payload, err := s.buildPayload(ctx, section.SectionKey, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, SectionDTO{
			Key:          section.SectionKey,
			Title:        section.Title,
			Layout:       section.Layout,
			DisplayOrder: section.DisplayOrder,
			Payload:      payload,
		})
	}
	return &DashboardDTO{Sections: out}, nil
}

// SectionPayload builds one section's payload by key, for the per-section
// routes.
func (s *service) SectionPayload(ctx context.Context, key, userID string) (any, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	payload, err := s.buildPayload(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown dashboard section %q", key))
	}
	return payload, nil
}

// buildPayload returns nil for keys the assembler does not recognize.
func (s *service) buildPayload(ctx context.Context, key, userID string) (any, error) {
	switch key {
	case models.SectionKeyNavbar:
		return s.navbarPayload(ctx)
	case models.SectionKeyCarousel:
		return s.carouselPayload(ctx)
	case models.SectionKeyTrending:
		return s.trendingPayload(ctx)
	case models.SectionKeyRecentlyVisited:
		return s.RecentlyVisited(ctx, userID)
	case models.SectionKeyCollections:
		return s.collectionsPayload(ctx)
	case models.SectionKeyFooter:
		return s.footerPayload(ctx)
	default:
		return nil, nil
	}
}

// navbarPayload builds the navigation tree from the flat rows. A row whose
// parent is missing or hidden surfaces at the top level; the visited set
// stops parent cycles from recursing forever.
func (s *service) navbarPayload(ctx context.Context) ([]NavbarNodeDTO, error) {
	links, err := s.content.ListNavbarLinks(ctx, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.NavbarLink, len(links))
	children := make(map[uuid.UUID][]models.NavbarLink)
	var roots []models.NavbarLink
	for _, link := range links {
		byID[link.ID] = link
	}
	for _, link := range links {
		if link.ParentID == nil {
			roots = append(roots, link)
			continue
		}
		if _, ok := byID[*link.ParentID]; !ok {
			roots = append(roots, link)
			continue
		}
		children[*link.ParentID] = append(children[*link.ParentID], link)
	}

	visited := make(map[uuid.UUID]bool, len(links))
	var build func(link models.NavbarLink) NavbarNodeDTO
	build = func(link models.NavbarLink) NavbarNodeDTO {
		visited[link.ID] = true
		node := NavbarNodeDTO{
			ID:           link.ID,
			Label:        link.Label,
			URL:          link.URL,
			Icon:         link.Icon,
			DisplayOrder: link.DisplayOrder,
			Children:     []NavbarNodeDTO{},
		}
		for _, child := range children[link.ID] {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]NavbarNodeDTO, 0, len(roots))
	for _, root := range roots {
		if visited[root.ID] {
			continue
		}
		tree = append(tree, build(root))
	}
	// Rows trapped in a parent cycle never reach a root; surface them rather
	// than dropping them.
	for _, link := range links {
		if !visited[link.ID] {
			tree = append(tree, build(link))
		}
	}
	return tree, nil
}

func (s *service) carouselPayload(ctx context.Context) ([]CarouselSlideDTO, error) {
	slides, err := s.content.ListCarouselSlides(ctx, true)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]CarouselSlideDTO, 0, len(slides))
	for _, slide := range slides {
		if slide.StartsAt != nil && now.Before(*slide.StartsAt) {
			continue
		}
		if slide.EndsAt != nil && now.After(*slide.EndsAt) {
			continue
		}
		out = append(out, CarouselSlideDTO{
			ID:           slide.ID,
			Title:        slide.Title,
			Subtitle:     slide.Subtitle,
			ImageURL:     slide.ImageURL,
			LinkURL:      slide.LinkURL,
			ButtonText:   slide.ButtonText,
			DisplayOrder: slide.DisplayOrder,
		})
	}
	return out, nil
}

func (s *service) trendingPayload(ctx context.Context) ([]catalog.ProductDTO, error) {
	products, err := s.products.ListTrending(ctx, trendingLimit)
	if err != nil {
		return nil, db.Classify(err, "loading trending products")
	}
	out := make([]catalog.ProductDTO, 0, len(products))
	for _, product := range products {
		out = append(out, catalog.NewProductDTO(product))
	}
	return out, nil
}

func (s *service) collectionsPayload(ctx context.Context) ([]CollectionDTO, error) {
	collections, err := s.content.ListTopCollections(ctx, collectionsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionDTO, 0, len(collections))
	for _, collection := range collections {
		out = append(out, CollectionDTO{
			ID:          collection.ID,
			Name:        collection.Name,
			Description: collection.Description,
			ImageURL:    collection.ImageURL,
			LinkURL:     collection.LinkURL,
			VisitCount:  collection.VisitCount,
		})
	}
	return out, nil
}

func (s *service) footerPayload(ctx context.Context) (*FooterDTO, error) {
	links, err := s.content.ListFooterLinks(ctx, true)
	if err != nil {
		return nil, err
	}
	icons, err := s.content.ListSocialIcons(ctx, true)
	if err != nil {
		return nil, err
	}

	// Links arrive ordered by group then display order; preserve first-seen
	// group order.
	var groups []FooterGroupDTO
	index := make(map[string]int)
	for _, link := range links {
		i, ok := index[link.GroupName]
		if !ok {
			i = len(groups)
			index[link.GroupName] = i
			groups = append(groups, FooterGroupDTO{Name: link.GroupName, Links: []FooterLinkDTO{}})
		}
		groups[i].Links = append(groups[i].Links, FooterLinkDTO{
			ID:    link.ID,
			Label: link.Label,
			URL:   link.URL,
		})
	}

	iconDTOs := make([]SocialIconDTO, 0, len(icons))
	for _, icon := range icons {
		iconDTOs = append(iconDTOs, SocialIconDTO{
			ID:       icon.ID,
			Platform: icon.Platform,
			IconRef:  icon.IconRef,
			URL:      icon.URL,
		})
	}
	if groups == nil {
		groups = []FooterGroupDTO{}
	}
	return &FooterDTO{Groups: groups, SocialIcons: iconDTOs}, nil
}

func (s *service) RecentlyVisited(ctx context.Context, userID string) ([]catalog.ProductDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []catalog.ProductDTO{}, nil
	}
	visits, err := s.repo.ListVisits(ctx, userID, models.RecentlyVisitedCap)
	if err != nil {
		return nil, db.Classify(err, "loading recent visits")
	}
	out := make([]catalog.ProductDTO, 0, len(visits))
	for _, visit := range visits {
		if !visit.Product.IsVisible {
			continue
		}
		out = append(out, catalog.NewProductDTO(visit.Product))
	}
	return out, nil
}

func (s *service) TrackVisit(ctx context.Context, userID string, productID uuid.UUID) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		return db.Classify(err, "product not found")
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpsertVisit(ctx, userID, productID, s.now().UTC()); err != nil {
			return db.Classify(err, "recording visit")
		}
		if err := txRepo.EvictBeyondCap(ctx, userID, models.RecentlyVisitedCap); err != nil {
			return db.Classify(err, "evicting old visits")
		}
		return nil
	})
}
