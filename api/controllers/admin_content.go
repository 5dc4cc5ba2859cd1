package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/api/validators"
	"github.com/weaponlions/ecommerce-server/internal/content"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
)

type navbarLinkRequest struct {
	Label        string  `json:"label" validate:"required,min=1,max=100"`
	URL          string  `json:"url" validate:"required"`
	Icon         *string `json:"icon"`
	ParentID     *string `json:"parent_id" validate:"omitempty,uuid"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsVisible    *bool   `json:"is_visible"`
}

type carouselSlideRequest struct {
	Title        string     `json:"title" validate:"required,min=1,max=255"`
	Subtitle     *string    `json:"subtitle"`
	ImageURL     string     `json:"image_url"`
	MediaAssetID *string    `json:"media_asset_id" validate:"omitempty,uuid"`
	LinkURL      *string    `json:"link_url"`
	ButtonText   *string    `json:"button_text"`
	DisplayOrder int        `json:"display_order" validate:"gte=0"`
	IsVisible    *bool      `json:"is_visible"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
}

type footerLinkRequest struct {
	GroupName    string `json:"group_name" validate:"required,min=1,max=100"`
	Label        string `json:"label" validate:"required,min=1,max=100"`
	URL          string `json:"url" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsVisible    *bool  `json:"is_visible"`
}

type socialIconRequest struct {
	Platform     string  `json:"platform" validate:"required,min=1,max=50"`
	IconRef      string  `json:"icon_ref"`
	MediaAssetID *string `json:"media_asset_id" validate:"omitempty,uuid"`
	URL          string  `json:"url" validate:"required"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsVisible    *bool   `json:"is_visible"`
}

type collectionRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=255"`
	Description  *string `json:"description"`
	MediaAssetID *string `json:"media_asset_id" validate:"omitempty,uuid"`
	ImageURL     *string `json:"image_url"`
	LinkURL      *string `json:"link_url"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsVisible    *bool   `json:"is_visible"`
}

type dashboardSectionRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=100"`
	Layout       *string `json:"layout"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsVisible    *bool   `json:"is_visible"`
}

func visibleOrDefault(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}

// listContent adapts the shared "list everything for admin" shape.
func listContent[T any](list func(ctx context.Context, visibleOnly bool) ([]T, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context(), false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// deleteContent adapts the shared "delete by path id" shape.
func deleteContent(remove func(ctx context.Context, id uuid.UUID) error, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// --- navbar links ---

func ListNavbarLinks(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent(svc.ListNavbarLinks, logg)
}

func decodeNavbarLink(r *http.Request) (content.NavbarLinkInput, error) {
	var req navbarLinkRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return content.NavbarLinkInput{}, err
	}
	parentID, err := parseOptionalUUID(req.ParentID, "parent_id")
	if err != nil {
		return content.NavbarLinkInput{}, err
	}
	return content.NavbarLinkInput{
		Label:        req.Label,
		URL:          req.URL,
		Icon:         req.Icon,
		ParentID:     parentID,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    visibleOrDefault(req.IsVisible),
	}, nil
}

func CreateNavbarLink(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeNavbarLink(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link, err := svc.CreateNavbarLink(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

func UpdateNavbarLink(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeNavbarLink(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link, err := svc.UpdateNavbarLink(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, link)
	}
}

func DeleteNavbarLink(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc.DeleteNavbarLink, logg)
}

// --- carousel slides ---

func ListCarouselSlides(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent(svc.ListCarouselSlides, logg)
}

func decodeCarouselSlide(r *http.Request) (content.CarouselSlideInput, error) {
	var req carouselSlideRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return content.CarouselSlideInput{}, err
	}
	assetID, err := parseOptionalUUID(req.MediaAssetID, "media_asset_id")
	if err != nil {
		return content.CarouselSlideInput{}, err
	}
	return content.CarouselSlideInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		ImageURL:     req.ImageURL,
		MediaAssetID: assetID,
		LinkURL:      req.LinkURL,
		ButtonText:   req.ButtonText,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    visibleOrDefault(req.IsVisible),
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	}, nil
}

func CreateCarouselSlide(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeCarouselSlide(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		slide, err := svc.CreateCarouselSlide(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, slide)
	}
}

func UpdateCarouselSlide(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeCarouselSlide(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		slide, err := svc.UpdateCarouselSlide(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, slide)
	}
}

func DeleteCarouselSlide(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc.DeleteCarouselSlide, logg)
}

// --- footer links ---

func ListFooterLinks(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent(svc.ListFooterLinks, logg)
}

func decodeFooterLink(r *http.Request) (content.FooterLinkInput, error) {
	var req footerLinkRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return content.FooterLinkInput{}, err
	}
	return content.FooterLinkInput{
		GroupName:    req.GroupName,
		Label:        req.Label,
		URL:          req.URL,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    visibleOrDefault(req.IsVisible),
	}, nil
}

func CreateFooterLink(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeFooterLink(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link, err := svc.CreateFooterLink(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

func UpdateFooterLink(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeFooterLink(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link, err := svc.UpdateFooterLink(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, link)
	}
}

func DeleteFooterLink(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc.DeleteFooterLink, logg)
}

// --- social icons ---

func ListSocialIcons(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent(svc.ListSocialIcons, logg)
}

func decodeSocialIcon(r *http.Request) (content.SocialIconInput, error) {
	var req socialIconRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return content.SocialIconInput{}, err
	}
	assetID, err := parseOptionalUUID(req.MediaAssetID, "media_asset_id")
	if err != nil {
		return content.SocialIconInput{}, err
	}
	return content.SocialIconInput{
		Platform:     req.Platform,
		IconRef:      req.IconRef,
		MediaAssetID: assetID,
		URL:          req.URL,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    visibleOrDefault(req.IsVisible),
	}, nil
}

func CreateSocialIcon(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeSocialIcon(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		icon, err := svc.CreateSocialIcon(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, icon)
	}
}

func UpdateSocialIcon(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeSocialIcon(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		icon, err := svc.UpdateSocialIcon(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, icon)
	}
}

func DeleteSocialIcon(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc.DeleteSocialIcon, logg)
}

// --- collections ---

func ListAllCollections(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent(svc.ListCollections, logg)
}

func decodeCollection(r *http.Request) (content.CollectionInput, error) {
	var req collectionRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return content.CollectionInput{}, err
	}
	assetID, err := parseOptionalUUID(req.MediaAssetID, "media_asset_id")
	if err != nil {
		return content.CollectionInput{}, err
	}
	return content.CollectionInput{
		Name:         req.Name,
		Description:  req.Description,
		MediaAssetID: assetID,
		ImageURL:     req.ImageURL,
		LinkURL:      req.LinkURL,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    visibleOrDefault(req.IsVisible),
	}, nil
}

func CreateCollection(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeCollection(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		collection, err := svc.CreateCollection(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, collection)
	}
}

func UpdateCollection(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeCollection(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		collection, err := svc.UpdateCollection(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, collection)
	}
}

func DeleteCollection(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc.DeleteCollection, logg)
}

// --- dashboard sections ---

func ListDashboardSections(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent(svc.ListDashboardSections, logg)
}

func UpdateDashboardSection(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req dashboardSectionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		section, err := svc.UpdateDashboardSection(r.Context(), id, content.DashboardSectionInput{
			Title:        req.Title,
			Layout:       req.Layout,
			DisplayOrder: req.DisplayOrder,
			IsVisible:    visibleOrDefault(req.IsVisible),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, section)
	}
}
