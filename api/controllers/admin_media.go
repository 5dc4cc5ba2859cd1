package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/api/validators"
	"github.com/weaponlions/ecommerce-server/internal/media"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

// uploadMemoryLimit caps how much of a multipart body is buffered in memory
// before spilling to disk.
const uploadMemoryLimit = 8 << 20

type updateAssetRequest struct {
	AltText  *string `json:"alt_text"`
	Title    *string `json:"title"`
	Category *string `json:"category"`
}

type linkUsageRequest struct {
	EntityType string `json:"entity_type" validate:"required"`
	EntityID   string `json:"entity_id" validate:"required,uuid"`
	FieldName  string `json:"field_name" validate:"required,min=1,max=100"`
}

func parseUsageEntityType(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case models.UsageEntityProduct,
		models.UsageEntityCategory,
		models.UsageEntityCollection,
		models.UsageEntityCarouselSlide,
		models.UsageEntitySocialIcon:
		return normalized, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown entity type "+raw)
}

// UploadAsset handles the multipart media upload endpoint.
func UploadAsset(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body must be multipart/form-data"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		category, err := enums.ParseMediaCategory(r.FormValue("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
			return
		}

		input := media.UploadInput{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Category:    category,
			Data:        file,
		}
		if alt := strings.TrimSpace(r.FormValue("alt_text")); alt != "" {
			input.AltText = &alt
		}
		if title := strings.TrimSpace(r.FormValue("title")); title != "" {
			input.Title = &title
		}

		asset, err := svc.Upload(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, asset)
	}
}

// ListAssets serves the paginated asset library with usage counts.
func ListAssets(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := enums.ParseMediaCategory(r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
			return
		}
		// An absent category parameter means "all", not "general".
		if r.URL.Query().Get("category") == "" {
			category = ""
		}
		page, err := validators.ParseQueryInt(r, "page", 1, math.MinInt32, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, math.MinInt32, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), media.ListInput{
			Search:   r.URL.Query().Get("search"),
			Category: category,
			Page:     pagination.Params{Page: page, PageSize: pageSize}.Normalize(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetAsset serves one asset with its usage count.
func GetAsset(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		asset, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, asset)
	}
}

// UpdateAsset handles asset metadata updates.
func UpdateAsset(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateAssetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := media.UpdateInput{AltText: req.AltText, Title: req.Title}
		if req.Category != nil {
			category, err := enums.ParseMediaCategory(*req.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
				return
			}
			input.Category = &category
		}

		asset, err := svc.UpdateMetadata(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, asset)
	}
}

// DeleteAsset removes an asset and its blob; usage rows cascade away and
// entity references to it fall back to null.
func DeleteAsset(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// LinkAssetUsage records a manual usage link for an asset.
func LinkAssetUsage(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req linkUsageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entityType, err := parseUsageEntityType(req.EntityType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entityID, err := validators.PathUUID(req.EntityID, "entity_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.Require(r.Context(), assetID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.LinkUsage(r.Context(), nil, assetID, entityType, entityID, req.FieldName); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]bool{"linked": true})
	}
}

// UnlinkAssetUsage removes a usage link by its identifier.
func UnlinkAssetUsage(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usageID, err := validators.PathUUID(chi.URLParam(r, "usageId"), "usageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UnlinkUsageByID(r.Context(), usageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"unlinked": true})
	}
}

// ListAssetUsages serves every place an asset is referenced.
func ListAssetUsages(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		usages, err := svc.UsagesForAsset(r.Context(), assetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, usages)
	}
}

// ListEntityUsages serves every asset reference held by one entity.
func ListEntityUsages(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, err := parseUsageEntityType(chi.URLParam(r, "entityType"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entityID, err := validators.PathUUID(chi.URLParam(r, "entityId"), "entityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		usages, err := svc.UsagesForEntity(r.Context(), entityType, entityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, usages)
	}
}
