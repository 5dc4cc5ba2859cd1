package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/api/validators"
	"github.com/weaponlions/ecommerce-server/internal/catalog"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
)

type createProductRequest struct {
	Name            string            `json:"name" validate:"required,min=1,max=255"`
	Description     string            `json:"description"`
	Price           decimal.Decimal   `json:"price" validate:"required"`
	OriginalPrice   *decimal.Decimal  `json:"original_price"`
	MediaAssetID    *string           `json:"media_asset_id" validate:"omitempty,uuid"`
	CategoryLabel   string            `json:"category_label" validate:"max=100"`
	CategoryID      *string           `json:"category_id" validate:"omitempty,uuid"`
	Badge           *string           `json:"badge"`
	Rating          float64           `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount     int               `json:"review_count" validate:"gte=0"`
	TrendingScore   int               `json:"trending_score"`
	Stock           int               `json:"stock" validate:"gte=-1"`
	VariantGroupID  *string           `json:"variant_group_id"`
	IsVisible       *bool             `json:"is_visible"`
	AttributeValues map[string]string `json:"attribute_values"`
}

type updateProductRequest struct {
	Name            *string           `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string           `json:"description"`
	Price           *decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal  `json:"original_price"`
	MediaAssetID    *string           `json:"media_asset_id" validate:"omitempty,uuid"`
	ClearMediaAsset bool              `json:"clear_media_asset"`
	CategoryLabel   *string           `json:"category_label" validate:"omitempty,max=100"`
	CategoryID      *string           `json:"category_id" validate:"omitempty,uuid"`
	ClearCategory   bool              `json:"clear_category"`
	Badge           *string           `json:"badge"`
	Rating          *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount     *int              `json:"review_count" validate:"omitempty,gte=0"`
	TrendingScore   *int              `json:"trending_score"`
	Stock           *int              `json:"stock" validate:"omitempty,gte=-1"`
	VariantGroupID  *string           `json:"variant_group_id"`
	IsVisible       *bool             `json:"is_visible"`
	AttributeValues map[string]string `json:"attribute_values"`
}

type collectionMemberRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := validators.PathUUID(*raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateProduct handles the admin product create endpoint.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mediaID, err := parseOptionalUUID(req.MediaAssetID, "media_asset_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := parseOptionalUUID(req.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visible := true
		if req.IsVisible != nil {
			visible = *req.IsVisible
		}

		detail, err := svc.Create(r.Context(), catalog.CreateProductInput{
			Name:            req.Name,
			Description:     req.Description,
			Price:           req.Price,
			OriginalPrice:   req.OriginalPrice,
			MediaAssetID:    mediaID,
			CategoryLabel:   req.CategoryLabel,
			CategoryID:      categoryID,
			Badge:           req.Badge,
			Rating:          req.Rating,
			ReviewCount:     req.ReviewCount,
			TrendingScore:   req.TrendingScore,
			Stock:           req.Stock,
			VariantGroupID:  req.VariantGroupID,
			IsVisible:       visible,
			AttributeValues: req.AttributeValues,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// UpdateProduct handles the admin product update endpoint.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.MediaAssetID != nil && req.ClearMediaAsset {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "media_asset_id and clear_media_asset are mutually exclusive"))
			return
		}
		if req.CategoryID != nil && req.ClearCategory {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "category_id and clear_category are mutually exclusive"))
			return
		}

		mediaID, err := parseOptionalUUID(req.MediaAssetID, "media_asset_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := parseOptionalUUID(req.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Update(r.Context(), id, catalog.UpdateProductInput{
			Name:            req.Name,
			Description:     req.Description,
			Price:           req.Price,
			OriginalPrice:   req.OriginalPrice,
			MediaAssetID:    mediaID,
			ClearMediaAsset: req.ClearMediaAsset,
			CategoryLabel:   req.CategoryLabel,
			CategoryID:      categoryID,
			ClearCategory:   req.ClearCategory,
			Badge:           req.Badge,
			Rating:          req.Rating,
			ReviewCount:     req.ReviewCount,
			TrendingScore:   req.TrendingScore,
			Stock:           req.Stock,
			VariantGroupID:  req.VariantGroupID,
			IsVisible:       req.IsVisible,
			AttributeValues: req.AttributeValues,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// DeleteProduct handles the admin product delete endpoint.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

// AddCollectionProduct pairs a product with a collection, updating the
// display order in place when the pairing already exists.
func AddCollectionProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req collectionMemberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.PathUUID(req.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.AddProductToCollection(r.Context(), productID, collectionID, req.DisplayOrder); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]bool{"added": true})
	}
}

// RemoveCollectionProduct removes a product from a collection.
func RemoveCollectionProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.PathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveProductFromCollection(r.Context(), productID, collectionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
