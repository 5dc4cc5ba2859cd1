package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/api/validators"
	"github.com/weaponlions/ecommerce-server/internal/schema"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
)

type categoryRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Slug         string  `json:"slug" validate:"max=100"`
	Description  *string `json:"description"`
	MediaAssetID *string `json:"media_asset_id" validate:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

type attributeRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	Label        string   `json:"label" validate:"max=100"`
	DataType     string   `json:"data_type" validate:"required"`
	Options      []string `json:"options"`
	IsRequired   bool     `json:"is_required"`
	IsFilterable bool     `json:"is_filterable"`
	DisplayOrder int      `json:"display_order" validate:"gte=0"`
}

func (req categoryRequest) toInput() (schema.CategoryInput, error) {
	mediaID, err := parseOptionalUUID(req.MediaAssetID, "media_asset_id")
	if err != nil {
		return schema.CategoryInput{}, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return schema.CategoryInput{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		MediaAssetID: mediaID,
		IsActive:     active,
	}, nil
}

func (req attributeRequest) toInput() (schema.AttributeInput, error) {
	dataType, err := enums.ParseAttributeDataType(req.DataType)
	if err != nil {
		return schema.AttributeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}
	return schema.AttributeInput{
		Name:         req.Name,
		Label:        req.Label,
		DataType:     dataType,
		Options:      req.Options,
		IsRequired:   req.IsRequired,
		IsFilterable: req.IsFilterable,
		DisplayOrder: req.DisplayOrder,
	}, nil
}

// CreateCategory handles the admin category create endpoint.
func CreateCategory(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// UpdateCategory handles the admin category update endpoint.
func UpdateCategory(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.UpdateCategory(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// DeleteCategory handles the admin category delete endpoint.
func DeleteCategory(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// GetCategory serves one category with its attribute schema for admin tooling.
func GetCategory(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.GetCategory(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// ListAllCategories serves every category, active or not.
func ListAllCategories(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context(), false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CreateAttribute adds an attribute definition to a category's schema.
func CreateAttribute(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req attributeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attribute, err := svc.CreateAttribute(r.Context(), categoryID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, attribute)
	}
}

// UpdateAttribute replaces an attribute definition.
func UpdateAttribute(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "attributeId"), "attributeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req attributeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attribute, err := svc.UpdateAttribute(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, attribute)
	}
}

// DeleteAttribute removes an attribute definition and its stored values.
func DeleteAttribute(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "attributeId"), "attributeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteAttribute(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// ListAttributes serves a category's attribute definitions.
func ListAttributes(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attributes, err := svc.ListAttributes(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, attributes)
	}
}
