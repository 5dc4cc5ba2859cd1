package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/api/validators"
	"github.com/weaponlions/ecommerce-server/internal/catalog"
	"github.com/weaponlions/ecommerce-server/internal/content"
	"github.com/weaponlions/ecommerce-server/internal/schema"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

// attrFilterPrefix marks query parameters that filter on dynamic attribute
// values, e.g. ?attr_color=red.
const attrFilterPrefix = "attr_"

// ListProducts serves the filtered, sorted, paginated public listing.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func parseListQuery(r *http.Request) (catalog.ListQuery, error) {
	var query catalog.ListQuery

	categoryID, err := validators.ParseQueryUUID(r, "category_id")
	if err != nil {
		return query, err
	}
	collectionID, err := validators.ParseQueryUUID(r, "collection_id")
	if err != nil {
		return query, err
	}
	minPrice, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return query, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return query, err
	}
	// Out-of-range paging inputs clamp rather than fail; only non-numeric
	// values are rejected.
	page, err := validators.ParseQueryInt(r, "page", 1, math.MinInt32, math.MaxInt32)
	if err != nil {
		return query, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, math.MinInt32, math.MaxInt32)
	if err != nil {
		return query, err
	}

	attributes := map[string]string{}
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, attrFilterPrefix) || len(values) == 0 {
			continue
		}
		name := strings.TrimPrefix(key, attrFilterPrefix)
		if name == "" || strings.TrimSpace(values[0]) == "" {
			continue
		}
		attributes[name] = values[0]
	}
	if len(attributes) == 0 {
		attributes = nil
	}

	query = catalog.ListQuery{
		CategoryID:   categoryID,
		CategorySlug: r.URL.Query().Get("category"),
		CollectionID: collectionID,
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Search:       r.URL.Query().Get("search"),
		Attributes:   attributes,
		Sort:         enums.ParseProductSort(r.URL.Query().Get("sort")),
		Descending:   strings.EqualFold(r.URL.Query().Get("order"), "desc"),
		Page:         pagination.Params{Page: page, PageSize: pageSize}.Normalize(),
	}
	return query, nil
}

// GetProduct serves the product detail payload with attribute values and
// variant siblings.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// GetProductVariants serves a product's variant siblings.
func GetProductVariants(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variants, err := svc.GetVariantSiblings(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variants)
	}
}

// ListCategories serves the active categories with their attribute schemas.
func ListCategories(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// GetCategoryBySlug serves one category with its attribute schema.
func GetCategoryBySlug(svc schema.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required"))
			return
		}
		category, err := svc.GetCategoryBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// ListCollections serves the visible collections.
func ListCollections(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collections, err := svc.ListCollections(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, collections)
	}
}

// ListCollectionProducts serves a collection's members and counts the visit.
func ListCollectionProducts(catalogSvc catalog.Service, contentSvc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := catalogSvc.ListCollectionProducts(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// Visit tracking is best-effort; the listing still serves if it fails.
		if err := contentSvc.VisitCollection(r.Context(), id); err != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "collection_id", id), "collection visit not recorded")
		}
		responses.WriteSuccess(w, products)
	}
}
