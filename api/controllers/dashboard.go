package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/api/validators"
	"github.com/weaponlions/ecommerce-server/internal/dashboard"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
)

type trackVisitRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// GetDashboard serves the fully assembled dashboard in section order.
func GetDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dash, err := svc.Assemble(r.Context(), r.URL.Query().Get("userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dash)
	}
}

// GetDashboardSection serves one section's payload by key.
func GetDashboardSection(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		payload, err := svc.SectionPayload(r.Context(), key, r.URL.Query().Get("userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

// GetRecentlyVisited serves a user's recent product views, newest first.
func GetRecentlyVisited(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.RecentlyVisited(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// TrackVisit records a product view for a user.
func TrackVisit(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req trackVisitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.PathUUID(req.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.TrackVisit(r.Context(), req.UserID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"tracked": true})
	}
}
