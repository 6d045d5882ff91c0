package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stanleymf/order-to-do-app-sub000/api/responses"
	"github.com/stanleymf/order-to-do-app-sub000/api/validators"
	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// OrdersList returns the dashboard listing for one day, filtered and in
// display order. The floristId query parameter identifies the viewer so
// their own assignments sort first.
func OrdersList(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		viewer, err := validators.ParseQueryUUID(r, "floristId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := validators.ParseQueryUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := orders.Filters{
			StoreID:          storeID,
			DifficultyLabel:  strings.TrimSpace(r.URL.Query().Get("difficultyLabel")),
			ProductTypeLabel: strings.TrimSpace(r.URL.Query().Get("productTypeLabel")),
			Search:           strings.TrimSpace(r.URL.Query().Get("search")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseOrderStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(r.Context(), orders.ListParams{
			Date:            date,
			ViewerFloristID: viewer,
			Filters:         filters,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type orderAssignRequest struct {
	FloristID string `json:"floristId" validate:"required"`
}

// OrdersAssign assigns an order to a florist, or clears the assignment
// when floristId is "unassigned".
func OrdersAssign(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderAssignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Assign(r.Context(), storeID, chi.URLParam(r, "orderID"), payload.FloristID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrdersComplete toggles an order's completion.
func OrdersComplete(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Complete(r.Context(), storeID, chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type orderRemarksRequest struct {
	Remarks string `json:"remarks"`
}

// OrdersUpdateRemarks replaces an order's remarks.
func OrdersUpdateRemarks(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderRemarksRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateRemarks(r.Context(), storeID, chi.URLParam(r, "orderID"), payload.Remarks)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type orderCustomizationsRequest struct {
	ProductCustomizations string `json:"productCustomizations"`
}

// OrdersUpdateCustomizations replaces an order's customization notes.
func OrdersUpdateCustomizations(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderCustomizationsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateCustomizations(r.Context(), storeID, chi.URLParam(r, "orderID"), payload.ProductCustomizations)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
