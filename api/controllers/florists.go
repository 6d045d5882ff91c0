package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stanleymf/order-to-do-app-sub000/api/responses"
	"github.com/stanleymf/order-to-do-app-sub000/api/validators"
	"github.com/stanleymf/order-to-do-app-sub000/internal/florists"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// FloristsList returns the roster.
func FloristsList(svc *florists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type floristCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"required,email"`
}

// FloristsCreate adds a florist to the roster.
func FloristsCreate(svc *florists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload floristCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		florist, err := svc.Create(r.Context(), florists.CreateParams{
			Name:  payload.Name,
			Email: payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, florist)
	}
}

// FloristsDelete removes a florist.
func FloristsDelete(svc *florists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		floristID, err := validators.ParseURLUUID(chi.URLParam(r, "floristID"), "floristID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), floristID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
