package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stanleymf/order-to-do-app-sub000/api/responses"
	"github.com/stanleymf/order-to-do-app-sub000/api/validators"
	"github.com/stanleymf/order-to-do-app-sub000/internal/labels"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// LabelsList returns the label catalog, optionally one category.
func LabelsList(svc *labels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category *enums.LabelCategory
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			parsed, err := enums.ParseLabelCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category filter"))
				return
			}
			category = &parsed
		}

		list, err := svc.List(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type labelCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=64"`
	Category string `json:"category" validate:"required,oneof=difficulty productType"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	Priority int    `json:"priority" validate:"omitempty,min=1"`
}

// LabelsCreate adds a label.
func LabelsCreate(svc *labels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload labelCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseLabelCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		label, err := svc.Create(r.Context(), labels.CreateParams{
			Name:     payload.Name,
			Category: category,
			Color:    payload.Color,
			Priority: payload.Priority,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, label)
	}
}

type labelUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Color    *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Priority *int    `json:"priority,omitempty" validate:"omitempty,min=1"`
}

// LabelsUpdate edits a label; renames propagate to products and orders.
func LabelsUpdate(svc *labels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labelID, err := validators.ParseURLUUID(chi.URLParam(r, "labelID"), "labelID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload labelUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		label, err := svc.Update(r.Context(), labelID, labels.UpdateParams{
			Name:     payload.Name,
			Color:    payload.Color,
			Priority: payload.Priority,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, label)
	}
}

// LabelsDelete removes a label; its references fall back to the category
// default. Destructive, so the caller has to pass confirm=true explicitly.
func LabelsDelete(svc *labels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labelID, err := validators.ParseURLUUID(chi.URLParam(r, "labelID"), "labelID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if r.URL.Query().Get("confirm") != "true" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "label deletion requires confirm=true"))
			return
		}

		if err := svc.Delete(r.Context(), labelID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
