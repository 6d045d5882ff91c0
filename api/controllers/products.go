package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stanleymf/order-to-do-app-sub000/api/responses"
	"github.com/stanleymf/order-to-do-app-sub000/api/validators"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// ProductsList returns one store's catalog.
func ProductsList(svc *products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseQueryUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if storeID == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "storeId is required"))
			return
		}

		list, err := svc.List(r.Context(), *storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type productLabelsRequest struct {
	DifficultyLabel  *string `json:"difficultyLabel,omitempty" validate:"omitempty,min=1"`
	ProductTypeLabel *string `json:"productTypeLabel,omitempty" validate:"omitempty,min=1"`
}

// ProductsUpdateLabels assigns labels to a product and propagates them to
// the product's orders.
func ProductsUpdateLabels(svc *products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productLabelsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.DifficultyLabel == nil && payload.ProductTypeLabel == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "no label changes provided"))
			return
		}

		product, err := svc.UpdateLabels(r.Context(), productID, products.UpdateLabelsParams{
			DifficultyLabel:  payload.DifficultyLabel,
			ProductTypeLabel: payload.ProductTypeLabel,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
