package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stanleymf/order-to-do-app-sub000/api/responses"
	"github.com/stanleymf/order-to-do-app-sub000/api/validators"
	"github.com/stanleymf/order-to-do-app-sub000/internal/stores"
	syncsvc "github.com/stanleymf/order-to-do-app-sub000/internal/sync"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// StoresList returns every configured store.
func StoresList(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// StoresGet returns one store.
func StoresGet(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Get(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type storeCreateRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	Domain        string `json:"domain" validate:"required,min=1"`
	Color         string `json:"color" validate:"omitempty,hexcolor"`
	AccessToken   string `json:"accessToken" validate:"required,min=1"`
	APIVersion    string `json:"apiVersion,omitempty"`
	WebhookSecret string `json:"webhookSecret,omitempty"`
}

// StoresCreate registers a Shopify shop.
func StoresCreate(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload storeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), stores.CreateParams{
			Name:          payload.Name,
			Domain:        payload.Domain,
			Color:         payload.Color,
			AccessToken:   payload.AccessToken,
			APIVersion:    payload.APIVersion,
			WebhookSecret: payload.WebhookSecret,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

type storeUpdateRequest struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Color              *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	AccessToken        *string `json:"accessToken,omitempty" validate:"omitempty,min=1"`
	APIVersion         *string `json:"apiVersion,omitempty"`
	WebhookSecret      *string `json:"webhookSecret,omitempty"`
	DateSource         *string `json:"dateSource,omitempty" validate:"omitempty,oneof=tags note"`
	DateTagPattern     *string `json:"dateTagPattern,omitempty"`
	TimeslotSource     *string `json:"timeslotSource,omitempty" validate:"omitempty,oneof=tags note"`
	TimeslotTagPattern *string `json:"timeslotTagPattern,omitempty"`
}

// StoresUpdate edits a store configuration.
func StoresUpdate(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), storeID, stores.UpdateParams{
			Name:               payload.Name,
			Color:              payload.Color,
			AccessToken:        payload.AccessToken,
			APIVersion:         payload.APIVersion,
			WebhookSecret:      payload.WebhookSecret,
			DateSource:         payload.DateSource,
			DateTagPattern:     payload.DateTagPattern,
			TimeslotSource:     payload.TimeslotSource,
			TimeslotTagPattern: payload.TimeslotTagPattern,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// StoresDelete removes a store and its synced data.
func StoresDelete(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// StoresSync runs one immediate sync pass for a store, outside the worker
// cadence.
func StoresSync(storeSvc *stores.Service, sync *syncsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := storeSvc.Get(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := sync.SyncStore(r.Context(), store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"ordersSynced": count})
	}
}

// StoresRegisterWebhooks ensures the store's webhook subscriptions exist.
func StoresRegisterWebhooks(storeSvc *stores.Service, sync *syncsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseURLUUID(chi.URLParam(r, "storeID"), "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := storeSvc.Get(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sync.EnsureWebhooks(r.Context(), store); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "registered"})
	}
}
