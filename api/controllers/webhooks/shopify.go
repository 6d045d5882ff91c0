package webhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stanleymf/order-to-do-app-sub000/api/responses"
	"github.com/stanleymf/order-to-do-app-sub000/internal/shopify"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// StoreResolver looks up the store a delivery is addressed to.
type StoreResolver interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// EventProcessor applies a decoded resource to local state.
type EventProcessor interface {
	ProcessOrderEvent(ctx context.Context, store *models.Store, raw shopify.Order) error
	ProcessProductEvent(ctx context.Context, store *models.Store, raw shopify.Product) error
}

type deliveryGuard interface {
	CheckAndMark(ctx context.Context, deliveryID string) (bool, error)
	Delete(ctx context.Context, deliveryID string) error
}

// Shopify handles order and product push notifications. The store is
// addressed by the path so each subscription carries its own secret.
func Shopify(stores StoreResolver, processor EventProcessor, guard deliveryGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if stores == nil || processor == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "idempotency guard unavailable"))
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "storeID must be a valid UUID"))
			return
		}
		store, err := stores.Get(ctx, storeID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			ctx = logg.WithStoreID(ctx, store.ID.String())
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		signature := r.Header.Get("X-Shopify-Hmac-Sha256")
		if !shopify.VerifyWebhookSignature(payload, store.WebhookSecret, signature) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook signature"))
			return
		}

		deliveryID := r.Header.Get("X-Shopify-Webhook-Id")
		if deliveryID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "webhook id header missing"))
			return
		}
		alreadyProcessed, err := guard.CheckAndMark(ctx, deliveryID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			responses.WriteSuccess(w, nil)
			return
		}

		topic := r.Header.Get("X-Shopify-Topic")
		if err := dispatch(ctx, processor, store, topic, payload); err != nil {
			_ = guard.Delete(ctx, deliveryID)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, fmt.Sprintf("shopify delivery %s processed (%s)", deliveryID, topic))
		}
		responses.WriteSuccess(w, nil)
	}
}

func dispatch(ctx context.Context, processor EventProcessor, store *models.Store, topic string, payload []byte) error {
	switch topic {
	case "orders/create", "orders/updated":
		var order shopify.Order
		if err := json.Unmarshal(payload, &order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode order payload")
		}
		return processor.ProcessOrderEvent(ctx, store, order)
	case "products/create", "products/update":
		var product shopify.Product
		if err := json.Unmarshal(payload, &product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode product payload")
		}
		return processor.ProcessProductEvent(ctx, store, product)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported topic: "+topic)
	}
}
