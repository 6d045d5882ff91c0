package sync

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
	"github.com/stanleymf/order-to-do-app-sub000/internal/shopify"
	"github.com/stanleymf/order-to-do-app-sub000/internal/stores"
	"github.com/stanleymf/order-to-do-app-sub000/internal/tagparse"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/metrics"
)

const defaultLookback = 14 * 24 * time.Hour

// webhookTopics are the subscriptions every store should carry.
var webhookTopics = []string{
	"orders/create",
	"orders/updated",
	"products/create",
	"products/update",
}

// shopifyAPI is the slice of the Shopify client the sync loop uses.
type shopifyAPI interface {
	ListOrders(ctx context.Context, params shopify.OrdersParams) ([]shopify.Order, error)
	ListProducts(ctx context.Context, limit int) ([]shopify.Product, error)
	ListWebhooks(ctx context.Context) ([]shopify.Webhook, error)
	CreateWebhook(ctx context.Context, topic, address string) (*shopify.Webhook, error)
	DeleteWebhook(ctx context.Context, id int64) error
}

// ClientFactory builds an API client for one store's credentials.
type ClientFactory func(creds shopify.Credentials) (shopifyAPI, error)

// NewClientFactory builds the production factory with a shared timeout.
func NewClientFactory(timeout time.Duration) ClientFactory {
	return func(creds shopify.Credentials) (shopifyAPI, error) {
		return shopify.NewClient(creds, timeout)
	}
}

type labelReader interface {
	ListAll(ctx context.Context) ([]models.ProductLabel, error)
}

// ServiceParams configure the sync service.
type ServiceParams struct {
	Stores         stores.Repository
	Orders         orders.Repository
	Products       products.Repository
	Labels         labelReader
	Clients        ClientFactory
	Logger         *logger.Logger
	Metrics        *metrics.SyncMetrics
	Lookback       time.Duration
	PageLimit      int
	WebhookBaseURL string
	Now            func() time.Time
}

// Service pulls orders and products from every configured store.
type Service struct {
	stores         stores.Repository
	orders         orders.Repository
	products       products.Repository
	labels         labelReader
	clients        ClientFactory
	logg           *logger.Logger
	metrics        *metrics.SyncMetrics
	lookback       time.Duration
	pageLimit      int
	webhookBaseURL string
	now            func() time.Time
}

// NewService builds a sync service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Stores == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync service requires a stores repository")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync service requires an orders repository")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync service requires a products repository")
	}
	if params.Labels == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync service requires a label reader")
	}
	if params.Clients == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync service requires a client factory")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync service requires a logger")
	}
	lookback := params.Lookback
	if lookback <= 0 {
		lookback = defaultLookback
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		stores:         params.Stores,
		orders:         params.Orders,
		products:       params.Products,
		labels:         params.Labels,
		clients:        params.Clients,
		logg:           params.Logger,
		metrics:        params.Metrics,
		lookback:       lookback,
		pageLimit:      params.PageLimit,
		webhookBaseURL: params.WebhookBaseURL,
		now:            now,
	}, nil
}

// SyncAll runs one pass over every store, sequentially. A failing store
// never blocks the rest; its error joins the aggregate.
func (s *Service) SyncAll(ctx context.Context) error {
	all, err := s.stores.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}

	var errs error
	for i := range all {
		store := all[i]
		storeCtx := s.logg.WithStoreID(ctx, store.ID.String())
		start := s.now()

		count, syncErr := s.SyncStore(storeCtx, &store)

		if s.metrics != nil {
			s.metrics.ObserveDuration(store.Domain, time.Since(start))
		}
		if syncErr != nil {
			if s.metrics != nil {
				s.metrics.IncFailure(store.Domain)
			}
			s.logg.Error(storeCtx, "store sync failed", syncErr)
			errs = multierr.Append(errs, fmt.Errorf("sync %s: %w", store.Domain, syncErr))
			continue
		}
		if s.metrics != nil {
			s.metrics.IncSuccess(store.Domain)
			s.metrics.AddOrders(store.Domain, count)
		}
		s.logg.Info(storeCtx, fmt.Sprintf("store sync complete, %d orders", count))
	}
	return errs
}

// SyncStore pulls one store's catalog and recent orders. Returns the
// number of orders upserted.
func (s *Service) SyncStore(ctx context.Context, store *models.Store) (int, error) {
	client, err := s.clients(shopify.Credentials{
		ShopDomain:  store.Domain,
		AccessToken: store.AccessToken,
		APIVersion:  store.APIVersion,
	})
	if err != nil {
		return 0, err
	}

	labels, err := s.labels.ListAll(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load labels")
	}

	catalog, err := s.syncProducts(ctx, client, store, labels)
	if err != nil {
		return 0, err
	}
	return s.syncOrders(ctx, client, store, catalog)
}

// catalogKey indexes synced products by their display identity, the same
// fields the order mapper copies from the first line item.
func catalogKey(title, variant string) string {
	return strings.ToLower(title) + "\x00" + strings.ToLower(variant)
}

func (s *Service) syncProducts(ctx context.Context, client shopifyAPI, store *models.Store, labels []models.ProductLabel) (map[string]*models.Product, error) {
	raw, err := client.ListProducts(ctx, s.pageLimit)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]*models.Product, len(raw))
	for _, rp := range raw {
		product := s.mapProduct(store, rp, labels)
		if err := s.products.Upsert(ctx, product); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert product")
		}
		// Re-read so admin-assigned labels win over the inferred ones.
		stored, err := s.products.FindByShopifyID(ctx, store.ID, product.ShopifyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
		}
		catalog[catalogKey(stored.Title, stored.Variant)] = stored
	}
	return catalog, nil
}

func (s *Service) mapProduct(store *models.Store, raw shopify.Product, labels []models.ProductLabel) *models.Product {
	tags := tagparse.SplitTagString(raw.Tags)
	difficulty, productType := products.InferLabels(tags, labels)
	if difficulty == "" {
		difficulty = "Medium"
	}
	if productType == "" {
		productType = "Bouquet"
	}
	variant := ""
	if len(raw.Variants) > 0 {
		variant = raw.Variants[0].Title
	}
	return &models.Product{
		StoreID:          store.ID,
		ShopifyID:        fmt.Sprintf("%d", raw.ID),
		Title:            raw.Title,
		Variant:          variant,
		Tags:             pq.StringArray(tags),
		DifficultyLabel:  difficulty,
		ProductTypeLabel: productType,
	}
}

func (s *Service) syncOrders(ctx context.Context, client shopifyAPI, store *models.Store, catalog map[string]*models.Product) (int, error) {
	createdAtMin := s.now().Add(-s.lookback)
	raw, err := client.ListOrders(ctx, shopify.OrdersParams{
		CreatedAtMin: &createdAtMin,
		Limit:        s.pageLimit,
	})
	if err != nil {
		return 0, err
	}

	mapper := mapperForStore(store)
	count := 0
	for _, ro := range raw {
		order := mapper.Map(ro)
		order.StoreID = store.ID
		s.applyNoteSources(store, ro, &order)
		if product, ok := catalog[catalogKey(order.ProductName, order.ProductVariant)]; ok {
			order.DifficultyLabel = product.DifficultyLabel
			order.ProductTypeLabel = product.ProductTypeLabel
		}
		if err := s.orders.Upsert(ctx, &order); err != nil {
			return count, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert order")
		}
		count++
	}
	return count, nil
}

func mapperForStore(store *models.Store) *orders.Mapper {
	if store.DateTagPattern == "" && store.TimeslotTagPattern == "" {
		return orders.NewMapper(nil)
	}
	return orders.NewMapper(tagparse.NewWithOptions(tagparse.Options{
		DateTagPattern:     store.DateTagPattern,
		TimeslotTagPattern: store.TimeslotTagPattern,
	}))
}

// applyNoteSources honors the per-store option of reading the delivery
// date or timeslot from the order note instead of the tags.
func (s *Service) applyNoteSources(store *models.Store, raw shopify.Order, order *models.Order) {
	if store.DateSource != "note" && store.TimeslotSource != "note" {
		return
	}
	parser := tagparse.NewWithOptions(tagparse.Options{
		DateTagPattern:     store.DateTagPattern,
		TimeslotTagPattern: store.TimeslotTagPattern,
	})
	extracted := parser.Parse(strings.Split(raw.Note, "\n"))
	if store.DateSource == "note" && extracted.Date != "" {
		order.Date = extracted.Date
	}
	if store.TimeslotSource == "note" && extracted.Timeslot != "" {
		order.Timeslot = extracted.Timeslot
	}
}

// ProcessOrderEvent maps and upserts a single order delivered over a
// webhook. It follows the same path as the poll: per-store tag patterns,
// note-source overrides, then the catalog label backfill.
func (s *Service) ProcessOrderEvent(ctx context.Context, store *models.Store, raw shopify.Order) error {
	mapper := mapperForStore(store)
	order := mapper.Map(raw)
	order.StoreID = store.ID
	s.applyNoteSources(store, raw, &order)

	product, err := s.products.FindByIdentity(ctx, store.ID, order.ProductName, order.ProductVariant)
	switch {
	case err == nil:
		order.DifficultyLabel = product.DifficultyLabel
		order.ProductTypeLabel = product.ProductTypeLabel
	case !gormNotFound(err):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find catalog product")
	}

	if err := s.orders.Upsert(ctx, &order); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert order")
	}
	s.logg.Info(ctx, "webhook order upserted: "+order.ID)
	return nil
}

// ProcessProductEvent maps and upserts a single catalog product delivered
// over a webhook. Admin-assigned labels survive because the upsert only
// refreshes the Shopify-derived columns.
func (s *Service) ProcessProductEvent(ctx context.Context, store *models.Store, raw shopify.Product) error {
	labels, err := s.labels.ListAll(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load labels")
	}
	product := s.mapProduct(store, raw, labels)
	if err := s.products.Upsert(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert product")
	}
	s.logg.Info(ctx, "webhook product upserted: "+product.Title)
	return nil
}

func gormNotFound(err error) bool {
	return stderrors.Is(err, gorm.ErrRecordNotFound)
}

// EnsureWebhooks registers the missing webhook subscriptions for a store.
// Subscriptions already pointing at the right address are left alone; a
// managed topic whose address went stale (base URL change) is replaced.
func (s *Service) EnsureWebhooks(ctx context.Context, store *models.Store) error {
	if s.webhookBaseURL == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "webhook base url is not configured")
	}
	client, err := s.clients(shopify.Credentials{
		ShopDomain:  store.Domain,
		AccessToken: store.AccessToken,
		APIVersion:  store.APIVersion,
	})
	if err != nil {
		return err
	}

	existing, err := client.ListWebhooks(ctx)
	if err != nil {
		return err
	}
	registered := make(map[string]shopify.Webhook, len(existing))
	for _, hook := range existing {
		registered[hook.Topic] = hook
	}

	address := strings.TrimRight(s.webhookBaseURL, "/") + "/api/v1/webhooks/shopify/" + store.ID.String()
	for _, topic := range webhookTopics {
		if hook, ok := registered[topic]; ok {
			if hook.Address == address {
				continue
			}
			if err := client.DeleteWebhook(ctx, hook.ID); err != nil {
				return err
			}
			s.logg.Info(ctx, "stale webhook removed: "+topic)
		}
		if _, err := client.CreateWebhook(ctx, topic, address); err != nil {
			return err
		}
		s.logg.Info(ctx, "webhook registered: "+topic)
	}
	return nil
}
