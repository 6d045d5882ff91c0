package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stanleymf/order-to-do-app-sub000/api/controllers"
	webhookcontrollers "github.com/stanleymf/order-to-do-app-sub000/api/controllers/webhooks"
	"github.com/stanleymf/order-to-do-app-sub000/api/middleware"
	"github.com/stanleymf/order-to-do-app-sub000/internal/florists"
	"github.com/stanleymf/order-to-do-app-sub000/internal/labels"
	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
	"github.com/stanleymf/order-to-do-app-sub000/internal/stores"
	syncsvc "github.com/stanleymf/order-to-do-app-sub000/internal/sync"
	shopifywebhook "github.com/stanleymf/order-to-do-app-sub000/internal/webhooks/shopify"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/config"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/redis"
)

// RouterParams collect everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Orders   *orders.Service
	Products *products.Service
	Labels   *labels.Service
	Stores   *stores.Service
	Florists *florists.Service
	Sync     *syncsvc.Service
	Guard    *shopifywebhook.Guard
}

// NewRouter wires middleware, health probes, the dashboard API and the
// Shopify webhook receiver.
func NewRouter(p RouterParams) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/shopify/{storeID}", webhookcontrollers.Shopify(p.Stores, p.Sync, p.Guard, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(p.Orders, logg))
			r.Route("/{storeID}/{orderID}", func(r chi.Router) {
				r.Patch("/assign", controllers.OrdersAssign(p.Orders, logg))
				r.Patch("/complete", controllers.OrdersComplete(p.Orders, logg))
				r.Patch("/remarks", controllers.OrdersUpdateRemarks(p.Orders, logg))
				r.Patch("/customizations", controllers.OrdersUpdateCustomizations(p.Orders, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(p.Products, logg))
			r.Patch("/{productID}/labels", controllers.ProductsUpdateLabels(p.Products, logg))
		})

		r.Route("/labels", func(r chi.Router) {
			r.Get("/", controllers.LabelsList(p.Labels, logg))
			r.Post("/", controllers.LabelsCreate(p.Labels, logg))
			r.Patch("/{labelID}", controllers.LabelsUpdate(p.Labels, logg))
			r.Delete("/{labelID}", controllers.LabelsDelete(p.Labels, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoresList(p.Stores, logg))
			r.Post("/", controllers.StoresCreate(p.Stores, logg))
			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", controllers.StoresGet(p.Stores, logg))
				r.Patch("/", controllers.StoresUpdate(p.Stores, logg))
				r.Delete("/", controllers.StoresDelete(p.Stores, logg))
				r.Post("/sync", controllers.StoresSync(p.Stores, p.Sync, logg))
				r.Post("/webhooks", controllers.StoresRegisterWebhooks(p.Stores, p.Sync, logg))
			})
		})

		r.Route("/florists", func(r chi.Router) {
			r.Get("/", controllers.FloristsList(p.Florists, logg))
			r.Post("/", controllers.FloristsCreate(p.Florists, logg))
			r.Delete("/{floristID}", controllers.FloristsDelete(p.Florists, logg))
		})
	})

	return r
}
