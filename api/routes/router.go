package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-vault/api/controllers"
	staffcontrollers "github.com/angelmondragon/storefront-vault/api/controllers/staff"
	"github.com/angelmondragon/storefront-vault/api/middleware"
	"github.com/angelmondragon/storefront-vault/internal/assistant"
	"github.com/angelmondragon/storefront-vault/internal/gates"
	"github.com/angelmondragon/storefront-vault/internal/orders"
	product "github.com/angelmondragon/storefront-vault/internal/products"
	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/config"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	gatherer prometheus.Gatherer,
	store *storefront.Store,
	gateKeeper *gates.Gates,
	ordersSvc orders.Service,
	editor product.Editor,
	assistantSvc *assistant.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(logg, readiness))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/gates", func(r chi.Router) {
		r.Get("/", controllers.GateStatus(gateKeeper))
		r.Post("/age", controllers.GateVerifyAge(gateKeeper, logg))
		r.Post("/customer", controllers.GateUnlockCustomer(gateKeeper, logg))
		r.Post("/staff", controllers.GateEnterStaff(gateKeeper, logg))
		r.Delete("/staff", controllers.GateExitStaff(gateKeeper, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAgeVerified(gateKeeper, logg))
			r.Use(middleware.RequireCustomerUnlocked(gateKeeper, logg))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", controllers.CatalogList(store))
				r.Get("/categories", controllers.CatalogCategories(store))
				r.Get("/brands", controllers.CatalogBrands(store))
				r.Get("/products/{productId}", controllers.CatalogProduct(store, logg))
			})
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(store))
				r.Post("/items", controllers.CartAdd(store, logg))
				r.Patch("/items", controllers.CartUpdateQuantity(store, logg))
				r.Delete("/items", controllers.CartRemove(store, logg))
			})
			r.Route("/checkout", func(r chi.Router) {
				r.Get("/draft", controllers.CheckoutDraftFetch(store))
				r.Put("/draft", controllers.CheckoutDraftSave(store, logg))
				r.Post("/", controllers.Checkout(store, assistantSvc, logg))
			})
			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesFetch(store))
				r.Post("/{productId}/toggle", controllers.FavoriteToggle(store, logg))
			})
			r.Route("/account", func(r chi.Router) {
				r.Get("/", controllers.AccountFetch(store))
				r.Put("/", controllers.AccountUpdate(store, logg))
				r.Post("/login", controllers.AccountLogin(store, logg))
				r.Post("/register", controllers.AccountRegister(store, logg))
				r.Post("/logout", controllers.AccountLogout(store, logg))
			})
			r.Get("/orders", controllers.AccountOrders(store))
			r.Post("/assistant/ask", controllers.AssistantAsk(store, assistantSvc, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireStaff(gateKeeper, logg))
			r.Get("/dashboard", staffcontrollers.Dashboard(ordersSvc))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", staffcontrollers.OrderList(ordersSvc, logg))
				r.Post("/{orderId}/status", staffcontrollers.OrderStatus(ordersSvc, logg))
				r.Post("/{orderId}/payment-status", staffcontrollers.OrderPaymentStatus(ordersSvc, logg))
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", staffcontrollers.ProductList(store))
				r.Post("/", staffcontrollers.ProductCreate(editor, logg))
				r.Post("/scan", staffcontrollers.ProductScan(editor, logg))
				r.Put("/{productId}", staffcontrollers.ProductEdit(editor, logg))
				r.Delete("/{productId}", staffcontrollers.ProductDelete(editor, logg))
				r.Get("/{productId}/save-status", staffcontrollers.ProductSaveStatus(editor, logg))
				r.Post("/{productId}/flush", staffcontrollers.ProductFlush(editor, logg))
				r.Post("/{productId}/describe", staffcontrollers.ProductDescribe(editor, logg))
				r.Post("/{productId}/image", staffcontrollers.ProductImage(editor, logg))
			})
			r.Post("/categories", staffcontrollers.CategoryAdd(store, logg))
			r.Post("/brands", staffcontrollers.BrandAdd(store, logg))
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", staffcontrollers.SettingsFetch(store))
				r.Put("/", staffcontrollers.SettingsUpdate(store, logg))
				r.Post("/source-sync/link", staffcontrollers.SourceSyncLink(store, logg))
			})
			r.Get("/messages", staffcontrollers.MessageList(store, logg))
			r.Get("/alerts/latest", staffcontrollers.LatestAlert(assistantSvc, logg))
		})
	})

	return r
}
