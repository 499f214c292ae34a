package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/controllers"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/middleware"
	appointmentsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/appointments"
	cartsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/cart"
	checkoutsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/checkout"
	ordersvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/orders"
	paymentsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/payments"
	productsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/products"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/config"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/logger"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           controllers.Pinger
	Redis        *redis.Client
	// Idempotency overrides Redis as the replay-record backend when set.
	Idempotency redis.IdempotencyStore
	Registry     *prometheus.Registry
	Products     productsvc.Service
	Cart         cartsvc.Service
	Checkout     checkoutsvc.Service
	Orders       ordersvc.Service
	Payments     paymentsvc.Service
	Appointments appointmentsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	idemStore := deps.Idempotency
	if idemStore == nil {
		idemStore = idempotencyStore(deps.Redis)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    redisPinger(deps.Redis),
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Products, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, logg))
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Route("/items", func(r chi.Router) {
					r.Post("/", controllers.CartAdd(deps.Cart, logg))
					r.Patch("/{itemId}", controllers.CartUpdateItem(deps.Cart, logg))
					r.Delete("/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.Checkout(deps.Checkout, logg))
				r.Post("/confirm-payment", controllers.CheckoutConfirmPayment(deps.Checkout, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.OrderCancel(deps.Orders, logg))
			})

			r.Post("/payments/order", controllers.PaymentCreateOrder(deps.Payments, logg))

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", controllers.AppointmentList(deps.Appointments, logg))
				r.Post("/", controllers.AppointmentBook(deps.Appointments, logg))
				r.Post("/{appointmentId}/confirm-payment", controllers.AppointmentConfirmPayment(deps.Appointments, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Post("/orders/{orderId}/status", controllers.AdminAdvanceOrderStatus(deps.Orders, logg))
	})

	return r
}

// redisPinger avoids a typed-nil Pinger when the cache is not wired.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

// idempotencyStore avoids a typed-nil store when the cache is not wired.
func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
