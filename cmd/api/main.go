package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/routes"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/appointments"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/cart"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/checkout"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/orders"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/payments"
	products "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/products"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/config"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/logger"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/metrics"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/migrate"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/razorpay"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	defer func() {
		closeErr := multierr.Append(dbClient.Close(), redisClient.Close())
		if closeErr != nil {
			logg.Error(context.Background(), "error closing clients", closeErr)
		}
	}()

	var gateway *razorpay.Client
	if cfg.Razorpay.Configured() {
		gateway, err = razorpay.NewClient(context.Background(), cfg.Razorpay, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap payment gateway", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "payment gateway credentials missing, payment endpoints disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	productsRepo := products.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	appointmentsRepo := appointments.NewRepository(dbClient.DB())

	productsService, err := products.NewService(productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	paymentsService := payments.NewService(gatewayOrNil(gateway))

	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(dbClient, cartRepo, ordersRepo, paymentsService, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	appointmentsService, err := appointments.NewService(appointmentsRepo, paymentsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create appointments service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			Registry:     registry,
			Products:     productsService,
			Cart:         cartService,
			Checkout:     checkoutService,
			Orders:       ordersService,
			Payments:     paymentsService,
			Appointments: appointmentsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// gatewayOrNil keeps the payments service's nil check meaningful when the
// gateway was never constructed.
func gatewayOrNil(client *razorpay.Client) payments.Gateway {
	if client == nil {
		return nil
	}
	return client
}
