package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/text/currency"

	"github.com/hakvenlong/e-commerce-Final/internal/cart"
	"github.com/hakvenlong/e-commerce-Final/internal/catalog"
	"github.com/hakvenlong/e-commerce-Final/internal/checkout"
	"github.com/hakvenlong/e-commerce-Final/internal/config"
	"github.com/hakvenlong/e-commerce-Final/internal/events"
	h "github.com/hakvenlong/e-commerce-Final/internal/http"
	"github.com/hakvenlong/e-commerce-Final/internal/invoice"
	"github.com/hakvenlong/e-commerce-Final/internal/notify"
	"github.com/hakvenlong/e-commerce-Final/internal/payment"
)

func main() {
	cfg := config.Load()

	settlementCur, err := currency.ParseISO(cfg.SettlementCurrency)
	if err != nil {
		log.Fatalf("invalid settlement currency %q: %v", cfg.SettlementCurrency, err)
	}

	// Catalog backend
	var products catalog.Repository
	if cfg.CatalogDBPath != "" {
		repo, err := catalog.NewSQLite(cfg.CatalogDBPath)
		if err != nil {
			log.Fatalf("failed to open catalog: %v", err)
		}
		if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatalf("failed to run catalog migrations: %v", err)
		}
		products = repo
	} else {
		products = catalog.NewMemory(catalog.Seed()...)
	}
	defer products.Close()

	// Cart backend
	var carts cart.Store
	switch cfg.CartBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to ping redis: %v", err)
		}
		defer client.Close()
		carts = cart.NewRedisStore(client)
	default:
		carts = cart.NewMemoryStore()
	}

	// External collaborators
	gateway := payment.NewBakong(cfg.BakongBaseURL, cfg.BakongToken)

	var sink notify.Sink = notify.Nop{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		sink = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := events.NewKafka(cfg.KafkaBrokers...)
		defer kafkaPub.Close()
		publisher = kafkaPub
	}

	renderer := invoice.NewPDF(cfg.InvoiceDir)

	orders := checkout.NewOrderStore(cfg.OrderTTL)
	defer orders.Close()

	orchestrator := checkout.NewOrchestrator(carts, gateway, sink, renderer, publisher, orders, checkout.Config{
		Merchant: checkout.Merchant{
			AccountRef:    cfg.MerchantAccount,
			Name:          cfg.MerchantName,
			City:          cfg.MerchantCity,
			Phone:         cfg.MerchantPhone,
			StoreLabel:    cfg.StoreLabel,
			TerminalLabel: cfg.TerminalLabel,
		},
		SettlementRate:     cfg.SettlementRate,
		SettlementCurrency: settlementCur,
		QRDir:              cfg.QRDir,
	})

	catalogHandler := h.NewCatalogHandler(products, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(carts, products, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(orchestrator, cfg.RequestTimeout)
	metrics := h.NewServerMetrics()

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", h.MetricsHandler())

	// QR images are served straight off disk
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
	r.Get("/static/*", fileServer.ServeHTTP)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{product_id}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Submit)
			r.Post("/status", checkoutHandler.CheckStatus)
			r.Get("/invoice", checkoutHandler.DownloadInvoice)
			r.Get("/confirmation", checkoutHandler.Confirmation)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "smos-store"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("store starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
