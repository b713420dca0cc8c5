package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jamesabinibi/trybe-pos/app/catalog"
	"github.com/jamesabinibi/trybe-pos/app/categories"
	"github.com/jamesabinibi/trybe-pos/app/checkout"
	"github.com/jamesabinibi/trybe-pos/app/notifications"
	"github.com/jamesabinibi/trybe-pos/app/sales"
	"github.com/jamesabinibi/trybe-pos/database"
	"github.com/jamesabinibi/trybe-pos/models"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := database.Open(database.Config{
		Driver: os.Getenv("DB_DRIVER"),
		DSN:    os.Getenv("DB_DSN"),
	})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	salesRepo := models.NewSalesRepository(db)
	notificationsRepo := models.NewNotificationsRepository(db)

	notifier := notifications.NewNotifier(notificationsRepo)
	engine := checkout.NewEngine(salesRepo, notifier)

	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	checkoutHandler := checkout.NewCheckoutHandler(engine)
	salesHandler := sales.NewSalesHandler(salesRepo, engine)
	notificationsHandler := notifications.NewNotificationsHandler(notifier)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("GET /catalog/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("DELETE /catalog/{id}", catalogHandler.HandleDeleteProduct)
	mux.HandleFunc("DELETE /catalog/variants/{id}", catalogHandler.HandleDeleteVariant)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /sales", checkoutHandler.HandleCreate)
	mux.HandleFunc("GET /sales", salesHandler.HandleList)
	mux.HandleFunc("GET /sales/{id}", salesHandler.HandleGet)
	mux.HandleFunc("DELETE /sales/{id}", salesHandler.HandleDelete)
	mux.HandleFunc("GET /notifications", notificationsHandler.HandleGet)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		slog.Info("server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
