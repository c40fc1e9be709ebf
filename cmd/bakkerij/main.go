// Package main запускает HTTP-сервер сайта пекарни.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/bakkerij/internal/config"
	"github.com/mmeshcher/bakkerij/internal/handler"
	"github.com/mmeshcher/bakkerij/internal/middleware"
	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/repository"
	"github.com/mmeshcher/bakkerij/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	// Цены в JSON отдаются числами.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, err := loadProducts(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("catalog initialization error", "error", err.Error())
	}
	catalog := repository.NewCatalog(products)
	sugar.Infow("catalog loaded", "products", catalog.Len(), "categories", catalog.Categories())

	svc := service.NewService(
		catalog,
		repository.NewMemoryCartRepository(),
		repository.NewMemoryOrderRepository(),
		repository.NewMemoryUserRepository(),
		service.WithLogger(logger),
	)

	if cfg.SessionSecret == "" {
		sugar.Warn("session secret is not set, sessions will not survive a restart")
	}
	sessions := middleware.NewSessionMiddleware(cfg.SessionSecret)
	h := handler.NewHandler(svc, logger, sessions, cfg.AppVersion)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting bakery server", "addr", cfg.RunAddress, "version", cfg.AppVersion)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// loadProducts читает каталог из файла или из PostgreSQL, если задан DATABASE_URI.
// Пустая таблица заполняется товарами из файла.
func loadProducts(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) ([]*model.Product, error) {
	if cfg.DatabaseURI == "" {
		return repository.LoadCatalogFile(cfg.CatalogFile)
	}

	db, err := repository.NewPostgresCatalog(cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	n, err := db.Count(ctx)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		products, err := repository.LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		if err := db.Seed(ctx, products); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		sugar.Infow("catalog table seeded", "products", len(products), "file", cfg.CatalogFile)
	}

	return db.LoadProducts(ctx)
}
