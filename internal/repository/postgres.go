package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/bakkerij/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresCatalog предоставляет каталог товаров, хранящийся в PostgreSQL.
type PostgresCatalog struct {
	pool   *pgxpool.Pool
	delays []time.Duration
}

// NewPostgresCatalog подключается к БД и применяет миграции схемы каталога.
func NewPostgresCatalog(dsn string) (*PostgresCatalog, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresCatalog{
		pool:   pool,
		delays: []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second},
	}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresCatalog) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresCatalog) withRetry(ctx context.Context, fn func() error) error {
	var err error

	for i := 0; i <= len(r.delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if !isRetryable(err) || i == len(r.delays) {
			break
		}

		timer := time.NewTimer(r.delays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected ||
			pgerrcode.IsConnectionException(pgErr.Code)
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresCatalog) Close() error {
	r.pool.Close()
	return nil
}

// Count возвращает количество товаров в таблице.
func (r *PostgresCatalog) Count(ctx context.Context) (int, error) {
	var n int
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Seed добавляет товары в таблицу. Уже существующие идентификаторы пропускаются.
func (r *PostgresCatalog) Seed(ctx context.Context, products []*model.Product) error {
	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		batch := &pgx.Batch{}
		for _, p := range products {
			batch.Queue(
				`INSERT INTO products (
					id, name_nl, name_fr, name_en, name_de, name_es, name_zh,
					description_nl, description_fr, description_en, description_de, description_es, description_zh,
					price, image, category
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::numeric, $15, $16)
				ON CONFLICT (id) DO NOTHING`,
				p.ID, p.Names.NL, p.Names.FR, p.Names.EN, p.Names.DE, p.Names.ES, p.Names.ZH,
				p.Description.NL, p.Description.FR, p.Description.EN, p.Description.DE, p.Description.ES, p.Description.ZH,
				p.Price.String(), p.Image, p.Category,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert products: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// LoadProducts читает все товары каталога.
func (r *PostgresCatalog) LoadProducts(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product

	err := r.withRetry(ctx, func() error {
		products = nil

		rows, err := r.pool.Query(ctx,
			`SELECT id, name_nl, name_fr, name_en, name_de, name_es, name_zh,
			        description_nl, description_fr, description_en, description_de, description_es, description_zh,
			        price::text, image, category
			 FROM products
			 ORDER BY id`,
		)
		if err != nil {
			return fmt.Errorf("select products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				p     model.Product
				price string
			)
			if err := rows.Scan(
				&p.ID, &p.Names.NL, &p.Names.FR, &p.Names.EN, &p.Names.DE, &p.Names.ES, &p.Names.ZH,
				&p.Description.NL, &p.Description.FR, &p.Description.EN, &p.Description.DE, &p.Description.ES, &p.Description.ZH,
				&price, &p.Image, &p.Category,
			); err != nil {
				return fmt.Errorf("scan product: %w", err)
			}

			p.Price, err = decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("parse price of product %d: %w", p.ID, err)
			}

			products = append(products, &p)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}
