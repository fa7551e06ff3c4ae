package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	_ "modernc.org/sqlite"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

// SQLite is the durable catalog backend.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (r *SQLite) RunMigrations(migrationsPath string) error {
	driver, err := migratesqlite.WithInstance(r.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *SQLite) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, brand, description, categories, image_url, price, currency, in_stock, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *SQLite) Get(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, brand, description, categories, image_url, price, currency, in_stock, created_at
		FROM products
		WHERE id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrProductNotFound
	}
	return scanProduct(rows)
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	p := &domain.Product{}
	var price, unit string
	err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Description, &p.Categories,
		&p.ImageURL, &price, &unit, &p.InStock, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %d: %w", p.ID, err)
	}
	cur, err := currency.ParseISO(unit)
	if err != nil {
		return nil, fmt.Errorf("invalid currency for product %d: %w", p.ID, err)
	}

	p.Price = domain.NewMoney(amount, cur)
	return p, nil
}

func (r *SQLite) Close() error {
	return r.db.Close()
}
