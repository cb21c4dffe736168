package repository

import (
	"context"
	"errors"
	"fmt"

	"krishiconnect/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for catalog data
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByFarmer(ctx context.Context, farmerID int64) ([]model.Product, error)
	FindByFarmerAndName(ctx context.Context, farmerID int64, name string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, names, price, unit, stock, quality, emoji, farmer_id, location, rating, created_at, updated_at`

// Create inserts a new product; id, rating and timestamps are filled from the database
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	if p.Names == nil {
		p.Names = map[string]string{}
	}
	sql := `INSERT INTO products (name, names, price, unit, stock, quality, emoji, farmer_id, location)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, rating, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		p.Name, p.Names, p.Price, p.Unit, p.Stock, p.Quality, p.Emoji, p.FarmerID, p.Location,
	).Scan(&p.ID, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindAll lists the whole catalog
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// FindByFarmer lists the products owned by farmerID
func (r *productRepository) FindByFarmer(ctx context.Context, farmerID int64) ([]model.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE farmer_id = $1 ORDER BY id`, farmerID)
}

// FindByFarmerAndName is used by the demo seeder to stay idempotent
func (r *productRepository) FindByFarmerAndName(ctx context.Context, farmerID int64, name string) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE farmer_id = $1 AND name = $2 ORDER BY id LIMIT 1`, farmerID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return p, nil
}

// Update writes every mutable column of p
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products
            SET name = $1, names = $2, price = $3, unit = $4, stock = $5, quality = $6, emoji = $7, location = $8
            WHERE id = $9 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		p.Name, p.Names, p.Price, p.Unit, p.Stock, p.Quality, p.Emoji, p.Location, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product. Past orders keep their frozen item copies.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) list(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Names, &p.Price, &p.Unit, &p.Stock, &p.Quality, &p.Emoji,
		&p.FarmerID, &p.Location, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
