package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Querier es lo mínimo que el repositorio usa de pgxpool.Pool.
// Permite testear con un fake sin levantar Postgres.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a la tabla products en PostgreSQL.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database Querier
}

// NewRepository crea un repositorio de products.
func NewRepository(database Querier) *Repository {
	return &Repository{database: database}
}

// price viaja como text para no perder precisión en el scan.
const productColumns = "id, name, price::text, availability"

// List devuelve todas las filas, más nuevas primero.
func (repository *Repository) List(ctx context.Context) ([]Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY id DESC;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// GetByID busca un producto; pgx.ErrNoRows se traduce a ErrorNotFound.
func (repository *Repository) GetByID(ctx context.Context, id int64) (Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	product, err := scanProduct(repository.database.QueryRow(ctx, query, id))
	if err != nil {
		return Product{}, mapRowError("get product", err)
	}
	return product, nil
}

// Create inserta y devuelve la fila con el id asignado por la DB.
func (repository *Repository) Create(ctx context.Context, input CreateProductInput) (Product, error) {
	const query = `
		INSERT INTO products (name, price, availability)
		VALUES ($1, $2::numeric, $3)
		RETURNING ` + productColumns + `;
	`

	product, err := scanProduct(repository.database.QueryRow(ctx, query, input.Name, input.Price.String(), input.availability()))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Replace pisa name, price y availability.
func (repository *Repository) Replace(ctx context.Context, id int64, input ReplaceProductInput) (Product, error) {
	const query = `
		UPDATE products
		SET name = $1, price = $2::numeric, availability = $3, updated_at = now()
		WHERE id = $4
		RETURNING ` + productColumns + `;
	`

	product, err := scanProduct(repository.database.QueryRow(ctx, query, input.Name, input.Price.String(), input.Availability, id))
	if err != nil {
		return Product{}, mapRowError("replace product", err)
	}
	return product, nil
}

// ToggleAvailability niega el valor guardado en la misma sentencia.
func (repository *Repository) ToggleAvailability(ctx context.Context, id int64) (Product, error) {
	const query = `
		UPDATE products
		SET availability = NOT availability, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns + `;
	`

	product, err := scanProduct(repository.database.QueryRow(ctx, query, id))
	if err != nil {
		return Product{}, mapRowError("toggle availability", err)
	}
	return product, nil
}

// Delete borra la fila de forma definitiva.
func (repository *Repository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id = $1 RETURNING id;`

	var deletedID int64
	if err := repository.database.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		return mapRowError("delete product", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		product Product
		price   string
	)
	if err := row.Scan(&product.ID, &product.Name, &price, &product.Availability); err != nil {
		return Product{}, err
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	product.Price = parsed
	return product, nil
}

func mapRowError(operation string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}
	return fmt.Errorf("%s: %w", operation, err)
}
