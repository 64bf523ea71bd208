package products

import (
	"context"
	"errors"
)

// ErrorNotFound indica que el id no existe. Nunca se usa para fallas del store.
var ErrorNotFound = errors.New("product not found")

// Store es el gateway de persistencia. Repository (pgx) y GormRepository lo implementan.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, input CreateProductInput) (Product, error)
	Replace(ctx context.Context, id int64, input ReplaceProductInput) (Product, error)
	ToggleAvailability(ctx context.Context, id int64) (Product, error)
	Delete(ctx context.Context, id int64) error
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*GormRepository)(nil)
)
