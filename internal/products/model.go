package products

import "github.com/shopspring/decimal"

// priceScale son los decimales que guarda la columna price (numeric(10,2)).
const priceScale int32 = 2

// Product es la proyección pública de una fila de products.
// Los timestamps de la tabla nunca se exponen.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Availability bool            `json:"availability"`
}

// CreateProductInput son los campos aceptados al crear.
// Availability es opcional; si no viene, el producto nace disponible.
type CreateProductInput struct {
	Name         string
	Price        decimal.Decimal
	Availability *bool
}

func (input CreateProductInput) availability() bool {
	if input.Availability == nil {
		return true
	}
	return *input.Availability
}

// ReplaceProductInput reemplaza todos los campos editables.
type ReplaceProductInput struct {
	Name         string
	Price        decimal.Decimal
	Availability bool
}
