package products

import (
	"github.com/shopspring/decimal"

	"github.com/Lelo88/product-api-golang/internal/validation"
)

const (
	msgInvalidID           = "ID no valido"
	msgEmptyName           = "el nombre del producto no puede ir vacio"
	msgInvalidPrice        = "precio no valido"
	msgPriceNotNumeric     = "Valor no valido"
	msgEmptyPrice          = "el precio del producto no puede ir vacio"
	msgInvalidAvailability = "Valor para disponibilidad no valido"
	msgInvalidJSON         = "JSON no valido"

	msgNotFound = "Product not found"
	msgDeleted  = "Product deleted successfully"
	msgInternal = "Internal server error"
)

var (
	idChain = validation.Param("id").
		Rule(validation.IsInt, msgInvalidID)

	nameChain = validation.Body("name").
		Rule(validation.NotEmpty, msgEmptyName)

	// Las tres reglas de price son independientes: un price ausente
	// falla positividad, tipo numérico y vacío a la vez. La positividad
	// se mide ya redondeado a la escala de la columna.
	priceChain = validation.Body("price").
		Rule(validation.GreaterThan(decimal.Zero, priceScale), msgInvalidPrice).
		Rule(validation.IsNumeric, msgPriceNotNumeric).
		Rule(validation.NotEmpty, msgEmptyPrice)

	availabilityChain = validation.Body("availability").
		Rule(validation.IsBoolean, msgInvalidAvailability)
)

var (
	idRules      = []validation.Chain{idChain}
	createRules  = []validation.Chain{nameChain, priceChain}
	replaceRules = []validation.Chain{idChain, nameChain, priceChain, availabilityChain}
)
