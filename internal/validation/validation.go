// Package validation ejecuta cadenas de reglas por campo sobre params y body
// de un request y acumula todos los fallos, no solo el primero.
package validation

// Location indica de dónde se lee el valor de un campo.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// Check es un predicado independiente sobre el valor crudo de un campo.
// value es nil cuando el campo no vino (o vino como null).
type Check func(value any) bool

// Rule asocia un predicado con el mensaje que se reporta si falla.
type Rule struct {
	Check   Check
	Message string
}

// Chain es la lista ordenada de reglas de un campo.
type Chain struct {
	Field    string
	Location Location
	Rules    []Rule
}

// Param crea una cadena vacía para un parámetro de ruta.
func Param(field string) Chain {
	return Chain{Field: field, Location: LocationParams}
}

// Body crea una cadena vacía para un campo del body JSON.
func Body(field string) Chain {
	return Chain{Field: field, Location: LocationBody}
}

// Rule devuelve una copia de la cadena con la regla agregada al final.
func (chain Chain) Rule(check Check, message string) Chain {
	rules := make([]Rule, 0, len(chain.Rules)+1)
	rules = append(rules, chain.Rules...)
	chain.Rules = append(rules, Rule{Check: check, Message: message})
	return chain
}

// FieldError es un registro por cada regla que falló.
type FieldError struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

// Errors es la lista acumulada, en orden de declaración.
type Errors []FieldError

// Input es lo que las reglas pueden leer de un request.
type Input struct {
	Params map[string]string
	Body   map[string]any
}

func (input Input) lookup(chain Chain) any {
	switch chain.Location {
	case LocationParams:
		if value, ok := input.Params[chain.Field]; ok {
			return value
		}
	case LocationBody:
		if value, ok := input.Body[chain.Field]; ok {
			return value
		}
	}
	return nil
}

// Run evalúa todas las reglas de todas las cadenas sin cortar en el primer fallo.
// Devuelve nil cuando no hay errores.
func Run(input Input, chains ...Chain) Errors {
	var errs Errors
	for _, chain := range chains {
		value := input.lookup(chain)
		for _, rule := range chain.Rules {
			if rule.Check(value) {
				continue
			}
			errs = append(errs, FieldError{
				Type:     "field",
				Value:    value,
				Msg:      rule.Message,
				Path:     chain.Field,
				Location: chain.Location,
			})
		}
	}
	return errs
}
