package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Cotas de ToDecimal para texto. Fuera de ellas comparar o redondear
// exige operar con enteros gigantes, y ningún precio real vive ahí.
const (
	maxNumberLength = 64
	maxExponent     = 64
)

// ToString lleva un valor JSON a su forma de texto.
// Ausente/null es "", números conservan su representación original.
func ToString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		raw, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// ToDecimal aplica una coerción numérica laxa: números, strings numéricos,
// "" como cero y booleanos como 1/0. Ausente, no numérico o fuera de las
// cotas devuelve false.
func ToDecimal(value any) (decimal.Decimal, bool) {
	switch typed := value.(type) {
	case nil:
		return decimal.Decimal{}, false
	case bool:
		if typed {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	case float64:
		return decimal.NewFromFloat(typed), true
	case int:
		return decimal.NewFromInt(int64(typed)), true
	case int64:
		return decimal.NewFromInt(typed), true
	case json.Number, string:
		text := strings.TrimSpace(ToString(typed))
		if text == "" {
			return decimal.Zero, true
		}
		if len(text) > maxNumberLength {
			return decimal.Decimal{}, false
		}
		number, err := decimal.NewFromString(text)
		if err != nil {
			return decimal.Decimal{}, false
		}
		if exponent := number.Exponent(); exponent > maxExponent || exponent < -maxExponent {
			return decimal.Decimal{}, false
		}
		return number, true
	default:
		return decimal.Decimal{}, false
	}
}

// ToBool interpreta un valor ya validado con IsBoolean.
func ToBool(value any) bool {
	if typed, ok := value.(bool); ok {
		return typed
	}
	text := ToString(value)
	return text == "true" || text == "1"
}

// IsInt acepta enteros decimales con signo opcional que entren en int64.
func IsInt(value any) bool {
	_, err := strconv.ParseInt(ToString(value), 10, 64)
	return err == nil
}

// NotEmpty falla si el campo no vino, es null o su texto es "".
func NotEmpty(value any) bool {
	return validate.Var(ToString(value), "required") == nil
}

// IsNumeric acepta números JSON finitos (incluida la notación 1e3) y
// textos decimales con signo opcional, también con parte entera omitida (".5").
func IsNumeric(value any) bool {
	switch typed := value.(type) {
	case json.Number:
		_, err := typed.Float64()
		return err == nil
	case float64:
		return !math.IsInf(typed, 0) && !math.IsNaN(typed)
	case int, int64:
		return true
	}

	text := ToString(value)
	sign := ""
	if strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-") {
		sign, text = text[:1], text[1:]
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	return validate.Var(sign+text, "numeric") == nil
}

// IsBoolean acepta booleanos JSON y los textos "true", "false", "1", "0".
func IsBoolean(value any) bool {
	if _, ok := value.(bool); ok {
		return true
	}
	return validate.Var(ToString(value), "oneof=true false 1 0") == nil
}

// GreaterThan construye un predicado value > limit con coerción laxa.
// places > 0 redondea el valor antes de comparar, igual que lo haría una
// columna con esa escala.
func GreaterThan(limit decimal.Decimal, places int32) Check {
	return func(value any) bool {
		number, ok := ToDecimal(value)
		if !ok {
			return false
		}
		if places > 0 {
			number = number.Round(places)
		}
		if limit.IsZero() {
			return number.Sign() > 0
		}
		return number.GreaterThan(limit)
	}
}
