package products

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Lelo88/product-api-golang/internal/httpx"
	"github.com/Lelo88/product-api-golang/internal/logger"
	"github.com/Lelo88/product-api-golang/internal/validation"
)

const maxBodyBytes = 1 << 20

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, input CreateProductInput) (Product, error)
	Replace(ctx context.Context, id int64, input ReplaceProductInput) (Product, error)
	ToggleAvailability(ctx context.Context, id int64) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// Handler HTTP para products.
// Valida primero y solo después habla con el service.
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de products.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /api/products.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.List(request.Context())
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, products)
}

// GetByID maneja GET /api/products/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id, ok := validateID(writer, request)
	if !ok {
		return
	}

	product, err := handler.service.Get(request.Context(), id)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, product)
}

// Create maneja POST /api/products.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	body, ok := decodeBody(writer, request)
	if !ok {
		return
	}

	if errs := validation.Run(validation.Input{Body: body}, createRules...); len(errs) > 0 {
		httpx.Invalid(writer, request, errs)
		return
	}

	input := CreateProductInput{
		Name:  validation.ToString(body["name"]),
		Price: priceFrom(body),
	}
	// availability es opcional al crear; si viene con un valor booleano
	// válido se respeta, cualquier otra cosa deja el default.
	if raw, present := body["availability"]; present && raw != nil && validation.IsBoolean(raw) {
		availability := validation.ToBool(raw)
		input.Availability = &availability
	}

	product, err := handler.service.Create(request.Context(), input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, product)
}

// Replace maneja PUT /api/products/{id}: reemplazo completo.
func (handler *Handler) Replace(writer http.ResponseWriter, request *http.Request) {
	body, ok := decodeBody(writer, request)
	if !ok {
		return
	}

	rawID := chi.URLParam(request, "id")
	input := validation.Input{
		Params: map[string]string{"id": rawID},
		Body:   body,
	}
	if errs := validation.Run(input, replaceRules...); len(errs) > 0 {
		httpx.Invalid(writer, request, errs)
		return
	}

	id, _ := strconv.ParseInt(rawID, 10, 64) // ya validado por idChain
	product, err := handler.service.Replace(request.Context(), id, ReplaceProductInput{
		Name:         validation.ToString(body["name"]),
		Price:        priceFrom(body),
		Availability: validation.ToBool(body["availability"]),
	})
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, product)
}

// ToggleAvailability maneja PATCH /api/products/{id}.
// No lee body: solo invierte availability.
func (handler *Handler) ToggleAvailability(writer http.ResponseWriter, request *http.Request) {
	id, ok := validateID(writer, request)
	if !ok {
		return
	}

	product, err := handler.service.ToggleAvailability(request.Context(), id)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, product)
}

// Delete maneja DELETE /api/products/{id}.
// data es un string y no un objeto; los clientes existentes dependen de eso.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, ok := validateID(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, msgDeleted)
}

func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, msgNotFound)
	default:
		// No filtramos detalles internos; quedan en el log.
		logger.FromContext(request.Context()).Error("product operation failed",
			zap.String("method", request.Method),
			zap.String("path", request.URL.Path),
			zap.Error(err),
		)
		httpx.Fail(writer, request, http.StatusInternalServerError, msgInternal)
	}
}

// validateID corre la cadena de id y responde 400 si falla.
func validateID(writer http.ResponseWriter, request *http.Request) (int64, bool) {
	rawID := chi.URLParam(request, "id")
	input := validation.Input{Params: map[string]string{"id": rawID}}
	if errs := validation.Run(input, idRules...); len(errs) > 0 {
		httpx.Invalid(writer, request, errs)
		return 0, false
	}

	id, _ := strconv.ParseInt(rawID, 10, 64) // ya validado por idChain
	return id, true
}

// decodeBody lee el body como objeto JSON. Body vacío o null cuenta como {}.
func decodeBody(writer http.ResponseWriter, request *http.Request) (map[string]any, bool) {
	body := map[string]any{}
	if request.Body == nil {
		return body, true
	}

	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.UseNumber()

	var decoded map[string]any
	if err := decoder.Decode(&decoded); err != nil && !errors.Is(err, io.EOF) {
		invalidJSON(writer, request)
		return nil, false
	}
	// Un único valor JSON: cualquier cosa después del objeto es inválida.
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		invalidJSON(writer, request)
		return nil, false
	}
	for key, value := range decoded {
		body[key] = value
	}
	return body, true
}

func invalidJSON(writer http.ResponseWriter, request *http.Request) {
	httpx.Invalid(writer, request, validation.Errors{{
		Type:     "field",
		Msg:      msgInvalidJSON,
		Location: validation.LocationBody,
	}})
}

// priceFrom devuelve el price ya validado, en la escala de la columna.
func priceFrom(body map[string]any) decimal.Decimal {
	price, _ := validation.ToDecimal(body["price"])
	return price.Round(priceScale)
}
