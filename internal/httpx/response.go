package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/Lelo88/product-api-golang/internal/validation"
)

// Response es el sobre estándar de la API.
// Solo uno de los campos viaja en cada respuesta: data, errors o message.
type Response struct {
	Data    any               `json:"data,omitempty"`
	Errors  validation.Errors `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}

// JSON escribe una respuesta JSON con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)

	if err := enc.Encode(resp); err != nil {
		// Último recurso: no se pudo serializar JSON.
		http.Error(w, `{"message":"internal server error"}`, http.StatusInternalServerError)
	}
}

// OK devuelve una respuesta exitosa con data.
func OK(w http.ResponseWriter, r *http.Request, status int, data any) {
	echoRequestID(w, r)
	JSON(w, status, Response{Data: data})
}

// Invalid devuelve 400 con la lista completa de errores de validación.
func Invalid(w http.ResponseWriter, r *http.Request, errs validation.Errors) {
	echoRequestID(w, r)
	JSON(w, http.StatusBadRequest, Response{Errors: errs})
}

// Fail devuelve un error con mensaje para humanos.
// No exponer detalles internos (SQL, stacktrace, etc.).
func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	echoRequestID(w, r)
	JSON(w, status, Response{Message: message})
}

func echoRequestID(w http.ResponseWriter, r *http.Request) {
	if requestID := RequestIDFrom(r); requestID != "" {
		w.Header().Set(RequestIDHeader, requestID)
	}
}
