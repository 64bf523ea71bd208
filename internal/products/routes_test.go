package products_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCall   string
	}{
		{
			name:       "get products",
			method:     http.MethodGet,
			path:       "/api/products",
			wantStatus: http.StatusOK,
			wantCall:   "list",
		},
		{
			name:       "get products trailing slash",
			method:     http.MethodGet,
			path:       "/api/products/",
			wantStatus: http.StatusOK,
			wantCall:   "list",
		},
		{
			name:       "post products",
			method:     http.MethodPost,
			path:       "/api/products",
			body:       `{"name":"Mouse","price":50}`,
			wantStatus: http.StatusCreated,
			wantCall:   "create",
		},
		{
			name:       "get product by id",
			method:     http.MethodGet,
			path:       "/api/products/1",
			wantStatus: http.StatusOK,
			wantCall:   "get",
		},
		{
			name:       "put product",
			method:     http.MethodPut,
			path:       "/api/products/1",
			body:       `{"name":"Mouse","price":50,"availability":true}`,
			wantStatus: http.StatusOK,
			wantCall:   "replace",
		},
		{
			name:       "patch product",
			method:     http.MethodPatch,
			path:       "/api/products/1",
			wantStatus: http.StatusOK,
			wantCall:   "toggle",
		},
		{
			name:       "delete product",
			method:     http.MethodDelete,
			path:       "/api/products/1",
			wantStatus: http.StatusOK,
			wantCall:   "delete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubService{}
			recorder := doRequest(t, newRouter(service), tt.method, tt.path, tt.body)

			require.Equal(t, tt.wantStatus, recorder.Code)
			require.Equal(t, []string{tt.wantCall}, service.calls)
		})
	}
}
