package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/inventory-sales/internal/inventory/application"
	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
	"github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/memory"
)

func newRouter() http.Handler {
	svc := application.NewService(memory.NewRepository())
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).Routes()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, r))
	return w
}

func TestProductLifecycle(t *testing.T) {
	h := newRouter()

	w := do(h, http.MethodPost, "/api/products", `{"name":"Widget","description":"blue","price":10.00,"stock_quantity":100}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/products/1", w.Header().Get("Location"))

	var created domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Price.Equal(decimal.NewFromInt(10)))

	w = do(h, http.MethodPut, "/api/products/1", `{"name":"Widget","price":"12.50","stock_quantity":40}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 40, got.StockQuantity)
	assert.Equal(t, "12.5", got.Price.String())

	w = do(h, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductValidationErrors(t *testing.T) {
	h := newRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing name", http.MethodPost, "/api/products", `{"price":1,"stock_quantity":1}`, http.StatusBadRequest},
		{"zero price", http.MethodPost, "/api/products", `{"name":"x","price":0,"stock_quantity":1}`, http.StatusBadRequest},
		{"negative stock", http.MethodPost, "/api/products", `{"name":"x","price":1,"stock_quantity":-1}`, http.StatusBadRequest},
		{"sub-cent price", http.MethodPost, "/api/products", `{"name":"x","price":"10.005","stock_quantity":1}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/products", `{`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/products/abc", "", http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/api/products/9", `{"name":"x","price":1,"stock_quantity":1}`, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/api/products/9", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(h, tt.method, tt.path, tt.body).Code)
		})
	}
}
