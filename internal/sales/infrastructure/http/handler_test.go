package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/inventory-sales/internal/sales/application"
	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	"github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/memory"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubStock struct {
	err error
}

func (s stubStock) GetStock(_ context.Context, productID int64) (domain.StockSnapshot, error) {
	if s.err != nil {
		return domain.StockSnapshot{}, s.err
	}
	if productID != 1 {
		return domain.StockSnapshot{}, domain.ErrProductNotFound
	}
	return domain.StockSnapshot{ProductID: 1, Price: decimal.RequireFromString("10.00"), StockQuantity: 100}, nil
}

func newRouter(stock application.StockQuery) (http.Handler, *stockupdate.MemoryChannel) {
	repo := memory.NewRepository()
	ch := stockupdate.NewMemoryChannel(16)
	coord := application.NewCoordinator(discard, repo, stock, ch, application.NewLogReconciler(discard),
		application.CoordinatorConfig{QueryTimeout: time.Second, PublishTimeout: time.Second})
	return NewHandler(discard, coord, application.NewService(repo)).Routes(), ch
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

func TestCreateOrder(t *testing.T) {
	h, ch := newRouter(stubStock{})

	w := do(h, http.MethodPost, "/api/orders", `{"product_id":1,"quantity":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/orders/1", w.Header().Get("Location"))

	var o domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Equal(t, domain.StatusConfirmed, o.Status)
	assert.True(t, decimal.NewFromInt(50).Equal(o.TotalPrice))
	assert.Len(t, ch.Published(), 1)
}

func TestCreateOrderRejections(t *testing.T) {
	tests := []struct {
		name   string
		stock  stubStock
		body   string
		code   int
		reason string
	}{
		{"zero quantity", stubStock{}, `{"product_id":1,"quantity":0}`, http.StatusBadRequest, "invalid-quantity"},
		{"unknown product", stubStock{}, `{"product_id":7,"quantity":1}`, http.StatusNotFound, "not-found"},
		{"insufficient", stubStock{}, `{"product_id":1,"quantity":150}`, http.StatusConflict, "insufficient-stock"},
		{"inventory down", stubStock{err: errors.New("dial tcp: refused")}, `{"product_id":1,"quantity":1}`, http.StatusServiceUnavailable, "inventory-unavailable"},
		{"bad body", stubStock{}, `{"product_id":`, http.StatusBadRequest, "invalid-body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ch := newRouter(tt.stock)

			w := do(h, http.MethodPost, "/api/orders", tt.body)
			require.Equal(t, tt.code, w.Code)

			var body errorResp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.reason, body.Error)
			assert.Empty(t, ch.Published())

			w = do(h, http.MethodGet, "/api/orders", "")
			assert.JSONEq(t, `[]`, w.Body.String())
		})
	}
}

func TestOrderAdministration(t *testing.T) {
	h, _ := newRouter(stubStock{})
	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/api/orders", `{"product_id":1,"quantity":2}`).Code)

	w := do(h, http.MethodPut, "/api/orders/1", `{"status":"Rejected"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, http.MethodGet, "/api/orders/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var o domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Equal(t, domain.StatusRejected, o.Status)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/orders/1", `{"status":"Shipped"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/orders/abc", "").Code)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/orders/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/orders/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/api/orders/1", "").Code)
}
