package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmehra2102/inventory-sales/internal/inventory/application"
	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
	"github.com/dmehra2102/inventory-sales/pkg/schema"
)

var productSchema = schema.MustCompile(`{
  "type": "object",
  "required": ["name", "price", "stock_quantity"],
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "price": {"type": ["number", "string"]},
    "stock_quantity": {"type": "integer"}
  }
}`)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

type productReq struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

func (r productReq) product(id int64) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/products", h.listProducts)
	r.Post("/api/products", h.createProduct)
	r.Get("/api/products/{id}", h.getProduct)
	r.Put("/api/products/{id}", h.updateProduct)
	r.Delete("/api/products/{id}", h.deleteProduct)

	return r
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req.product(0))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("product added", "product_id", p.ID)
	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", p.ID))
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req productReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.UpdateProduct(r.Context(), req.product(id)); err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("product updated", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("product deleted", "product_id", id)
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidProduct):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("product request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err == nil {
		err = productSchema.Validate(body)
	}
	if err == nil {
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
