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

	"github.com/dmehra2102/inventory-sales/internal/sales/application"
	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	"github.com/dmehra2102/inventory-sales/pkg/schema"
)

var (
	createOrderSchema = schema.MustCompile(`{
  "type": "object",
  "required": ["product_id", "quantity"],
  "properties": {
    "product_id": {"type": "integer"},
    "quantity": {"type": "integer"}
  }
}`)
	updateStatusSchema = schema.MustCompile(`{
  "type": "object",
  "required": ["status"],
  "properties": {
    "status": {"type": "string", "enum": ["Pending", "Confirmed", "Rejected"]}
  }
}`)
)

type Handler struct {
	log         *slog.Logger
	coordinator *application.Coordinator
	service     *application.Service
}

func NewHandler(log *slog.Logger, coordinator *application.Coordinator, service *application.Service) *Handler {
	return &Handler{log: log, coordinator: coordinator, service: service}
}

type createOrderReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateStatusReq struct {
	Status domain.OrderStatus `json:"status"`
}

type errorResp struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var rejectionStatus = map[domain.RejectReason]int{
	domain.ReasonInvalidQuantity:      http.StatusBadRequest,
	domain.ReasonNotFound:             http.StatusNotFound,
	domain.ReasonInsufficientStock:    http.StatusConflict,
	domain.ReasonInventoryUnavailable: http.StatusServiceUnavailable,
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/orders", h.listOrders)
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders/{id}", h.getOrder)
	r.Put("/api/orders/{id}", h.updateOrder)
	r.Delete("/api/orders/{id}", h.deleteOrder)

	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if !decodeBody(w, r, createOrderSchema, &req) {
		return
	}

	o, err := h.coordinator.PlaceOrder(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", o.ID))
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateStatusReq
	if !decodeBody(w, r, updateStatusSchema, &req) {
		return
	}
	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("order status updated", "order_id", id, "status", req.Status)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("order deleted", "order_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	var rej *domain.RejectionError
	switch {
	case errors.As(err, &rej):
		writeJSON(w, rejectionStatus[rej.Reason], errorResp{Error: string(rej.Reason), Message: rej.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: "order-not-found", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid-status", Message: err.Error()})
	default:
		h.log.Error("order request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal", Message: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v *schema.Validator, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err == nil {
		err = v.Validate(body)
	}
	if err == nil {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid-body", Message: err.Error()})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid-id", Message: "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
