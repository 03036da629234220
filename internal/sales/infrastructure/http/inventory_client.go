package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
)

// TokenSource supplies the bearer credential for each stock query.
type TokenSource interface {
	Token() (string, error)
}

// InventoryClient answers stock queries through Inventory's product API.
type InventoryClient struct {
	log     *slog.Logger
	baseURL string
	tokens  TokenSource
	client  *http.Client
}

// NewInventoryClient sends no Authorization header when tokens is nil.
func NewInventoryClient(log *slog.Logger, baseURL string, tokens TokenSource) *InventoryClient {
	return &InventoryClient{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

type productResp struct {
	ID            int64           `json:"id"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
}

func (c *InventoryClient) GetStock(ctx context.Context, productID int64) (domain.StockSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/products/%d", c.baseURL, productID), nil)
	if err != nil {
		return domain.StockSnapshot{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return domain.StockSnapshot{}, fmt.Errorf("stock query: service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.StockSnapshot{}, fmt.Errorf("stock query: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.StockSnapshot{}, domain.ErrProductNotFound
	default:
		return domain.StockSnapshot{}, fmt.Errorf("stock query: inventory returned %s", resp.Status)
	}

	var p productResp
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return domain.StockSnapshot{}, fmt.Errorf("stock query: decode: %w", err)
	}
	return domain.StockSnapshot{ProductID: p.ID, Price: p.Price, StockQuantity: p.StockQuantity}, nil
}
