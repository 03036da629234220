package grpc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	pb "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/grpc/proto"
	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
)

// InventoryClient answers stock queries over the Inventory gRPC service.
type InventoryClient struct {
	log  *slog.Logger
	cc   pb.InventoryServiceClient
	conn *grpc.ClientConn
}

func NewInventoryClient(log *slog.Logger, addr string) (*InventoryClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	c := NewInventoryClientFromConn(log, conn)
	c.conn = conn
	return c, nil
}

func NewInventoryClientFromConn(log *slog.Logger, cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{log: log, cc: pb.NewInventoryServiceClient(cc)}
}

func (c *InventoryClient) GetStock(ctx context.Context, productID int64) (domain.StockSnapshot, error) {
	resp, err := c.cc.GetStock(ctx, &pb.GetStockRequest{ProductId: productID})
	if status.Code(err) == codes.NotFound {
		return domain.StockSnapshot{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.StockSnapshot{}, fmt.Errorf("stock query: %w", err)
	}
	price, err := decimal.NewFromString(resp.GetPrice())
	if err != nil {
		return domain.StockSnapshot{}, fmt.Errorf("stock query: bad price %q: %w", resp.GetPrice(), err)
	}
	return domain.StockSnapshot{ProductID: resp.GetProductId(), Price: price, StockQuantity: resp.GetStockQuantity()}, nil
}

func (c *InventoryClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
