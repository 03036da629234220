package grpc

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
	pb "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/grpc/proto"
)

// StockReader is the read the server exposes; satisfied by application.Service.
type StockReader interface {
	GetStock(ctx context.Context, id int64) (domain.Product, error)
}

type Server struct {
	pb.UnimplementedInventoryServiceServer
	log   *slog.Logger
	stock StockReader
}

func NewServer(log *slog.Logger, stock StockReader) *Server {
	return &Server{log: log, stock: stock}
}

func (s *Server) GetStock(ctx context.Context, req *pb.GetStockRequest) (*pb.GetStockResponse, error) {
	p, err := s.stock.GetStock(ctx, req.GetProductId())
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil, status.Errorf(codes.NotFound, "product %d not found", req.GetProductId())
	}
	if err != nil {
		s.log.Error("stock query failed", "product_id", req.GetProductId(), "err", err)
		return nil, status.Error(codes.Unavailable, "inventory store unavailable")
	}
	return &pb.GetStockResponse{
		ProductId:     p.ID,
		Price:         p.Price.String(),
		StockQuantity: int64(p.StockQuantity),
	}, nil
}

// NewGRPCServer builds a grpc.Server with the stock query service registered.
func NewGRPCServer(srv *Server) *grpc.Server {
	gs := grpc.NewServer()
	pb.RegisterInventoryServiceServer(gs, srv)
	return gs
}

func Run(addr string, srv *Server) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	gs := NewGRPCServer(srv)
	go func() {
		if err := gs.Serve(lis); err != nil {
			srv.log.Error("grpc server stopped", "err", err)
		}
	}()
	return gs, nil
}
