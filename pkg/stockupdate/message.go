// Package stockupdate carries stock decrement instructions from Sales to Inventory.
//
// Every transport delivers at least once. A message may reach the handler more than once,
// and nothing orders messages for different products.
package stockupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Channel is the logical queue name shared by both services.
const Channel = "stock_update"

var ErrInvalidMessage = errors.New("invalid stock update message")

// Message tells Inventory to subtract Quantity from the stock of ProductID. ID is a
// per-publish token that a consumer may use to recognise redelivery.
type Message struct {
	ID        string `json:"id,omitempty"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func NewMessage(productID int64, quantity int) Message {
	return Message{ID: uuid.NewString(), ProductID: productID, Quantity: quantity}
}

func (m Message) Key() string { return strconv.FormatInt(m.ProductID, 10) }

func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

func Decode(raw []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if m.ProductID == 0 {
		return Message{}, fmt.Errorf("%w: missing product_id", ErrInvalidMessage)
	}
	return m, nil
}

type Publisher interface {
	Publish(ctx context.Context, m Message) error
	Close() error
}

// Handler applies one delivery. A non-nil error asks the transport to deliver it again.
type Handler func(ctx context.Context, m Message) error

// Subscriber runs handler for every delivery until ctx is cancelled. It owns its broker
// connection for exactly that long.
type Subscriber interface {
	Subscribe(ctx context.Context, handler Handler) error
}
