// Package platform builds the broker clients a binary needs from its configuration.
package platform

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dmehra2102/inventory-sales/internal/config"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

// NewPublisher connects the stock update producer selected by CHANNEL_DRIVER.
func NewPublisher(c config.Common, clientName string) (stockupdate.Publisher, error) {
	switch c.ChannelDriver {
	case config.ChannelDriverKafka:
		w, err := stockupdate.NewTracedWriter(stockupdate.NewKafkaWriter(c.KafkaBrokers), otel.GetTracerProvider(), c.StockTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka writer: %w", err)
		}
		return stockupdate.NewKafkaPublisher(w, c.StockTopic), nil
	case config.ChannelDriverStan:
		return stockupdate.NewStanPublisher(stanConfig(c, clientName))
	}
	return nil, fmt.Errorf("unknown channel driver %q", c.ChannelDriver)
}

// NewSubscriber builds the inventory side of the stock update channel. Kafka and STAN both
// share work across replicas through ConsumerGroup.
func NewSubscriber(log *slog.Logger, c config.Inventory) (stockupdate.Subscriber, error) {
	switch c.ChannelDriver {
	case config.ChannelDriverKafka:
		reader := stockupdate.NewKafkaReader(c.KafkaBrokers, c.StockTopic, c.ConsumerGroup)
		return stockupdate.NewKafkaSubscriber(log, reader, c.ConsumerMaxAttempts, c.ConsumerBackoff), nil
	case config.ChannelDriverStan:
		sc := stanConfig(c.Common, c.ConsumerGroup)
		sc.Group = c.ConsumerGroup
		sc.Durable = c.ConsumerGroup
		return stockupdate.NewStanSubscriber(log, sc), nil
	}
	return nil, fmt.Errorf("unknown channel driver %q", c.ChannelDriver)
}

func stanConfig(c config.Common, clientName string) stockupdate.StanConfig {
	clientID := c.Stan.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("%s-%d", clientName, time.Now().UnixNano())
	}
	return stockupdate.StanConfig{
		ClusterID: c.Stan.ClusterID,
		ClientID:  clientID,
		URL:       c.Stan.URL,
		Subject:   c.StockTopic,
		AckWait:   30 * time.Second,
	}
}
