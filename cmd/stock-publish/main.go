// Command stock-publish reads stock update messages as JSON from stdin, one per line, and
// publishes them on the configured channel. Operators use it to replay decrements that were
// lost after an order commit.
package main

import (
	"bufio"
	"context"
	"os"

	"github.com/dmehra2102/inventory-sales/internal/config"
	"github.com/dmehra2102/inventory-sales/internal/platform"
	"github.com/dmehra2102/inventory-sales/pkg/logging"
	"github.com/dmehra2102/inventory-sales/pkg/shutdown"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

func main() {
	cfg, err := config.LoadPublisher()
	log := logging.New(cfg.LogLevel)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	pub, err := platform.NewPublisher(cfg, "stock-publish")
	if err != nil {
		log.Error("publisher init failed", "err", err)
		os.Exit(1)
	}
	defer pub.Close()

	n, err := publishLines(ctx, bufio.NewScanner(os.Stdin), pub)
	if err != nil {
		log.Error("publish failed", "published", n, "err", err)
		os.Exit(1)
	}
	log.Info("published stock updates", "count", n, "channel", cfg.ChannelDriver)
}

// publishLines gives each message without an id a fresh one, so replays of the same line are
// distinguishable from broker redeliveries.
func publishLines(ctx context.Context, sc *bufio.Scanner, pub stockupdate.Publisher) (int, error) {
	n := 0
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		m, err := stockupdate.Decode(line)
		if err != nil {
			return n, err
		}
		if m.ID == "" {
			m.ID = stockupdate.NewMessage(m.ProductID, m.Quantity).ID
		}
		if err := pub.Publish(ctx, m); err != nil {
			return n, err
		}
		n++
	}
	return n, sc.Err()
}
