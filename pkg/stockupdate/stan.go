package stockupdate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	stan "github.com/nats-io/stan.go"
)

type StanConfig struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string
	Group     string
	Durable   string
	AckWait   time.Duration
}

func (c StanConfig) connect() (stan.Conn, error) {
	clientID := c.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("stock-%d", time.Now().UnixNano())
	}
	return stan.Connect(c.ClusterID, clientID, stan.NatsURL(c.URL))
}

// stanConn is the part of stan.Conn the publisher uses.
type stanConn interface {
	PublishAsync(subject string, data []byte, ah stan.AckHandler) (string, error)
	Close() error
}

type StanPublisher struct {
	conn    stanConn
	subject string
}

func NewStanPublisher(cfg StanConfig) (*StanPublisher, error) {
	sc, err := cfg.connect()
	if err != nil {
		return nil, fmt.Errorf("stan connect: %w", err)
	}
	return &StanPublisher{conn: sc, subject: cfg.Subject}, nil
}

// Publish waits for the streaming server's ack or for ctx, whichever comes first. A message
// abandoned on ctx may still be stored by the server.
func (p *StanPublisher) Publish(ctx context.Context, m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	acked := make(chan error, 1)
	if _, err := p.conn.PublishAsync(p.subject, data, func(_ string, err error) { acked <- err }); err != nil {
		return fmt.Errorf("stan publish: %w", err)
	}
	select {
	case err := <-acked:
		if err != nil {
			return fmt.Errorf("stan publish: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stan publish: %w", ctx.Err())
	}
}

func (p *StanPublisher) Close() error { return p.conn.Close() }

type StanSubscriber struct {
	log *slog.Logger
	cfg StanConfig
}

func NewStanSubscriber(log *slog.Logger, cfg StanConfig) *StanSubscriber {
	if cfg.AckWait == 0 {
		cfg.AckWait = 10 * time.Second
	}
	return &StanSubscriber{log: log, cfg: cfg}
}

// Subscribe acks only after the handler succeeds; anything else is redelivered after AckWait.
func (s *StanSubscriber) Subscribe(ctx context.Context, handler Handler) error {
	sc, err := s.cfg.connect()
	if err != nil {
		return fmt.Errorf("stan connect: %w", err)
	}
	defer sc.Close()

	sub, err := sc.QueueSubscribe(s.cfg.Subject, s.cfg.Group, func(msg *stan.Msg) {
		m, err := Decode(msg.Data)
		if err != nil {
			s.log.Error("dropping undecodable stock update", "sequence", msg.Sequence, "err", err)
			_ = msg.Ack()
			return
		}
		if err := handler(ctx, m); err != nil {
			s.log.Warn("stock update not acked", "message_id", m.ID, "redelivered", msg.Redelivered, "err", err)
			return
		}
		if err := msg.Ack(); err != nil {
			s.log.Error("ack failed", "message_id", m.ID, "err", err)
		}
	}, stan.DurableName(s.cfg.Durable), stan.SetManualAckMode(), stan.AckWait(s.cfg.AckWait), stan.DeliverAllAvailable())
	if err != nil {
		return fmt.Errorf("stan subscribe: %w", err)
	}

	<-ctx.Done()
	return sub.Close()
}
