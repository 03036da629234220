package stockupdate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/inventory-sales/pkg/tracing"
)

const messageIDHeader = "message_id"

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// TracedWriter records a producer span for every message and injects its context into the
// message headers.
type TracedWriter struct {
	w *otelkafka.Writer
}

func NewTracedWriter(w *kafka.Writer, tp trace.TracerProvider, topic string) (*TracedWriter, error) {
	tw, err := otelkafka.NewWriter(w,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes([]attribute.KeyValue{
			attribute.String("messaging.destination.name", topic),
		}),
	)
	if err != nil {
		return nil, err
	}
	return &TracedWriter{w: tw}, nil
}

func (t *TracedWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		if err := t.w.WriteMessage(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (t *TracedWriter) Close() error { return t.w.Close() }

func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, m Message) error {
	value, err := Encode(m)
	if err != nil {
		return err
	}
	headers := []kafka.Header{{Key: messageIDHeader, Value: []byte(m.ID)}}
	if _, traced := p.producer.(*TracedWriter); !traced {
		headers = tracing.InjectKafkaHeaders(ctx, headers)
	}
	return p.producer.WriteMessages(ctx, kafka.Message{
		Topic:   p.topic,
		Key:     []byte(m.Key()),
		Value:   value,
		Headers: headers,
	})
}

func (p *KafkaPublisher) Close() error { return p.producer.Close() }

type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaSubscriber struct {
	log         *slog.Logger
	reader      Reader
	maxAttempts int
	backoff     time.Duration
}

func NewKafkaReader(brokers []string, topic, group string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
}

func NewKafkaSubscriber(log *slog.Logger, reader Reader, maxAttempts int, backoff time.Duration) *KafkaSubscriber {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &KafkaSubscriber{log: log, reader: reader, maxAttempts: maxAttempts, backoff: backoff}
}

// Subscribe commits an offset only after the handler has returned for that message, so a
// crash in between redelivers it to the group.
func (s *KafkaSubscriber) Subscribe(ctx context.Context, handler Handler) error {
	defer s.reader.Close()
	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		m, err := Decode(msg.Value)
		if err != nil {
			s.log.Error("dropping undecodable stock update", "offset", msg.Offset, "partition", msg.Partition, "err", err)
		} else {
			msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
			s.deliver(msgCtx, m, handler)
		}

		if err := s.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Error("commit failed", "offset", msg.Offset, "err", err)
		}
	}
}

func (s *KafkaSubscriber) deliver(ctx context.Context, m Message, handler Handler) {
	for attempt := 1; ; attempt++ {
		err := handler(ctx, m)
		if err == nil {
			return
		}
		if attempt >= s.maxAttempts {
			s.log.Error("stock update abandoned", "message_id", m.ID, "product_id", m.ProductID, "attempts", attempt, "err", err)
			return
		}
		s.log.Warn("stock update failed, retrying", "message_id", m.ID, "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
}
