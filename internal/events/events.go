// Package events publishes lifecycle events for channels and profiled
// goroutines to Kafka, so an external consumer can track saturation and
// shutdown behavior across a fleet without scraping the debug HTTP
// endpoints.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Kind names the lifecycle event being published.
type Kind string

const (
	KindProducerClosed Kind = "producer_closed"
	KindConsumerClosed Kind = "consumer_closed"
	KindQueueSaturated Kind = "queue_saturated"
)

// Event is the JSON payload published for every lifecycle occurrence.
type Event struct {
	Kind      Kind      `json:"kind"`
	Channel   string    `json:"channel"`
	At        time.Time `json:"at"`
	QueueLen  int       `json:"queue_len,omitempty"`
	QueueCap  int       `json:"queue_cap,omitempty"`
}

// Writer is the subset of *kafka.Writer this package depends on, so tests
// can substitute a mock instead of dialing a real broker.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes Events to a single Kafka topic.
type Publisher struct {
	w     Writer
	topic string
}

// NewPublisher builds a Publisher backed by a real kafka.Writer talking to
// brokers, publishing to topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Async:        true,
			Balancer:     &kafka.CRC32Balancer{},
			BatchSize:    50,
			Compression:  kafka.Lz4,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		topic: topic,
	}
}

// NewPublisherWithWriter builds a Publisher around an already-constructed
// Writer, for tests.
func NewPublisherWithWriter(w Writer, topic string) *Publisher {
	return &Publisher{w: w, topic: topic}
}

// Publish sends one Event. It never blocks on broker acknowledgement: the
// underlying writer is async, so a slow or unreachable broker affects
// throughput, not the caller's latency.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Value: b,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error { return p.w.Close() }
