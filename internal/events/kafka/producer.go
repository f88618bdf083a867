// Package kafka publishes ledger events to a Kafka compatible broker.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"redart/internal/events"
	"redart/internal/platform/config"
)

const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)

// NewClient creates a producing client and checks broker reachability.
func NewClient(ctx context.Context, cfg config.Kafka) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}
	return client, nil
}

// EnsureTopic creates the events topic if it does not exist.
func EnsureTopic(ctx context.Context, client *kgo.Client, cfg config.Kafka) error {
	admin := kadm.NewClient(client)
	responses, err := admin.CreateTopics(ctx, cfg.Partitions, cfg.ReplicationFactor, nil, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	for _, resp := range responses {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}

// Producer writes encoded events to one topic, keyed by RUID.
type Producer struct {
	client *kgo.Client
	topic  string
}

func NewProducer(client *kgo.Client, topic string) *Producer {
	return &Producer{client: client, topic: topic}
}

// Publish produces synchronously and waits for all in-sync replicas.
func (p *Producer) Publish(ctx context.Context, msg events.Message) error {
	if err := p.client.ProduceSync(ctx, record(p.topic, msg)).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", msg.Type, err)
	}
	return nil
}

func record(topic string, msg events.Message) *kgo.Record {
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(msg.Key),
		Value: msg.Payload,
		Headers: []kgo.RecordHeader{
			{Key: headerEventType, Value: []byte(msg.Type)},
			{Key: headerEventID, Value: []byte(msg.ID.String())},
		},
	}
}

// Store is an events.Store that produces directly, for deployments without
// Postgres where there is no outbox to relay from. Pair it with an async
// publisher.
type Store struct {
	producer *Producer
}

func NewStore(producer *Producer) *Store {
	return &Store{producer: producer}
}

func (s *Store) Append(ctx context.Context, event events.Event) error {
	msg, err := events.Encode(event)
	if err != nil {
		return err
	}
	return s.producer.Publish(ctx, msg)
}
