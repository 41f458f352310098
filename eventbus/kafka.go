package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"blog-admin/internal/logger"
)

// KafkaBus implements Bus on top of confluent-kafka-go.
type KafkaBus struct {
	producer *kafka.Producer
	brokers  string
}

// NewKafkaBus creates the producer and starts draining its event channel.
func NewKafkaBus(brokers string) (*KafkaBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	// drain delivery reports so the producer queue never fills up
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("kafka delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaBus{producer: p, brokers: brokers}, nil
}

// Publish marshals payload and waits for the broker delivery report.
func (k *KafkaBus) Publish(ctx context.Context, topic string, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// The channel is never closed: the poller delivers the report on it even
	// after the request context is gone, and a send on a closed channel would
	// crash the process.
	deliveryChan := make(chan kafka.Event, 1)

	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(key),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce event: %w", err)
	}

	return awaitDelivery(ctx, deliveryChan)
}

// awaitDelivery blocks until the delivery report for the in-flight message
// arrives or ctx is cancelled. On cancellation the pending report is drained
// in the background so the producer goroutine never blocks on it.
func awaitDelivery(ctx context.Context, deliveryChan chan kafka.Event) error {
	select {
	case ev := <-deliveryChan:
		m := ev.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver event: %w", m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		go func() { <-deliveryChan }()
		return ctx.Err()
	}
}

// Close flushes outstanding messages before shutting the producer down.
func (k *KafkaBus) Close() {
	if k.producer == nil {
		return
	}
	if remaining := k.producer.Flush(5000); remaining > 0 {
		logger.Log.Warnf("%d kafka messages still queued after flush", remaining)
	}
	k.producer.Close()
	logger.Log.Info("kafka producer closed")
}

// EnsureTopic creates the topic when it does not exist yet.
func EnsureTopic(brokers, topic string, partitions, replication int) error {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return fmt.Errorf("create kafka admin client: %w", err)
	}
	defer adminClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, []kafka.TopicSpecification{{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: replication,
	}})
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("create topic %s: %s", result.Topic, result.Error)
		}
		logger.Log.Infof("topic %s is ready", result.Topic)
	}
	return nil
}
