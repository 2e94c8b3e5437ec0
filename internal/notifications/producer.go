package notifications

import (
	"context"
	"fmt"
	"time"

	"caterly/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes notification events to Kafka
type Producer interface {
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}

type ProducerConfig struct {
	Brokers         []string
	Topic           string
	RetryMax        int
	Timeout         time.Duration
	RequiredAcks    sarama.RequiredAcks
	Compression     sarama.CompressionCodec
	Idempotent      bool
	MaxMessageBytes int
}

func DefaultProducerConfig(brokers []string, topic string) *ProducerConfig {
	return &ProducerConfig{
		Brokers:         brokers,
		Topic:           topic,
		RetryMax:        3,
		Timeout:         10 * time.Second,
		RequiredAcks:    sarama.WaitForAll,
		Compression:     sarama.CompressionSnappy,
		Idempotent:      true,
		MaxMessageBytes: 1000000,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

func NewKafkaProducer(config *ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.Compression
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.Idempotent
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.Idempotent {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps per-recipient ordering
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("Kafka notification producer created", "topic", config.Topic)
	return &kafkaProducer{producer: producer, config: config}, nil
}

func (p *kafkaProducer) PublishEvent(ctx context.Context, event *Event) error {
	event.Status = StatusQueued
	event.UpdatedAt = time.Now()

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		event.MarkFailed(err)
		return fmt.Errorf("failed to send notification event to Kafka: %w", err)
	}

	logger.GetDefault().Debug("notification event published",
		"topic", p.config.Topic,
		"partition", partition,
		"offset", offset,
		"type", string(event.Type),
		"recipient", event.RecipientEmail,
	)
	return nil
}

func (p *kafkaProducer) createHeaders(event *Event) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("recipient_email"), Value: []byte(event.RecipientEmail)},
		{Key: []byte("producer"), Value: []byte("caterly-notifications")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}
}

func (p *kafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		logger.GetDefault().Info("Kafka notification producer closed")
	}
	return nil
}
