package notifications

import (
	"context"
	"fmt"

	"caterly/internal/shared/config"
	"caterly/pkg/logger"
)

// Service owns the notification pipeline: it exposes the Publish entry
// point used by the domain services and runs the consumer workers that
// turn published events into emails.
type Service struct {
	producer Producer
	consumer Consumer
	workers  int
}

// NewService wires the producer and, when an email service is available,
// the consumer. A nil emailService runs the pipeline publish-only.
func NewService(cfg *config.Config) (*Service, error) {
	producer, err := NewKafkaProducer(DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	svc := &Service{
		producer: producer,
		workers:  cfg.Kafka.ConsumerWorkers,
	}

	if cfg.Email.SMTPHost != "" {
		emailService, err := NewSMTPEmailService(NewSMTPConfig(cfg.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to create email service: %w", err)
		}

		consumer, err := NewKafkaConsumer(
			DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, cfg.Kafka.NotificationTopic),
			emailService,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create notification consumer: %w", err)
		}
		svc.consumer = consumer
	} else {
		logger.GetDefault().Warn("SMTP not configured, notification consumer disabled")
	}

	return svc, nil
}

// Publish satisfies the publisher interfaces declared by the domain
// packages. Recipient fields are read from the payload.
func (s *Service) Publish(ctx context.Context, eventType string, payload map[string]interface{}) error {
	event := NewEvent(EventType(eventType), recipientEmail(payload), recipientName(payload), payload)
	return s.producer.PublishEvent(ctx, event)
}

// Start launches the consumer workers. No-op when the consumer is absent.
func (s *Service) Start(ctx context.Context) error {
	if s.consumer == nil {
		return nil
	}
	return s.consumer.Start(ctx, s.workers)
}

// Stop shuts down the consumer and producer in that order so in-flight
// messages drain before the producer connection drops.
func (s *Service) Stop() error {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			logger.GetDefault().Error("failed to stop notification consumer", "error", err)
		}
	}
	return s.producer.Close()
}

func recipientEmail(payload map[string]interface{}) string {
	for _, key := range []string{"contact_email", "email"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func recipientName(payload map[string]interface{}) string {
	for _, key := range []string{"contact_name", "name"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
