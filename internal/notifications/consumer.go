package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"caterly/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer drains the notification topic and hands events to the email
// service. Multiple workers share one consumer group.
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers        []string
	GroupID        string
	Topics         []string
	SessionTimeout time.Duration
	Heartbeat      time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topics:         []string{topic},
		SessionTimeout: 30 * time.Second,
		Heartbeat:      3 * time.Second,
		MaxRetries:     3,
		RetryBackoff:   time.Second,
	}
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaConsumer(config *ConsumerConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}

	logger.GetDefault().Info("notification consumer workers started",
		"workers", numWorkers,
		"topics", c.config.Topics,
	)
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		config:       c.config,
		workerID:     workerID,
		emailService: c.emailService,
	}

	for {
		select {
		case <-ctx.Done():
			logger.GetDefault().Info("notification worker shutting down", "worker", workerID)
			return
		default:
			if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
				logger.GetDefault().Error("consumer worker error", "worker", workerID, "error", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		logger.GetDefault().Error("consumer group error", "error", err)
	}
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	logger.GetDefault().Info("notification consumer stopped")
	return nil
}

type groupHandler struct {
	config       *ConsumerConfig
	workerID     int
	emailService EmailService
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				logger.GetDefault().Error("failed to process notification message",
					"worker", h.workerID,
					"topic", message.Topic,
					"offset", message.Offset,
					"error", err,
				)
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event Event
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	event.Status = StatusSending

	if err := h.sendWithRetry(ctx, &event); err != nil {
		event.MarkFailed(err)
		return err
	}

	event.MarkSent()
	return nil
}

func (h *groupHandler) sendWithRetry(ctx context.Context, event *Event) error {
	backoff := h.config.RetryBackoff

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		err := h.emailService.SendEvent(ctx, event)
		if err == nil {
			return nil
		}

		if attempt == h.config.MaxRetries {
			return err
		}

		// Exponential backoff between attempts
		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
