// Package messaging publishes gameplay events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vn-server/internal/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	exchangeType     = "topic"
	routingKeyPrefix = "gameplay."
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQEventPublisher sends gameplay events to a durable topic exchange.
// Routing key is "gameplay.<event type>".
type RabbitMQEventPublisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
	logger   *zap.Logger
}

var _ interfaces.EventPublisher = (*RabbitMQEventPublisher)(nil)

// NewRabbitMQEventPublisher opens a channel on conn and declares the exchange.
func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string, logger *zap.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return newPublisher(ch, exchange, logger)
}

func newPublisher(ch channel, exchange string, logger *zap.Logger) (*RabbitMQEventPublisher, error) {
	err := ch.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		logger.Error("Failed to declare gameplay exchange", zap.String("exchange", exchange), zap.Error(err))
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchange, err)
	}
	logger.Info("Gameplay exchange declared", zap.String("exchange", exchange), zap.String("type", exchangeType))

	return &RabbitMQEventPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.Named("GameplayEventPublisher"),
	}, nil
}

// PublishGameplayEvent sends one persistent JSON message.
func (p *RabbitMQEventPublisher) PublishGameplayEvent(ctx context.Context, event interfaces.GameplayEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal gameplay event: %w", err)
	}

	routingKey := routingKeyPrefix + string(event.Type)
	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish gameplay event: %w", err)
	}

	p.logger.Debug("Gameplay event published",
		zap.String("routingKey", routingKey),
		zap.String("playerID", event.PlayerID.String()))
	return nil
}

// Close closes the channel. The connection belongs to the caller.
func (p *RabbitMQEventPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

// NopEventPublisher drops events. Used when no broker is configured.
type NopEventPublisher struct{}

var _ interfaces.EventPublisher = NopEventPublisher{}

func (NopEventPublisher) PublishGameplayEvent(context.Context, interfaces.GameplayEvent) error {
	return nil
}

// Connect dials RabbitMQ, retrying a fixed number of times.
func Connect(ctx context.Context, url string, attempts int, delay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			logger.Info("Connected to RabbitMQ")
			return conn, nil
		}
		lastErr = err
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("rabbitmq unreachable after %d attempts: %w", attempts, lastErr)
}
