// Package rabbitmq publishes committed domain events to a RabbitMQ topic
// exchange. The routing key of every message is the event name.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/streadway/amqp"
)

const DefaultExchange = "fooddelivery.events"

type Config struct {
	URL      string
	Exchange string
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements ports.EventPublisher. A single AMQP channel is shared,
// so publishing is serialized.
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	logger   *slog.Logger

	mu sync.Mutex
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher dials the broker and declares the durable topic exchange.
func NewPublisher(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	p := newPublisher(ch, cfg.Exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger.With("component", "event-publisher", "exchange", exchange),
	}
}

// Publish sends every event as a persistent JSON message. It stops at the
// first failure; events already sent stay sent.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.EventName(), err)
		}

		err = p.channel.Publish(
			p.exchange,        // exchange
			event.EventName(), // routing key
			false,             // mandatory
			false,             // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    event.EventID().String(),
				Type:         event.EventName(),
				Timestamp:    event.OccurredAt(),
				Body:         body,
			})
		if err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.EventName(), err)
		}

		p.logger.DebugContext(ctx, "event published",
			"event", event.EventName(),
			"aggregate_id", event.AggregateID().String(),
		)
	}

	return nil
}

// Close closes the channel and then the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.channel != nil {
		if closeErr := p.channel.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close channel: %w", closeErr))
		}
	}
	if p.conn != nil {
		if closeErr := p.conn.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close connection: %w", closeErr))
		}
	}
	return err
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

var _ ports.EventPublisher = NoopPublisher{}

func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, ...kernel.DomainEvent) error {
	return nil
}
