// Package amqp publishes transaction lifecycle events to RabbitMQ for
// downstream consumers (budget alerts, exports). Publishing is best-effort:
// the API never fails a request because the broker is down.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/508labs/spendings/internal/platform/spending"
)

const publishTimeout = 5 * time.Second

// Publisher implements spending.EventPublisher over a durable queue.
type Publisher struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	queueName string
}

// NewPublisher dials the broker and declares the durable queue.
func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &Publisher{
		conn:      conn,
		channel:   channel,
		queueName: queueName,
	}, nil
}

// PublishTransactionCreated publishes a persistent JSON message for the
// newly created transaction.
func (p *Publisher) PublishTransactionCreated(ctx context.Context, evt spending.TransactionCreatedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		"",          // default exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	return p.conn.Close()
}
