package spending

import (
	"context"
	"time"
)

// TransactionCreatedEvent is emitted after a transaction document has been
// persisted. Consumers get the normalized values, not the raw input.
type TransactionCreatedEvent struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
}

// EventPublisher publishes transaction lifecycle events. A nil publisher
// disables publishing; publish failures never fail the originating request.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, evt TransactionCreatedEvent) error
}
