package events

import (
	"context"
	"time"
)

// TransactionEvent is emitted after a balance-affecting operation commits.
type TransactionEvent struct {
	TransactionId string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Username      string    `json:"username"`
	Counterparty  string    `json:"counterparty,omitempty"`
	AmountCents   int64     `json:"amount_cents"`
	BalanceCents  int64     `json:"balance_cents"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher defines the interface for emitting transaction events.
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
}

// NoOpPublisher is a publisher that drops every event. It is the default when
// no events backend is configured.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event TransactionEvent) error {
	return nil
}
