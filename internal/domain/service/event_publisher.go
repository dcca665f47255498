package service

import (
	"context"
	"time"
)

// AccountRegisteredEvent announces a newly created account to downstream services.
type AccountRegisteredEvent struct {
	RequestID    string    `json:"request_id,omitempty"` // For distributed tracing
	SubjectID    string    `json:"subject_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventPublisher defines the interface for publishing account events to a message queue
type EventPublisher interface {
	// PublishAccountRegistered publishes the event once the account is persisted.
	PublishAccountRegistered(ctx context.Context, event *AccountRegisteredEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
