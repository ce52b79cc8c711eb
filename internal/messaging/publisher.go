package messaging

import (
	"context"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

// Publisher defines the interface for publishing ledger events to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a ledger event, the event id deduplicates retries
	PublishEvent(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
}
