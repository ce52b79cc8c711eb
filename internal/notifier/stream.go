package notifier

import (
	"context"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/messaging"
)

type streamNotifier struct {
	publisher messaging.Publisher
}

// NewStreamNotifier publishes every event to the message broker
func NewStreamNotifier(publisher messaging.Publisher) Notifier {
	return &streamNotifier{publisher: publisher}
}

func (n *streamNotifier) Notify(ctx context.Context, event domain.Event) error {
	return n.publisher.PublishEvent(ctx, &event)
}
