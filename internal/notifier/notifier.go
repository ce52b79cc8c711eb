package notifier

import (
	"context"
	"errors"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

// Notifier announces ledger events to operators and downstream consumers.
// Delivery is best effort, callers never fail a request on a notifier error.
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

type nop struct{}

// NewNop returns a notifier that drops every event
func NewNop() Notifier {
	return nop{}
}

func (nop) Notify(context.Context, domain.Event) error {
	return nil
}

type multi []Notifier

// NewMulti fans an event out to every sink, a failing sink does not stop the others
func NewMulti(sinks ...Notifier) Notifier {
	return multi(sinks)
}

func (m multi) Notify(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
