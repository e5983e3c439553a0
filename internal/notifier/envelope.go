package notifier

import (
	"context"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
)

// Envelope wraps an announcement with acknowledgment callbacks
type Envelope struct {
	Announcement *domain.Announcement
	ack          func(context.Context) error
	nack         func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(announcement *domain.Announcement, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Announcement: announcement,
		ack:          ack,
		nack:         nack,
	}
}

// Ack acknowledges successful processing
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack negatively acknowledges processing
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}
