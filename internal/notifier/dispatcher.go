package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

const announcementsCollection = "announcements"

// Dispatcher fans each announcement out into one document per integration
// platform. Platform-specific delivery workers pick the documents up from
// there; this service only records them.
type Dispatcher struct {
	store store.Client
	log   *zap.Logger
	now   func() time.Time
}

// NewDispatcher creates a new announcement dispatcher
func NewDispatcher(storeClient store.Client, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store: storeClient,
		log:   log,
		now:   time.Now,
	}
}

// Start consumes envelopes, writes announcement documents, and acks on
// success. A failed write nacks the envelope so the queue redelivers it.
func (d *Dispatcher) Start(ctx context.Context, in <-chan *Envelope) {
	for {
		select {
		case <-ctx.Done():
			d.log.Info("Dispatcher shutting down")
			return
		case envelope, ok := <-in:
			if !ok {
				d.log.Info("Dispatcher input channel closed")
				return
			}
			d.dispatch(ctx, envelope)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, envelope *Envelope) {
	announcement := envelope.Announcement

	for _, platform := range announcement.Platforms {
		doc := map[string]interface{}{
			"eventId":     announcement.EventID,
			"eventName":   announcement.EventName,
			"hostedByOrg": announcement.HostedByOrg,
			"action":      announcement.Action,
			"platform":    platform,
			"location":    announcement.Location,
			"startTime":   announcement.StartTime.UTC().Format(time.RFC3339),
			"recordedAt":  d.now().UTC().Format(time.RFC3339),
		}

		if _, err := d.store.CreateDocument(ctx, announcementsCollection, doc); err != nil {
			d.log.Error("Failed to record announcement",
				zap.String("event_id", announcement.EventID),
				zap.String("platform", platform),
				zap.Error(err))
			if err := envelope.Nack(ctx); err != nil {
				d.log.Error("Failed to nack envelope", zap.Error(err))
			}
			return
		}
	}

	d.log.Info("Announcement recorded",
		zap.String("event_id", announcement.EventID),
		zap.Int("platform_count", len(announcement.Platforms)))

	if err := envelope.Ack(ctx); err != nil {
		d.log.Error("Failed to ack envelope",
			zap.String("event_id", announcement.EventID),
			zap.Error(err))
	}
}
