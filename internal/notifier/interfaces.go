package notifier

import (
	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into
// announcements
type MessageParser interface {
	Parse(body []byte) (*domain.Announcement, error)
}
