package feed

import "github.com/Jish22/ActivityFinderAPpReboot/internal/domain"

// Merge appends a freshly fetched page onto a previously displayed list,
// dropping incoming events whose identifier is already present. Existing
// items keep their relative order; new items follow in fetch order. Merging
// the same page twice is a no-op, which makes "load more" safe against the
// store re-serving boundary records between pages.
func Merge(existing, incoming []domain.Event) []domain.Event {
	merged := make([]domain.Event, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, event := range existing {
		if _, ok := seen[event.ID]; ok {
			continue
		}
		seen[event.ID] = struct{}{}
		merged = append(merged, event)
	}
	for _, event := range incoming {
		if _, ok := seen[event.ID]; ok {
			continue
		}
		seen[event.ID] = struct{}{}
		merged = append(merged, event)
	}
	return merged
}
