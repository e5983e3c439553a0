package feed

import "github.com/Jish22/ActivityFinderAPpReboot/internal/domain"

// dedupeAcross strips events from the discover and friends pages that are
// already attributed to a higher-priority section, so each event surfaces in
// exactly one place. Priority runs own > organizations > friends > discover.
// An event hosted by an organization with any event on the organizations page
// is claimed by that organization too, even when the event itself is outside
// the current page.
//
// This is a point-in-time filter on freshly fetched pages; it is not
// re-enforced against previously merged results.
func dedupeAcross(discover, friends, organizations []domain.Event, ownIDs map[string]struct{}) (discoverOut, friendsOut []domain.Event) {
	orgEventIDs := make(map[string]struct{}, len(organizations))
	orgHostIDs := make(map[string]struct{}, len(organizations))
	for _, event := range organizations {
		orgEventIDs[event.ID] = struct{}{}
		if event.HostedByOrg != "" {
			orgHostIDs[event.HostedByOrg] = struct{}{}
		}
	}

	keep := func(event domain.Event) bool {
		if _, ok := ownIDs[event.ID]; ok {
			return false
		}
		if _, ok := orgEventIDs[event.ID]; ok {
			return false
		}
		if event.HostedByOrg != "" {
			if _, ok := orgHostIDs[event.HostedByOrg]; ok {
				return false
			}
		}
		return true
	}

	friendsOut = make([]domain.Event, 0, len(friends))
	friendIDs := make(map[string]struct{}, len(friends))
	for _, event := range friends {
		if keep(event) {
			friendsOut = append(friendsOut, event)
			friendIDs[event.ID] = struct{}{}
		}
	}

	discoverOut = make([]domain.Event, 0, len(discover))
	for _, event := range discover {
		if !keep(event) {
			continue
		}
		if _, ok := friendIDs[event.ID]; ok {
			continue
		}
		discoverOut = append(discoverOut, event)
	}
	return discoverOut, friendsOut
}
