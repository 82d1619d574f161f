package scheduler

import (
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
)

// ResolveBestSlot proposes a meeting from the vote map, resolving the winning
// slot's day offset against today. ok is false for an empty map.
func ResolveBestSlot(votes domain.VoteMap, today time.Time) (domain.Proposal, bool) {
	slot, count, ok := BestSlot(votes)
	if !ok {
		return domain.Proposal{}, false
	}
	return domain.ResolveSlotDate(slot, count, today), true
}

// ExplicitProposal wraps a project's explicitly set meeting time.
func ExplicitProposal(nextMeeting string) domain.Proposal {
	return domain.Proposal{Explicit: true, Text: nextMeeting}
}
