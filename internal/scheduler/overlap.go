package scheduler

import "github.com/alexanderramin/tandem/internal/domain"

// CountVotes builds the vote map for a set of member grids: for every slot,
// the number of grids containing it. Each grid counts once per slot, so the
// caller must pass one grid per member.
func CountVotes(grids []*domain.Grid) domain.VoteMap {
	votes := make(domain.VoteMap)
	for _, g := range grids {
		for _, s := range g.Slots() {
			votes[s]++
		}
	}
	return votes
}

// BestSlot returns the slot with the highest vote count. Ties go to the
// earliest day offset, then the earliest hour. ok is false when no slot has a
// positive count.
func BestSlot(votes domain.VoteMap) (best domain.Slot, count int, ok bool) {
	for s, n := range votes {
		if n <= 0 {
			continue
		}
		if !ok || n > count || (n == count && s.Before(best)) {
			best, count, ok = s, n, true
		}
	}
	return best, count, ok
}
