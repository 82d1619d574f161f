package domain

import "time"

// FocusReport is the payload submitted for one focus-time delta.
type FocusReport struct {
	UserID       string `json:"userId"`
	ProjectID    string `json:"projectId"`
	FocusSeconds int64  `json:"focusSeconds"`
}

// RetryEntry is a report that failed submission. EnqueuedAt (unix
// milliseconds, unique within the queue) identifies the entry; two entries
// may carry identical reports.
//
// While a flush or the owning session resubmits an entry it holds a claim on
// it; nobody else may submit a claimed entry until the claim is released or
// expires.
type RetryEntry struct {
	Report     FocusReport `json:"payload"`
	EnqueuedAt int64       `json:"enqueueTimestamp"`
	ClaimedBy  string      `json:"claimedBy,omitempty"`
	ClaimedAt  int64       `json:"claimedAt,omitempty"`
}

// ClaimTTL bounds how long a claim holds. A claim left behind by a process
// that died mid-submit lapses after it.
const ClaimTTL = 5 * time.Minute

// ClaimedByOther reports whether someone other than owner holds a live claim
// on e at now.
func (e RetryEntry) ClaimedByOther(owner string, now time.Time) bool {
	if e.ClaimedBy == "" || e.ClaimedBy == owner {
		return false
	}
	return now.Sub(time.UnixMilli(e.ClaimedAt)) < ClaimTTL
}
