package domain

import (
	"fmt"
	"slices"
	"time"
)

const DateLayout = "2006-01-02"

// Project is a team's shared context. NextMeeting, when set, overrides the
// meeting time derived from availability votes.
type Project struct {
	ID          string
	Name        string
	Goal        string
	Code        string
	Deadline    *time.Time
	NextMeeting string
	Members     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a caller can set.
func (p *Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("project id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.NextMeeting != "" {
		if err := ValidateMeetingTime(p.NextMeeting); err != nil {
			return err
		}
	}
	return nil
}

// AddMember records userID as a member and reports whether it was new.
func (p *Project) AddMember(userID string) bool {
	if slices.Contains(p.Members, userID) {
		return false
	}
	p.Members = append(p.Members, userID)
	return true
}

// DisplayID returns the team code when set, otherwise a truncated ID.
func (p *Project) DisplayID() string {
	if p.Code != "" {
		return p.Code
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
