package domain

import "time"

// Profile is the local member identity. UserID is generated once per device
// and embedded in availability keys.
type Profile struct {
	UserID    string
	Name      string
	Major     string
	Bio       string
	CreatedAt time.Time
}
