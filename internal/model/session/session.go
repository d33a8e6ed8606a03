package session

import "time"

// State is the gate progress held for one client session.
type State struct {
	// ExpectedAnswer is the normalized answer of the current challenge.
	// Only meaningful when HasChallenge is true.
	ExpectedAnswer string
	HasChallenge   bool
	Unlocked       bool
	ExpiresAt      time.Time
}
