package model

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered player account.
// The Secret field is a capability token proving ownership of the
// account; it is redacted from list/read responses and only returned
// on registration and login-code redemption.
type User struct {
	ID       UserID    `json:"id"`
	Nickname string    `json:"nickname"`
	Secret   string    `json:"secret"`
	Stats    UserStats `json:"stats"`
	Friends  []UserID  `json:"friends"`
}

// UserStats holds per-mode win counters
type UserStats struct {
	Local  ModeStats `json:"local"`
	Online ModeStats `json:"online"`
}

// ModeStats counts games played and won in a single mode
type ModeStats struct {
	Total int `json:"total"`
	Won   int `json:"won"`
}

// Normalize fills in fields that may be absent on records written by
// older versions. A missing friends list is an empty set, not an error.
func (u *User) Normalize() {
	if u.Friends == nil {
		u.Friends = []UserID{}
	}
}
