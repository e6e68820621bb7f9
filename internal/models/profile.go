package models

import "time"

// Profile is the single local user. Passwords are checked at registration
// but never stored.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
