package models

import "time"

// User is resolved from a session token on every request.
type User struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	SessionToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
