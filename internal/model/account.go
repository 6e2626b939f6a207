// Package model defines domain entities for the application.
package model

import "time"

// Account represents a registered user.
// Accounts are immutable after signup; there are no update endpoints.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
