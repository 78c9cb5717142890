package users

import (
	"time"
)

type ContextKey string

const AdminKey ContextKey = "admin"

// Admin is whoever unlocked the admin controls in the current session.
// Visitors never get one.
type Admin struct {
	Name       string    `json:"name"`
	Provider   string    `json:"provider"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

const ProviderPassphrase = "passphrase"
