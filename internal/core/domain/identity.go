package domain

import "time"

// Identity is the authenticated actor of a session. It never carries the
// login secret.
type Identity struct {
	ID        string    `json:"id" bson:"id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// DirectoryEntry is a login-checkable record. SecretHash is a bcrypt hash and
// stays inside the identity service.
type DirectoryEntry struct {
	Identity   Identity `json:"identity"`
	SecretHash string   `json:"secretHash"`
}

// Stripped returns the entry's identity without the secret.
func (e DirectoryEntry) Stripped() Identity {
	return e.Identity
}
