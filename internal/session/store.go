package session

import "github.com/finsec/cli/internal/models"

// Persisted is what survives between processes
type Persisted struct {
	Token  string
	UserID models.ID
	Email  string
}

// Store saves and clears the persisted session
type Store interface {
	SaveSession(p Persisted) error
	ClearSession() error
}
