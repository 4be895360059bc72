package config

import (
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/session"
)

// SaveSession persists the session so later invocations stay signed in
func (c *Config) SaveSession(p session.Persisted) error {
	c.Session = SessionConfig{
		Token:  p.Token,
		UserID: p.UserID.String(),
		Email:  p.Email,
	}
	return c.Save()
}

// ClearSession removes the persisted session
func (c *Config) ClearSession() error {
	if c.Session == (SessionConfig{}) {
		return nil
	}
	c.Session = SessionConfig{}
	return c.Save()
}

// SavedProfile is the profile a restored session starts from
func (c *Config) SavedProfile() models.UserProfile {
	p := models.DefaultUserProfile()
	p.ID = models.ID(c.Session.UserID)
	p.Email = c.Session.Email
	return p
}
