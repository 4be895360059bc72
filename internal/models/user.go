package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Preferences are display settings kept with the cached profile
type Preferences struct {
	Theme    string `json:"theme" yaml:"theme"`
	Currency string `json:"currency" yaml:"currency"`
	Language string `json:"language" yaml:"language"`
}

// CardBalance is the cached balance of one linked payment card
type CardBalance struct {
	ID      ID              `json:"id" yaml:"id"`
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// UserProfile is the client-side snapshot of the signed-in user.
type UserProfile struct {
	ID                ID            `json:"id" yaml:"id"`
	FirstName         string        `json:"firstName" yaml:"first_name"`
	LastName          string        `json:"lastName" yaml:"last_name"`
	PreferredName     string        `json:"preferredName,omitempty" yaml:"preferred_name,omitempty"`
	Email             string        `json:"email" yaml:"email"`
	Phone             string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address           string        `json:"address,omitempty" yaml:"address,omitempty"`
	MemberSince       string        `json:"memberSince" yaml:"member_since"`
	Status            string        `json:"status" yaml:"status"`
	LastLogin         time.Time     `json:"lastLogin" yaml:"last_login"`
	NotificationCount int           `json:"notificationCount" yaml:"notification_count"`
	Preferences       Preferences   `json:"preferences" yaml:"preferences"`
	Cards             []CardBalance `json:"cards" yaml:"cards"`
}

// DefaultUserProfile is the profile of a signed-out session
func DefaultUserProfile() UserProfile {
	now := time.Now()
	return UserProfile{
		MemberSince: now.Format(time.RFC3339),
		Status:      "active",
		LastLogin:   now,
		Preferences: Preferences{
			Theme:    "light",
			Currency: "USD",
			Language: "en",
		},
		Cards: []CardBalance{},
	}
}

// Clone returns a copy that shares no slices with p
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Cards = make([]CardBalance, len(p.Cards))
	copy(out.Cards, p.Cards)
	return out
}

// DisplayName prefers the preferred name over the first name
func (p UserProfile) DisplayName() string {
	if p.PreferredName != "" {
		return p.PreferredName
	}
	if p.FirstName == "" && p.LastName == "" {
		return p.Email
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Profile is the body of GET /api/users/profile
type Profile struct {
	ID            ID     `json:"id" yaml:"id"`
	FirstName     string `json:"firstName" yaml:"first_name"`
	LastName      string `json:"lastName" yaml:"last_name"`
	Email         string `json:"email" yaml:"email"`
	PreferredName string `json:"preferredName" yaml:"preferred_name"`
	Phone         string `json:"phone" yaml:"phone"`
	Address       string `json:"address" yaml:"address"`
	MemberSince   string `json:"memberSince" yaml:"member_since"`
	Status        string `json:"status" yaml:"status"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched both in the
// local cache and on the server.
type ProfilePatch struct {
	ID                *ID           `json:"-"`
	FirstName         *string       `json:"firstName,omitempty"`
	LastName          *string       `json:"lastName,omitempty"`
	PreferredName     *string       `json:"preferredName,omitempty"`
	Email             *string       `json:"-"`
	Phone             *string       `json:"phone,omitempty"`
	Address           *string       `json:"address,omitempty"`
	MemberSince       *string       `json:"-"`
	Status            *string       `json:"-"`
	NotificationCount *int          `json:"-"`
	Preferences       *Preferences  `json:"-"`
	Cards             []CardBalance `json:"-"`
}

// IsEmpty reports whether the patch changes nothing on the server
func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.PreferredName == nil &&
		p.Phone == nil && p.Address == nil
}

// Apply merges the non-nil fields of patch into p
func (p *UserProfile) Apply(patch ProfilePatch) {
	if patch.ID != nil {
		p.ID = *patch.ID
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.PreferredName != nil {
		p.PreferredName = *patch.PreferredName
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.MemberSince != nil {
		p.MemberSince = *patch.MemberSince
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.NotificationCount != nil {
		p.NotificationCount = *patch.NotificationCount
	}
	if patch.Preferences != nil {
		p.Preferences = *patch.Preferences
	}
	if patch.Cards != nil {
		p.Cards = make([]CardBalance, len(patch.Cards))
		copy(p.Cards, patch.Cards)
	}
}

// PatchFromProfile converts a server profile into a patch for the cache
func PatchFromProfile(pr Profile) ProfilePatch {
	return ProfilePatch{
		ID:            &pr.ID,
		FirstName:     &pr.FirstName,
		LastName:      &pr.LastName,
		PreferredName: &pr.PreferredName,
		Email:         &pr.Email,
		Phone:         &pr.Phone,
		Address:       &pr.Address,
		MemberSince:   &pr.MemberSince,
		Status:        &pr.Status,
	}
}

// PatchFromUser converts the login user record into a patch for the cache
func PatchFromUser(u User) ProfilePatch {
	status := "inactive"
	if u.IsActive {
		status = "active"
	}
	patch := ProfilePatch{
		ID:        &u.ID,
		FirstName: &u.FirstName,
		LastName:  &u.LastName,
		Email:     &u.Email,
		Status:    &status,
	}
	if u.PhoneNumber != "" {
		patch.Phone = &u.PhoneNumber
	}
	if u.CreatedAt != "" {
		patch.MemberSince = &u.CreatedAt
	}
	return patch
}
