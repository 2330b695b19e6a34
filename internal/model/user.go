package model

// DefaultTimezone applies to users without a stored timezone.
const DefaultTimezone = "America/Los_Angeles"

// User is the owner of notes, events and planned activities.
type User struct {
	ID             string
	Email          string
	FullName       string
	TokenID        string
	ExternalUserID string
	Timezone       string
}

// TimezoneOrDefault returns the user's IANA timezone or DefaultTimezone.
func (u User) TimezoneOrDefault() string {
	if u.Timezone == "" {
		return DefaultTimezone
	}
	return u.Timezone
}

// UserSelector identifies a user by any one of its lookup keys.
// The first non-empty field wins in the order ID, Email, TokenID, ExternalUserID.
type UserSelector struct {
	ID             string `json:"user_id,omitempty"`
	Email          string `json:"email,omitempty"`
	TokenID        string `json:"token_id,omitempty"`
	ExternalUserID string `json:"external_user_id,omitempty"`
}

// IsZero reports whether no lookup key is set.
func (s UserSelector) IsZero() bool {
	return s.ID == "" && s.Email == "" && s.TokenID == "" && s.ExternalUserID == ""
}
