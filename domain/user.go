package domain

// A User is the principal signed in to a browser session,
// as reported by the identity provider.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// GetID implements logger.LogUser.
func (u User) GetID() string { return u.ID }

// GetEmail implements logger.LogUser.
func (u User) GetEmail() string { return u.Email }

// HasAccess asserts whether the User is signed in.
func (u User) HasAccess() bool { return u.ID != "" }

// HomePath returns the relative URL path designated
// as the default resource the User can access.
func (u User) HomePath() string {
	if !u.HasAccess() {
		return "/login"
	}

	return "/dashboard"
}

// Name prefers the display name, falling back to the email address.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}

	return u.Email
}
