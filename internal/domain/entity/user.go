// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the system. A user may carry a password
// credential, a linked Google account, or both; at least one is required for login.
type User struct {
	ID            uuid.UUID   // The unique identifier for the user.
	Name          string      // The user's display name.
	Email         string      // The user's email, globally unique, used as the login identifier.
	PasswordHash  string      // The bcrypt hash of the password. Empty for OAuth-only accounts.
	AvatarURL     string      // Optional URL to the user's avatar image.
	Role          Role        // The user's role: reader, author or admin.
	GoogleID      string      // The Google 'sub' claim when a Google account is linked. Empty otherwise.
	Preferences   Preferences // Reader preferences, stored as a JSON document.
	EmailVerified bool        // Whether the email address has been verified.

	// Password reset state. The token itself is never stored; only its SHA-256
	// hash, together with an expiry. Cleared on successful reset.
	ResetTokenHash    string
	ResetTokenExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether the account can log in with email/password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ResetTokenValid reports whether the user holds a reset token that has not
// expired at the given instant.
func (u *User) ResetTokenValid(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now)
}

// Preferences holds per-reader display and notification settings.
type Preferences struct {
	FontSize           string             `json:"font_size"`
	Theme              string             `json:"theme"`
	SimplifiedView     bool               `json:"simplified_view"`
	EmailNotifications EmailNotifications `json:"email_notifications"`
}

// EmailNotifications controls which notification emails the user receives.
type EmailNotifications struct {
	WeeklyNewsletter   bool `json:"weekly_newsletter"`
	FavoriteCategories bool `json:"favorite_categories"`
	CommentReplies     bool `json:"comment_replies"`
}

// DefaultPreferences returns the preferences assigned to newly created accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		FontSize: "medium",
		Theme:    "light",
	}
}
