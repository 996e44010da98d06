package model

import (
	"errors"
	"regexp"
	"time"
)

// Username and password rules, checked at registration time.
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit        = regexp.MustCompile(`\d`)

	ErrInvalidUsername = errors.New("username must be 3-20 characters, alphanumeric and underscores only")
	ErrWeakPassword    = errors.New("password must be at least 8 characters and contain letters and digits")
)

// User is a registered account. PasswordHash holds a bcrypt hash, never the
// plaintext password.
type User struct {
	CreatedAt    time.Time
	Username     string
	PasswordHash string
}

// ValidateUsername checks the registration username rules.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword checks the registration password rules against the
// plaintext candidate.
func ValidatePassword(password string) error {
	if len(password) < 8 || !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
