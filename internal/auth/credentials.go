package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single username and password allowed to sign in.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials uses passwordHash when set, otherwise hashes password.
func NewCredentials(username, password, passwordHash string) (*Credentials, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("invalid password hash: %w", err)
		}
		return &Credentials{username: username, hash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return nil, fmt.Errorf("password or password hash is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Credentials{username: username, hash: hash}, nil
}

func (c *Credentials) Username() string { return c.username }

// Verify reports whether username and password match.
func (c *Credentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}
