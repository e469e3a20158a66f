// Package user contains the credential domain model.
package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Credential is a registered account: a unique username and a bcrypt hash.
// Created once at signup, read at every login, never updated.
type Credential struct {
	ID             string
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}

var (
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrAlreadyExists    = errors.New("username already exists")
	ErrNotFound         = errors.New("credential not found")
	ErrPasswordMismatch = errors.New("password does not match")
)

// NewCredential hashes the password with a random per-credential salt
// (bcrypt embeds the salt in the hash) and returns the credential.
func NewCredential(username, password string, bcryptCost int) (*Credential, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Credential{
		Username:       username,
		HashedPassword: string(hash),
		CreatedAt:      time.Now(),
	}, nil
}

// CheckPassword compares the supplied password against the stored hash.
func (c *Credential) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(c.HashedPassword), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
