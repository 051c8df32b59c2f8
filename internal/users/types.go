// Package users provides Microsoft 365 user lookup via the Microsoft Graph
// REST API.
package users

import (
	"context"
	"fmt"
	"net/mail"
)

// UserSearch carries the criteria for a user lookup. At least one field must
// be set. A valid email takes precedence over the name fields entirely.
type UserSearch struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate checks that at least one criterion is present and that Email, when
// given, is a syntactically valid address.
func (s UserSearch) Validate() error {
	if s.Email == "" && s.FirstName == "" && s.LastName == "" {
		return fmt.Errorf("at least one of email, first_name, or last_name must be provided")
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return fmt.Errorf("invalid email address %q", s.Email)
		}
	}
	return nil
}

// UserManager defines the interface for user lookup operations.
type UserManager interface {
	// Search returns the requesting user followed by every match for the
	// given criteria.
	Search(ctx context.Context, search UserSearch) ([]map[string]any, error)
}
