package backend

import (
	"context"
	"net/http"
	"time"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the account-creation request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Token is the backend's bearer token response.
type Token struct {
	AccessToken string `json:"access_token"`
}

// Profile is the authenticated user's account record.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate is the body for profile edits.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, reg Registration) (*Token, error) {
	var tok Token
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Token, error) {
	var tok Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me returns the profile for the current bearer token.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateMe updates the current user's profile and returns the new record.
func (c *Client) UpdateMe(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodPut, "/auth/me", nil, upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
