package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrLoginDisabled is returned when no staff account is configured.
var ErrLoginDisabled = errors.New("staff login disabled")

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize trims the username; passwords are compared verbatim.
func (r LoginRequest) Normalize() LoginRequest {
	r.Username = strings.TrimSpace(r.Username)
	return r
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Roles       []string  `json:"roles"`
}
