package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mesaYaBooking/internal/modules/staff/domain"
	"mesaYaBooking/internal/shared/auth"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(subject string, roles ...string) (string, time.Time, error)
}

// LoginUseCase authenticates the single staff account configured for the restaurant.
type LoginUseCase struct {
	username     string
	passwordHash []byte
	issuer       TokenIssuer
}

func NewLoginUseCase(username, passwordHash string, issuer TokenIssuer) *LoginUseCase {
	return &LoginUseCase{
		username:     strings.TrimSpace(username),
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		issuer:       issuer,
	}
}

func (uc *LoginUseCase) Enabled() bool {
	return uc.username != "" && len(uc.passwordHash) > 0 && uc.issuer != nil
}

// Execute checks the credentials and returns a staff token.
func (uc *LoginUseCase) Execute(_ context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if !uc.Enabled() {
		return domain.LoginResponse{}, domain.ErrLoginDisabled
	}
	req = req.Normalize()

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(uc.username)) == 1
	// The hash is checked even for unknown usernames.
	err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(req.Password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.LoginResponse{}, fmt.Errorf("compare staff password: %w", err)
	}
	if !userOK || err != nil {
		slog.Warn("staff login rejected", slog.String("username", req.Username))
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.issuer.Issue(uc.username, auth.RoleStaff)
	if err != nil {
		return domain.LoginResponse{}, fmt.Errorf("issue staff token: %w", err)
	}
	slog.Info("staff login", slog.String("username", uc.username), slog.Time("expiresAt", expiresAt))
	return domain.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Roles:       []string{auth.RoleStaff},
	}, nil
}

// HashPassword returns the bcrypt hash stored in STAFF_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
