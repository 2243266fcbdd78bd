package authn

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/auth"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/metrics"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/telemetry"
	"github.com/KarimovMurodilla/lead-management-system/internal/users"
)

var (
	// ErrInvalidCredentials deliberately carries no hint about which field
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service implements login, token lifecycle, registration and profiles.
type Service struct {
	Users     users.Repo
	Issuer    *auth.Issuer
	Blacklist Blacklist
}

func NewService(repo users.Repo, issuer *auth.Issuer, blacklist Blacklist) *Service {
	return &Service{Users: repo, Issuer: issuer, Blacklist: blacklist}
}

// Login verifies credentials and issues a token pair plus profile snapshot.
func (s *Service) Login(ctx context.Context, username, password string) (auth.TokenPair, users.User, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			metrics.IncLoginFailure()
			return auth.TokenPair{}, users.User{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, users.User{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		metrics.IncLoginFailure()
		return auth.TokenPair{}, users.User{}, ErrInvalidCredentials
	}

	pair, err := s.Issuer.IssuePair(user.ID, user.Username, user.IsStaff)
	if err != nil {
		return auth.TokenPair{}, users.User{}, err
	}
	metrics.IncLogin()
	telemetry.Info("authn.login", map[string]any{"user_id": user.ID})
	return pair, user, nil
}

// Refresh exchanges a valid, non-revoked refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Issuer.VerifyType(refreshToken, auth.TypeRefresh)
	if err != nil {
		return "", ErrInvalidToken
	}
	revoked, err := s.Blacklist.IsRevoked(ctx, claims.Jti)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrInvalidToken
	}
	return s.Issuer.IssueAccess(claims.Sub, claims.Username, claims.Staff)
}

// Logout revokes the refresh token so future refresh attempts fail.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.Issuer.VerifyType(refreshToken, auth.TypeRefresh)
	if err != nil || claims.Jti == "" {
		return ErrInvalidToken
	}
	expiresAt := time.Unix(claims.Exp, 0).UTC()
	if err := s.Blacklist.Revoke(ctx, claims.Jti, claims.Sub, expiresAt); err != nil {
		return err
	}
	telemetry.Info("authn.logout", map[string]any{"user_id": claims.Sub})
	return nil
}

// RegisterInput carries a validated registration payload.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new account. Every created account is staff: each
// registered user is presumed to need system access.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return users.User{}, err
	}

	user := users.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		IsStaff:      true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return users.User{}, err
	}
	telemetry.Info("authn.registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Profile returns the caller's own account.
func (s *Service) Profile(ctx context.Context, userID string) (users.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// ProfileUpdate carries the mutable profile fields; nil means "leave as is".
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (users.User, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return users.User{}, err
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}
	return s.Users.Update(ctx, user)
}

// SeedAdmin ensures an initial staff account exists for the configured
// credentials. Used at bootstrap; a no-op when the username is taken or
// credentials are not configured.
func (s *Service) SeedAdmin(ctx context.Context, username, password, email string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil
	}
	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, users.ErrNotFound) {
		return err
	}
	_, err := s.Register(ctx, RegisterInput{Username: username, Email: email, Password: password})
	return err
}
