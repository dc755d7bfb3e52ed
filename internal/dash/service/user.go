package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/cryptox"
	"github.com/aussiebroadwan/dash/pkg/idx"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrInvalidUser        = errors.New("invalid_user")
	ErrUsernameTaken      = errors.New("username_taken")
)

const minPasswordLength = 8

type UserService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// Session is a signed session token and the claims inside it.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Claims    jwtx.Claims
}

// NewUser is the input for CreateUser.
type NewUser struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
	RoleID      int64
	Status      domain.UserStatus
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, in NewUser) (domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if len(in.Password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password shorter than %d characters", ErrInvalidUser, minPasswordLength)
	}
	status := in.Status
	if status == "" {
		status = domain.UserActive
	}
	if _, err := domain.ParseUserStatus(string(status)); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Email:        strings.TrimSpace(in.Email),
		RoleID:       in.RoleID,
		Status:       status,
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// Login checks the password and issues a session token carrying the scopes
// of the user's role. Every attempt is recorded in the activity log.
func (s *UserService) Login(ctx context.Context, username, password, ipAddress string) (Session, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)
	actor := Actor{Username: username, IPAddress: ipAddress}

	fail := func(reason string, cause error) (Session, error) {
		e := entry(actor, domain.ActionLogin, domain.ModuleUsers, username)
		e.Status = domain.StatusFailed
		e.Details = reason
		if err := record(ctx, s.Store.Activity(), e); err != nil {
			l.Error("failed to record login attempt", slog.Any("error", err))
		}
		return Session{}, cause
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail("unknown user", ErrInvalidCredentials)
		}
		return Session{}, err
	}
	actor.UserID = u.ID

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return fail("wrong password", ErrInvalidCredentials)
		}
		l.Error("failed to verify password", slog.String("user_id", u.ID), slog.Any("error", err))
		return Session{}, err
	}
	if !u.Status.CanSignIn() {
		return fail("account "+string(u.Status), ErrAccountDisabled)
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, u.RoleID)
	if err != nil {
		return Session{}, fmt.Errorf("load role %d: %w", u.RoleID, err)
	}

	session, err := s.issue(u, role, time.Now().UTC())
	if err != nil {
		l.Error("failed to sign session", slog.Any("error", err))
		return Session{}, err
	}

	if err := record(ctx, s.Store.Activity(), entry(actor, domain.ActionLogin, domain.ModuleUsers, username)); err != nil {
		l.Error("failed to record login", slog.Any("error", err))
	}
	l.Info("user signed in", slog.String("user_id", u.ID), slog.String("session_id", session.Claims.SID))
	return session, nil
}

// Logout records the end of a session. Tokens are stateless so there is
// nothing to revoke.
func (s *UserService) Logout(ctx context.Context, actor Actor) error {
	return record(ctx, s.Store.Activity(), entry(actor, domain.ActionLogout, domain.ModuleUsers, actor.Username))
}

func (s *UserService) issue(u domain.User, role domain.Role, now time.Time) (Session, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		u.ID,                      // subject
		idx.New().String(),        // session ID
		role.Permissions.Scopes(), // scopes
		ttl,                       // token lifetime
		s.Issuer,                  // issuer
		u.Username,                // username
		u.DisplayName,             // display name
		u.RoleID,                  // role
		now,                       // current time
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: now.Add(ttl), Claims: claims}, nil
}
