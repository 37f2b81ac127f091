// Package services contains application services for the MotoSegura client.
// This file defines the authentication service: it owns the session writer
// and drives the session through initialize, login, logout and profile
// updates, persisting the bearer token in the local metadata store.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/manuelmariscal/coursera/internal/client/client"
	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/client/repositories/metadata"
	"github.com/manuelmariscal/coursera/internal/client/session"
	"github.com/manuelmariscal/coursera/internal/common"
	"github.com/manuelmariscal/coursera/internal/logging"
)

var (
	ErrAlreadyInitialized   = errors.New("session already initialized")
	ErrNotInitialized       = errors.New("session not initialized")
	ErrAlreadyAuthenticated = errors.New("already logged in")
	ErrNotAuthenticated     = errors.New("not logged in")
)

// AuthService defines session lifecycle operations for the CLI.
//
// Contract:
//   - Initialize: restore a persisted token once at startup, validating it
//     against the backend; any failure ends Anonymous with the token removed.
//   - Login: authenticate, persist the token and install the user.
//     Backend errors are returned as-is (wrapped), never retried.
//   - Logout: forget the token locally; never fails and makes no call.
//   - IsAdmin: role predicate over the current session.
//   - UpdateProfile: replace the session user with the stored profile.
type AuthService interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, username string, password []byte) (bool, error)
	Logout(ctx context.Context)
	IsAdmin() bool
	UpdateProfile(ctx context.Context, u models.User) (*models.User, error)
	LastUsername(ctx context.Context) string
	Session() *session.Store
}

type authService struct {
	client client.AuthAPI
	meta   metadata.Repository
	store  *session.Store
	writer *session.Writer
	logger logging.Logger

	// mu serialises lifecycle transitions.
	mu          sync.Mutex
	initialized bool
}

// NewAuthService binds the service to the API, the metadata store and the
// session. The service becomes the only holder of w.
func NewAuthService(api client.AuthAPI, meta metadata.Repository, store *session.Store, w *session.Writer, logger logging.Logger) AuthService {
	return &authService{
		client: api,
		meta:   meta,
		store:  store,
		writer: w,
		logger: logger.With("component", "auth"),
	}
}

func (a *authService) Session() *session.Store {
	return a.store
}

// Initialize runs Uninitialized -> Validating -> Authenticated|Anonymous.
// Only the first call does anything; later calls get ErrAlreadyInitialized.
func (a *authService) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return ErrAlreadyInitialized
	}
	a.initialized = true

	raw, err := a.meta.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		a.logger.Warn(ctx, "persisted token unreadable", "error", err)
		raw = nil
	}
	if len(raw) == 0 {
		a.writer.Clear()
		a.logger.Debug(ctx, "no persisted session")
		return nil
	}

	token := string(raw)
	a.writer.BeginValidation(token)

	user, err := a.client.Me(ctx)
	if err != nil {
		a.logger.Warn(ctx, "persisted token rejected", "error", err)
		a.forgetToken(ctx)
		a.writer.Clear()
		return nil
	}

	a.writer.Authenticate(*user, token)
	a.logger.Info(ctx, "session restored", "username", user.Username, "role", user.Role)
	return nil
}

// Login is valid only from Anonymous. password is wiped before returning.
func (a *authService) Login(ctx context.Context, username string, password []byte) (bool, error) {
	defer common.WipeByteArray(password)

	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.store.Snapshot().Status {
	case session.Anonymous:
	case session.Authenticated:
		return false, ErrAlreadyAuthenticated
	default:
		return false, ErrNotInitialized
	}

	token, user, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return false, fmt.Errorf("login error: %w", err)
	}

	err = a.meta.SetMany(ctx, map[string][]byte{
		common.TokenMetadataKey:        []byte(token),
		common.LastUsernameMetadataKey: []byte(username),
	})
	if err != nil {
		return false, fmt.Errorf("token saving error: %w", err)
	}

	a.writer.Authenticate(*user, token)
	a.logger.Info(ctx, "logged in", "username", user.Username, "role", user.Role)
	return true, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.initialized = true
	a.forgetToken(ctx)
	a.writer.Clear()
	a.logger.Info(ctx, "logged out")
}

func (a *authService) IsAdmin() bool {
	return a.store.Snapshot().IsAdmin()
}

func (a *authService) UpdateProfile(ctx context.Context, u models.User) (*models.User, error) {
	if a.store.Snapshot().Status != session.Authenticated {
		return nil, ErrNotAuthenticated
	}

	updated, err := a.client.UpdateProfile(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update profile error: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.writer.ReplaceUser(*updated) {
		return nil, ErrNotAuthenticated
	}
	return updated, nil
}

// LastUsername returns the name of the last successful login, if any.
func (a *authService) LastUsername(ctx context.Context) string {
	v, err := a.meta.Get(ctx, common.LastUsernameMetadataKey)
	if err != nil {
		return ""
	}
	return string(v)
}

// forgetToken removes the persisted token; failures are logged only.
func (a *authService) forgetToken(ctx context.Context) {
	if err := a.meta.Delete(ctx, common.TokenMetadataKey); err != nil {
		a.logger.Error(ctx, "failed to remove persisted token", "error", err)
	}
}
