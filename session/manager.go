// Package session tracks the auth token and cached user profile held on the
// client. The token is issued by the server and never verified here.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	apperrors "github.com/yashrajoria/storefront-client/errors"
	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/notify"
	"github.com/yashrajoria/storefront-client/storage"
)

// LoginPath is where Logout sends the user
const LoginPath = "/login"

// Redirector navigates to another page
type Redirector interface {
	Redirect(path string)
}

// RedirectFunc adapts a function to Redirector
type RedirectFunc func(path string)

func (f RedirectFunc) Redirect(path string) { f(path) }

// Manager owns the current session. It is created and torn down by the
// application shell rather than living in a package global.
type Manager struct {
	store    storage.Store
	notifier notify.Notifier
	redirect Redirector
	delay    time.Duration
	log      *zap.Logger

	mu   sync.RWMutex
	user *models.User

	pending sync.WaitGroup
}

func NewManager(store storage.Store, notifier notify.Notifier, redirect Redirector, delay time.Duration, log *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		redirect: redirect,
		delay:    delay,
		log:      logger.OrNop(log),
	}
}

// Init loads the cached profile. A token whose profile cannot be parsed is
// treated as a corrupted session and logged out.
func (m *Manager) Init(ctx context.Context) {
	token, hasToken := m.Token(ctx)
	raw, hasUser, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil {
		m.log.Warn("reading cached user failed", zap.Error(err))
		hasUser = false
	}
	if !hasToken || token == "" || !hasUser || raw == "" {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.log.Error("Error parsing user data", zap.Error(err))
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
}

// IsLoggedIn reports whether a token is stored. No expiry or signature check
// is made.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	_, ok := m.Token(ctx)
	return ok
}

// Token returns the stored bearer token
func (m *Manager) Token(ctx context.Context) (string, bool) {
	token, ok, err := m.store.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		m.log.Warn("reading access token failed", zap.Error(err))
		return "", false
	}
	return token, ok
}

// User returns the cached profile, nil when logged out
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Login stores a token and profile obtained from the server
func (m *Manager) Login(ctx context.Context, token string, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, storage.KeyAccessToken, token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(data)); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return nil
}

// Logout clears the session, shows a notice and redirects to the login page
// after the configured delay. The redirect cannot be cancelled.
func (m *Manager) Logout(ctx context.Context) {
	for _, key := range []string{storage.KeyAccessToken, storage.KeyUser} {
		if err := m.store.Remove(ctx, key); err != nil {
			m.log.Error("clearing session key failed", zap.String("key", key), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier.Show("You have been logged out", notify.Info)
	}

	if m.redirect == nil {
		return
	}
	m.pending.Add(1)
	time.AfterFunc(m.delay, func() {
		defer m.pending.Done()
		m.redirect.Redirect(LoginPath)
	})
}

// Wait blocks until scheduled redirects have fired
func (m *Manager) Wait() {
	m.pending.Wait()
}

// Claims decodes the stored token without verifying it, for display only
func (m *Manager) Claims(ctx context.Context) (jwt.MapClaims, error) {
	token, ok := m.Token(ctx)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNoToken, nil)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}
	return claims, nil
}
