package session_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yashrajoria/storefront-client/errors"
	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/notify"
	"github.com/yashrajoria/storefront-client/session"
	"github.com/yashrajoria/storefront-client/storage"
)

type redirectRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *redirectRecorder) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *redirectRecorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func newManager() (*session.Manager, *storage.Memory, *notify.Recorder, *redirectRecorder) {
	mem := storage.NewMemory()
	rec := &notify.Recorder{}
	redir := &redirectRecorder{}
	return session.NewManager(mem, rec, redir, time.Millisecond, nil), mem, rec, redir
}

func TestIsLoggedIn_TracksTokenPresence(t *testing.T) {
	m, mem, _, _ := newManager()
	ctx := context.Background()

	assert.False(t, m.IsLoggedIn(ctx))
	require.NoError(t, mem.Set(ctx, storage.KeyAccessToken, "opaque"))
	assert.True(t, m.IsLoggedIn(ctx))
}

func TestLoginAndInit(t *testing.T) {
	m, mem, _, _ := newManager()
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "tok", models.User{ID: 3, Username: "alice"}))

	fresh := session.NewManager(mem, nil, nil, 0, nil)
	fresh.Init(ctx)

	require.NotNil(t, fresh.User())
	assert.Equal(t, "alice", fresh.User().Username)
	tok, ok := fresh.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
}

func TestInit_CorruptedUserForcesLogout(t *testing.T) {
	m, mem, rec, redir := newManager()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, storage.KeyAccessToken, "tok"))
	require.NoError(t, mem.Set(ctx, storage.KeyUser, "{broken"))

	m.Init(ctx)
	m.Wait()

	assert.False(t, m.IsLoggedIn(ctx))
	_, ok, _ := mem.Get(ctx, storage.KeyUser)
	assert.False(t, ok)
	assert.Nil(t, m.User())
	assert.Equal(t, []string{session.LoginPath}, redir.Paths())
	last, _ := rec.Last()
	assert.Equal(t, notify.Info, last.Level)
}

func TestInit_EmptyUserIsNotCorruption(t *testing.T) {
	m, mem, rec, redir := newManager()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, storage.KeyAccessToken, "tok"))
	require.NoError(t, mem.Set(ctx, storage.KeyUser, ""))

	m.Init(ctx)
	m.Wait()

	assert.Nil(t, m.User())
	assert.True(t, m.IsLoggedIn(ctx), "the token is left alone")
	assert.Empty(t, rec.Notices())
	assert.Empty(t, redir.Paths())
}

func TestInit_NoSessionIsNoop(t *testing.T) {
	m, _, rec, redir := newManager()
	m.Init(context.Background())
	m.Wait()

	assert.Nil(t, m.User())
	assert.Empty(t, rec.Notices())
	assert.Empty(t, redir.Paths())
}

func TestLogout_ClearsAndRedirectsAfterDelay(t *testing.T) {
	mem := storage.NewMemory()
	rec := &notify.Recorder{}
	redir := &redirectRecorder{}
	m := session.NewManager(mem, rec, redir, 50*time.Millisecond, nil)
	ctx := context.Background()
	require.NoError(t, m.Login(ctx, "tok", models.User{ID: 1}))

	m.Logout(ctx)

	assert.False(t, m.IsLoggedIn(ctx))
	assert.Nil(t, m.User())
	assert.Empty(t, redir.Paths(), "redirect should wait for the delay")
	assert.Equal(t, []notify.Notice{{Message: "You have been logged out", Level: notify.Info, Delay: 3 * time.Second}}, rec.Notices())

	m.Wait()
	assert.Equal(t, []string{"/login"}, redir.Paths())
}

func TestLogout_WithoutRedirector(t *testing.T) {
	m := session.NewManager(storage.NewMemory(), nil, nil, 0, nil)
	assert.NotPanics(t, func() {
		m.Logout(context.Background())
		m.Wait()
	})
}

func TestClaims(t *testing.T) {
	m, _, _, _ := newManager()
	ctx := context.Background()

	_, err := m.Claims(ctx)
	assert.True(t, stderrors.Is(err, apperrors.ErrNoToken))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	require.NoError(t, m.Login(ctx, signed, models.User{ID: 42}))

	claims, err := m.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])

	require.NoError(t, m.Login(ctx, "not-a-jwt", models.User{ID: 42}))
	_, err = m.Claims(ctx)
	assert.True(t, stderrors.Is(err, apperrors.ErrInvalidToken))
}
