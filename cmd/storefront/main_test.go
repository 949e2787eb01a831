package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajoria/storefront-client/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	shell = nil
	err := rootCmd.Execute()
	teardown()
	return out.String(), errOut.String(), err
}

func TestValidateEmail(t *testing.T) {
	out, _, err := run(t, "validate", "email", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	out, _, err = run(t, "validate", "email", "a@b")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid")
}

func TestValidatePassword(t *testing.T) {
	_, _, err := run(t, "validate", "password", "12345")
	assert.Error(t, err)

	_, _, err = run(t, "validate", "password", "123456")
	assert.NoError(t, err)
}

func TestValidateForms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	page := `<form name="login" data-validate="true"><input name="username" required></form>`
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	out, errOut, err := run(t, "validate", "forms", path)

	assert.Error(t, err)
	assert.Contains(t, out, `class="is-invalid"`)
	assert.Contains(t, errOut, "Please fill in all required fields correctly")
	assert.Contains(t, errOut, "login: username")
	assert.Nil(t, shell, "offline commands do not build the app")
}

// rejectingShop issues a token on login and then refuses it on every cart call
func rejectingShop(t *testing.T) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.POST("/api/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"access_token": "tok-1", "user": gin.H{"id": 1, "username": "alice"}})
	})
	reject := func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token has been revoked"})
	}
	r.GET("/api/cart", reject)
	r.POST("/api/cart", reject)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func readState(t *testing.T, path string) map[string]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	state := map[string]string{}
	require.NoError(t, json.Unmarshal(raw, &state))
	return state
}

func TestLogin_TokenRejectedDuringMerge(t *testing.T) {
	srv := rejectingShop(t)
	statePath := filepath.Join(t.TempDir(), "state.json")
	seed, err := json.Marshal(map[string]string{
		storage.KeyAnonymousCart: `[{"item_id":3,"quantity":1,"id":1}]`,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(statePath, seed, 0o600))
	t.Setenv("STOREFRONT_STATE_FILE", statePath)
	t.Setenv("STOREFRONT_LOGOUT_DELAY", "1ms")

	var out string
	assert.NotPanics(t, func() {
		out, _, err = run(t, "login", "-u", "alice", "-p", "secret1", "--api", srv.URL, "--storage", "file")
	})

	assert.Error(t, err)
	assert.Contains(t, out, "Signed in as alice")
	assert.Contains(t, out, "Merged 0 of 1 item(s); your local cart was kept whole, so merging again re-adds the 0 already sent")
	assert.Contains(t, out, "→ /login")

	state := readState(t, statePath)
	assert.NotContains(t, state, storage.KeyAccessToken)
	assert.NotContains(t, state, storage.KeyUser)
	assert.Contains(t, state, storage.KeyAnonymousCart, "the local cart survives the failed merge")
}
