package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	assert.Equal(t, "Forbidden", ErrForbidden.Error())

	wrapped := Wrap(ErrStorageUnavailable, fmt.Errorf("dial tcp: refused"))
	assert.Equal(t, "Storage unavailable: dial tcp: refused", wrapped.Error())
}

func TestError_IsMatchesWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("cart: %w", Wrap(ErrAuthenticationFailed, nil))

	assert.True(t, stderrors.Is(err, ErrAuthenticationFailed))
	assert.False(t, stderrors.Is(err, ErrNoToken))
}

func TestFromStatus(t *testing.T) {
	err := FromStatus(404, "")
	assert.Equal(t, 404, err.Code)
	assert.Equal(t, "HTTP 404: Not Found", err.Message)

	err = FromStatus(502, "Bad Gateway")
	assert.Equal(t, "HTTP 502: Bad Gateway", err.Error())
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 403, StatusCode(fmt.Errorf("x: %w", ErrForbidden)))
	assert.Equal(t, 0, StatusCode(stderrors.New("plain")))
	assert.Equal(t, 0, StatusCode(nil))
	assert.Equal(t, 0, StatusCode(Wrap(ErrNoToken, nil)), "a missing token is not an HTTP failure")
}

func TestJSON(t *testing.T) {
	assert.JSONEq(t, `{"code":401,"message":"Unauthorized"}`, ErrUnauthorized.JSON())
}
