package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/yashrajoria/storefront-client/errors"
	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/notify"
)

// DefaultErrorMessage is shown for errors without a more specific notice
const DefaultErrorMessage = "An error occurred"

// ErrorHandler turns API failures into user notices
type ErrorHandler struct {
	notifier notify.Notifier
	session  SessionState
	log      *zap.Logger
}

func NewErrorHandler(notifier notify.Notifier, session SessionState, log *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		notifier: notifier,
		session:  session,
		log:      logger.OrNop(log),
	}
}

// Handle classifies err by status code: 401 ends the session unless it already
// ended, 403 and 5xx get fixed messages, anything else shows defaultMessage.
func (h *ErrorHandler) Handle(ctx context.Context, err error, defaultMessage string) {
	if err == nil {
		return
	}
	if defaultMessage == "" {
		defaultMessage = DefaultErrorMessage
	}
	h.log.Error("API Error", zap.String("request_id", logger.RequestID(ctx)), zap.Error(err))

	status := apperrors.StatusCode(err)
	switch {
	case status == http.StatusUnauthorized:
		h.notifier.Show("Your session has expired. Please login again.", notify.Warning)
		if h.session != nil && h.session.IsLoggedIn(ctx) {
			h.session.Logout(ctx)
		}
	case status == http.StatusForbidden:
		h.notifier.Show("You do not have permission to perform this action.", notify.Error)
	case status >= http.StatusInternalServerError:
		h.notifier.Show("Server error. Please try again later.", notify.Error)
	default:
		h.notifier.Show(defaultMessage, notify.Error)
	}
}
