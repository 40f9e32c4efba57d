package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"scheduler/internal/delivery/http/helpers"
	"scheduler/internal/domain"
)

type NotifyController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
	// Secret is the optional shared secret for the trigger. See Notify for
	// the exact rule.
	Secret string
}

func NewNotifyController(logger *slog.Logger, svc domain.NotificationService, secret string) *NotifyController {
	return &NotifyController{
		Logger:  logger,
		Service: svc,
		Secret:  secret,
	}
}

// Notify godoc
// @Summary Trigger the daily digest
// @Description Sends one digest email for today's not-yet-notified events and marks them notified. Repeating the call on the same day is a no-op. When a trigger secret is configured, a request with a wrong bearer token is rejected, but a request with no Authorization header is still allowed: the endpoint serves both an authenticated scheduler and anonymous client-side polling.
// @Tags notify
// @Produce json
// @Param Authorization header string false "Bearer <secret>"
// @Success 200 {object} domain.NotifyResult
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /notify [get]
func (c *NotifyController) Notify(w http.ResponseWriter, r *http.Request) {
	if c.Secret != "" {
		auth := r.Header.Get("Authorization")
		// Block only a wrong credential, never a missing one.
		if auth != "" && auth != "Bearer "+c.Secret {
			helpers.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
	}

	result, err := c.Service.Dispatch(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrMailerNotConfigured) {
			helpers.WriteJSONError(w, http.StatusInternalServerError, domain.ErrMailerNotConfigured.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to send notification")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}
