package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// sessionLogger returns the request logger tagged with the cart session. When
// the session middleware did not run, the error response is already written.
func sessionLogger(w http.ResponseWriter, r *http.Request) (string, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		logger.Warn("Request without cart session")
		response.Error(w, errors.UnauthorizedError("Cart session required"))
		return "", logger, false
	}

	return sessionID, logger.With(slog.String("sessionID", sessionID)), true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		response.ValidationError(w, validationErrs)
		return
	}

	response.Error(w, err)
}
