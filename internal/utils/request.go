package utils

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ParseAndValidate decodes the JSON body into dest and validates it. On
// failure the error response is already written.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	logger := middleware.LoggerFromContext(r.Context())

	if err := DecodeJSONBody(r, dest); err != nil {
		logger.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()).WithError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))

		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, errors.ValidationError("Invalid input data").WithError(err))
		return false
	}

	return true

}

// ParseIntID reads a positive integer path value.
func ParseIntID(r *http.Request, key string) (int, error) {

	id, err := strconv.Atoi(r.PathValue(key))
	if err != nil || id <= 0 {
		return 0, errors.BadRequestError("Invalid " + key).WithError(err)
	}

	return id, nil
}

func ParseUUID(r *http.Request, key string) (uuid.UUID, error) {

	id, err := uuid.Parse(r.PathValue(key))
	if err != nil {
		return uuid.Nil, errors.BadRequestError("Invalid " + key).WithError(err)
	}

	return id, nil
}
