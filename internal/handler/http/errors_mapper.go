package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/service"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/internal/validators"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// Stable error codes of the JSON error body.
const (
	CodeDuplicateEmail     = "duplicate_email"
	CodeDuplicateUsername  = "duplicate_username"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInactiveAccount    = "inactive_account"
	CodeIncorrectPassword  = "incorrect_password"
	CodeInvalidToken       = "invalid_token"
	CodeExpiredToken       = "expired_token"
	CodeWrongTokenKind     = "wrong_token_kind"
	CodeUnauthenticated    = "unauthenticated"
	CodeForbidden          = "forbidden"
	CodeInvalidRequest     = "invalid_request"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeNotFound           = "not_found"
	CodeInternalError      = "internal_error"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is ordered: the first match wins. ErrUnauthenticated comes
// before the token errors it may wrap.
var errorMappings = []errorMapping{
	{service.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
	{service.ErrDuplicateEmail, http.StatusBadRequest, CodeDuplicateEmail},
	{service.ErrDuplicateUsername, http.StatusBadRequest, CodeDuplicateUsername},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
	{service.ErrInactiveAccount, http.StatusBadRequest, CodeInactiveAccount},
	{service.ErrIncorrectPassword, http.StatusBadRequest, CodeIncorrectPassword},
	{service.ErrExpiredToken, http.StatusUnauthorized, CodeExpiredToken},
	{service.ErrWrongTokenKind, http.StatusUnauthorized, CodeWrongTokenKind},
	{service.ErrInvalidToken, http.StatusUnauthorized, CodeInvalidToken},
	{service.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{validators.ErrInvalidRequest, http.StatusUnprocessableEntity, CodeInvalidRequest},
	{service.ErrInvalidDataProvided, http.StatusUnprocessableEntity, CodeInvalidRequest},
	{ErrMalformedBody, http.StatusBadRequest, CodeInvalidRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, CodeUnauthenticated},
	{utils.ErrInvalidAuthHeader, http.StatusUnauthorized, CodeUnauthenticated},
}

// statusFromError returns the HTTP status and stable code for err.
// Unknown errors are internal.
func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternalError
}

// detailFromError is the client-facing message. Domain errors carry their
// own text; everything else is hidden.
func detailFromError(err error, code string) string {
	switch code {
	case CodeInternalError:
		return "internal server error"
	case CodeUnauthenticated:
		return service.ErrUnauthenticated.Error()
	case CodeInvalidRequest:
		if errors.Is(err, ErrMalformedBody) {
			return ErrMalformedBody.Error()
		}
		return validators.ErrInvalidRequest.Error()
	}

	for _, m := range errorMappings {
		if m.code == code {
			return m.target.Error()
		}
	}
	return err.Error()
}

// writeError renders err as an [models.ErrorResponse]. 401 responses carry
// the Bearer challenge.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, code := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("code", code).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("code", code).Msg("request rejected")
	}

	body := models.ErrorResponse{
		Code:   code,
		Detail: detailFromError(err, code),
	}

	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		body.Fields = vErr.Fields
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteJSON(w, body, status)
}
