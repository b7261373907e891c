package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

var codeErrors = map[string]error{
	"duplicate_email":     ErrDuplicateEmail,
	"duplicate_username":  ErrDuplicateUsername,
	"invalid_credentials": ErrInvalidCredentials,
	"inactive_account":    ErrInactiveAccount,
	"incorrect_password":  ErrIncorrectPassword,
	"invalid_token":       ErrInvalidToken,
	"expired_token":       ErrExpiredToken,
	"wrong_token_kind":    ErrWrongTokenKind,
	"unauthenticated":     ErrUnauthorized,
	"forbidden":           ErrForbidden,
	"invalid_request":     ErrInvalidRequest,
	"not_found":           ErrNotFound,
	"internal_error":      ErrInternalServerError,
}

// sentinelFromCode prefers the stable code and falls back to the status
// for bodies that do not carry one.
func sentinelFromCode(code string, status int) error {
	if err, ok := codeErrors[code]; ok {
		return err
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidRequest
	}
	if status >= http.StatusInternalServerError {
		return ErrInternalServerError
	}
	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*models.ErrorResponse); ok && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Detail = body.Detail
		if len(body.Fields) > 0 {
			apiErr.Fields = make(map[string]string, len(body.Fields))
			for _, f := range body.Fields {
				apiErr.Fields[f.Field] = f.Message
			}
		}
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(resp.Body()))
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(resp.StatusCode())
	}
	return apiErr
}
