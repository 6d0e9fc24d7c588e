package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/clearlead/decisio/internal/auth/domain"
	"github.com/clearlead/decisio/internal/authorization"
	companydomain "github.com/clearlead/decisio/internal/company/domain"
	decisiondomain "github.com/clearlead/decisio/internal/decision/domain"
	sessiondomain "github.com/clearlead/decisio/internal/session/domain"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrUnauthenticated),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrEmailTaken):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, sessiondomain.ErrWrongState):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "session is not in a state that allows this",
		}
	case errors.Is(err, sessiondomain.ErrOracleFailure):
		return http.StatusBadGateway, errorPayload{
			Type:    "oracle_failure",
			Message: "feedback is unavailable right now, try again",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isCompanyValidationError(err),
		isUserValidationError(err),
		isDecisionValidationError(err),
		isSessionValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, decisiondomain.ErrNotFound),
		errors.Is(err, sessiondomain.ErrNotFound):
		return true
	default:
		return false
	}
}

func isCompanyValidationError(err error) bool {
	switch {
	case errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidCountry),
		errors.Is(err, companydomain.ErrInvalidCompany):
		return true
	default:
		return false
	}
}

func isUserValidationError(err error) bool {
	switch {
	case errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrInvalidPlan),
		errors.Is(err, userdomain.ErrInvalidUser):
		return true
	default:
		return false
	}
}

func isDecisionValidationError(err error) bool {
	switch {
	case errors.Is(err, decisiondomain.ErrInvalidTitle),
		errors.Is(err, decisiondomain.ErrInvalidSteps),
		errors.Is(err, decisiondomain.ErrInvalidDecision):
		return true
	default:
		return false
	}
}

func isSessionValidationError(err error) bool {
	switch {
	case errors.Is(err, sessiondomain.ErrInvalidTitle),
		errors.Is(err, sessiondomain.ErrInvalidInput):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
