package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/repository"
	"github.com/yukikurage/kanbanflow/internal/services"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response and stops the handler chain
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

// FromError maps a board error onto its HTTP status and API error
func FromError(err error) (int, *APIError) {
	switch {
	case stderrors.Is(err, services.ErrInvalidPriority):
		return http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, err.Error(),
			gin.H{"allowed": models.AllTaskPriorities})
	case stderrors.Is(err, services.ErrInvalidRole):
		return http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, err.Error(),
			gin.H{"allowed": models.AllMemberRoles})
	case stderrors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, err.Error())
	case stderrors.Is(err, services.ErrBusinessRule):
		return http.StatusConflict, NewAPIError(ErrCodeConflict, err.Error())
	case stderrors.Is(err, services.ErrNoCurrentUser):
		return http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, "No current user selected")
	case stderrors.Is(err, services.ErrTaskNotFound),
		stderrors.Is(err, services.ErrMemberNotFound),
		stderrors.Is(err, services.ErrNoteNotFound),
		stderrors.Is(err, services.ErrAttachmentNotFound),
		stderrors.Is(err, services.ErrVoiceNoteNotFound),
		stderrors.Is(err, services.ErrAvatarNotFound),
		stderrors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, NewAPIError(ErrCodeNotFound, err.Error())
	case stderrors.Is(err, repository.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, "Storage is unavailable")
	default:
		return http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, "Internal server error")
	}
}

// Respond writes the response FromError selects for err
func Respond(c *gin.Context, err error) {
	status, apiErr := FromError(err)
	_ = c.Error(err)
	RespondWithError(c, status, apiErr)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

