package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindwell/clinic-scheduler/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_pages"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response with the HTTP status mapped
// from the application error code.
func RespondWithError(c *gin.Context, err error) {
	code, ok := errors.Code(err)
	if !ok {
		code = errors.ErrCodeInternal
	}

	var message string
	if appErr, isApp := err.(*errors.AppError); isApp {
		message = appErr.Message
	} else {
		message = "internal server error"
	}

	c.JSON(statusFor(code), Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeValidation:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeSlotUnavailable, errors.ErrCodeSlotInPast, errors.ErrCodePatientConflict:
		return http.StatusConflict
	case errors.ErrCodeUnsupportedSessionType, errors.ErrCodeLeadWindowViolation, errors.ErrCodeInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithPagination sends a paginated response
func RespondWithPagination(c *gin.Context, data interface{}, page, pageSize, total int) {
	totalPages := (total + pageSize - 1) / pageSize

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PaginatedResponse{
			Data: data,
			Pagination: Pagination{
				Page:      page,
				PageSize:  pageSize,
				Total:     total,
				TotalPage: totalPages,
			},
		},
	})
}
