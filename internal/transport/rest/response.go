package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"telemed/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := totalCount / pageSize
	if totalCount%pageSize > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

// domainErrorResponse maps the error taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the detail stays in the log.
func domainErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrNotAuthorized):
		errorResponse(c, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrAlreadyStarted):
		errorResponse(c, http.StatusConflict, "consultation already started")
	case errors.Is(err, domain.ErrInvalidTransition):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrOutsideJoinWindow):
		errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNoProviderAvailable):
		errorResponse(c, http.StatusServiceUnavailable, "no video provider available")
	default:
		errorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
