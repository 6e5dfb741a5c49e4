// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/stilbar/internal/interfaces/http/middleware"
	"github.com/turtacn/stilbar/pkg/errors"
	"github.com/turtacn/stilbar/pkg/types/common"
)

// respond writes the success envelope.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, common.APIResponse[interface{}]{
		Success:   true,
		Data:      data,
		RequestID: middleware.GetRequestID(c),
		Timestamp: common.Now(),
	})
}

// respondPage writes the success envelope with pagination metadata.
func respondPage(c *gin.Context, data interface{}, p common.Pagination) {
	c.JSON(http.StatusOK, common.APIResponse[interface{}]{
		Success:    true,
		Data:       data,
		Pagination: &p,
		RequestID:  middleware.GetRequestID(c),
		Timestamp:  common.Now(),
	})
}

// respondError maps an error to its HTTP status and writes the error
// envelope.  Internal errors are masked.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	message := err.Error()
	detail := ""
	if ae, ok := errors.FromError(err); ok {
		message = ae.Message
		detail = ae.Detail
	}
	if status >= http.StatusInternalServerError {
		message = "internal server error"
		detail = ""
	}

	c.JSON(status, common.APIResponse[interface{}]{
		Success: false,
		Error: &common.ErrorDetail{
			Code:    string(code),
			Message: message,
			Detail:  detail,
		},
		RequestID: middleware.GetRequestID(c),
		Timestamp: common.Now(),
	})
}

// parsePagination reads page/page_size query parameters with defaults.
func parsePagination(c *gin.Context) common.Pagination {
	p := common.Pagination{Page: 1, PageSize: 20}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			p.PageSize = n
		}
	}
	return p
}
