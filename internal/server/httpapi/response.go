package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/labstack/echo/v4"
)

// Response is the envelope carried by every API reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Message: message})
}

// validationMessage extracts the human-readable part of a wrapped
// common.ErrorValidation, e.g. "title is required: validation error"
// becomes "title is required".
func validationMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+common.ErrorValidation.Error())
}
