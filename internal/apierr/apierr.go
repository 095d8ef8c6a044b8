// Package apierr is the single shape every error leaves the API in. Handlers
// and middleware build an Error and write it as the {code, message} JSON
// envelope, so clients never see framework-internal error bodies.
package apierr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// Write renders the envelope and aborts the request.
func (e *Error) Write(c *gin.Context) {
	c.AbortWithStatusJSON(e.Code, e)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// NoRoute is the handler for unknown paths.
func NoRoute(c *gin.Context) {
	NotFound("istenen API endpoint'i bulunamadı").Write(c)
}

// Boundary rewrites error responses that bypassed the handlers (binding
// rejections, panics recovered by gin, anything else the framework produced)
// into the envelope. Responses that already carry a JSON body are left alone.
func Boundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		if c.Writer.Written() && c.Writer.Header().Get("Content-Type") == "application/json; charset=utf-8" {
			return
		}

		message := "istemci hatası"
		if status >= http.StatusInternalServerError {
			message = "sunucu hatası"
		}
		if text := http.StatusText(status); text != "" {
			message = fmt.Sprintf("%s: %s", message, text)
		}

		c.JSON(status, New(status, message))
	}
}
