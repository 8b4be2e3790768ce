package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps typed service errors onto HTTP statuses,
// falling back to 500 for anything untyped.
func RespondServiceError(c *gin.Context, err error) {
	status, code := apierr.StatusOf(err, http.StatusInternalServerError)
	RespondError(c, status, code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
