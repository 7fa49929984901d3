package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homeinventory/internal/core"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, APIResponse{Status: "success", Data: data})
}

func fail(c *gin.Context, status int, err error, message string) {
	resp := APIResponse{Status: "error", Message: message}
	if err != nil {
		resp.Error = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, resp)
}

// failFrom maps repository errors onto status codes.
func failFrom(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		fail(c, http.StatusNotFound, err, "Not found")
	case errors.Is(err, core.ErrValidation):
		fail(c, http.StatusBadRequest, err, "Invalid request")
	case errors.Is(err, core.ErrImport):
		fail(c, http.StatusUnprocessableEntity, err, "Invalid backup file")
	case errors.Is(err, core.ErrPersist):
		fail(c, http.StatusInternalServerError, err, "Saved in memory but could not be persisted")
	default:
		fail(c, http.StatusInternalServerError, err, "Internal error")
	}
}
