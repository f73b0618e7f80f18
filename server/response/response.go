package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apiError "github.com/verisponsor/verisponsor/errors"
)

// JSON writes the standard response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errs := []string{}
	if err != nil {
		errs = append(errs, err.Error())
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"errors":  errs,
		"status":  http.StatusText(status),
	})
}

// HandleErrors maps a service-layer error onto the response envelope.
func HandleErrors(c *gin.Context, err error) {
	if apiErr, ok := err.(*apiError.Error); ok {
		JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
		return
	}
	JSON(c, "internal server error", http.StatusInternalServerError, nil, err)
}
