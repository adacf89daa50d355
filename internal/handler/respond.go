package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/scoring-api/internal/service"
	"github.com/edupoint/scoring-api/pkg/response"
)

// writeError translates service errors to the response envelope. Rule
// validation failures carry their complete violation list.
func writeError(c *gin.Context, err error) {
	var vErr *service.ValidationFailedError
	if errors.As(err, &vErr) {
		response.ValidationError(c, vErr.Violations)
		return
	}
	response.Error(c, err)
}
