package handlers

import (
	"errors"
	"fieldservice/pkg"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func validationFailed(details []string) *pkg.AppError {
	return pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Estimate validation failed", http.StatusBadRequest).WithDetails(details)
}

// bindOptionalJSON decodes the body into v when one was sent. An empty body
// leaves v untouched.
func bindOptionalJSON(c *gin.Context, v any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
