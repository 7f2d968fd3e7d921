package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const internalErrorMessage = "internal server error"

type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleError writes the JSON error body for err. Storage failures and
// errors without a kind are logged and answered with a generic message.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if !errors.As(err, &svcErr) {
		logger.Error(c.Request.Context(), "unhandled error", err, map[string]any{
			"http.route": c.FullPath(),
		})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	status := mapKindToHTTP(svcErr.Kind)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), svcErr.Message, svcErr.Err, map[string]any{
			"http.route": c.FullPath(),
		})
		c.JSON(status, ErrorResponse{Error: internalErrorMessage})
		return
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, ErrorResponse{Error: svcErr.Message})
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity, serviceerrors.KindInsufficientStock:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	case serviceerrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
