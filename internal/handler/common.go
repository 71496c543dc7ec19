package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"jinstore/internal/middleware"
	"jinstore/internal/response"
	"jinstore/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError is the single boundary translator from service errors to
// transport status codes. Unknown errors are logged and surfaced as a
// generic 500 so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrInvalidFileFormat),
		errors.Is(err, service.ErrFileSizeExceeded):
		response.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		response.Fail(c, http.StatusConflict, err.Error())
	default:
		log.Printf("Unhandled error: %v", err)
		response.Fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid value for %q", name)
}

// getAuthUserID reads the authenticated user ID the auth middleware attached
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}
