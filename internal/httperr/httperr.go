package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error string `json:"error"`
}

type ErrorsBody struct {
	Errors []string `json:"errors"`
}

const internalMessage = "internal server error"

func Write(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message)
}

func Internal(c *gin.Context) {
	Write(c, http.StatusInternalServerError, internalMessage)
}

// Status maps an error from the taxonomy to its HTTP status code.
func Status(err error) int {
	status, _ := classify(err)
	return status
}

// classify finds the taxonomy error inside err's chain. The returned error
// carries the client-facing message, free of wrapping context. It is nil for
// errors outside the taxonomy.
func classify(err error) (int, error) {
	var (
		malformed MalformedRequestError
		missing   MissingFieldError
		invalid   ValidationError
		authn     AuthenticationError
		authz     AuthorizationError
		notFound  NotFoundError
		conflict  ConflictError
		down      UnavailableError
	)

	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest, malformed
	case errors.As(err, &missing):
		return http.StatusBadRequest, missing
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid
	case errors.As(err, &authn):
		return http.StatusUnauthorized, authn
	case errors.As(err, &authz):
		return http.StatusForbidden, authz
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict
	case errors.As(err, &down):
		return http.StatusServiceUnavailable, down
	default:
		return http.StatusInternalServerError, nil
	}
}

// Respond writes err as a JSON error body. Errors outside the taxonomy are
// recorded on the gin context for the request logger and answered with a
// generic 500.
func Respond(c *gin.Context, err error) {
	var invalid ValidationError
	if errors.As(err, &invalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorsBody{Errors: invalid.Messages()})
		return
	}

	status, public := classify(err)
	if public == nil {
		_ = c.Error(err)
		Internal(c)
		return
	}

	Write(c, status, public.Error())
}
