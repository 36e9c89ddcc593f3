package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	ucSalon "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

// pathID parses a numeric route parameter. Anything that is not a positive
// integer cannot name a row, so it answers as not found.
func pathID(c *gin.Context, param, entity string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.NotFoundError{Entity: entity}
	}
	return uint(id), nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return httperr.MalformedRequestError{Detail: err.Error()}
	}
	return nil
}

// jsonPayload decodes the request body into T only when the use case asks.
func jsonPayload[T any](c *gin.Context) ucSalon.Payload[T] {
	return func() (T, error) {
		var v T
		err := bindJSON(c, &v)
		return v, err
	}
}
