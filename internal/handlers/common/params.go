package common

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

type idURI struct {
	ID int64 `uri:"id"`
}

// TourID reads the integer :id path parameter.
func TourID(c *gin.Context) (int64, error) {
	var u idURI
	if err := c.ShouldBindUri(&u); err != nil {
		return 0, Invalid(fmt.Errorf("invalid tour id %q", c.Param("id")))
	}
	return u.ID, nil
}

// BindBody decodes the JSON request body into obj. An empty body leaves obj
// at its zero value.
func BindBody(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return Invalid(err)
	}
	return nil
}
