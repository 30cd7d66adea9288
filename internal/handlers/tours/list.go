package tours

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkwed/tours-api/internal/handlers/common"
)

// List returns every tour. No filters, no pagination.
func (h *Handler) List(c *gin.Context) {
	tours, err := h.store.ListTours(c.Request.Context())
	if err != nil {
		_ = c.Error(common.FromStore(err, ""))
		return
	}
	c.JSON(http.StatusOK, tours)
}
