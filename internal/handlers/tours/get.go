package tours

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkwed/tours-api/internal/handlers/common"
)

// Get returns a single tour by id.
func (h *Handler) Get(c *gin.Context) {
	id, err := common.TourID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	t, err := h.store.GetTour(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(common.FromStore(err, ""))
		return
	}
	c.JSON(http.StatusOK, t)
}
