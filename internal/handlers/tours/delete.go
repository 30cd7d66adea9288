package tours

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkwed/tours-api/internal/handlers/common"
)

// Delete removes a tour by id. It reports success whether or not the row existed.
func (h *Handler) Delete(c *gin.Context) {
	id, err := common.TourID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.store.DeleteTour(c.Request.Context(), id); err != nil {
		_ = c.Error(common.FromStore(err, ""))
		return
	}
	c.String(http.StatusOK, "Tour deleted successfully")
}
