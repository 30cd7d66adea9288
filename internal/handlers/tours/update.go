package tours

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkwed/tours-api/internal/db"
	"github.com/tkwed/tours-api/internal/handlers/common"
)

// Update replaces every field of the tour with the JSON body.
// Attributes missing from the body are stored as null, not preserved.
func (h *Handler) Update(c *gin.Context) {
	id, err := common.TourID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var in db.TourFields
	if err := common.BindBody(c, &in); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.store.UpdateTour(c.Request.Context(), id, in); err != nil {
		_ = c.Error(common.FromStore(err, "Error updating tour"))
		return
	}
	c.String(http.StatusOK, "Tour updated successfully")
}
