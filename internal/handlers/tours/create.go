package tours

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkwed/tours-api/internal/db"
	"github.com/tkwed/tours-api/internal/handlers/common"
)

// Create inserts a tour from the JSON body. The assigned id is not returned.
func (h *Handler) Create(c *gin.Context) {
	var in db.TourFields
	if err := common.BindBody(c, &in); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.store.CreateTour(c.Request.Context(), in); err != nil {
		_ = c.Error(common.FromStore(err, "Error adding new tour"))
		return
	}
	c.String(http.StatusCreated, "New tour added successfully")
}
