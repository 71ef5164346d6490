package reservation

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prestigo/internal/api"
	"prestigo/internal/logger"
)

// Lister reads a requester's reservations.
type Lister interface {
	ListByRequester(ctx context.Context, requesterID string, filter Filter, now time.Time) ([]Reservation, error)
}

type Handler struct {
	lister   Lister
	identity Identity
	now      func() time.Time
}

func NewHandler(lister Lister, identity Identity) *Handler {
	return &Handler{lister: lister, identity: identity, now: time.Now}
}

// ListMine godoc
// @Summary      List my reservations
// @Description  Returns the caller's reservations ordered by slot start
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        filter  query     string  false  "upcoming (default), past or all"
// @Success      200     {array}   reservation.Reservation
// @Failure      400     {object}  api.ErrorResponse
// @Failure      401     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /reservations [get]
func (h *Handler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	requesterID, ok := h.identity.CallerID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Authentication required"})
		return
	}

	filter, err := ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "filter must be upcoming, past or all"})
		return
	}

	list, err := h.lister.ListByRequester(ctx, requesterID, filter, h.now())
	if err != nil {
		logger.Error("failed to list reservations", "requester_id", requesterID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}
	if list == nil {
		list = []Reservation{}
	}

	c.JSON(http.StatusOK, list)
}
