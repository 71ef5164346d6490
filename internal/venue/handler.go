package venue

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prestigo/internal/api"
)

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// @Summary      Create a venue
// @Description  Admin-only: register a venue and its optional slot settings
// @Tags         admin,venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body venue.CreateVenueRequest true "Venue payload"
// @Success      201 {object} venue.Venue
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/venues [post]
func (h *Handler) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if !api.BindJSON(c, &req) {
		return
	}

	v, err := h.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Venue already exists"})
		case errors.Is(err, ErrInvalidVenue):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create venue"})
		}
		return
	}

	c.JSON(http.StatusCreated, v)
}

// @Summary      List venues
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} venue.Venue
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues [get]
func (h *Handler) ListVenues(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch venues"})
		return
	}

	c.JSON(http.StatusOK, venues)
}

// @Summary      Get a venue
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        venueID path string true "Venue ID"
// @Success      200 {object} venue.Venue
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{venueID} [get]
func (h *Handler) GetVenue(c *gin.Context) {
	v, err := h.service.GetVenue(c.Request.Context(), c.Param("venueID"))
	if err != nil {
		h.fail(c, err, "Failed to fetch venue")
		return
	}

	c.JSON(http.StatusOK, v)
}

// @Summary      Bookable days
// @Description  The next seven days starting today in the venue's time zone
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        venueID path string true "Venue ID"
// @Success      200 {array} venue.DayResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{venueID}/days [get]
func (h *Handler) ListDays(c *gin.Context) {
	days, err := h.service.Days(c.Request.Context(), c.Param("venueID"), h.now())
	if err != nil {
		h.fail(c, err, "Failed to list days")
		return
	}

	out := make([]DayResponse, len(days))
	for i, d := range days {
		out[i] = DayResponse{Date: d.Format(time.DateOnly), Weekday: d.Weekday().String()}
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Slots for a day
// @Description  Generated slots with availability, read without opening a session
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        venueID path string true "Venue ID"
// @Param        day query string true "Day (YYYY-MM-DD)"
// @Success      200 {array} slot.Slot
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{venueID}/slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	ctx := c.Request.Context()
	venueID := c.Param("venueID")

	day, err := h.service.ParseDay(ctx, venueID, c.Query("day"))
	if err != nil {
		h.fail(c, err, "Failed to fetch slots")
		return
	}

	slots, err := h.service.Slots(ctx, venueID, day)
	if err != nil {
		h.fail(c, err, "Failed to fetch slots")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrVenueNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Venue not found"})
	case errors.Is(err, ErrInvalidDay):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
