package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prestigo/internal/api"
	"prestigo/internal/reservation"
	"prestigo/internal/venue"
)

// DayParser resolves a YYYY-MM-DD string in a venue's zone.
type DayParser interface {
	ParseDay(ctx context.Context, venueID, day string) (time.Time, error)
}

type Handler struct {
	manager  *Manager
	days     DayParser
	identity reservation.Identity
}

func NewHandler(manager *Manager, days DayParser, identity reservation.Identity) *Handler {
	return &Handler{manager: manager, days: days, identity: identity}
}

func (h *Handler) caller(c *gin.Context) (string, bool) {
	id, ok := h.identity.CallerID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Authentication required"})
	}
	return id, ok
}

func (h *Handler) session(c *gin.Context) (*Session, bool) {
	owner, ok := h.caller(c)
	if !ok {
		return nil, false
	}
	s, err := h.manager.Get(c.Param("sessionID"), owner)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		return nil, false
	}
	return s, true
}

// @Summary      Open a booking session
// @Description  Loads a venue's slots for one day into a session owned by the caller
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body session.OpenRequest true "Venue and day"
// @Success      201 {object} session.SessionResponse
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) Open(c *gin.Context) {
	owner, ok := h.caller(c)
	if !ok {
		return
	}

	var req OpenRequest
	if !api.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	day, err := h.days.ParseDay(ctx, req.VenueID, req.Day)
	if err != nil {
		h.venueError(c, err)
		return
	}

	s, err := h.manager.Open(ctx, owner, req.VenueID, day)
	if err != nil {
		h.venueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(s))
}

// @Summary      Session slots
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path string true "Session ID"
// @Success      200 {object} session.SessionResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{sessionID}/slots [get]
func (h *Handler) Slots(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

// @Summary      Change the session day
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path string true "Session ID"
// @Param        request body session.DayRequest true "Day"
// @Success      200 {object} session.SessionResponse
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions/{sessionID}/day [put]
func (h *Handler) SetDay(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req DayRequest
	if !api.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	day, err := h.days.ParseDay(ctx, s.VenueID, req.Day)
	if err != nil {
		h.venueError(c, err)
		return
	}
	if err := h.manager.SetDay(ctx, s, day); err != nil {
		h.venueError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(s))
}

// @Summary      Select a slot
// @Description  Party size is clamped into [1, available]
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path string true "Session ID"
// @Param        request body session.SlotRequest true "Slot and party size"
// @Success      200 {object} reservation.Selection
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} session.OutcomeError
// @Failure      409 {object} session.OutcomeError
// @Router       /sessions/{sessionID}/selection [post]
func (h *Handler) Select(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req SlotRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sel, err := s.Negotiator.Select(req.SlotID, req.PartySize)
	if err != nil {
		status, body := outcomeError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, sel)
}

// @Summary      Confirm a reservation
// @Description  Re-validates against current availability and takes the seats at once.
// @Description  The durable write finishes in the background; poll the attempt or pass wait=true.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path string true "Session ID"
// @Param        wait query bool false "Block until the write resolves"
// @Param        request body session.SlotRequest true "Slot and party size"
// @Success      201 {object} session.AttemptResponse
// @Success      202 {object} session.AttemptResponse
// @Failure      400 {object} session.OutcomeError
// @Failure      401 {object} session.OutcomeError
// @Failure      404 {object} session.OutcomeError
// @Failure      409 {object} session.OutcomeError
// @Failure      502 {object} session.AttemptResponse
// @Router       /sessions/{sessionID}/reservations [post]
func (h *Handler) Confirm(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req SlotRequest
	if !api.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	pending, err := s.Negotiator.Confirm(ctx, req.SlotID, req.PartySize)
	if err != nil {
		status, body := outcomeError(err)
		c.JSON(status, body)
		return
	}

	if c.Query("wait") != "true" {
		c.JSON(http.StatusAccepted, newAttemptResponse(pending.Attempt()))
		return
	}

	// a cancelled wait leaves the attempt Reserving
	attempt, _ := pending.Wait(ctx)
	switch attempt.State {
	case reservation.StateCommitted:
		c.JSON(http.StatusCreated, newAttemptResponse(attempt))
	case reservation.StateRolledBack:
		c.JSON(http.StatusBadGateway, newAttemptResponse(attempt))
	default:
		c.JSON(http.StatusAccepted, newAttemptResponse(attempt))
	}
}

// @Summary      Latest attempt for a slot
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path string true "Session ID"
// @Param        slotID path string true "Slot ID"
// @Success      200 {object} session.AttemptResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{sessionID}/attempts/{slotID} [get]
func (h *Handler) Attempt(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	a, ok := s.Negotiator.Attempt(c.Param("slotID"))
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No reservation attempt for this slot"})
		return
	}
	c.JSON(http.StatusOK, newAttemptResponse(a))
}

// @Summary      Close a session
// @Description  Waits for outstanding writes before returning
// @Tags         sessions
// @Security     BearerAuth
// @Param        sessionID path string true "Session ID"
// @Success      204
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{sessionID} [delete]
func (h *Handler) Close(c *gin.Context) {
	owner, ok := h.caller(c)
	if !ok {
		return
	}
	if err := h.manager.Close(c.Param("sessionID"), owner); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) venueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, venue.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Venue not found"})
	case errors.Is(err, venue.ErrInvalidDay):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrClosed):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Shutting down"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load slots"})
	}
}
