package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// TicketHandler handles ticket creation and replies.
type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

type openTicketRequest struct {
	UserID  int64  `json:"userId"  validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type replyRequest struct {
	SenderID int64  `json:"senderId" validate:"required"`
	Text     string `json:"text"     validate:"required"`
}

// Create handles POST /api/tickets.
//
// @Summary      Open a support ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      openTicketRequest  true  "Ticket details"
// @Success      200   {object}  ticketResponse
// @Failure      400   {object}  failureResponse
// @Failure      422   {object}  map[string]string
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req openTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ticket, err := h.tickets.Open(c.Request().Context(), req.UserID, req.Subject, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticketResponse{Success: true, Ticket: ticket})
}

// Reply handles POST /api/tickets/:ticketId/reply.
//
// @Summary      Append a message to a ticket (reopens it)
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        ticketId  path      string        true  "Ticket id"
// @Param        body      body      replyRequest  true  "Reply"
// @Success      200       {object}  ticketResponse
// @Failure      400       {object}  failureResponse
// @Failure      404       {object}  failureResponse
// @Failure      422       {object}  map[string]string
// @Router       /api/tickets/{ticketId}/reply [post]
func (h *TicketHandler) Reply(c echo.Context) error {
	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ticket, err := h.tickets.Reply(c.Request().Context(), c.Param("ticketId"), req.SenderID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, failureResponse{Message: "Ticket not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, ticketResponse{Success: true, Ticket: ticket})
}
