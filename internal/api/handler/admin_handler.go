package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// AdminHandler handles the admin messaging route: one endpoint that either
// broadcasts an announcement or opens a direct-message ticket, depending on
// the target field.
type AdminHandler struct {
	tickets ports.TicketService
}

func NewAdminHandler(tickets ports.TicketService) *AdminHandler {
	return &AdminHandler{tickets: tickets}
}

type adminMessageRequest struct {
	AdminID int64           `json:"adminId" validate:"required"`
	Target  json.RawMessage `json:"target"  validate:"required"`
	Subject string          `json:"subject" validate:"required"`
	Message string          `json:"message" validate:"required"`
}

// Message handles POST /api/admin/message.
//
// @Summary      Broadcast an announcement or direct-message a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminMessageRequest  true  "target is the string \"all\" or a user id"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  failureResponse
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/message [post]
func (h *AdminHandler) Message(c echo.Context) error {
	var req adminMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()

	broadcast, targetID, err := parseTarget(req.Target)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "target must be \"all\" or a user id")
	}

	if broadcast {
		if _, err := h.tickets.Broadcast(ctx, req.AdminID, req.Subject, req.Message); err != nil {
			return err
		}
	} else {
		if _, err := h.tickets.DirectMessage(ctx, req.AdminID, targetID, req.Subject, req.Message); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// parseTarget accepts the string "all", a numeric string, or a JSON number.
func parseTarget(raw json.RawMessage) (broadcast bool, userID int64, err error) {
	var s string
	if jerr := json.Unmarshal(raw, &s); jerr == nil {
		if s == "all" {
			return true, 0, nil
		}
		id, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			return false, 0, perr
		}
		return false, id, nil
	}

	var id int64
	if jerr := json.Unmarshal(raw, &id); jerr != nil {
		return false, 0, jerr
	}
	return false, id, nil
}
