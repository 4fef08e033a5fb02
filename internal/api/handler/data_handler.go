package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// DataHandler serves the per-user projected view of orders and tickets.
type DataHandler struct {
	projection ports.ProjectionService
}

func NewDataHandler(projection ports.ProjectionService) *DataHandler {
	return &DataHandler{projection: projection}
}

// Get handles GET /api/data/:userId.
//
// @Summary      Per-user view of orders and tickets
// @Tags         data
// @Produce      json
// @Param        userId  path      int  true  "Caller's user id"
// @Success      200     {object}  ports.ProjectedView
// @Failure      400     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/data/{userId} [get]
func (h *DataHandler) Get(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid user id"})
	}

	view, err := h.projection.Project(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, view)
}
