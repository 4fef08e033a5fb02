package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// OrderHandler handles order creation and merge updates. Payload shape is
// deliberately unchecked: the ledger accepts any mapping.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create handles POST /api/orders.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]any  true  "Arbitrary order payload"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  failureResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}

	order, err := h.orders.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orderResponse{Success: true, Order: order})
}

// Update handles PUT /api/orders/:orderId.
//
// @Summary      Shallow-merge a patch into an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderId  path      string          true  "Order id"
// @Param        body     body      map[string]any  true  "Patch mapping; every key overwrites the stored order"
// @Success      200      {object}  orderResponse
// @Failure      400      {object}  failureResponse
// @Failure      404      {object}  failureResponse
// @Router       /api/orders/{orderId} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}

	order, err := h.orders.Update(c.Request().Context(), c.Param("orderId"), patch)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, failureResponse{Message: "Order not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, orderResponse{Success: true, Order: order})
}
