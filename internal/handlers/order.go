package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dsmolkov/ecommerce_backend/internal/logging"
	"github.com/dsmolkov/ecommerce_backend/internal/mykafka"
	"github.com/dsmolkov/ecommerce_backend/internal/service"
)

type OrderHandler struct {
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, userID uint, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(userID), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// MakeOrder turns the caller's cart into a price-snapshotted order.
func (h *OrderHandler) MakeOrder(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	order, err := h.Checkout.Checkout(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, "order.checkout", err)
	}

	logging.FromContext(c.Request().Context()).Info("order created",
		"orderID", order.ID, "userID", userID, "total", order.TotalAmount.String())

	h.publish(c, userID, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.TotalAmount.String(),
	})
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	orders, err := h.Orders.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, "order.list_own", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.Orders.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, "order.list_all", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ShipOrder(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Orders.Ship(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, "order.ship", err)
	}

	h.publish(c, userID, map[string]any{
		"type":    "order_shipped",
		"orderID": order.ID,
	})
	return c.JSON(http.StatusOK, order)
}
