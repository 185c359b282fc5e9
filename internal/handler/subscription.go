package handler

import (
	"net/http"

	"flowershop-api/internal/dto"
	"flowershop-api/internal/middleware"
	"flowershop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sub, err := h.subscriptionService.Create(ctx, middleware.ActorFrom(c).UserID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	subs, err := h.subscriptionService.ListForUser(ctx, middleware.ActorFrom(c).UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, subs)
}

func (h *SubscriptionHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	subs, err := h.subscriptionService.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, subs)
}

func (h *SubscriptionHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sub, err := h.subscriptionService.Update(ctx, middleware.ActorFrom(c), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.subscriptionService.Cancel(ctx, middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sub)
}
