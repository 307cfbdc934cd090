package handlers

import (
	"errors"

	"dukaan/internal/domain"
	applog "dukaan/internal/log"
	"dukaan/internal/repos"
	"dukaan/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
	Tokens *services.TokenService
	Users  *repos.UserRepo
}

type placeOrderRequest struct {
	Items       []domain.OrderItem `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	DeliveryFee float64            `json:"deliveryFee"`
	Total       float64            `json:"total"`
}

// Place handles POST /api/orders. A bearer token is optional: an absent,
// malformed or unverifiable token degrades to an anonymous order rather than
// failing the request.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Cart is empty")
	}

	buyer := h.resolveBuyer(c)

	order, err := h.Orders.Place(req.Items, req.Subtotal, req.DeliveryFee, req.Total, buyer)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return message(c, fiber.StatusBadRequest, "Cart is empty")
	case err != nil:
		applog.Error(c, "order.place.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Order failed")
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id":  order.ID,
		"total":     order.Total,
		"anonymous": buyer == nil,
	})
	return c.JSON(order)
}

// resolveBuyer attaches the requesting user when a valid token names one.
// Any failure along the way is logged and swallowed.
func (h *OrderHandler) resolveBuyer(c *fiber.Ctx) *domain.User {
	tok := bearerToken(c)
	if tok == "" {
		return nil
	}
	claims, err := h.Tokens.Verify(tok)
	if err != nil {
		applog.Security(c, "order.token.invalid", nil)
		return nil
	}
	u, err := h.Users.ByID(claims.UserID)
	if err != nil {
		applog.Security(c, "order.token.unknown_user", map[string]any{"user_id": claims.UserID})
		return nil
	}
	return u
}

// History handles GET /api/orders. RequireUser guards the route, so claims
// are always present here.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*services.Claims)
	if claims == nil {
		return message(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	orders, err := h.Orders.History(claims.UserID)
	if err != nil {
		applog.Error(c, "order.history.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(orders)
}
