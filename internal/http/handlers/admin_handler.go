package handlers

import (
	"database/sql"
	"errors"

	"dukaan/internal/domain"
	applog "dukaan/internal/log"
	"dukaan/internal/repos"
	"dukaan/internal/services"
	"dukaan/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Admin     *services.AdminService
	OrderRepo *repos.OrderRepo
	UserRepo  *repos.UserRepo
	Prods     *repos.ProductRepo
	Settings  *repos.SettingsRepo
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Admin.Stats()
	if err != nil {
		applog.Error(c, "admin.stats.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(stats)
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(orders)
}

type orderStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid status")
	}
	if !domain.ValidOrderStatus(req.Status) {
		return message(c, fiber.StatusBadRequest, "Invalid status")
	}
	updated, err := h.OrderRepo.UpdateStatus(req.OrderID, req.Status)
	if err != nil {
		applog.Error(c, "admin.orders.status.fail", err, map[string]any{"order_id": req.OrderID})
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	if !updated {
		return message(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.OrderRepo.Get(req.OrderID)
	if err != nil {
		applog.Error(c, "admin.orders.status.fail", err, map[string]any{"order_id": req.OrderID})
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": req.OrderID, "status": req.Status})
	return c.JSON(o)
}

type renameCategoryRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// RenameCategory handles POST /api/admin/categories/rename.
func (h *AdminHandler) RenameCategory(c *fiber.Ctx) error {
	var req renameCategoryRequest
	if err := c.BodyParser(&req); err != nil || req.OldName == "" || req.NewName == "" {
		return message(c, fiber.StatusBadRequest, "oldName and newName required")
	}
	n, err := h.Prods.RenameCategory(req.OldName, req.NewName)
	if err != nil {
		applog.Error(c, "admin.category.rename.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	applog.Audit(c, "admin.category.rename", map[string]any{"old": req.OldName, "new": req.NewName, "modified": n})
	return c.JSON(fiber.Map{"modifiedCount": n})
}

type deleteCategoryRequest struct {
	Name string `json:"name"`
}

// DeleteCategory handles POST /api/admin/categories/delete. Products keep
// their rows; only the category field is blanked.
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	var req deleteCategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return message(c, fiber.StatusBadRequest, "name required")
	}
	n, err := h.Prods.ClearCategory(req.Name)
	if err != nil {
		applog.Error(c, "admin.category.delete.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"name": req.Name, "modified": n})
	return c.JSON(fiber.Map{"modifiedCount": n})
}

// Users handles GET /api/admin/users. Password digests never leave the server.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.UserRepo.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(users)
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "User not found")
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid body")
	}
	u, err := h.UserRepo.Update(id, req.Name, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message(c, fiber.StatusNotFound, "User not found")
		}
		applog.Error(c, "admin.users.update.fail", err, map[string]any{"user_id": id})
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	applog.Audit(c, "admin.users.update", map[string]any{"user_id": id})
	return c.JSON(u)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "User not found")
	}
	deleted, err := h.UserRepo.Delete(id)
	if err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	if !deleted {
		return message(c, fiber.StatusNotFound, "User not found")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return message(c, fiber.StatusOK, "User deleted successfully")
}

// GetSettings handles GET /api/admin/settings.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	s, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "admin.settings.get.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(s)
}

type updateSettingsRequest struct {
	DeliveryFee         *float64 `json:"deliveryFee"`
	DiscountPercent     *float64 `json:"discountPercent"`
	MinOrderForDiscount *float64 `json:"minOrderForDiscount"`
}

// UpdateSettings handles PUT /api/admin/settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid body")
	}
	s, err := h.Settings.Update(req.DeliveryFee, req.DiscountPercent, req.MinOrderForDiscount)
	if err != nil {
		applog.Error(c, "admin.settings.update.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	applog.Audit(c, "admin.settings.update", nil)
	return c.JSON(s)
}
