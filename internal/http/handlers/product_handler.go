package handlers

import (
	"database/sql"
	"errors"

	applog "dukaan/internal/log"
	"dukaan/internal/services"
	"dukaan/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(products)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message(c, fiber.StatusNotFound, "Product not found")
		}
		applog.Error(c, "products.get.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(p)
}

type productRequest struct {
	Title    *string  `json:"title"`
	Price    *float64 `json:"price"`
	Image    *string  `json:"image"`
	Category *string  `json:"category"`
}

// Create handles POST /api/products (admin).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Title and price are required")
	}
	title, image, category := "", "", ""
	if req.Title != nil {
		title = *req.Title
	}
	if req.Image != nil {
		image = *req.Image
	}
	if req.Category != nil {
		category = *req.Category
	}

	p, err := h.Catalog.CreateProduct(title, req.Price, image, category)
	switch {
	case errors.Is(err, services.ErrMissingTitlePrice):
		return message(c, fiber.StatusBadRequest, "Title and price are required")
	case err != nil:
		applog.Error(c, "products.create.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}

	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update handles PUT /api/products/:id (admin). Absent fields stay unchanged.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid body")
	}

	p, err := h.Catalog.UpdateProduct(id, req.Title, req.Price, req.Image, req.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message(c, fiber.StatusNotFound, "Product not found")
		}
		applog.Error(c, "products.update.fail", err, map[string]any{"product_id": id})
		return message(c, fiber.StatusInternalServerError, "Server error")
	}

	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// Delete handles DELETE /api/products/:id (admin).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	deleted, err := h.Catalog.DeleteProduct(id)
	if err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"product_id": id})
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	if !deleted {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return message(c, fiber.StatusOK, "Deleted")
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories()
	if err != nil {
		applog.Error(c, "products.categories.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.JSON(cats)
}
