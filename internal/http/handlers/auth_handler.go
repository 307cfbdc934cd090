package handlers

import (
	"errors"

	applog "dukaan/internal/log"
	"dukaan/internal/services"

	"github.com/gofiber/fiber/v2"
)

const weakPasswordMsg = "Password must be at least 8 characters and include uppercase, lowercase, number, and special character."

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "All fields are required")
	}

	u, err := h.Auth.Register(req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return message(c, fiber.StatusBadRequest, "All fields are required")
	case errors.Is(err, services.ErrInvalidEmail):
		return message(c, fiber.StatusBadRequest, "Invalid email address")
	case errors.Is(err, services.ErrWeakPassword):
		return message(c, fiber.StatusBadRequest, weakPasswordMsg)
	case errors.Is(err, services.ErrEmailTaken):
		applog.Security(c, "auth.register.duplicate", map[string]any{"email": req.Email})
		return message(c, fiber.StatusBadRequest, "Email already registered")
	case err != nil:
		applog.Error(c, "auth.register.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Internal server error")
	}

	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "User not found")
	}

	token, u, err := h.Auth.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "unknown_email"})
		return message(c, fiber.StatusBadRequest, "User not found")
	case errors.Is(err, services.ErrWrongPassword):
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "wrong_password"})
		return message(c, fiber.StatusBadRequest, "Wrong password")
	case err != nil:
		applog.Error(c, "auth.login.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Internal server error")
	}

	applog.Audit(c, "auth.login", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/auth/forgot-password. The generated code is
// delivered out-of-band and never echoed in the response.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusNotFound, "User not found")
	}

	err := h.Auth.ForgotPassword(req.Email)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return message(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		applog.Error(c, "auth.forgot.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}

	applog.Audit(c, "auth.forgot", map[string]any{"email": req.Email})
	return message(c, fiber.StatusOK, "Reset token sent to email (check server console)")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid or expired token")
	}

	err := h.Auth.ResetPassword(req.Email, req.Token, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrBadResetToken):
		applog.Security(c, "auth.reset.fail", map[string]any{"email": req.Email})
		return message(c, fiber.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, services.ErrWeakPassword):
		return message(c, fiber.StatusBadRequest, weakPasswordMsg)
	case err != nil:
		applog.Error(c, "auth.reset.fail", err, nil)
		return message(c, fiber.StatusInternalServerError, "Server error")
	}

	applog.Audit(c, "auth.reset", map[string]any{"email": req.Email})
	return message(c, fiber.StatusOK, "Password reset successful")
}
