package handlers

import "github.com/gofiber/fiber/v2"

// message sends the flat {"message": ...} error/ack body the API uses
// throughout.
func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
