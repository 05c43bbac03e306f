package handlers

import (
	"employee_management/middleware"
	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

func SendMessage(c *fiber.Ctx) error {
	var req services.SendMessageInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	message, err := Services.Messages.Send(c.UserContext(), middleware.CurrentPrincipal(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Message sent",
		Data:    message,
	})
}

// GetMessages lists the caller's conversation; the admin may pass ?employee_id= to narrow it.
func GetMessages(c *fiber.Ctx) error {
	messages, err := Services.Messages.List(c.UserContext(), middleware.CurrentPrincipal(c), c.Query("employee_id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    messages,
	})
}

func MarkMessageRead(c *fiber.Ctx) error {
	message, err := Services.Messages.MarkRead(c.UserContext(), middleware.CurrentPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    message,
	})
}
