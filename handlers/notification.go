package handlers

import (
	"employee_management/middleware"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

func GetNotifications(c *fiber.Ctx) error {
	notifications, err := Services.Notifications.List(c.UserContext(), middleware.CurrentPrincipal(c).ID, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    notifications,
	})
}

func GetUnreadCount(c *fiber.Ctx) error {
	count, err := Services.Notifications.UnreadCount(c.UserContext(), middleware.CurrentPrincipal(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    fiber.Map{"unread": count},
	})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	notification, err := Services.Notifications.MarkRead(c.UserContext(), middleware.CurrentPrincipal(c).ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    notification,
	})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	updated, err := Services.Notifications.MarkAllRead(c.UserContext(), middleware.CurrentPrincipal(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    fiber.Map{"updated": updated},
	})
}
