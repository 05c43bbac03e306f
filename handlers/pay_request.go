package handlers

import (
	"employee_management/middleware"
	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

type ProcessPayRequestRequest struct {
	AdminNotes string `json:"admin_notes"`
}

func SubmitPayRequest(c *fiber.Ctx) error {
	var req services.PayRequestInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	request, err := Services.PayRequests.Submit(c.UserContext(), middleware.CurrentPrincipal(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Payment request submitted",
		Data:    request,
	})
}

func GetPayRequests(c *fiber.Ctx) error {
	var filter services.PayRequestFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c)
	}

	requests, pagination, err := Services.PayRequests.List(c.UserContext(), middleware.CurrentPrincipal(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    paged{Items: requests, Pagination: pagination},
	})
}

func ApprovePayRequest(c *fiber.Ctx) error {
	return processPayRequest(c, true)
}

func RejectPayRequest(c *fiber.Ctx) error {
	return processPayRequest(c, false)
}

func processPayRequest(c *fiber.Ctx, approve bool) error {
	var req ProcessPayRequestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
	}

	process := Services.PayRequests.Reject
	message := "Payment request rejected"
	if approve {
		process = Services.PayRequests.Approve
		message = "Payment request approved"
	}

	request, err := process(c.UserContext(), c.Params("id"), req.AdminNotes)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: message,
		Data:    request,
	})
}
