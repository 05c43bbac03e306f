package handlers

import (
	"employee_management/middleware"
	"employee_management/models"
	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

func CreateMonthlyRecord(c *fiber.Ctx) error {
	var req services.MonthlyRecordInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	record, err := Services.Payroll.CreateMonthlyRecord(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Monthly record added",
		Data:    record,
	})
}

func GetMonthlyRecords(c *fiber.Ctx) error {
	var filter services.RecordFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c)
	}

	records, pagination, err := Services.Payroll.List(c.UserContext(), middleware.CurrentPrincipal(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    paged{Items: records, Pagination: pagination},
	})
}

func GetMonthlyRecord(c *fiber.Ctx) error {
	record, err := Services.Payroll.Get(c.UserContext(), middleware.CurrentPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    record,
	})
}

// UpdatePaymentStatus moves a record one step forward; any other change is a 409.
func UpdatePaymentStatus(c *fiber.Ctx) error {
	var req UpdatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	record, err := Services.Payroll.UpdatePaymentStatus(c.UserContext(), c.Params("id"), req.PaymentStatus)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Payment status updated",
		Data:    record,
	})
}
