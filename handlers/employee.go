package handlers

import (
	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

func GetAllEmployees(c *fiber.Ctx) error {
	var filter services.EmployeeFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c)
	}

	employees, pagination, err := Services.Employees.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    paged{Items: employees, Pagination: pagination},
	})
}

func GetEmployeeStats(c *fiber.Ctx) error {
	stats, err := Services.Employees.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}

func GetDepartments(c *fiber.Ctx) error {
	departments, err := Services.Employees.Departments(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    departments,
	})
}

func GetEmployee(c *fiber.Ctx) error {
	employee, err := Services.Employees.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	var req services.UpdateEmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	employee, err := Services.Employees.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}

// DeleteEmployee deactivates the employee; nothing is removed from storage.
func DeleteEmployee(c *fiber.Ctx) error {
	if err := Services.Employees.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee deactivated successfully",
	})
}

func ApproveEmployee(c *fiber.Ctx) error {
	employee, err := Services.Employees.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee approved",
		Data:    employee,
	})
}

func RejectEmployee(c *fiber.Ctx) error {
	employee, err := Services.Employees.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee rejected",
		Data:    employee,
	})
}

func GetSalarySummary(c *fiber.Ctx) error {
	summary, err := Services.Payroll.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    summary,
	})
}
