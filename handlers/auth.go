package handlers

import (
	"employee_management/middleware"
	"employee_management/models"
	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

// Signup registers an employee who waits for approval before they can log in.
func Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	employee, err := Services.Employees.Signup(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Registration successful. Your account is pending admin approval.",
		Data:    employee,
	})
}

func Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.UserType == "" {
		req.UserType = models.RoleEmployee
	}

	token, principal, err := Services.Auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: fiber.Map{
			"token": token,
			"user":  principal,
		},
	})
}

// Me returns the caller. Employees also get their stored profile.
func Me(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal.IsAdmin() {
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    fiber.Map{"user": principal},
		})
	}

	employee, err := Services.Employees.Get(c.UserContext(), principal.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"user":    principal,
			"profile": employee,
		},
	})
}
