package handlers_test

import (
	"testing"

	"employee_management/models"
	"employee_management/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":        "Asha Rao",
		"email":            email,
		"password":         "secret12",
		"confirm_password": "secret12",
		"contact_number":   "9876543210",
		"account_number":   "1234567890",
		"parent_name":      "Ravi Rao",
		"parent_contact":   "9123456780",
	}
}

func TestSignupApproveLoginFlow(t *testing.T) {
	app, _ := SetupTest(t)
	adminToken := testutil.AdminToken(t)

	var employee models.Employee
	resp := doRequest(t, app, "POST", "/auth/signup", "", signupBody("asha@company.com"))
	assert.Equal(t, 201, resp.StatusCode)
	decodeData(t, resp, &employee)
	require.NotEmpty(t, employee.ID)
	assert.Equal(t, models.ApprovalPending, employee.ApprovalStatus)

	t.Run("Pending Employee Cannot Log In", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/auth/login", "", map[string]string{
			"email": "asha@company.com", "password": "secret12", "user_type": "employee",
		})
		assert.Equal(t, 401, resp.StatusCode)
		response := decode(t, resp)
		assert.False(t, response.Success)
		assert.Equal(t, "Invalid credentials", response.Message)
	})

	t.Run("Admin Approves", func(t *testing.T) {
		var approved models.Employee
		resp := doRequest(t, app, "POST", "/api/v1/employees/"+employee.ID+"/approve", adminToken, nil)
		assert.Equal(t, 200, resp.StatusCode)
		decodeData(t, resp, &approved)
		assert.True(t, approved.IsApproved)
		assert.Equal(t, 24, approved.LeaveBalance)
	})

	t.Run("Second Approval Conflicts", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/employees/"+employee.ID+"/reject", adminToken, nil)
		assert.Equal(t, 409, resp.StatusCode)
		response := decode(t, resp)
		assert.Equal(t, "INVALID_TRANSITION", response.Error)
	})

	t.Run("Approved Employee Logs In", func(t *testing.T) {
		var data struct {
			Token string `json:"token"`
		}
		resp := doRequest(t, app, "POST", "/auth/login", "", map[string]string{
			"email": "asha@company.com", "password": "secret12",
		})
		assert.Equal(t, 200, resp.StatusCode)
		decodeData(t, resp, &data)
		require.NotEmpty(t, data.Token)

		var me struct {
			Profile models.Employee `json:"profile"`
		}
		resp = doRequest(t, app, "GET", "/api/v1/me", data.Token, nil)
		assert.Equal(t, 200, resp.StatusCode)
		decodeData(t, resp, &me)
		assert.Equal(t, employee.ID, me.Profile.ID)
	})
}

func TestSignupDuplicateAndInvalid(t *testing.T) {
	app, _ := SetupTest(t)

	resp := doRequest(t, app, "POST", "/auth/signup", "", signupBody("asha@company.com"))
	assert.Equal(t, 201, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/auth/signup", "", signupBody("asha@company.com"))
	assert.Equal(t, 409, resp.StatusCode)

	body := signupBody("broken")
	delete(body, "parent_name")
	resp = doRequest(t, app, "POST", "/auth/signup", "", body)
	assert.Equal(t, 400, resp.StatusCode)
	response := decode(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", response.Error)
	assert.Len(t, response.Errors, 2)
}

func TestAdminLoginEndpoint(t *testing.T) {
	app, _ := SetupTest(t)

	resp := doRequest(t, app, "POST", "/auth/login", "", map[string]string{
		"email": testutil.AdminEmail, "password": testutil.AdminPassword, "user_type": "admin",
	})
	assert.Equal(t, 200, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/auth/login", "", map[string]string{
		"email": testutil.AdminEmail, "password": "wrong", "user_type": "admin",
	})
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthorization(t *testing.T) {
	app, db := SetupTest(t)
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")
	employeeToken := testutil.CreateTestToken(t, employee.ID, models.RoleEmployee, employee.FullName)

	resp := doRequest(t, app, "GET", "/api/v1/employees", "", nil)
	assert.Equal(t, 401, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/v1/employees", "not-a-token", nil)
	assert.Equal(t, 401, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/v1/employees", employeeToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/v1/dashboard", employeeToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/v1/pay-requests", testutil.AdminToken(t), map[string]interface{}{
		"amount": 10, "purpose": "x", "request_type": "other",
	})
	assert.Equal(t, 403, resp.StatusCode)
}
