package services_test

import (
	"context"
	"errors"
	"testing"

	"employee_management/models"
	"employee_management/services"
	"employee_management/testutil"
	"employee_management/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupInput(email string) services.SignupInput {
	return services.SignupInput{
		FullName:        "Asha Rao",
		Email:           email,
		Password:        "secret12",
		ConfirmPassword: "secret12",
		ContactNumber:   "9876543210",
		AccountNumber:   "1234567890",
		ParentName:      "Ravi Rao",
		ParentContact:   "9123456780",
		Department:      "Engineering",
	}
}

func TestSignupCreatesPendingEmployee(t *testing.T) {
	svc, db, publisher := setup(t)

	employee, err := svc.Employees.Signup(context.Background(), signupInput("  Asha@Company.com "))
	require.NoError(t, err)

	assert.Equal(t, "asha@company.com", employee.Email)
	assert.Equal(t, models.ApprovalPending, employee.ApprovalStatus)
	assert.False(t, employee.IsApproved)
	assert.True(t, employee.IsActive)
	assert.Equal(t, models.DefaultLeaveBalance, employee.LeaveBalance)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte("secret12")))

	notes := testutil.Notifications(t, db, models.AdminID)
	require.Len(t, notes, 1)
	assert.Equal(t, "New Employee Registration", notes[0].Title)
	assert.Equal(t, "Asha Rao has requested to join the company", notes[0].Message)
	assert.Equal(t, []string{"New Employee Registration"}, publisher.titles())
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Employees.Signup(ctx, signupInput("asha@company.com"))
	require.NoError(t, err)

	_, err = svc.Employees.Signup(ctx, signupInput("ASHA@company.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrDuplicateEmail))

	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, types.CodeConflict, appErr.Code)
}

func TestSignupValidation(t *testing.T) {
	svc, db, _ := setup(t)

	in := signupInput("not-an-email")
	in.ConfirmPassword = "different"
	_, err := svc.Employees.Signup(context.Background(), in)

	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, types.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Fields, 2)

	var count int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApproveEmployee(t *testing.T) {
	svc, db, _ := setup(t)
	pending := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com", testutil.Pending(), testutil.WithLeaveBalance(0))

	approved, err := svc.Employees.Approve(context.Background(), pending.ID)
	require.NoError(t, err)

	assert.True(t, approved.IsApproved)
	assert.Equal(t, models.ApprovalApproved, approved.ApprovalStatus)
	assert.Equal(t, 24, approved.LeaveBalance)

	var stored models.Employee
	require.NoError(t, db.First(&stored, "id = ?", pending.ID).Error)
	assert.True(t, stored.IsApproved)
	assert.Equal(t, 24, stored.LeaveBalance)

	notes := testutil.Notifications(t, db, pending.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Account Approved", notes[0].Title)
	assert.Equal(t, models.SeveritySuccess, notes[0].Type)
	assert.False(t, notes[0].IsRead)
}

func TestRejectEmployee(t *testing.T) {
	svc, db, _ := setup(t)
	pending := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com", testutil.Pending())

	rejected, err := svc.Employees.Reject(context.Background(), pending.ID)
	require.NoError(t, err)

	assert.False(t, rejected.IsApproved)
	assert.Equal(t, models.ApprovalRejected, rejected.ApprovalStatus)

	notes := testutil.Notifications(t, db, pending.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Account Rejected", notes[0].Title)
	assert.Equal(t, models.SeverityError, notes[0].Type)
}

func TestReviewIsOnlyAllowedFromPending(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()
	approved := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")
	rejected := testutil.CreateEmployee(t, db, "Ben Das", "ben@company.com", testutil.Rejected())

	_, err := svc.Employees.Approve(ctx, approved.ID)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))

	_, err = svc.Employees.Reject(ctx, approved.ID)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))

	_, err = svc.Employees.Approve(ctx, rejected.ID)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))

	assert.Empty(t, testutil.Notifications(t, db, approved.ID))
	assert.Empty(t, testutil.Notifications(t, db, rejected.ID))
}

func TestApproveUnknownEmployee(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.Employees.Approve(context.Background(), "missing")
	assert.True(t, errors.Is(err, types.ErrEmployeeNotFound))
}

func TestListEmployees(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()
	testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com", testutil.WithDepartment("Engineering"))
	testutil.CreateEmployee(t, db, "Ben Das", "ben@company.com", testutil.WithDepartment("Finance"))
	testutil.CreateEmployee(t, db, "Chitra Iyer", "chitra@company.com", testutil.WithDepartment("Engineering"))
	testutil.CreateEmployee(t, db, "Dev Old", "dev@company.com", testutil.Inactive())

	t.Run("Active By Default", func(t *testing.T) {
		employees, page, err := svc.Employees.List(ctx, services.EmployeeFilter{})
		require.NoError(t, err)
		assert.Len(t, employees, 3)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 10, page.Limit)
	})

	t.Run("Department And Sort", func(t *testing.T) {
		employees, _, err := svc.Employees.List(ctx, services.EmployeeFilter{
			Department: "Engineering",
			SortBy:     "full_name",
			SortOrder:  "asc",
		})
		require.NoError(t, err)
		require.Len(t, employees, 2)
		assert.Equal(t, "Asha Rao", employees[0].FullName)
		assert.Equal(t, "Chitra Iyer", employees[1].FullName)
	})

	t.Run("Search", func(t *testing.T) {
		employees, _, err := svc.Employees.List(ctx, services.EmployeeFilter{Search: "BEN"})
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, "ben@company.com", employees[0].Email)
	})

	t.Run("Paging", func(t *testing.T) {
		employees, page, err := svc.Employees.List(ctx, services.EmployeeFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, employees, 1)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasPrevPage)
		assert.False(t, page.HasNextPage)
	})

	t.Run("Inactive", func(t *testing.T) {
		inactive := false
		employees, _, err := svc.Employees.List(ctx, services.EmployeeFilter{IsActive: &inactive})
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, "Dev Old", employees[0].FullName)
	})
}

func TestUpdateEmployeeNotifies(t *testing.T) {
	svc, db, _ := setup(t)
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")

	position := "Lead Engineer"
	balance := 12
	updated, err := svc.Employees.Update(context.Background(), employee.ID, services.UpdateEmployeeInput{
		Position:     &position,
		BasicSalary:  float(50000),
		LeaveBalance: &balance,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lead Engineer", updated.Position)
	require.NotNil(t, updated.BasicSalary)
	assert.Equal(t, 50000.0, *updated.BasicSalary)
	assert.Equal(t, 12, updated.LeaveBalance)

	notes := testutil.Notifications(t, db, employee.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Profile Updated", notes[0].Title)
}

func TestUpdateEmployeeEmailConflict(t *testing.T) {
	svc, db, _ := setup(t)
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")
	testutil.CreateEmployee(t, db, "Ben Das", "ben@company.com")

	email := "ben@company.com"
	_, err := svc.Employees.Update(context.Background(), employee.ID, services.UpdateEmployeeInput{Email: &email})
	assert.True(t, errors.Is(err, types.ErrDuplicateEmail))
	assert.Empty(t, testutil.Notifications(t, db, employee.ID))
}

func TestUpdateEmployeeRejectsNegativeSalary(t *testing.T) {
	svc, db, _ := setup(t)
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")

	_, err := svc.Employees.Update(context.Background(), employee.ID, services.UpdateEmployeeInput{BasicSalary: float(-1)})
	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, types.CodeValidation, appErr.Code)
}

func TestDeactivateEmployee(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")

	require.NoError(t, svc.Employees.Deactivate(ctx, employee.ID))

	stored, err := svc.Employees.Get(ctx, employee.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	err = svc.Employees.Deactivate(ctx, employee.ID)
	assert.True(t, errors.Is(err, types.ErrEmployeeNotFound))
}

func TestEmployeeStats(t *testing.T) {
	svc, db, _ := setup(t)
	testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com", testutil.WithDepartment("Engineering"))
	testutil.CreateEmployee(t, db, "Ben Das", "ben@company.com", testutil.WithDepartment("Engineering"))
	testutil.CreateEmployee(t, db, "Chitra Iyer", "chitra@company.com", testutil.WithDepartment("Finance"), testutil.Pending())
	testutil.CreateEmployee(t, db, "Dev Old", "dev@company.com", testutil.WithDepartment("Finance"), testutil.Inactive())

	stats, err := svc.Employees.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.Active)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, int64(1), stats.PendingApproval)
	assert.Equal(t, []services.DepartmentCount{
		{Department: "Engineering", Count: 2},
		{Department: "Finance", Count: 1},
	}, stats.ByDepartment)
}

func TestImportEmployeeApprovedWithSalary(t *testing.T) {
	svc, db, publisher := setup(t)

	employee, err := svc.Employees.Import(context.Background(), services.ImportEmployeeInput{
		SignupInput: signupInput("asha@company.com"),
		BasicSalary: float(22000),
		Approve:     true,
	})
	require.NoError(t, err)

	var stored models.Employee
	require.NoError(t, db.First(&stored, "id = ?", employee.ID).Error)
	assert.Equal(t, models.ApprovalApproved, stored.ApprovalStatus)
	assert.True(t, stored.IsApproved)
	require.NotNil(t, stored.BasicSalary)
	assert.Equal(t, 22000.0, *stored.BasicSalary)

	notes := testutil.Notifications(t, db, employee.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Account Approved", notes[0].Title)
	assert.Empty(t, testutil.Notifications(t, db, models.AdminID))
	assert.Equal(t, []string{"Account Approved"}, publisher.titles())
}

func TestImportEmployeeNegativeSalaryStoresNothing(t *testing.T) {
	svc, db, _ := setup(t)

	_, err := svc.Employees.Import(context.Background(), services.ImportEmployeeInput{
		SignupInput: signupInput("asha@company.com"),
		BasicSalary: float(-5),
		Approve:     true,
	})
	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, types.CodeValidation, appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, testutil.Notifications(t, db, models.AdminID))
}

func TestUpdateEmployeeRejectsBlankName(t *testing.T) {
	svc, db, _ := setup(t)
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")

	blank := "    "
	_, err := svc.Employees.Update(context.Background(), employee.ID, services.UpdateEmployeeInput{FullName: &blank})
	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, types.CodeValidation, appErr.Code)
	assert.Equal(t, "    ", blank)

	stored, err := svc.Employees.Get(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", stored.FullName)
	assert.Empty(t, testutil.Notifications(t, db, employee.ID))
}

func TestUpdateEmployeeTrimsName(t *testing.T) {
	svc, db, _ := setup(t)
	employee := testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com")

	name := "  Asha R.  "
	updated, err := svc.Employees.Update(context.Background(), employee.ID, services.UpdateEmployeeInput{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", updated.FullName)
}

func TestDepartments(t *testing.T) {
	svc, db, _ := setup(t)
	testutil.CreateEmployee(t, db, "Asha Rao", "asha@company.com", testutil.WithDepartment("Finance"))
	testutil.CreateEmployee(t, db, "Ben Das", "ben@company.com", testutil.WithDepartment("Engineering"))
	testutil.CreateEmployee(t, db, "Chitra Iyer", "chitra@company.com", testutil.WithDepartment("Engineering"))
	testutil.CreateEmployee(t, db, "Dev Old", "dev@company.com", testutil.WithDepartment("Legal"), testutil.Inactive())
	testutil.CreateEmployee(t, db, "Esha Roy", "esha@company.com")

	departments, err := svc.Employees.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Finance"}, departments)
}
