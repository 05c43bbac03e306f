package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee_management/metrics"
	"employee_management/models"
	"employee_management/types"
	"employee_management/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupInput struct {
	FullName        string     `json:"full_name" validate:"required,min=2,max=100"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6"`
	ConfirmPassword string     `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	ContactNumber   string     `json:"contact_number" validate:"required"`
	AccountNumber   string     `json:"account_number" validate:"required"`
	ParentName      string     `json:"parent_name" validate:"required"`
	ParentContact   string     `json:"parent_contact" validate:"required"`
	ESICNumber      string     `json:"esic_number"`
	PFNumber        string     `json:"pf_number"`
	Department      string     `json:"department" validate:"omitempty,department"`
	Position        string     `json:"position" validate:"omitempty,max=100"`
	HireDate        *time.Time `json:"hire_date" validate:"omitempty,notfuture"`
}

// ImportEmployeeInput is a registration made on the administrator's behalf, typically from a CSV file.
type ImportEmployeeInput struct {
	SignupInput
	BasicSalary *float64 `json:"basic_salary" validate:"omitempty,gte=0"`
	Approve     bool     `json:"approve"`
}

// UpdateEmployeeInput holds the fields an administrator may change. Nil fields are left alone.
type UpdateEmployeeInput struct {
	FullName      *string    `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email         *string    `json:"email" validate:"omitempty,email"`
	ContactNumber *string    `json:"contact_number"`
	AccountNumber *string    `json:"account_number"`
	ParentName    *string    `json:"parent_name"`
	ParentContact *string    `json:"parent_contact"`
	ESICNumber    *string    `json:"esic_number"`
	PFNumber      *string    `json:"pf_number"`
	Department    *string    `json:"department" validate:"omitempty,department"`
	Position      *string    `json:"position" validate:"omitempty,max=100"`
	HireDate      *time.Time `json:"hire_date" validate:"omitempty,notfuture"`
	BasicSalary   *float64   `json:"basic_salary" validate:"omitempty,gte=0"`
	LeaveBalance  *int       `json:"leave_balance" validate:"omitempty,gte=0"`
	IsActive      *bool      `json:"is_active"`
}

type EmployeeFilter struct {
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
	Department     string `query:"department"`
	IsActive       *bool  `query:"is_active"`
	ApprovalStatus string `query:"approval_status"`
	Search         string `query:"search"`
	SortBy         string `query:"sort_by"`
	SortOrder      string `query:"sort_order"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type EmployeeStats struct {
	Total           int64             `json:"total"`
	Active          int64             `json:"active"`
	Inactive        int64             `json:"inactive"`
	PendingApproval int64             `json:"pending_approval"`
	ByDepartment    []DepartmentCount `json:"by_department"`
}

var employeeSortColumns = map[string]string{
	"full_name":    "full_name",
	"email":        "email",
	"department":   "department",
	"position":     "position",
	"hire_date":    "hire_date",
	"basic_salary": "basic_salary",
	"created_at":   "created_at",
}

type EmployeeService struct {
	db       *gorm.DB
	notifier *NotificationService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// Signup registers an employee awaiting approval and tells the administrator about it.
func (s *EmployeeService) Signup(ctx context.Context, in SignupInput) (*models.Employee, error) {
	return s.register(ctx, ImportEmployeeInput{SignupInput: in})
}

// Import registers an employee with their basic salary and, when Approve is set, approves them.
// The row is stored in one transaction or not at all.
func (s *EmployeeService) Import(ctx context.Context, in ImportEmployeeInput) (*models.Employee, error) {
	return s.register(ctx, in)
}

func (s *EmployeeService) register(ctx context.Context, in ImportEmployeeInput) (*models.Employee, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Position = strings.TrimSpace(in.Position)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	employee := &models.Employee{
		FullName:       in.FullName,
		Email:          in.Email,
		PasswordHash:   string(hash),
		ContactNumber:  in.ContactNumber,
		AccountNumber:  in.AccountNumber,
		ParentName:     in.ParentName,
		ParentContact:  in.ParentContact,
		ESICNumber:     in.ESICNumber,
		PFNumber:       in.PFNumber,
		Department:     in.Department,
		Position:       in.Position,
		HireDate:       in.HireDate,
		BasicSalary:    in.BasicSalary,
		ApprovalStatus: models.ApprovalPending,
		LeaveBalance:   models.DefaultLeaveBalance,
		IsActive:       true,
	}

	recipient, title := models.AdminID, "New Employee Registration"
	message, severity := fmt.Sprintf("%s has requested to join the company", employee.FullName), models.SeverityInfo
	if in.Approve {
		next, err := employee.ApprovalStatus.Approve()
		if err != nil {
			return nil, err
		}
		employee.ApprovalStatus = next
		employee.IsApproved = true
		recipient, title, severity = "", "Account Approved", models.SeveritySuccess
		message = "Your account has been approved. You can now log in and access your dashboard."
	}

	var pending outbox
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, employee.Email, ""); err != nil {
			return err
		}
		if err := tx.Create(employee).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.Conflict(types.ErrDuplicateEmail)
			}
			return err
		}

		if recipient == "" {
			recipient = employee.ID
		}
		n, err := s.notifier.Add(tx, recipient, title, message, severity)
		if err != nil {
			return err
		}
		pending.add(n)
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}

	pending.flush(ctx, s.notifier)
	if in.Approve {
		s.metrics.Transition("approval", string(employee.ApprovalStatus))
	}
	s.logger.Info("Employee signed up",
		zap.String("employee_id", employee.ID),
		zap.String("approval_status", string(employee.ApprovalStatus)))
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, types.ErrEmployeeNotFound)
	}
	return &employee, nil
}

// List pages through employees. Only active employees are returned unless IsActive says otherwise.
func (s *EmployeeService) List(ctx context.Context, filter EmployeeFilter) ([]models.Employee, types.Pagination, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	isActive := true
	if filter.IsActive != nil {
		isActive = *filter.IsActive
	}

	query := s.db.WithContext(ctx).Model(&models.Employee{}).Where("is_active = ?", isActive)
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, types.Pagination{}, types.Database(err)
	}

	column, ok := employeeSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	employees := []models.Employee{}
	err := query.Order(column + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, types.Pagination{}, types.Database(err)
	}

	return employees, types.NewPagination(page, limit, total), nil
}

// Update applies the administrator's edits and tells the employee their profile changed.
func (s *EmployeeService) Update(ctx context.Context, id string, in UpdateEmployeeInput) (*models.Employee, error) {
	in.trim()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var (
		employee models.Employee
		pending  outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&employee, "id = ?", id).Error; err != nil {
			return notFoundOr(err, types.ErrEmployeeNotFound)
		}

		updates := employeeUpdates(in)
		if email, ok := updates["email"].(string); ok && email != employee.Email {
			if err := ensureEmailFree(tx, email, employee.ID); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&employee).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.Conflict(types.ErrDuplicateEmail)
			}
			return err
		}
		if err := tx.First(&employee, "id = ?", id).Error; err != nil {
			return err
		}

		n, err := s.notifier.Add(tx, employee.ID, "Profile Updated",
			"Your profile information has been updated by admin.", models.SeverityInfo)
		if err != nil {
			return err
		}
		pending.add(n)
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}

	pending.flush(ctx, s.notifier)
	return &employee, nil
}

// Deactivate soft deletes the employee. Records that reference it are kept.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return types.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NotFound(types.ErrEmployeeNotFound)
	}

	s.logger.Info("Employee deactivated", zap.String("employee_id", id))
	return nil
}

// Approve moves a pending employee to approved, grants the annual leave allowance and notifies them.
func (s *EmployeeService) Approve(ctx context.Context, id string) (*models.Employee, error) {
	return s.review(ctx, id, true)
}

// Reject moves a pending employee to rejected and notifies them.
func (s *EmployeeService) Reject(ctx context.Context, id string) (*models.Employee, error) {
	return s.review(ctx, id, false)
}

func (s *EmployeeService) review(ctx context.Context, id string, approve bool) (*models.Employee, error) {
	defer s.metrics.ObserveDBQuery("review_employee", time.Now())

	var (
		employee models.Employee
		pending  outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&employee, "id = ?", id).Error; err != nil {
			return notFoundOr(err, types.ErrEmployeeNotFound)
		}

		var (
			title, message string
			severity       models.Severity
		)
		if approve {
			next, err := employee.ApprovalStatus.Approve()
			if err != nil {
				return err
			}
			employee.ApprovalStatus = next
			employee.IsApproved = true
			employee.LeaveBalance = models.DefaultLeaveBalance
			title, severity = "Account Approved", models.SeveritySuccess
			message = "Your account has been approved. You can now log in and access your dashboard."
		} else {
			next, err := employee.ApprovalStatus.Reject()
			if err != nil {
				return err
			}
			employee.ApprovalStatus = next
			employee.IsApproved = false
			title, severity = "Account Rejected", models.SeverityError
			message = "Unfortunately, your account application was not approved."
		}

		err := tx.Model(&employee).Select("approval_status", "is_approved", "leave_balance", "updated_at").
			Updates(&employee).Error
		if err != nil {
			return err
		}

		n, err := s.notifier.Add(tx, employee.ID, title, message, severity)
		if err != nil {
			return err
		}
		pending.add(n)
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}

	pending.flush(ctx, s.notifier)
	s.metrics.Transition("approval", string(employee.ApprovalStatus))
	s.logger.Info("Employee reviewed",
		zap.String("employee_id", employee.ID),
		zap.String("approval_status", string(employee.ApprovalStatus)))
	return &employee, nil
}

func (s *EmployeeService) Stats(ctx context.Context) (*EmployeeStats, error) {
	db := s.db.WithContext(ctx)
	stats := &EmployeeStats{ByDepartment: []DepartmentCount{}}

	if err := db.Model(&models.Employee{}).Count(&stats.Total).Error; err != nil {
		return nil, types.Database(err)
	}
	if err := db.Model(&models.Employee{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, types.Database(err)
	}
	stats.Inactive = stats.Total - stats.Active

	err := db.Model(&models.Employee{}).
		Where("is_active = ? AND approval_status = ?", true, models.ApprovalPending).
		Count(&stats.PendingApproval).Error
	if err != nil {
		return nil, types.Database(err)
	}

	err = db.Model(&models.Employee{}).
		Select("department, COUNT(*) AS count").
		Where("is_active = ? AND department <> ?", true, "").
		Group("department").
		Order("department").
		Scan(&stats.ByDepartment).Error
	if err != nil {
		return nil, types.Database(err)
	}

	return stats, nil
}

// Departments lists the distinct departments of active employees in alphabetical order.
func (s *EmployeeService) Departments(ctx context.Context) ([]string, error) {
	departments := []string{}
	err := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("is_active = ? AND department <> ?", true, "").
		Distinct("department").
		Order("department").
		Pluck("department", &departments).Error
	if err != nil {
		return nil, types.Database(err)
	}
	return departments, nil
}

func ensureEmailFree(tx *gorm.DB, email, exceptID string) error {
	query := tx.Model(&models.Employee{}).Where("email = ?", email)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return types.Conflict(types.ErrDuplicateEmail)
	}
	return nil
}

// trim normalises the text fields so validation sees what will be stored.
func (in *UpdateEmployeeInput) trim() {
	for _, field := range []**string{
		&in.FullName, &in.ContactNumber, &in.AccountNumber, &in.ParentName,
		&in.ParentContact, &in.ESICNumber, &in.PFNumber, &in.Department, &in.Position,
	} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &email
	}
}

func employeeUpdates(in UpdateEmployeeInput) map[string]interface{} {
	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}

	setString("full_name", in.FullName)
	setString("email", in.Email)
	setString("contact_number", in.ContactNumber)
	setString("account_number", in.AccountNumber)
	setString("parent_name", in.ParentName)
	setString("parent_contact", in.ParentContact)
	setString("esic_number", in.ESICNumber)
	setString("pf_number", in.PFNumber)
	setString("department", in.Department)
	setString("position", in.Position)
	if in.HireDate != nil {
		updates["hire_date"] = *in.HireDate
	}
	if in.BasicSalary != nil {
		updates["basic_salary"] = *in.BasicSalary
	}
	if in.LeaveBalance != nil {
		updates["leave_balance"] = *in.LeaveBalance
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	return updates
}
