package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"employee_management/metrics"
	"employee_management/models"
	"employee_management/types"
	"employee_management/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MonthlyRecordInput is the partial record an administrator submits. Omitted numbers count as zero,
// TotalWorkingDays falls back to DefaultWorkingDays and BasicSalary to the employee's own.
type MonthlyRecordInput struct {
	EmployeeID       string   `json:"employee_id" validate:"required"`
	Month            string   `json:"month" validate:"required,month"`
	Year             int      `json:"year" validate:"required,gte=2000,lte=2100"`
	BasicSalary      *float64 `json:"basic_salary" validate:"omitempty,gte=0"`
	TotalWorkingDays int      `json:"total_working_days" validate:"gte=0,lte=31"`
	PresentDays      int      `json:"present_days" validate:"gte=0"`
	HalfDays         int      `json:"half_days" validate:"gte=0"`
	LeaveDays        int      `json:"leave_days" validate:"gte=0"`
	OvertimeHours    float64  `json:"overtime_hours" validate:"gte=0"`
	Bonuses          float64  `json:"bonuses" validate:"gte=0"`
	Deductions       float64  `json:"deductions" validate:"gte=0"`
}

type RecordFilter struct {
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
	EmployeeID    string `query:"employee_id"`
	Month         string `query:"month"`
	Year          int    `query:"year"`
	PaymentStatus string `query:"payment_status"`
}

type SalarySummary struct {
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	Records         int     `json:"records"`
	TotalEarnings   float64 `json:"total_earnings"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalPaid       float64 `json:"total_paid"`
	AverageNet      float64 `json:"average_net"`
}

type PayrollService struct {
	db       *gorm.DB
	notifier *NotificationService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// CreateMonthlyRecord computes and stores a pending record, draws the leave days from the
// employee's balance and notifies the employee. All three writes share one transaction.
func (s *PayrollService) CreateMonthlyRecord(ctx context.Context, in MonthlyRecordInput) (*models.MonthlyRecord, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	defer s.metrics.ObserveDBQuery("create_monthly_record", time.Now())

	var (
		record  *models.MonthlyRecord
		pending outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		err := tx.First(&employee, "id = ? AND is_active = ? AND is_approved = ?", in.EmployeeID, true, true).Error
		if err != nil {
			return notFoundOr(err, types.ErrEmployeeNotFound)
		}

		var existing int64
		err = tx.Model(&models.MonthlyRecord{}).
			Where("employee_id = ? AND month = ? AND year = ?", employee.ID, in.Month, in.Year).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return types.Conflict(types.ErrDuplicateRecord)
		}

		record, err = buildRecord(in, &employee)
		if err != nil {
			return err
		}

		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.Conflict(types.ErrDuplicateRecord)
			}
			return err
		}

		balance := employee.LeaveBalance - record.LeaveDays
		if balance < 0 {
			balance = 0
		}
		err = tx.Model(&employee).Updates(map[string]interface{}{"leave_balance": balance}).Error
		if err != nil {
			return err
		}

		n, err := s.notifier.Add(tx, employee.ID, "Monthly Record Added",
			fmt.Sprintf("Your salary record for %s %d has been added. Net salary: ₹%s",
				record.Month, record.Year, formatAmount(record.NetSalary)),
			models.SeverityInfo)
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
	s.metrics.NetSalaryComputed.Observe(record.NetSalary)
	s.metrics.Transition("payment", string(record.PaymentStatus))
	s.logger.Info("Monthly record created",
		zap.String("employee_id", record.EmployeeID),
		zap.String("record_id", record.ID),
		zap.String("period", fmt.Sprintf("%s %d", record.Month, record.Year)))
	return record, nil
}

func buildRecord(in MonthlyRecordInput, employee *models.Employee) (*models.MonthlyRecord, error) {
	basicSalary := in.BasicSalary
	if basicSalary == nil {
		basicSalary = employee.BasicSalary
	}
	if basicSalary == nil {
		return nil, &types.AppError{
			Code:    types.CodeValidation,
			Message: types.ErrValidation,
			Fields:  []types.FieldError{{Field: "basic_salary", Message: "basic_salary is required"}},
		}
	}

	workingDays := in.TotalWorkingDays
	if workingDays == 0 {
		workingDays = DefaultWorkingDays
	}

	absent := AbsentDays(workingDays, in.PresentDays, in.HalfDays, in.LeaveDays)
	if absent < 0 {
		return nil, &types.AppError{
			Code:    types.CodeValidation,
			Message: types.ErrValidation,
			Fields: []types.FieldError{{
				Field:   "absent_days",
				Message: "present, half and leave days exceed total_working_days",
			}},
		}
	}

	salary := CalculateSalary(SalaryInput{
		BasicSalary:      *basicSalary,
		TotalWorkingDays: workingDays,
		PresentDays:      in.PresentDays,
		HalfDays:         in.HalfDays,
		OvertimeHours:    in.OvertimeHours,
		Bonuses:          in.Bonuses,
		Deductions:       in.Deductions,
	})

	return &models.MonthlyRecord{
		EmployeeID:       employee.ID,
		EmployeeName:     employee.FullName,
		Month:            in.Month,
		Year:             in.Year,
		BasicSalary:      *basicSalary,
		TotalWorkingDays: workingDays,
		PresentDays:      in.PresentDays,
		AbsentDays:       absent,
		HalfDays:         in.HalfDays,
		LeaveDays:        in.LeaveDays,
		OvertimeHours:    in.OvertimeHours,
		Bonuses:          in.Bonuses,
		Deductions:       in.Deductions,
		GrossSalary:      salary.GrossSalary,
		NetSalary:        salary.NetSalary,
		PaymentStatus:    models.PaymentPending,
	}, nil
}

// UpdatePaymentStatus advances a record one step along pending -> processing -> paid.
func (s *PayrollService) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.MonthlyRecord, error) {
	if !status.Valid() {
		return nil, &types.AppError{
			Code:    types.CodeValidation,
			Message: types.ErrValidation,
			Fields: []types.FieldError{{
				Field:   "payment_status",
				Message: "payment_status must be one of: pending processing paid",
			}},
		}
	}

	var (
		record  models.MonthlyRecord
		pending outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return notFoundOr(err, types.ErrRecordNotFound)
		}

		next, err := record.PaymentStatus.TransitionTo(status)
		if err != nil {
			return err
		}

		record.PaymentStatus = next
		record.UpdatedAt = time.Now()
		err = tx.Model(&record).Select("payment_status", "updated_at").Updates(&record).Error
		if err != nil {
			return err
		}

		severity := models.SeverityInfo
		if next == models.PaymentPaid {
			severity = models.SeveritySuccess
		}
		n, err := s.notifier.Add(tx, record.EmployeeID, "Payment Status Updated",
			fmt.Sprintf("Your salary payment for %s %d is now %s.", record.Month, record.Year, next),
			severity)
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
	s.metrics.Transition("payment", string(record.PaymentStatus))
	s.logger.Info("Payment status updated",
		zap.String("employee_id", record.EmployeeID),
		zap.String("record_id", record.ID),
		zap.String("payment_status", string(record.PaymentStatus)))
	return &record, nil
}

// Get returns a record the viewer may see. Another employee's record reads as missing.
func (s *PayrollService) Get(ctx context.Context, viewer Principal, id string) (*models.MonthlyRecord, error) {
	query := s.db.WithContext(ctx).Where("id = ?", id)
	if !viewer.IsAdmin() {
		query = query.Where("employee_id = ?", viewer.ID)
	}

	var record models.MonthlyRecord
	if err := query.First(&record).Error; err != nil {
		return nil, notFoundOr(err, types.ErrRecordNotFound)
	}
	return &record, nil
}

// List pages through records newest period first. Employees only ever see their own.
func (s *PayrollService) List(ctx context.Context, viewer Principal, filter RecordFilter) ([]models.MonthlyRecord, types.Pagination, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)
	if !viewer.IsAdmin() {
		filter.EmployeeID = viewer.ID
	}

	query := s.db.WithContext(ctx).Model(&models.MonthlyRecord{})
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, types.Pagination{}, types.Database(err)
	}

	records := []models.MonthlyRecord{}
	err := query.Order("year DESC").Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, types.Pagination{}, types.Database(err)
	}

	return records, types.NewPagination(page, limit, total), nil
}

// Summary totals every record of one employee.
func (s *PayrollService) Summary(ctx context.Context, employeeID string) (*SalarySummary, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, "id = ?", employeeID).Error; err != nil {
		return nil, notFoundOr(err, types.ErrEmployeeNotFound)
	}

	var records []models.MonthlyRecord
	if err := s.db.WithContext(ctx).Where("employee_id = ?", employeeID).Find(&records).Error; err != nil {
		return nil, types.Database(err)
	}

	summary := &SalarySummary{
		EmployeeID:   employee.ID,
		EmployeeName: employee.FullName,
		Records:      len(records),
	}
	for _, r := range records {
		summary.TotalEarnings += r.NetSalary
		summary.TotalDeductions += r.Deductions
		if r.PaymentStatus == models.PaymentPaid {
			summary.TotalPaid += r.NetSalary
		}
	}
	if len(records) > 0 {
		summary.AverageNet = summary.TotalEarnings / float64(len(records))
	}
	return summary, nil
}

// formatAmount renders money with at most two decimals and no trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
