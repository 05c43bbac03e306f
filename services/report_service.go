package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"employee_management/models"
	"employee_management/types"

	"gorm.io/gorm"
)

type ReportType string

const (
	ReportSalary     ReportType = "salary"
	ReportAttendance ReportType = "attendance"
)

func (t ReportType) Valid() bool {
	return t == ReportSalary || t == ReportAttendance
}

var reportHeader = []string{
	"Employee", "Month", "Basic Salary", "Present Days", "Total Days",
	"Attendance %", "Net Salary", "Payment Status",
}

type ReportFilter struct {
	Month string `query:"month"`
	Year  int    `query:"year"`
}

type Dashboard struct {
	ActiveEmployees     int64   `json:"active_employees"`
	PendingEmployees    int64   `json:"pending_employees"`
	PendingPayRequests  int64   `json:"pending_pay_requests"`
	UnreadMessages      int64   `json:"unread_messages"`
	UnreadNotifications int64   `json:"unread_notifications"`
	TotalSalaryPaid     float64 `json:"total_salary_paid"`
}

type ReportService struct {
	db *gorm.DB
}

// WriteCSV writes one row per monthly record. Salary reports list the highest paid first,
// attendance reports the best attendance first.
func (s *ReportService) WriteCSV(ctx context.Context, w io.Writer, kind ReportType, filter ReportFilter) error {
	if !kind.Valid() {
		return &types.AppError{
			Code:    types.CodeValidation,
			Message: types.ErrValidation,
			Fields:  []types.FieldError{{Field: "type", Message: "type must be one of: salary attendance"}},
		}
	}

	query := s.db.WithContext(ctx).Model(&models.MonthlyRecord{})
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if kind == ReportSalary {
		query = query.Order("net_salary DESC")
	} else {
		query = query.Order("present_days DESC")
	}

	var records []models.MonthlyRecord
	if err := query.Order("employee_name").Find(&records).Error; err != nil {
		return types.Database(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.EmployeeName,
			fmt.Sprintf("%s %d", r.Month, r.Year),
			formatAmount(r.BasicSalary),
			strconv.Itoa(r.PresentDays),
			strconv.Itoa(r.TotalWorkingDays),
			attendancePercent(r.PresentDays, r.TotalWorkingDays),
			formatAmount(r.NetSalary),
			string(r.PaymentStatus),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func attendancePercent(present, total int) string {
	if total <= 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(present)/float64(total)*100, 'f', 1, 64)
}

// Dashboard gathers the administrator's counters.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	d := &Dashboard{}

	counts := []struct {
		model interface{}
		where string
		args  []interface{}
		dest  *int64
	}{
		{&models.Employee{}, "is_active = ? AND is_approved = ?", []interface{}{true, true}, &d.ActiveEmployees},
		{&models.Employee{}, "is_active = ? AND approval_status = ?", []interface{}{true, models.ApprovalPending}, &d.PendingEmployees},
		{&models.PayRequest{}, "status = ?", []interface{}{models.PayRequestPending}, &d.PendingPayRequests},
		{&models.Message{}, "receiver_id = ? AND is_read = ?", []interface{}{models.AdminID, false}, &d.UnreadMessages},
		{&models.Notification{}, "user_id = ? AND is_read = ?", []interface{}{models.AdminID, false}, &d.UnreadNotifications},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.args...).Count(c.dest).Error; err != nil {
			return nil, types.Database(err)
		}
	}

	var paid struct{ Total float64 }
	err := db.Model(&models.MonthlyRecord{}).
		Select("COALESCE(SUM(net_salary), 0) AS total").
		Where("payment_status = ?", models.PaymentPaid).
		Scan(&paid).Error
	if err != nil {
		return nil, types.Database(err)
	}
	d.TotalSalaryPaid = paid.Total

	return d, nil
}
