package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminID is the principal id used for the administrator in messages and notifications.
const AdminID = "admin"

const DefaultLeaveBalance = 24

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type Employee struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName       string         `gorm:"not null" json:"full_name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"not null" json:"-"`
	ContactNumber  string         `json:"contact_number"`
	AccountNumber  string         `json:"account_number"`
	ParentName     string         `json:"parent_name"`
	ParentContact  string         `json:"parent_contact"`
	ESICNumber     string         `json:"esic_number,omitempty"`
	PFNumber       string         `json:"pf_number,omitempty"`
	Department     string         `gorm:"index" json:"department,omitempty"`
	Position       string         `json:"position,omitempty"`
	HireDate       *time.Time     `json:"hire_date,omitempty"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;index" json:"approval_status"`
	IsApproved     bool           `gorm:"not null" json:"is_approved"`
	BasicSalary    *float64       `json:"basic_salary,omitempty"`
	LeaveBalance   int            `gorm:"not null" json:"leave_balance"`
	IsActive       bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (e *Employee) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// MonthlyRecord is one payroll period for one employee.
type MonthlyRecord struct {
	ID               string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	EmployeeID       string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_record_period" json:"employee_id"`
	EmployeeName     string        `json:"employee_name"`
	Month            string        `gorm:"type:varchar(12);not null;uniqueIndex:idx_record_period" json:"month"`
	Year             int           `gorm:"not null;uniqueIndex:idx_record_period" json:"year"`
	BasicSalary      float64       `json:"basic_salary"`
	TotalWorkingDays int           `json:"total_working_days"`
	PresentDays      int           `json:"present_days"`
	AbsentDays       int           `json:"absent_days"`
	HalfDays         int           `json:"half_days"`
	LeaveDays        int           `json:"leave_days"`
	OvertimeHours    float64       `json:"overtime_hours"`
	Bonuses          float64       `json:"bonuses"`
	Deductions       float64       `json:"deductions"`
	GrossSalary      float64       `json:"gross_salary"`
	NetSalary        float64       `json:"net_salary"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	CreatedAt        time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"not null" json:"updated_at"`
}

func (r *MonthlyRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type PayRequestType string

const (
	PayRequestSalary        PayRequestType = "salary"
	PayRequestAdvance       PayRequestType = "advance"
	PayRequestBonus         PayRequestType = "bonus"
	PayRequestReimbursement PayRequestType = "reimbursement"
	PayRequestOther         PayRequestType = "other"
)

// PayRequest is an employee ask for funds outside the normal payroll.
type PayRequest struct {
	ID           string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	EmployeeID   string           `gorm:"type:varchar(36);not null;index" json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Amount       float64          `gorm:"not null" json:"amount"`
	Purpose      string           `gorm:"not null" json:"purpose"`
	Description  string           `json:"description,omitempty"`
	RequestType  PayRequestType   `gorm:"type:varchar(20);not null" json:"request_type"`
	Status       PayRequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminNotes   string           `json:"admin_notes,omitempty"`
	ProcessedAt  *time.Time       `json:"processed_at,omitempty"`
	ProcessedBy  string           `json:"processed_by,omitempty"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
}

func (p *PayRequest) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type Message struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);not null;index" json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID string    `gorm:"type:varchar(36);not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	IsRead     bool      `gorm:"not null" json:"is_read"`
	SenderType Role      `gorm:"type:varchar(20);not null" json:"sender_type"`
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      Severity  `gorm:"type:varchar(10);not null" json:"type"`
	IsRead    bool      `gorm:"not null" json:"is_read"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// All lists every table the service migrates.
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&MonthlyRecord{},
		&PayRequest{},
		&Message{},
		&Notification{},
	}
}
