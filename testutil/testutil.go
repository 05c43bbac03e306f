// Package testutil builds the throwaway databases, fixtures and tokens shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"employee_management/config"
	"employee_management/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	JWTSecret     = "test-secret"
	AdminEmail    = "admin"
	AdminPassword = "admin123"
	Password      = "password123"
)

var dbCounter atomic.Int64

// Config returns the configuration tests run the services and handlers with.
func Config() config.Config {
	return config.Config{
		Env:           "test",
		Port:          "0",
		JWTSecret:     JWTSecret,
		TokenExpiry:   time.Hour,
		DBDriver:      config.DriverSQLite,
		AdminEmail:    AdminEmail,
		AdminPassword: AdminPassword,
	}
}

// NewTestDB opens a private in-memory database with the schema migrated.
// A single connection keeps every query on the same memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// EmployeeOption adjusts a fixture before it is stored.
type EmployeeOption func(*models.Employee)

func Pending() EmployeeOption {
	return func(e *models.Employee) {
		e.ApprovalStatus = models.ApprovalPending
		e.IsApproved = false
	}
}

func Rejected() EmployeeOption {
	return func(e *models.Employee) {
		e.ApprovalStatus = models.ApprovalRejected
		e.IsApproved = false
	}
}

func Inactive() EmployeeOption {
	return func(e *models.Employee) { e.IsActive = false }
}

func WithLeaveBalance(days int) EmployeeOption {
	return func(e *models.Employee) { e.LeaveBalance = days }
}

func WithSalary(amount float64) EmployeeOption {
	return func(e *models.Employee) { e.BasicSalary = &amount }
}

func WithDepartment(department string) EmployeeOption {
	return func(e *models.Employee) { e.Department = department }
}

// CreateEmployee stores an approved, active employee whose password is Password.
func CreateEmployee(t *testing.T, db *gorm.DB, name, email string, opts ...EmployeeOption) *models.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	employee := &models.Employee{
		FullName:       name,
		Email:          email,
		PasswordHash:   string(hash),
		ContactNumber:  "9876543210",
		AccountNumber:  "001122334455",
		ParentName:     "Parent of " + name,
		ParentContact:  "9123456780",
		ApprovalStatus: models.ApprovalApproved,
		IsApproved:     true,
		LeaveBalance:   models.DefaultLeaveBalance,
		IsActive:       true,
	}
	for _, opt := range opts {
		opt(employee)
	}

	require.NoError(t, db.Create(employee).Error)
	return employee
}

// CreateTestToken signs a token the auth middleware accepts.
func CreateTestToken(t *testing.T, userID string, role models.Role, name string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"name":    name,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(JWTSecret))
	require.NoError(t, err)
	return tokenString
}

func AdminToken(t *testing.T) string {
	return CreateTestToken(t, models.AdminID, models.RoleAdmin, "Administrator")
}

// Notifications returns every notification stored for userID, oldest first.
func Notifications(t *testing.T, db *gorm.DB, userID string) []models.Notification {
	t.Helper()

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at").Find(&notifications).Error)
	return notifications
}
