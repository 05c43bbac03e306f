package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"employee_management/metrics"
	"employee_management/models"
	"employee_management/types"
	"employee_management/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PayRequestInput struct {
	Amount      float64               `json:"amount" validate:"gt=0"`
	Purpose     string                `json:"purpose" validate:"required,max=200"`
	Description string                `json:"description" validate:"max=1000"`
	RequestType models.PayRequestType `json:"request_type" validate:"required,oneof=salary advance bonus reimbursement other"`
}

type PayRequestFilter struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	EmployeeID string `query:"employee_id"`
	Status     string `query:"status"`
}

type PayRequestService struct {
	db       *gorm.DB
	notifier *NotificationService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// Submit files a pending request for the employee and alerts the administrator.
func (s *PayRequestService) Submit(ctx context.Context, employeeID string, in PayRequestInput) (*models.PayRequest, error) {
	in.Purpose = strings.TrimSpace(in.Purpose)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var (
		request *models.PayRequest
		pending outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		err := tx.First(&employee, "id = ? AND is_active = ? AND is_approved = ?", employeeID, true, true).Error
		if err != nil {
			return notFoundOr(err, types.ErrEmployeeNotFound)
		}

		request = &models.PayRequest{
			EmployeeID:   employee.ID,
			EmployeeName: employee.FullName,
			Amount:       in.Amount,
			Purpose:      in.Purpose,
			Description:  strings.TrimSpace(in.Description),
			RequestType:  in.RequestType,
			Status:       models.PayRequestPending,
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		n, err := s.notifier.Add(tx, models.AdminID, "New Payment Request",
			fmt.Sprintf("%s submitted a %s request for ₹%s", employee.FullName, request.RequestType, formatAmount(request.Amount)),
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
	s.metrics.Transition("pay_request", string(request.Status))
	return request, nil
}

func (s *PayRequestService) Approve(ctx context.Context, id, adminNotes string) (*models.PayRequest, error) {
	return s.process(ctx, id, true, adminNotes)
}

func (s *PayRequestService) Reject(ctx context.Context, id, adminNotes string) (*models.PayRequest, error) {
	return s.process(ctx, id, false, adminNotes)
}

func (s *PayRequestService) process(ctx context.Context, id string, approve bool, adminNotes string) (*models.PayRequest, error) {
	adminNotes = strings.TrimSpace(adminNotes)

	var (
		request models.PayRequest
		pending outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", id).Error; err != nil {
			return notFoundOr(err, types.ErrPayRequestNotFound)
		}

		var (
			next models.PayRequestStatus
			err  error
		)
		if approve {
			next, err = request.Status.Approve()
		} else {
			next, err = request.Status.Reject()
		}
		if err != nil {
			return err
		}

		now := time.Now()
		request.Status = next
		request.ProcessedAt = &now
		request.ProcessedBy = models.AdminID
		request.AdminNotes = adminNotes
		err = tx.Model(&request).
			Select("status", "processed_at", "processed_by", "admin_notes", "updated_at").
			Updates(&request).Error
		if err != nil {
			return err
		}

		title, message, severity := payRequestNotice(&request)
		n, err := s.notifier.Add(tx, request.EmployeeID, title, message, severity)
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
	s.metrics.Transition("pay_request", string(request.Status))
	s.logger.Info("Pay request processed",
		zap.String("employee_id", request.EmployeeID),
		zap.String("pay_request_id", request.ID),
		zap.String("status", string(request.Status)))
	return &request, nil
}

func payRequestNotice(r *models.PayRequest) (string, string, models.Severity) {
	amount := formatAmount(r.Amount)
	if r.Status == models.PayRequestApproved {
		return "Payment Request Approved",
			fmt.Sprintf("Your %s request of ₹%s has been approved.", r.RequestType, amount),
			models.SeveritySuccess
	}

	message := fmt.Sprintf("Your %s request of ₹%s has been rejected.", r.RequestType, amount)
	if r.AdminNotes != "" {
		message += " Reason: " + r.AdminNotes
	}
	return "Payment Request Rejected", message, models.SeverityError
}

// List pages through requests newest first. Employees only ever see their own.
func (s *PayRequestService) List(ctx context.Context, viewer Principal, filter PayRequestFilter) ([]models.PayRequest, types.Pagination, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)
	if !viewer.IsAdmin() {
		filter.EmployeeID = viewer.ID
	}

	query := s.db.WithContext(ctx).Model(&models.PayRequest{})
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, types.Pagination{}, types.Database(err)
	}

	requests := []models.PayRequest{}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, types.Pagination{}, types.Database(err)
	}

	return requests, types.NewPagination(page, limit, total), nil
}
