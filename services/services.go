package services

import (
	"context"
	"errors"

	"employee_management/config"
	"employee_management/metrics"
	"employee_management/models"
	"employee_management/types"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators shared by every service. Nil Logger, Metrics and Publisher
// fall back to no-op implementations.
type Deps struct {
	DB        *gorm.DB
	Config    config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Publisher Publisher
}

// Services groups the domain services the handlers and commands work with.
type Services struct {
	Employees     *EmployeeService
	Payroll       *PayrollService
	PayRequests   *PayRequestService
	Messages      *MessageService
	Notifications *NotificationService
	Auth          *AuthService
	Reports       *ReportService
}

func New(deps Deps) *Services {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	if deps.Publisher == nil {
		deps.Publisher = NopPublisher{}
	}

	notifications := &NotificationService{
		db:        deps.DB,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}

	return &Services{
		Employees: &EmployeeService{
			db:       deps.DB,
			notifier: notifications,
			metrics:  deps.Metrics,
			logger:   deps.Logger,
		},
		Payroll: &PayrollService{
			db:       deps.DB,
			notifier: notifications,
			metrics:  deps.Metrics,
			logger:   deps.Logger,
		},
		PayRequests: &PayRequestService{
			db:       deps.DB,
			notifier: notifications,
			metrics:  deps.Metrics,
			logger:   deps.Logger,
		},
		Messages: &MessageService{
			db:       deps.DB,
			notifier: notifications,
			logger:   deps.Logger,
		},
		Notifications: notifications,
		Auth: &AuthService{
			db:  deps.DB,
			cfg: deps.Config,
		},
		Reports: &ReportService{
			db: deps.DB,
		},
	}
}

// outbox collects notifications appended inside a transaction so they can be
// published once it commits.
type outbox []models.Notification

func (o *outbox) add(n *models.Notification) {
	*o = append(*o, *n)
}

func (o outbox) flush(ctx context.Context, notifier *NotificationService) {
	notifier.Publish(ctx, o...)
}

// dbError keeps AppErrors raised inside a transaction and wraps everything else as a database failure.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := types.AsAppError(err); ok {
		return err
	}
	return types.Database(err)
}

func notFoundOr(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound(sentinel)
	}
	return dbError(err)
}

// normalizePage clamps paging input to page >= 1 and 1 <= limit <= 100, defaulting limit to 10.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
