package services_test

import (
	"context"
	"sync"
	"testing"

	"employee_management/models"
	"employee_management/services"
	"employee_management/testutil"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []models.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, n models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func (p *recordingPublisher) titles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	titles := make([]string, 0, len(p.published))
	for _, n := range p.published {
		titles = append(titles, n.Title)
	}
	return titles
}

func setup(t *testing.T) (*services.Services, *gorm.DB, *recordingPublisher) {
	t.Helper()

	db := testutil.NewTestDB(t)
	publisher := &recordingPublisher{}
	svc := services.New(services.Deps{
		DB:        db,
		Config:    testutil.Config(),
		Publisher: publisher,
	})
	return svc, db, publisher
}

func admin() services.Principal {
	return services.Principal{ID: models.AdminID, Role: models.RoleAdmin, Name: "Administrator"}
}

func employeePrincipal(e *models.Employee) services.Principal {
	return services.Principal{ID: e.ID, Role: models.RoleEmployee, Name: e.FullName}
}

func float(v float64) *float64 { return &v }
