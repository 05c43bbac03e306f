package services

import (
	"context"
	"fmt"
	"strings"

	"employee_management/models"
	"employee_management/types"
	"employee_management/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const adminDisplayName = "Administrator"

type SendMessageInput struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content" validate:"required,max=2000"`
}

type MessageService struct {
	db       *gorm.DB
	notifier *NotificationService
	logger   *zap.Logger
}

// Send delivers a message between an employee and the administrator and notifies the receiver.
// Employees always write to the administrator; the administrator writes to an approved employee.
func (s *MessageService) Send(ctx context.Context, sender Principal, in SendMessageInput) (*models.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var (
		message *models.Message
		pending outbox
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		message = &models.Message{Content: in.Content, SenderID: sender.ID, SenderType: sender.Role}

		var notice string
		if sender.IsAdmin() {
			if in.ReceiverID == "" {
				return &types.AppError{
					Code:    types.CodeValidation,
					Message: types.ErrValidation,
					Fields:  []types.FieldError{{Field: "receiver_id", Message: "receiver_id is required"}},
				}
			}

			var receiver models.Employee
			err := tx.First(&receiver, "id = ? AND is_active = ? AND is_approved = ?", in.ReceiverID, true, true).Error
			if err != nil {
				return notFoundOr(err, types.ErrEmployeeNotFound)
			}
			message.SenderName = adminDisplayName
			message.ReceiverID = receiver.ID
			notice = fmt.Sprintf("%s sent you a message", adminDisplayName)
		} else {
			var employee models.Employee
			err := tx.First(&employee, "id = ? AND is_active = ? AND is_approved = ?", sender.ID, true, true).Error
			if err != nil {
				return notFoundOr(err, types.ErrEmployeeNotFound)
			}
			message.SenderName = employee.FullName
			message.ReceiverID = models.AdminID
			notice = fmt.Sprintf("%s sent you a message", employee.FullName)
		}

		if err := tx.Create(message).Error; err != nil {
			return err
		}

		n, err := s.notifier.Add(tx, message.ReceiverID, "New Message", notice, models.SeverityInfo)
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
	s.logger.Debug("Message sent",
		zap.String("sender_id", message.SenderID),
		zap.String("receiver_id", message.ReceiverID))
	return message, nil
}

// List returns the viewer's conversation in chronological order. The administrator may narrow it
// to one employee with withEmployee.
func (s *MessageService) List(ctx context.Context, viewer Principal, withEmployee string) ([]models.Message, error) {
	party := viewer.ID
	if viewer.IsAdmin() {
		party = models.AdminID
	}

	query := s.db.WithContext(ctx).Where("sender_id = ? OR receiver_id = ?", party, party)
	if viewer.IsAdmin() && withEmployee != "" {
		query = query.Where("sender_id = ? OR receiver_id = ?", withEmployee, withEmployee)
	}

	messages := []models.Message{}
	if err := query.Order("timestamp ASC").Find(&messages).Error; err != nil {
		return nil, types.Database(err)
	}
	return messages, nil
}

// MarkRead flips a message to read. Only its receiver may do so; a read message stays read.
func (s *MessageService) MarkRead(ctx context.Context, viewer Principal, id string) (*models.Message, error) {
	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, types.ErrMessageNotFound)
	}

	receiver := viewer.ID
	if viewer.IsAdmin() {
		receiver = models.AdminID
	}
	if message.ReceiverID != receiver {
		return nil, &types.AppError{Code: types.CodeForbidden, Message: "Only the receiver can mark a message as read", Err: types.ErrNotReceiver}
	}

	if message.IsRead {
		return &message, nil
	}

	message.IsRead = true
	if err := s.db.WithContext(ctx).Model(&message).Update("is_read", true).Error; err != nil {
		return nil, types.Database(err)
	}
	return &message, nil
}
