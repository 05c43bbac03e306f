package models

import "employee_management/types"

// PaymentStatus advances pending -> processing -> paid and never moves back.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentPaid:
		return true
	}
	return false
}

// Next returns the only status reachable from s.
func (s PaymentStatus) Next() (PaymentStatus, bool) {
	switch s {
	case PaymentPending:
		return PaymentProcessing, true
	case PaymentProcessing:
		return PaymentPaid, true
	}
	return "", false
}

func (s PaymentStatus) TransitionTo(target PaymentStatus) (PaymentStatus, error) {
	next, ok := s.Next()
	if !ok || next != target {
		return s, types.Transition("payment status", string(s), string(target))
	}
	return next, nil
}

// ApprovalStatus keeps rejected employees apart from ones nobody has reviewed yet.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Approve() (ApprovalStatus, error) {
	if s != ApprovalPending {
		return s, types.Transition("approval status", string(s), string(ApprovalApproved))
	}
	return ApprovalApproved, nil
}

func (s ApprovalStatus) Reject() (ApprovalStatus, error) {
	if s != ApprovalPending {
		return s, types.Transition("approval status", string(s), string(ApprovalRejected))
	}
	return ApprovalRejected, nil
}

type PayRequestStatus string

const (
	PayRequestPending  PayRequestStatus = "pending"
	PayRequestApproved PayRequestStatus = "approved"
	PayRequestRejected PayRequestStatus = "rejected"
)

func (s PayRequestStatus) Approve() (PayRequestStatus, error) {
	if s != PayRequestPending {
		return s, types.Transition("pay request status", string(s), string(PayRequestApproved))
	}
	return PayRequestApproved, nil
}

func (s PayRequestStatus) Reject() (PayRequestStatus, error) {
	if s != PayRequestPending {
		return s, types.Transition("pay request status", string(s), string(PayRequestRejected))
	}
	return PayRequestRejected, nil
}

func (s PayRequestStatus) Terminal() bool {
	return s == PayRequestApproved || s == PayRequestRejected
}
