package audit

import (
	"context"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
)

// Audit actions for the booking lifecycle.
const (
	ActionCreateBooking   = "booking.create"
	ActionConfirmBooking  = "booking.confirm"
	ActionCancelBooking   = "booking.cancel"
	ActionCompleteBooking = "booking.complete"
	ActionUpdatePayment   = "booking.payment_update"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, bookingNumber string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(log.FieldBookingNumber, bookingNumber).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, userID string, bookingNumber string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(log.FieldBookingNumber, bookingNumber).
		Str(FieldDetail, detail).
		Msg(msg)
}
