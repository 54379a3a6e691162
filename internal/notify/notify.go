// Package notify sends provider-facing messages about new assignments.
package notify

import (
	"context"
	"fmt"

	"github.com/cuure-health/booking-bot/internal/booking"
	"github.com/cuure-health/booking-bot/internal/storage"
	"github.com/cuure-health/booking-bot/pkg/logging"
)

// TextSender sends a plain text message. The WhatsApp client satisfies it.
type TextSender interface {
	SendText(ctx context.Context, to, body string) error
}

// ProviderNotifier messages the assigned provider after a booking commits.
type ProviderNotifier struct {
	sender TextSender
	logger *logging.Logger
}

// NewProviderNotifier builds a notifier over a text sender.
func NewProviderNotifier(sender TextSender, logger *logging.Logger) *ProviderNotifier {
	if sender == nil {
		panic("notify: text sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ProviderNotifier{sender: sender, logger: logger}
}

// NotifyAssignment messages the provider about the new appointment. A
// provider without a phone number is skipped.
func (n *ProviderNotifier) NotifyAssignment(ctx context.Context, provider booking.Provider, appt *storage.Appointment) error {
	if provider.Phone == "" {
		n.logger.Warn("provider has no phone, skipping notification", "provider", provider.Name)
		return nil
	}
	if err := n.sender.SendText(ctx, provider.Phone, assignmentMessage(appt)); err != nil {
		return fmt.Errorf("notify: assignment message to %s: %w", provider.Name, err)
	}
	return nil
}

func assignmentMessage(appt *storage.Appointment) string {
	name := "Not specified"
	if appt.PatientName != nil && *appt.PatientName != "" {
		name = *appt.PatientName
	}
	return fmt.Sprintf("🩺 New Appointment Assigned\n\n"+
		"👤 Patient: %s\n"+
		"📞 Phone: %s\n\n"+
		"📅 Date: %s\n"+
		"⏰ Time: %s\n\n"+
		"Please be available as scheduled.",
		name, appt.Phone, appt.Date, appt.SlotLabel)
}
