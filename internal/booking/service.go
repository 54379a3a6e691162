// Package booking commits confirmed appointments: it reserves the slot in
// the availability index, assigns a provider, persists the booking, and
// dispatches best-effort side effects.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cuure-health/booking-bot/internal/catalog"
	"github.com/cuure-health/booking-bot/internal/observability/metrics"
	"github.com/cuure-health/booking-bot/internal/schedule"
	"github.com/cuure-health/booking-bot/internal/storage"
	"github.com/cuure-health/booking-bot/pkg/logging"
)

var bookingTracer = otel.Tracer("cuure.internal.booking")

// AppointmentWriter persists confirmed bookings.
type AppointmentWriter interface {
	Insert(ctx context.Context, appt *storage.Appointment) error
}

// CalendarInserter creates the calendar event for a booking.
type CalendarInserter interface {
	CreateEvent(ctx context.Context, date, slotValue, phone string, patientName *string) error
}

// Notifier tells the assigned provider about a new booking.
type Notifier interface {
	NotifyAssignment(ctx context.Context, provider Provider, appt *storage.Appointment) error
}

// Confirmation is the payload the reply to the patient is built from.
type Confirmation struct {
	Date                   string
	SlotLabel              string
	ProviderName           string
	ProviderSpecialization string
}

// Service performs booking commits.
type Service struct {
	index        *schedule.Index
	roster       *Roster
	appointments AppointmentWriter
	calendar     CalendarInserter
	notifier     Notifier
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
}

// NewService constructs a booking service. Calendar, notifier, and metrics
// are optional.
func NewService(index *schedule.Index, roster *Roster, appointments AppointmentWriter, calendar CalendarInserter, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if index == nil {
		panic("booking: availability index required")
	}
	if roster == nil {
		panic("booking: roster required")
	}
	if appointments == nil {
		panic("booking: appointment writer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		index:        index,
		roster:       roster,
		appointments: appointments,
		calendar:     calendar,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
	}
}

// Commit confirms the drafted booking. The slot is reserved in the in-memory
// index before any external I/O so same-process availability queries exclude
// it immediately. Persistence failures are logged, never rolled back, and
// never surfaced to the patient. Calendar and provider notification run as
// detached, mutually isolated side effects that the reply path does not wait
// for.
func (s *Service) Commit(ctx context.Context, phone string, patientName *string, date string, slot catalog.Slot) Confirmation {
	ctx, span := bookingTracer.Start(ctx, "booking.commit")
	defer span.End()
	span.SetAttributes(
		attribute.String("cuure.booking.date", date),
		attribute.String("cuure.booking.slot", slot.Value),
	)

	s.index.Reserve(date, slot.Value)

	provider := s.roster.Next()
	appt := &storage.Appointment{
		ID:                     uuid.New(),
		Phone:                  phone,
		PatientName:            patientName,
		Date:                   date,
		SlotLabel:              slot.Label,
		SlotValue:              slot.Value,
		ProviderName:           provider.Name,
		ProviderSpecialization: provider.Specialization,
		CreatedAt:              time.Now().UTC(),
	}

	if err := s.appointments.Insert(ctx, appt); err != nil {
		// The index has already advanced; the divergence is logged, not
		// rolled back.
		span.RecordError(err)
		s.logger.Error("appointment insert failed", "error", err, "phone", phone, "date", date, "slot", slot.Value)
		s.metrics.ObservePersistFailure()
	}

	if s.calendar != nil {
		go func() {
			if err := s.calendar.CreateEvent(context.Background(), appt.Date, appt.SlotValue, appt.Phone, appt.PatientName); err != nil {
				s.logger.Error("calendar event failed", "error", err, "date", appt.Date, "slot", appt.SlotValue)
			}
		}()
	}
	if s.notifier != nil {
		go func() {
			if err := s.notifier.NotifyAssignment(context.Background(), provider, appt); err != nil {
				s.logger.Error("provider notification failed", "error", err, "provider", provider.Name)
			}
		}()
	}

	s.metrics.ObserveBooking()
	s.logger.Info("booking committed",
		"phone", phone, "date", date, "slot", slot.Value, "provider", provider.Name)

	return Confirmation{
		Date:                   date,
		SlotLabel:              slot.Label,
		ProviderName:           provider.Name,
		ProviderSpecialization: provider.Specialization,
	}
}
