package conversation

import (
	"context"
	"fmt"

	"github.com/cuure-health/booking-bot/internal/booking"
	"github.com/cuure-health/booking-bot/internal/catalog"
	"github.com/cuure-health/booking-bot/internal/observability/metrics"
	"github.com/cuure-health/booking-bot/internal/session"
	"github.com/cuure-health/booking-bot/internal/storage"
	"github.com/cuure-health/booking-bot/internal/whatsapp"
	"github.com/cuure-health/booking-bot/pkg/logging"
)

// Messenger sends outbound replies. The WhatsApp client satisfies it.
type Messenger interface {
	SendText(ctx context.Context, to, body string) error
	SendButtons(ctx context.Context, to, body string, buttons []whatsapp.Button) error
	SendList(ctx context.Context, to string, prompt whatsapp.ListPrompt) error
}

// BookingCommitter confirms drafted bookings.
type BookingCommitter interface {
	Commit(ctx context.Context, phone string, patientName *string, date string, slot catalog.Slot) booking.Confirmation
}

// AppointmentLister reads a patient's bookings for the listing option.
type AppointmentLister interface {
	ListByPhone(ctx context.Context, phone string) ([]storage.UserAppointment, error)
}

// UserWriter persists completed registrations.
type UserWriter interface {
	Upsert(ctx context.Context, phone, name string, age int) error
}

// Engine drives one conversation turn: it looks up the session, runs the
// transition, and executes the resulting actions against the collaborators.
type Engine struct {
	sessions     *session.Store
	users        *UserCache
	machine      *Machine
	messenger    Messenger
	bookings     BookingCommitter
	appointments AppointmentLister
	userRepo     UserWriter
	prompts      Prompts
	metrics      *metrics.MessagingMetrics
	logger       *logging.Logger
}

// NewEngine wires a conversation engine. Metrics are optional.
func NewEngine(sessions *session.Store, users *UserCache, machine *Machine, messenger Messenger, bookings BookingCommitter, appointments AppointmentLister, userRepo UserWriter, prompts Prompts, m *metrics.MessagingMetrics, logger *logging.Logger) *Engine {
	if sessions == nil {
		panic("conversation: session store required")
	}
	if users == nil {
		panic("conversation: user cache required")
	}
	if machine == nil {
		panic("conversation: machine required")
	}
	if messenger == nil {
		panic("conversation: messenger required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		sessions:     sessions,
		users:        users,
		machine:      machine,
		messenger:    messenger,
		bookings:     bookings,
		appointments: appointments,
		userRepo:     userRepo,
		prompts:      prompts,
		metrics:      m,
		logger:       logger,
	}
}

// Handle processes one inbound event to completion. Send failures are logged
// and never retried.
func (e *Engine) Handle(ctx context.Context, from string, ev Event) {
	sess := e.sessions.Get(from)
	_, registered := e.users.Get(from)

	next, actions := e.machine.Transition(sess, registered, ev)
	e.sessions.Set(from, next)

	for _, act := range actions {
		e.execute(ctx, from, act)
	}
}

func (e *Engine) execute(ctx context.Context, from string, act Action) {
	switch a := act.(type) {
	case SendText:
		e.sendText(ctx, from, a.Body)

	case SendButtons:
		err := e.messenger.SendButtons(ctx, from, a.Body, a.Buttons)
		e.metrics.ObserveOutbound("buttons", err)
		if err != nil {
			e.logger.Error("send buttons failed", "error", err, "to", from)
		}

	case SendList:
		err := e.messenger.SendList(ctx, from, a.Prompt)
		e.metrics.ObserveOutbound("list", err)
		if err != nil {
			e.logger.Error("send list failed", "error", err, "to", from)
		}

	case RegisterUser:
		e.users.Put(from, Profile{Name: a.Name, Age: a.Age})
		if e.userRepo != nil {
			if err := e.userRepo.Upsert(ctx, from, a.Name, a.Age); err != nil {
				e.logger.Error("user upsert failed", "error", err, "phone", from)
			}
		}

	case CommitBooking:
		profile, _ := e.users.Get(from)
		var patientName *string
		if profile.Name != "" {
			name := profile.Name
			patientName = &name
		}
		conf := e.bookings.Commit(ctx, from, patientName, a.Date, a.Slot)
		e.sendText(ctx, from, e.prompts.Confirmed(conf.Date, conf.SlotLabel, conf.ProviderName, conf.ProviderSpecialization))

	case ListBookings:
		e.sendText(ctx, from, e.listBookings(ctx, from))

	default:
		e.logger.Warn("unknown action", "action", fmt.Sprintf("%T", act))
	}
}

func (e *Engine) sendText(ctx context.Context, to, body string) {
	err := e.messenger.SendText(ctx, to, body)
	e.metrics.ObserveOutbound("text", err)
	if err != nil {
		e.logger.Error("send text failed", "error", err, "to", to)
	}
}

func (e *Engine) listBookings(ctx context.Context, phone string) string {
	if e.appointments == nil {
		return e.prompts.NoAppointments()
	}
	appts, err := e.appointments.ListByPhone(ctx, phone)
	if err != nil {
		e.logger.Error("list appointments failed", "error", err, "phone", phone)
		return e.prompts.NoAppointments()
	}
	if len(appts) == 0 {
		return e.prompts.NoAppointments()
	}
	return e.prompts.AppointmentList(appts)
}
