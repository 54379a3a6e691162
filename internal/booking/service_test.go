package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cuure-health/booking-bot/internal/catalog"
	"github.com/cuure-health/booking-bot/internal/schedule"
	"github.com/cuure-health/booking-bot/internal/storage"
)

type recordingWriter struct {
	appts     []*storage.Appointment
	err       error
	available map[string]bool // availability observed at insert time
	index     *schedule.Index
}

func (w *recordingWriter) Insert(_ context.Context, appt *storage.Appointment) error {
	if w.index != nil {
		if w.available == nil {
			w.available = map[string]bool{}
		}
		w.available[appt.Date+"|"+appt.SlotValue] = w.index.IsAvailable(appt.Date, appt.SlotValue)
	}
	w.appts = append(w.appts, appt)
	return w.err
}

type recordingCalendar struct {
	called chan struct{}
	err    error
}

func (c *recordingCalendar) CreateEvent(context.Context, string, string, string, *string) error {
	c.called <- struct{}{}
	return c.err
}

type recordingNotifier struct {
	called chan Provider
	err    error
}

func (n *recordingNotifier) NotifyAssignment(_ context.Context, p Provider, _ *storage.Appointment) error {
	n.called <- p
	return n.err
}

func mustSlot(t *testing.T, value string) catalog.Slot {
	t.Helper()
	slot, ok := catalog.SlotByValue(value)
	if !ok {
		t.Fatalf("unknown slot %s", value)
	}
	return slot
}

func newTestService(t *testing.T, writer AppointmentWriter, cal CalendarInserter, notifier Notifier) (*Service, *schedule.Index) {
	t.Helper()
	idx := schedule.NewIndex()
	roster, err := NewRoster(DefaultProviders())
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	return NewService(idx, roster, writer, cal, notifier, nil, nil), idx
}

func TestCommitReservesBeforePersist(t *testing.T) {
	writer := &recordingWriter{}
	svc, idx := newTestService(t, writer, nil, nil)
	writer.index = idx

	name := "Asha"
	conf := svc.Commit(context.Background(), "919876543210", &name, "2024-06-12", mustSlot(t, "16:00"))

	if idx.IsAvailable("2024-06-12", "16:00") {
		t.Fatal("slot still available after commit")
	}
	if avail := writer.available["2024-06-12|16:00"]; avail {
		t.Fatal("slot was still available when insert ran")
	}
	if len(writer.appts) != 1 {
		t.Fatalf("expected one insert, got %d", len(writer.appts))
	}
	appt := writer.appts[0]
	if appt.Phone != "919876543210" || appt.Date != "2024-06-12" || appt.SlotValue != "16:00" {
		t.Fatalf("unexpected appointment %+v", appt)
	}
	if appt.PatientName == nil || *appt.PatientName != "Asha" {
		t.Fatal("expected patient name carried through")
	}
	if appt.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if conf.Date != "2024-06-12" || conf.SlotLabel != appt.SlotLabel {
		t.Fatalf("unexpected confirmation %+v", conf)
	}
	if conf.ProviderName != appt.ProviderName {
		t.Fatal("confirmation provider differs from persisted provider")
	}
}

func TestCommitAssignsProvidersInOrder(t *testing.T) {
	writer := &recordingWriter{}
	svc, _ := newTestService(t, writer, nil, nil)
	ctx := context.Background()

	first := svc.Commit(ctx, "919876543210", nil, "2024-06-12", mustSlot(t, "16:00"))
	second := svc.Commit(ctx, "919812345678", nil, "2024-06-12", mustSlot(t, "16:30"))
	third := svc.Commit(ctx, "919811112222", nil, "2024-06-13", mustSlot(t, "16:00"))

	defaults := DefaultProviders()
	if first.ProviderName != defaults[0].Name {
		t.Fatalf("first assignment: got %s", first.ProviderName)
	}
	if second.ProviderName != defaults[1].Name {
		t.Fatalf("second assignment: got %s", second.ProviderName)
	}
	if third.ProviderName != defaults[0].Name {
		t.Fatalf("third assignment: got %s, want wrap-around", third.ProviderName)
	}
}

func TestCommitSurvivesPersistFailure(t *testing.T) {
	writer := &recordingWriter{err: errors.New("db down")}
	svc, idx := newTestService(t, writer, nil, nil)

	conf := svc.Commit(context.Background(), "919876543210", nil, "2024-06-12", mustSlot(t, "16:00"))

	if conf.ProviderName == "" {
		t.Fatal("expected confirmation despite persist failure")
	}
	// The reservation stands even though the row was not written.
	if idx.IsAvailable("2024-06-12", "16:00") {
		t.Fatal("expected slot to stay reserved")
	}
}

func TestCommitDispatchesSideEffects(t *testing.T) {
	writer := &recordingWriter{}
	cal := &recordingCalendar{called: make(chan struct{}, 1)}
	notifier := &recordingNotifier{called: make(chan Provider, 1)}
	svc, _ := newTestService(t, writer, cal, notifier)

	conf := svc.Commit(context.Background(), "919876543210", nil, "2024-06-12", mustSlot(t, "17:00"))

	select {
	case <-cal.called:
	case <-time.After(time.Second):
		t.Fatal("calendar event never dispatched")
	}
	select {
	case p := <-notifier.called:
		if p.Name != conf.ProviderName {
			t.Fatalf("notified %s, confirmed %s", p.Name, conf.ProviderName)
		}
	case <-time.After(time.Second):
		t.Fatal("provider notification never dispatched")
	}
}

func TestCommitSideEffectFailuresAreIsolated(t *testing.T) {
	writer := &recordingWriter{}
	cal := &recordingCalendar{called: make(chan struct{}, 1), err: errors.New("calendar down")}
	notifier := &recordingNotifier{called: make(chan Provider, 1), err: errors.New("send failed")}
	svc, idx := newTestService(t, writer, cal, notifier)

	svc.Commit(context.Background(), "919876543210", nil, "2024-06-12", mustSlot(t, "16:00"))

	<-cal.called
	<-notifier.called
	if len(writer.appts) != 1 {
		t.Fatal("expected booking persisted despite side-effect failures")
	}
	if idx.IsAvailable("2024-06-12", "16:00") {
		t.Fatal("expected reservation to stand")
	}
}
