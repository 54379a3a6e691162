// Package schedule maintains the in-memory availability index: a shadow of
// every booked (date, slot value) pair, kept consistent with each write path.
package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuure-health/booking-bot/internal/catalog"
)

// TakenSlot identifies one booked (date, slot value) pair.
type TakenSlot struct {
	Date      string
	SlotValue string
}

// AppointmentSource lists booked slots from the durable store.
type AppointmentSource interface {
	TakenSlots(ctx context.Context) ([]TakenSlot, error)
}

// Index answers availability queries for the slot catalog. It is hydrated
// once at startup and appended to synchronously at booking commit; it is
// never re-derived from the store per query. Consistency is single-process.
type Index struct {
	mu    sync.RWMutex
	taken map[string]map[string]struct{} // date -> slot values
}

// NewIndex creates an empty availability index.
func NewIndex() *Index {
	return &Index{taken: make(map[string]map[string]struct{})}
}

// Hydrate loads every booked slot from the store. Call once at startup
// before serving traffic.
func (i *Index) Hydrate(ctx context.Context, src AppointmentSource) error {
	slots, err := src.TakenSlots(ctx)
	if err != nil {
		return fmt.Errorf("schedule: hydrate index: %w", err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, s := range slots {
		i.markLocked(s.Date, s.SlotValue)
	}
	return nil
}

// Reserve records a booked slot. Commit paths must call this before any
// external I/O so queries in the same process see the booking immediately.
func (i *Index) Reserve(date, slotValue string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.markLocked(date, slotValue)
}

func (i *Index) markLocked(date, slotValue string) {
	set, ok := i.taken[date]
	if !ok {
		set = make(map[string]struct{})
		i.taken[date] = set
	}
	set[slotValue] = struct{}{}
}

// AvailableSlots returns the catalog filtered to slots not yet booked for
// the date, in catalog order.
func (i *Index) AvailableSlots(date string) []catalog.Slot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	set := i.taken[date]
	available := make([]catalog.Slot, 0, len(catalog.Slots))
	for _, s := range catalog.Slots {
		if _, booked := set[s.Value]; booked {
			continue
		}
		available = append(available, s)
	}
	return available
}

// IsAvailable reports whether the slot value is still open for the date.
func (i *Index) IsAvailable(date, slotValue string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	set, ok := i.taken[date]
	if !ok {
		return true
	}
	_, booked := set[slotValue]
	return !booked
}
