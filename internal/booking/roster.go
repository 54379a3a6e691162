package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Provider is one fixed roster entry. The roster is immutable for the
// process lifetime.
type Provider struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// DefaultProviders is the roster used when none is configured.
func DefaultProviders() []Provider {
	return []Provider{
		{Name: "Dr. Rohit Raj", Specialization: "General Physician", Phone: "917483667619"},
		{Name: "Dr. Shreyas Nayak", Specialization: "Physiotherapist", Phone: "917483667620"},
	}
}

// ParseProviders decodes a roster from its JSON configuration form.
func ParseProviders(raw string) ([]Provider, error) {
	var providers []Provider
	if err := json.Unmarshal([]byte(raw), &providers); err != nil {
		return nil, fmt.Errorf("booking: parse providers: %w", err)
	}
	if len(providers) == 0 {
		return nil, errors.New("booking: providers list is empty")
	}
	return providers, nil
}

// Roster assigns providers in strict round-robin order. The cursor is global
// and monotonic across the whole process regardless of date or slot.
type Roster struct {
	mu        sync.Mutex
	providers []Provider
	cursor    int
}

// NewRoster creates a roster over a non-empty provider list.
func NewRoster(providers []Provider) (*Roster, error) {
	if len(providers) == 0 {
		return nil, errors.New("booking: roster requires at least one provider")
	}
	return &Roster{providers: providers}, nil
}

// Next returns the provider at the cursor and advances it modulo the roster
// length.
func (r *Roster) Next() Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.providers[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.providers)
	return p
}
