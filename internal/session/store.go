// Package session holds per-phone conversation state for the lifetime of the
// process. Sessions are never persisted and never expire.
package session

import (
	"sync"

	"github.com/cuure-health/booking-bot/internal/catalog"
)

// Step is the conversation state a phone number is currently in.
type Step string

const (
	StepStart       Step = "START"
	StepEntryChoice Step = "ENTRY_CHOICE"
	StepAfterCall   Step = "AFTER_CALL"
	StepAskName     Step = "ASK_NAME"
	StepAskAge      Step = "ASK_AGE"
	StepMenu        Step = "MENU"
	StepDaySelect   Step = "DAY_SELECT"
	StepTimeSelect  Step = "TIME_SELECT"
	StepConfirm     Step = "CONFIRM"
)

// Draft accumulates the in-progress, unconfirmed booking answers.
type Draft struct {
	Name string
	Date string
	Slot catalog.Slot
}

// Session is the ephemeral conversation state for one phone number.
type Session struct {
	Step  Step
	Draft Draft
}

// Store maps phone numbers to sessions. Webhook deliveries for different
// phones can interleave, so access is mutex-guarded.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Get returns the session for the phone, creating one at StepStart if none
// exists yet.
func (s *Store) Get(phone string) Session {
	s.mu.RLock()
	sess, ok := s.sessions[phone]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[phone]; ok {
		return sess
	}
	sess = Session{Step: StepStart}
	s.sessions[phone] = sess
	return sess
}

// Set replaces the session for the phone.
func (s *Store) Set(phone string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[phone] = sess
}
