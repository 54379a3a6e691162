package storage

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered patient, keyed by phone number.
type User struct {
	Phone     string
	Name      string
	Age       int
	CreatedAt time.Time
}

// Appointment is a confirmed booking. Provider fields are a snapshot taken at
// commit time; reassigning the roster later never changes past rows.
type Appointment struct {
	ID                     uuid.UUID
	Phone                  string
	PatientName            *string
	Date                   string // YYYY-MM-DD
	SlotLabel              string
	SlotValue              string
	ProviderName           string
	ProviderSpecialization string
	CreatedAt              time.Time
}

// UserAppointment is the per-patient listing projection shown in chat.
type UserAppointment struct {
	Date        string
	SlotLabel   string
	PatientName *string
}
