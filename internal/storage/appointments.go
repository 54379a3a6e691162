package storage

import (
	"context"
	"fmt"

	"github.com/cuure-health/booking-bot/internal/schedule"
)

// AppointmentRepository persists confirmed bookings.
type AppointmentRepository struct {
	db DB
}

// NewAppointmentRepository creates an appointment repository.
func NewAppointmentRepository(db DB) *AppointmentRepository {
	if db == nil {
		panic("storage: db required")
	}
	return &AppointmentRepository{db: db}
}

// Insert writes a confirmed booking row. Rows are never mutated afterwards.
func (r *AppointmentRepository) Insert(ctx context.Context, appt *Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (
			id, phone, patient_name, date, slot_label, slot_value,
			provider_name, provider_specialization, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		appt.ID, appt.Phone, appt.PatientName, appt.Date, appt.SlotLabel,
		appt.SlotValue, appt.ProviderName, appt.ProviderSpecialization, appt.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage: insert appointment: %w", err)
	}
	return nil
}

// ListByPhone returns the patient's bookings ordered by date then slot start.
func (r *AppointmentRepository) ListByPhone(ctx context.Context, phone string) ([]UserAppointment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT date, slot_label, patient_name
		FROM appointments
		WHERE phone = $1
		ORDER BY date, slot_value`,
		phone)
	if err != nil {
		return nil, fmt.Errorf("storage: list appointments by phone: %w", err)
	}
	defer rows.Close()

	var appts []UserAppointment
	for rows.Next() {
		var a UserAppointment
		if err := rows.Scan(&a.Date, &a.SlotLabel, &a.PatientName); err != nil {
			return nil, fmt.Errorf("storage: scan appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate appointments: %w", err)
	}
	return appts, nil
}

// TakenSlots lists every booked (date, slot value) pair. It implements
// schedule.AppointmentSource for index hydration at startup.
func (r *AppointmentRepository) TakenSlots(ctx context.Context) ([]schedule.TakenSlot, error) {
	rows, err := r.db.Query(ctx, `SELECT date, slot_value FROM appointments`)
	if err != nil {
		return nil, fmt.Errorf("storage: list taken slots: %w", err)
	}
	defer rows.Close()

	var taken []schedule.TakenSlot
	for rows.Next() {
		var t schedule.TakenSlot
		if err := rows.Scan(&t.Date, &t.SlotValue); err != nil {
			return nil, fmt.Errorf("storage: scan taken slot: %w", err)
		}
		taken = append(taken, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate taken slots: %w", err)
	}
	return taken, nil
}
