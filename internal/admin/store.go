// Package admin serves the clinic dashboard: the appointment listing API,
// spreadsheet export, and the static UI.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StatusBooked is the only lifecycle state an appointment can be in; there
// is no cancellation flow.
const StatusBooked = "Booked"

// AppointmentRecord is one row of the dashboard listing.
type AppointmentRecord struct {
	ID                   string `json:"id"`
	PatientName          string `json:"patient_name"`
	Phone                string `json:"phone"`
	Date                 string `json:"date"`
	TimeLabel            string `json:"time_label"`
	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization"`
	Status               string `json:"status"`
}

// ExportRow is one row of the spreadsheet export.
type ExportRow struct {
	ID          string
	Phone       string
	PatientName string
	Date        string
	TimeLabel   string
	TimeValue   string
	BookedAt    string
}

// Store reads appointments for the dashboard.
type Store struct {
	db *sql.DB
}

// NewStore wraps a database handle.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		panic("admin: database handle required")
	}
	return &Store{db: db}
}

// List returns every appointment, newest first.
func (s *Store) List(ctx context.Context) ([]AppointmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_name, phone, date, slot_label, provider_name, provider_specialization
		FROM appointments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("admin: list appointments: %w", err)
	}
	defer rows.Close()

	records := []AppointmentRecord{}
	for rows.Next() {
		var rec AppointmentRecord
		var patientName sql.NullString
		if err := rows.Scan(&rec.ID, &patientName, &rec.Phone, &rec.Date,
			&rec.TimeLabel, &rec.DoctorName, &rec.DoctorSpecialization); err != nil {
			return nil, fmt.Errorf("admin: scan appointment: %w", err)
		}
		rec.PatientName = patientName.String
		rec.Status = StatusBooked
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin: list appointments: %w", err)
	}
	return records, nil
}

// ExportRows returns every appointment in calendar order for the export.
func (s *Store) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, phone, patient_name, date, slot_label, slot_value, created_at
		FROM appointments
		ORDER BY date, slot_value
	`)
	if err != nil {
		return nil, fmt.Errorf("admin: export appointments: %w", err)
	}
	defer rows.Close()

	records := []ExportRow{}
	for rows.Next() {
		var rec ExportRow
		var patientName sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&rec.ID, &rec.Phone, &patientName, &rec.Date,
			&rec.TimeLabel, &rec.TimeValue, &createdAt); err != nil {
			return nil, fmt.Errorf("admin: scan export row: %w", err)
		}
		rec.PatientName = patientName.String
		rec.BookedAt = createdAt.UTC().Format(time.RFC3339)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin: export appointments: %w", err)
	}
	return records, nil
}
