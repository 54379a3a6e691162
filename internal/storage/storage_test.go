package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("917000000001", "Asha", 29).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewUserRepository(mock)
	err = repo.Upsert(context.Background(), "917000000001", "Asha", 29)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUserError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("917000000001", "Asha", 29).
		WillReturnError(errors.New("connection refused"))

	repo := NewUserRepository(mock)
	err = repo.Upsert(context.Background(), "917000000001", "Asha", 29)
	assert.ErrorContains(t, err, "upsert user")
}

func TestAllUsers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"phone", "name", "age"}).
		AddRow("917000000001", "Asha", 29).
		AddRow("917000000002", "Ravi", 41)
	mock.ExpectQuery("SELECT phone, name, age FROM users").WillReturnRows(rows)

	repo := NewUserRepository(mock)
	users, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Asha", users[0].Name)
	assert.Equal(t, 41, users[1].Age)
}

func TestInsertAppointment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	name := "Asha"
	appt := &Appointment{
		ID:                     uuid.New(),
		Phone:                  "917000000001",
		PatientName:            &name,
		Date:                   "2024-06-10",
		SlotLabel:              "4:00 PM – 4:30 PM",
		SlotValue:              "16:00",
		ProviderName:           "Dr. Rohit Raj",
		ProviderSpecialization: "General Physician",
		CreatedAt:              time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(appt.ID, appt.Phone, appt.PatientName, appt.Date, appt.SlotLabel,
			appt.SlotValue, appt.ProviderName, appt.ProviderSpecialization, appt.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewAppointmentRepository(mock)
	require.NoError(t, repo.Insert(context.Background(), appt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	name := "Asha"
	rows := pgxmock.NewRows([]string{"date", "slot_label", "patient_name"}).
		AddRow("2024-06-10", "4:00 PM – 4:30 PM", &name).
		AddRow("2024-06-11", "5:00 PM – 5:30 PM", (*string)(nil))
	mock.ExpectQuery("SELECT date, slot_label, patient_name").
		WithArgs("917000000001").
		WillReturnRows(rows)

	repo := NewAppointmentRepository(mock)
	appts, err := repo.ListByPhone(context.Background(), "917000000001")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, "2024-06-10", appts[0].Date)
	require.NotNil(t, appts[0].PatientName)
	assert.Equal(t, "Asha", *appts[0].PatientName)
	assert.Nil(t, appts[1].PatientName)
}

func TestTakenSlots(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"date", "slot_value"}).
		AddRow("2024-06-10", "16:00").
		AddRow("2024-06-10", "17:30")
	mock.ExpectQuery("SELECT date, slot_value FROM appointments").WillReturnRows(rows)

	repo := NewAppointmentRepository(mock)
	taken, err := repo.TakenSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, taken, 2)
	assert.Equal(t, "16:00", taken[0].SlotValue)
}

func TestTakenSlotsQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT date, slot_value FROM appointments").
		WillReturnError(errors.New("relation missing"))

	repo := NewAppointmentRepository(mock)
	_, err = repo.TakenSlots(context.Background())
	assert.ErrorContains(t, err, "taken slots")
}
