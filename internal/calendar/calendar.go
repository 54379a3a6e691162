// Package calendar mirrors confirmed bookings into a Google Calendar.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/cuure-health/booking-bot/pkg/logging"
)

const (
	eventDuration   = 30 * time.Minute
	defaultTimezone = "Asia/Kolkata"
)

// Client creates appointment events on a single configured calendar.
type Client struct {
	service    *gcal.Service
	calendarID string
	clinicName string
	location   *time.Location
	logger     *logging.Logger
}

// NewClient builds a calendar client authenticated with a service account
// key file.
func NewClient(ctx context.Context, calendarID, credentialsFile, timezone, clinicName string, logger *logging.Logger) (*Client, error) {
	if strings.TrimSpace(calendarID) == "" {
		return nil, errors.New("calendar: calendar id is required")
	}
	if strings.TrimSpace(credentialsFile) == "" {
		return nil, errors.New("calendar: credentials file is required")
	}
	if timezone == "" {
		timezone = defaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar: load timezone %s: %w", timezone, err)
	}
	if logger == nil {
		logger = logging.Default()
	}

	service, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}

	return &Client{
		service:    service,
		calendarID: calendarID,
		clinicName: clinicName,
		location:   loc,
		logger:     logger,
	}, nil
}

// CreateEvent inserts a half-hour event for the booked slot.
func (c *Client) CreateEvent(ctx context.Context, date, slotValue, phone string, patientName *string) error {
	event, err := newEvent(c.clinicName, date, slotValue, phone, patientName, c.location)
	if err != nil {
		return err
	}
	if _, err := c.service.Events.Insert(c.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar: insert event for %s %s: %w", date, slotValue, err)
	}
	c.logger.Info("calendar event created", "date", date, "slot", slotValue)
	return nil
}

// eventSpan resolves the slot into concrete start and end instants in the
// calendar's timezone. The end time rolls over hour and day boundaries.
func eventSpan(date, slotValue string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slotValue, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("calendar: parse slot %s %s: %w", date, slotValue, err)
	}
	return start, start.Add(eventDuration), nil
}

func newEvent(clinicName, date, slotValue, phone string, patientName *string, loc *time.Location) (*gcal.Event, error) {
	start, end, err := eventSpan(date, slotValue, loc)
	if err != nil {
		return nil, err
	}
	name := "N/A"
	if patientName != nil && *patientName != "" {
		name = *patientName
	}
	return &gcal.Event{
		Summary:     clinicName + " – Doctor Appointment",
		Description: fmt.Sprintf("Patient WhatsApp: %s\nName: %s", phone, name),
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
	}, nil
}
