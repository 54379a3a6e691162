// Package catalog defines the fixed set of bookable time slots and the
// rolling window of bookable dates.
package catalog

import "time"

// Slot is a bookable half-hour block. Label is shown to patients, Value is
// the canonical 24h start time used for storage and comparison.
type Slot struct {
	Label string
	Value string
}

// Day is one bookable date rendered for a selection list.
type Day struct {
	Key   string // YYYY-MM-DD
	Title string // e.g. "Mon, 02-06"
}

// DefaultDaysToShow is how far ahead patients can book.
const DefaultDaysToShow = 7

// Slots is the fixed ordered catalog of bookable time slots.
var Slots = []Slot{
	{Label: "4:00 PM – 4:30 PM", Value: "16:00"},
	{Label: "4:30 PM – 5:00 PM", Value: "16:30"},
	{Label: "5:00 PM – 5:30 PM", Value: "17:00"},
	{Label: "5:30 PM – 6:00 PM", Value: "17:30"},
}

// SlotByValue looks up a catalog slot by its canonical value.
func SlotByValue(value string) (Slot, bool) {
	for _, s := range Slots {
		if s.Value == value {
			return s, true
		}
	}
	return Slot{}, false
}

// UpcomingDays returns the next n calendar days starting at now.
// time.AddDate handles month and year rollover.
func UpcomingDays(now time.Time, n int) []Day {
	if n <= 0 {
		n = DefaultDaysToShow
	}
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		d := now.AddDate(0, 0, i)
		days = append(days, Day{
			Key:   d.Format("2006-01-02"),
			Title: d.Format("Mon, 02-01"),
		})
	}
	return days
}
