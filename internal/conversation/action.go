package conversation

import (
	"github.com/cuure-health/booking-bot/internal/catalog"
	"github.com/cuure-health/booking-bot/internal/whatsapp"
)

// Action is one outbound effect computed by a transition. The engine
// executes actions in order; the machine itself performs no I/O.
type Action interface {
	isAction()
}

// SendText replies with a plain text message.
type SendText struct {
	Body string
}

// SendButtons replies with a reply-button prompt.
type SendButtons struct {
	Body    string
	Buttons []whatsapp.Button
}

// SendList replies with an interactive list prompt.
type SendList struct {
	Prompt whatsapp.ListPrompt
}

// RegisterUser upserts the user record completed during onboarding.
type RegisterUser struct {
	Name string
	Age  int
}

// CommitBooking confirms the drafted booking and replies with the
// assignment details.
type CommitBooking struct {
	Date string
	Slot catalog.Slot
}

// ListBookings replies with the user's scheduled appointments.
type ListBookings struct{}

func (SendText) isAction()      {}
func (SendButtons) isAction()   {}
func (SendList) isAction()      {}
func (RegisterUser) isAction()  {}
func (CommitBooking) isAction() {}
func (ListBookings) isAction()  {}
