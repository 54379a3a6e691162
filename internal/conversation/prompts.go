package conversation

import (
	"fmt"
	"strings"

	"github.com/cuure-health/booking-bot/internal/storage"
)

// Prompts builds every user-facing message. Clinic identity comes from
// configuration so the texts are not hard-wired to one deployment.
type Prompts struct {
	ClinicName   string
	SupportPhone string
	SupportHours string
}

// DefaultPrompts returns prompts for the default clinic identity.
func DefaultPrompts() Prompts {
	return Prompts{
		ClinicName:   "Cuure.health",
		SupportPhone: "08213156014",
		SupportHours: "9:00 AM – 8:00 PM",
	}
}

func (p Prompts) MainMenu() string {
	return "Please choose one of the options below:\n\n" +
		"1️⃣ Book a doctor appointment\n" +
		"2️⃣ View my appointments\n" +
		"3️⃣ Contact support"
}

func (p Prompts) Welcome() string {
	return fmt.Sprintf("Welcome to %s 🩺\n\nHow would you like to proceed?", p.ClinicName)
}

func (p Prompts) CallInfo() string {
	return fmt.Sprintf("📞 Call %s\n\n%s\n\n🕘 %s", p.ClinicName, p.SupportPhone, p.SupportHours)
}

func (p Prompts) ContinueChat() string {
	return "Would you like to continue booking via chat?"
}

func (p Prompts) AskName() string {
	return "Great 👍\n\nTo begin, may I know your full name?"
}

func (p Prompts) AskNameAfterCall() string {
	return "No problem 😊\n\nMay I know your full name?"
}

func (p Prompts) AskAge(name string) string {
	return fmt.Sprintf("Thank you, %s.\n\nPlease enter your age (numbers only).", name)
}

func (p Prompts) InvalidAge() string {
	return "Please enter a valid age using numbers only."
}

func (p Prompts) Registered(name string) string {
	return fmt.Sprintf("Thank you, %s.\n\nYou have been successfully registered.\n\n%s", name, p.MainMenu())
}

func (p Prompts) Unknown() string {
	return "Sorry, I did not understand that.\n\n" + p.MainMenu()
}

func (p Prompts) MenuError() string {
	return "Sorry, I did not understand that.\n\nPlease choose one of the available options:\n\n" + p.MainMenu()
}

func (p Prompts) Support() string {
	return fmt.Sprintf("%s Support 🩺\n\n"+
		"For any help with appointments or other queries, you may contact us at:\n\n"+
		"📞 Helpline: %s\n"+
		"🕒 Support hours: %s\n\n"+
		"You can also continue to manage appointments here.\n"+
		"Type *MENU* at any time to view the options again.",
		p.ClinicName, p.SupportPhone, p.SupportHours)
}

func (p Prompts) SelectDateHeader() string {
	return "Select Appointment Date"
}

func (p Prompts) SelectDateBody() string {
	return "Please choose a preferred date for your appointment:"
}

func (p Prompts) SelectTimeBody() string {
	return "Please select a suitable time slot for your appointment:"
}

func (p Prompts) FullyBooked() string {
	return "All time slots for this day are currently booked.\n\nPlease select another date from the list."
}

func (p Prompts) SlotUnavailable() string {
	return "The selected time slot is not available. Please try again."
}

func (p Prompts) Review(date, slotLabel string) string {
	return fmt.Sprintf("Please review your appointment details:\n\n"+
		"📅 Date: %s\n⏰ Time: %s\n\n"+
		"Reply *YES* to confirm the appointment or *NO* to cancel.", date, slotLabel)
}

func (p Prompts) ConfirmRepeat() string {
	return "Please reply with YES to confirm the appointment or *NO* to cancel."
}

func (p Prompts) Cancelled() string {
	return "Your appointment request has been cancelled.\n\n" +
		"You may book a new appointment whenever you are ready.\n\n" + p.MainMenu()
}

func (p Prompts) Confirmed(date, slotLabel, providerName, providerSpecialization string) string {
	return fmt.Sprintf("✅ Appointment Confirmed\n\n"+
		"📅 Date: %s\n⏰ Time: %s\n\n"+
		"👨‍⚕️ Doctor Assigned:\n%s\nSpecialization: %s\n\n%s",
		date, slotLabel, providerName, providerSpecialization, p.MainMenu())
}

func (p Prompts) NoAppointments() string {
	return "You do not have any appointments scheduled at the moment.\n\n" +
		"You may book a new appointment using the *Book a doctor appointment* option.\n\n" +
		p.MainMenu()
}

func (p Prompts) AppointmentList(appts []storage.UserAppointment) string {
	lines := make([]string, 0, len(appts))
	for i, a := range appts {
		name := "Not specified"
		if a.PatientName != nil && *a.PatientName != "" {
			name = *a.PatientName
		}
		lines = append(lines, fmt.Sprintf("%d. %s at %s (%s)", i+1, a.Date, a.SlotLabel, name))
	}
	return "Here are your upcoming appointments:\n\n" +
		strings.Join(lines, "\n") + "\n\n" + p.MainMenu()
}
