package conversation

import (
	"strconv"
	"strings"
	"time"

	"github.com/cuure-health/booking-bot/internal/catalog"
	"github.com/cuure-health/booking-bot/internal/session"
	"github.com/cuure-health/booking-bot/internal/whatsapp"
)

// Availability is the read-only view of booked slots the machine consults.
type Availability interface {
	AvailableSlots(date string) []catalog.Slot
	IsAvailable(date, slotValue string) bool
}

// Machine is the conversation transition function. Given the same session
// and event it always produces the same result; the only external state it
// reads is the availability view and the injected clock.
type Machine struct {
	avail      Availability
	prompts    Prompts
	daysToShow int
	now        func() time.Time
}

// NewMachine creates a transition machine. now defaults to time.Now.
func NewMachine(avail Availability, prompts Prompts, daysToShow int, now func() time.Time) *Machine {
	if avail == nil {
		panic("conversation: availability view required")
	}
	if daysToShow <= 0 {
		daysToShow = catalog.DefaultDaysToShow
	}
	if now == nil {
		now = time.Now
	}
	return &Machine{avail: avail, prompts: prompts, daysToShow: daysToShow, now: now}
}

// Transition computes the next session state and the outbound actions for
// one inbound event.
func (m *Machine) Transition(sess session.Session, registered bool, ev Event) (session.Session, []Action) {
	if !registered {
		return m.onboard(sess, ev)
	}
	return m.serve(sess, ev)
}

// onboard is the fixed sub-flow for users without a registration:
// START -> ENTRY_CHOICE -> {AFTER_CALL | ASK_NAME} -> ASK_AGE -> MENU.
func (m *Machine) onboard(sess session.Session, ev Event) (session.Session, []Action) {
	switch sess.Step {
	case session.StepStart:
		sess.Step = session.StepEntryChoice
		return sess, []Action{SendButtons{Body: m.prompts.Welcome(), Buttons: entryButtons()}}

	case session.StepEntryChoice:
		switch ev.SelectionID {
		case SelectionCallNow:
			sess.Step = session.StepAfterCall
			return sess, []Action{
				SendText{Body: m.prompts.CallInfo()},
				SendButtons{Body: m.prompts.ContinueChat(), Buttons: continueChatButton()},
			}
		case SelectionChatContinue:
			sess.Step = session.StepAskName
			return sess, []Action{SendText{Body: m.prompts.AskName()}}
		}
		// Free text while waiting for a button is ignored.
		return sess, nil

	case session.StepAfterCall:
		if ev.SelectionID == SelectionChatContinue {
			sess.Step = session.StepAskName
			return sess, []Action{SendText{Body: m.prompts.AskNameAfterCall()}}
		}
		return sess, nil

	case session.StepAskName:
		sess.Draft.Name = ev.Text
		sess.Step = session.StepAskAge
		return sess, []Action{SendText{Body: m.prompts.AskAge(ev.Text)}}

	case session.StepAskAge:
		age, err := strconv.Atoi(strings.TrimSpace(ev.Text))
		if err != nil || age <= 0 {
			return sess, []Action{SendText{Body: m.prompts.InvalidAge()}}
		}
		name := sess.Draft.Name
		sess.Step = session.StepMenu
		sess.Draft = session.Draft{}
		return sess, []Action{
			RegisterUser{Name: name, Age: age},
			SendText{Body: m.prompts.Registered(name)},
		}

	default:
		// A session in a registered-only step without a registration record
		// restarts onboarding.
		sess.Step = session.StepEntryChoice
		return sess, []Action{SendButtons{Body: m.prompts.Welcome(), Buttons: entryButtons()}}
	}
}

// serve handles events for registered users.
func (m *Machine) serve(sess session.Session, ev Event) (session.Session, []Action) {
	lower := strings.ToLower(strings.TrimSpace(ev.Text))

	// Casual acknowledgements are swallowed from any state.
	if ev.SelectionID == "" && isFiller(ev.Text) {
		return sess, nil
	}

	// "menu" jumps to the menu from any state.
	if lower == "menu" {
		sess.Step = session.StepMenu
		return sess, []Action{SendText{Body: m.prompts.MainMenu()}}
	}

	switch sess.Step {
	case session.StepStart, session.StepMenu:
		return m.menu(sess, ev)

	case session.StepDaySelect:
		date, ok := ev.DateKey()
		if !ok {
			return m.fallback(sess)
		}
		slots := m.avail.AvailableSlots(date)
		if len(slots) == 0 {
			return sess, []Action{
				SendText{Body: m.prompts.FullyBooked()},
				m.dateList(),
			}
		}
		sess.Draft.Date = date
		sess.Step = session.StepTimeSelect
		return sess, []Action{m.timeList(date, slots)}

	case session.StepTimeSelect:
		value, ok := ev.SlotValue()
		if !ok || sess.Draft.Date == "" {
			return m.fallback(sess)
		}
		slot, found := catalog.SlotByValue(value)
		if !found || !m.avail.IsAvailable(sess.Draft.Date, value) {
			return sess, []Action{
				SendText{Body: m.prompts.SlotUnavailable()},
				m.timeList(sess.Draft.Date, m.avail.AvailableSlots(sess.Draft.Date)),
			}
		}
		sess.Draft.Slot = slot
		sess.Step = session.StepConfirm
		return sess, []Action{SendText{Body: m.prompts.Review(sess.Draft.Date, slot.Label)}}

	case session.StepConfirm:
		switch lower {
		case "yes":
			date, slot := sess.Draft.Date, sess.Draft.Slot
			sess.Step = session.StepMenu
			sess.Draft = session.Draft{}
			return sess, []Action{CommitBooking{Date: date, Slot: slot}}
		case "no":
			sess.Step = session.StepMenu
			sess.Draft = session.Draft{}
			return sess, []Action{SendText{Body: m.prompts.Cancelled()}}
		default:
			return sess, []Action{SendText{Body: m.prompts.ConfirmRepeat()}}
		}

	default:
		return m.fallback(sess)
	}
}

// menu handles the steady-state numeric options.
func (m *Machine) menu(sess session.Session, ev Event) (session.Session, []Action) {
	sess.Step = session.StepMenu
	switch ev.Text {
	case "1":
		sess.Step = session.StepDaySelect
		return sess, []Action{m.dateList()}
	case "2":
		return sess, []Action{ListBookings{}}
	case "3":
		return sess, []Action{SendText{Body: m.prompts.Support()}}
	default:
		return sess, []Action{SendText{Body: m.prompts.MenuError()}}
	}
}

// fallback is the universal catch-all: any event outside the active state's
// accepted set resets to the menu. Evaluated after every other rule.
func (m *Machine) fallback(sess session.Session) (session.Session, []Action) {
	sess.Step = session.StepMenu
	return sess, []Action{SendText{Body: m.prompts.Unknown()}}
}

func (m *Machine) dateList() SendList {
	days := catalog.UpcomingDays(m.now(), m.daysToShow)
	rows := make([]whatsapp.Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, whatsapp.Row{ID: datePrefix + d.Key, Title: d.Title})
	}
	return SendList{Prompt: whatsapp.ListPrompt{
		Header: m.prompts.SelectDateHeader(),
		Body:   m.prompts.SelectDateBody(),
		Footer: m.prompts.ClinicName,
		Button: "Select date",
		Rows:   rows,
	}}
}

func (m *Machine) timeList(date string, slots []catalog.Slot) SendList {
	rows := make([]whatsapp.Row, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, whatsapp.Row{ID: timePrefix + s.Value, Title: s.Label})
	}
	return SendList{Prompt: whatsapp.ListPrompt{
		Header: "Date: " + date,
		Body:   m.prompts.SelectTimeBody(),
		Footer: m.prompts.ClinicName,
		Button: "Select time",
		Rows:   rows,
	}}
}

func entryButtons() []whatsapp.Button {
	return []whatsapp.Button{
		{ID: SelectionCallNow, Title: "📞 Call Now"},
		{ID: SelectionChatContinue, Title: "💬 Continue in Chat"},
	}
}

func continueChatButton() []whatsapp.Button {
	return []whatsapp.Button{
		{ID: SelectionChatContinue, Title: "💬 Continue in Chat"},
	}
}
