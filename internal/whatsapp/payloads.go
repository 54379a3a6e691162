package whatsapp

// Button is one reply button shown to the user.
type Button struct {
	ID    string
	Title string
}

// Row is one selectable row of a list prompt.
type Row struct {
	ID    string
	Title string
}

// ListPrompt is an interactive list message.
type ListPrompt struct {
	Header string
	Body   string
	Footer string
	Button string
	Rows   []Row
}

type textBody struct {
	Body string `json:"body"`
}

// bodyText is the {"text": ...} wrapper interactive bodies and footers use.
type bodyText struct {
	Text string `json:"text"`
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type buttonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type buttonAction struct {
	Type  string      `json:"type"`
	Reply buttonReply `json:"reply"`
}

type listHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type listRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type listSection struct {
	Title string    `json:"title"`
	Rows  []listRow `json:"rows"`
}

type interactiveAction struct {
	Button   string         `json:"button,omitempty"`
	Buttons  []buttonAction `json:"buttons,omitempty"`
	Sections []listSection  `json:"sections,omitempty"`
}

type interactivePayload struct {
	Type   string             `json:"type"`
	Header *listHeader        `json:"header,omitempty"`
	Body   *bodyText          `json:"body,omitempty"`
	Footer *bodyText          `json:"footer,omitempty"`
	Action *interactiveAction `json:"action,omitempty"`
}

type interactiveMessage struct {
	MessagingProduct string             `json:"messaging_product"`
	To               string             `json:"to"`
	Type             string             `json:"type"`
	Interactive      interactivePayload `json:"interactive"`
}
