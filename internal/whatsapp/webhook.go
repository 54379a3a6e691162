package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// InboundMessage is one user event extracted from a Cloud API webhook: either
// free text or an interactive selection id.
type InboundMessage struct {
	From          string
	Text          string
	InteractiveID string
}

// webhookEnvelope mirrors the Cloud API delivery format.
type webhookEnvelope struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text *struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive *struct {
						Type      string `json:"type"`
						ListReply *struct {
							ID string `json:"id"`
						} `json:"list_reply"`
						ButtonReply *struct {
							ID string `json:"id"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ParseWebhook extracts the first user message from a webhook body. The
// second return reports whether a usable message was present; callers drop
// anything else silently.
func ParseWebhook(body []byte) (InboundMessage, bool) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return InboundMessage{}, false
	}
	if envelope.Object != "whatsapp_business_account" || len(envelope.Entry) == 0 {
		return InboundMessage{}, false
	}
	entry := envelope.Entry[0]
	if len(entry.Changes) == 0 || len(entry.Changes[0].Value.Messages) == 0 {
		return InboundMessage{}, false
	}
	message := entry.Changes[0].Value.Messages[0]
	if message.From == "" {
		return InboundMessage{}, false
	}

	msg := InboundMessage{From: message.From}
	switch message.Type {
	case "text":
		if message.Text == nil {
			return InboundMessage{}, false
		}
		msg.Text = strings.TrimSpace(message.Text.Body)
	case "interactive":
		inter := message.Interactive
		if inter == nil {
			return InboundMessage{}, false
		}
		switch {
		case inter.Type == "list_reply" && inter.ListReply != nil:
			msg.InteractiveID = inter.ListReply.ID
		case inter.Type == "button_reply" && inter.ButtonReply != nil:
			msg.InteractiveID = inter.ButtonReply.ID
		default:
			return InboundMessage{}, false
		}
	default:
		return InboundMessage{}, false
	}
	return msg, true
}

// ValidateSignature checks the X-Hub-Signature-256 header against an
// HMAC-SHA256 of the raw body keyed with the app secret.
func ValidateSignature(appSecret string, body []byte, header string) bool {
	header = strings.TrimSpace(header)
	header = strings.TrimPrefix(header, "sha256=")
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(header)))
}
