package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
)

func textWebhook(from, body string) []byte {
	return []byte(fmt.Sprintf(`{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"from": %q, "type": "text", "text": {"body": %q}}
		]}}]}]
	}`, from, body))
}

func TestParseWebhookText(t *testing.T) {
	msg, ok := ParseWebhook(textWebhook("917000000001", "  hello  "))
	if !ok {
		t.Fatal("expected message to parse")
	}
	if msg.From != "917000000001" {
		t.Fatalf("unexpected sender %s", msg.From)
	}
	if msg.Text != "hello" {
		t.Fatalf("expected trimmed text, got %q", msg.Text)
	}
	if msg.InteractiveID != "" {
		t.Fatalf("unexpected interactive id %s", msg.InteractiveID)
	}
}

func TestParseWebhookListReply(t *testing.T) {
	body := []byte(`{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"from": "917000000001", "type": "interactive",
			 "interactive": {"type": "list_reply", "list_reply": {"id": "date_2024-06-10", "title": "Mon, 10-06"}}}
		]}}]}]
	}`)
	msg, ok := ParseWebhook(body)
	if !ok {
		t.Fatal("expected message to parse")
	}
	if msg.InteractiveID != "date_2024-06-10" {
		t.Fatalf("unexpected interactive id %s", msg.InteractiveID)
	}
}

func TestParseWebhookButtonReply(t *testing.T) {
	body := []byte(`{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"from": "917000000001", "type": "interactive",
			 "interactive": {"type": "button_reply", "button_reply": {"id": "CHAT_CONTINUE", "title": "Continue"}}}
		]}}]}]
	}`)
	msg, ok := ParseWebhook(body)
	if !ok {
		t.Fatal("expected message to parse")
	}
	if msg.InteractiveID != "CHAT_CONTINUE" {
		t.Fatalf("unexpected interactive id %s", msg.InteractiveID)
	}
}

func TestParseWebhookDropsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"not json":        []byte("{"),
		"wrong object":    []byte(`{"object": "page", "entry": []}`),
		"no entries":      []byte(`{"object": "whatsapp_business_account", "entry": []}`),
		"no messages":     []byte(`{"object": "whatsapp_business_account", "entry": [{"changes": [{"value": {"messages": []}}]}]}`),
		"missing from":    textWebhook("", "hi"),
		"status delivery": []byte(`{"object": "whatsapp_business_account", "entry": [{"changes": [{"value": {"statuses": [{"id": "wamid.1"}]}}]}]}`),
		"unknown type": []byte(`{
			"object": "whatsapp_business_account",
			"entry": [{"changes": [{"value": {"messages": [
				{"from": "917000000001", "type": "image"}
			]}}]}]
		}`),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, ok := ParseWebhook(body); ok {
				t.Fatal("expected payload to be dropped")
			}
		})
	}
}

func TestValidateSignature(t *testing.T) {
	secret := "app-secret"
	body := []byte(`{"object":"whatsapp_business_account"}`)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	if !ValidateSignature(secret, body, sig) {
		t.Fatal("expected valid signature to pass")
	}
	if ValidateSignature(secret, body, "sha256=deadbeef") {
		t.Fatal("expected forged signature to fail")
	}
	if ValidateSignature(secret, body, "") {
		t.Fatal("expected missing signature to fail")
	}
	if ValidateSignature("other-secret", body, sig) {
		t.Fatal("expected wrong secret to fail")
	}
}
