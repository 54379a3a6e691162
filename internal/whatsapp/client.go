// Package whatsapp wraps the WhatsApp Cloud API endpoints the bot needs:
// sending text, button, and list messages, and parsing inbound webhooks.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"
)

const (
	defaultBaseURL   = "https://graph.facebook.com/v20.0"
	defaultUserAgent = "cuure-booking-bot/0.1"
)

// Config controls how the Cloud API client behaves.
type Config struct {
	BaseURL       string
	Token         string
	PhoneNumberID string
	Timeout       time.Duration
	HTTPClient    *http.Client
	Logger        *slog.Logger
	UserAgent     string
}

// Client sends outbound messages through the Cloud API. Sends are best
// effort: failures are returned to the caller and never retried.
type Client struct {
	token         string
	baseURL       string
	phoneNumberID string
	httpClient    *http.Client
	logger        *slog.Logger
	userAgent     string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("whatsapp: access token is required")
	}
	if strings.TrimSpace(cfg.PhoneNumberID) == "" {
		return nil, errors.New("whatsapp: phone number id is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		token:         cfg.Token,
		baseURL:       baseURL,
		phoneNumberID: cfg.PhoneNumberID,
		httpClient:    httpClient,
		logger:        logger,
		userAgent:     userAgent,
	}, nil
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	payload := textMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	}
	return c.send(ctx, payload)
}

// SendButtons delivers an interactive reply-button prompt.
func (c *Client) SendButtons(ctx context.Context, to, body string, buttons []Button) error {
	actions := make([]buttonAction, 0, len(buttons))
	for _, b := range buttons {
		actions = append(actions, buttonAction{
			Type:  "reply",
			Reply: buttonReply{ID: b.ID, Title: b.Title},
		})
	}
	payload := interactiveMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: interactivePayload{
			Type:   "button",
			Body:   &bodyText{Text: body},
			Action: &interactiveAction{Buttons: actions},
		},
	}
	return c.send(ctx, payload)
}

// SendList delivers an interactive list prompt with a single section.
func (c *Client) SendList(ctx context.Context, to string, prompt ListPrompt) error {
	rows := make([]listRow, 0, len(prompt.Rows))
	for _, r := range prompt.Rows {
		rows = append(rows, listRow{ID: r.ID, Title: r.Title})
	}
	payload := interactiveMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: interactivePayload{
			Type:   "list",
			Header: &listHeader{Type: "text", Text: prompt.Header},
			Body:   &bodyText{Text: prompt.Body},
			Footer: &bodyText{Text: prompt.Footer},
			Action: &interactiveAction{
				Button:   prompt.Button,
				Sections: []listSection{{Title: "Options", Rows: rows}},
			},
		},
	}
	return c.send(ctx, payload)
}

func (c *Client) send(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: marshal payload: %w", err)
	}
	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("whatsapp send rejected", "status", resp.StatusCode, "body", string(detail))
		return fmt.Errorf("whatsapp: send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}
