package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts alert messages to a Discord webhook. A client with an
// empty webhook URL is valid and silently drops every message, so
// callers never need to gate on configuration.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

type WebhookMessage struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       int       `json:"color"`
	Timestamp   time.Time `json:"timestamp"`
	Fields      []Field   `json:"fields,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SendMessage(msg WebhookMessage) error {
	if c.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook message: %w", err)
	}

	req, err := http.NewRequest("POST", c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed with status: %d", resp.StatusCode)
	}

	return nil
}

// SendCalculationAlert reports an aborted itinerary calculation
func (c *Client) SendCalculationAlert(reason string, legs int, err error) error {
	embed := Embed{
		Title:       "Itinerary calculation aborted",
		Description: reason,
		Color:       0xFF0000,
		Timestamp:   time.Now(),
		Fields: []Field{
			{Name: "legs", Value: fmt.Sprintf("%d", legs), Inline: true},
		},
	}
	if err != nil {
		embed.Fields = append(embed.Fields, Field{
			Name:   "error",
			Value:  err.Error(),
			Inline: false,
		})
	}

	return c.SendMessage(WebhookMessage{Embeds: []Embed{embed}})
}
