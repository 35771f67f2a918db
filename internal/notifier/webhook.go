package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/velocityrides/template-store/internal/service"
	"github.com/velocityrides/template-store/pkg/logger"
)

const (
	colorPurchase = 3447003  // blue
	colorReport   = 15158332 // red

	defaultTimeout = 10 * time.Second
)

// WebhookNotifier posts Discord-style embed messages to a configured
// webhook URL. Calls are bounded by the client timeout so a dead endpoint
// fails the request instead of hanging it.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

type Option func(*WebhookNotifier)

func WithTimeout(d time.Duration) Option {
	return func(n *WebhookNotifier) {
		if d > 0 {
			n.client.Timeout = d
		}
	}
}

func NewWebhookNotifier(url string, log *logger.Logger, opts ...Option) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
		logger: log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type webhookMessage struct {
	Content string  `json:"content"`
	Embeds  []embed `json:"embeds"`
}

type embed struct {
	Title     string          `json:"title"`
	Color     int             `json:"color"`
	Fields    []embedField    `json:"fields"`
	Timestamp string          `json:"timestamp"`
	Footer    embedFooter     `json:"footer"`
	Thumbnail *embedThumbnail `json:"thumbnail,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

func (n *WebhookNotifier) NotifyPurchase(ctx context.Context, notice service.PurchaseNotice) error {
	fields := []embedField{
		{Name: "Username", Value: notice.Username, Inline: true},
		{Name: "Product ID", Value: notice.TemplateID, Inline: true},
		{Name: "Contact Information", Value: notice.Contact},
		{Name: "Product", Value: notice.Title},
		{Name: "Price", Value: fmt.Sprintf("$%.0f", notice.Price), Inline: true},
		{Name: "Gamepass", Value: notice.Gamepass, Inline: true},
	}
	if notice.PickupDate != "" {
		fields = append(fields, embedField{Name: "Pickup Date", Value: notice.PickupDate})
	}

	msg := webhookMessage{
		Content: fmt.Sprintf("New purchase request from %s", notice.Username),
		Embeds: []embed{{
			Title:     "New Purchase Request - Velocity Rides",
			Color:     colorPurchase,
			Fields:    fields,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Footer:    embedFooter{Text: "Velocity Rides Dashboard"},
			Thumbnail: thumbnail(notice.Image),
		}},
	}

	return n.send(ctx, msg)
}

func (n *WebhookNotifier) NotifyReport(ctx context.Context, notice service.ReportNotice) error {
	msg := webhookMessage{
		Content: fmt.Sprintf("New issue report from %s", notice.Username),
		Embeds: []embed{{
			Title: "Template Issue Report - Velocity Rides",
			Color: colorReport,
			Fields: []embedField{
				{Name: "Reported by", Value: notice.Username, Inline: true},
				{Name: "Template ID", Value: notice.TemplateID, Inline: true},
				{Name: "Template", Value: notice.Title},
				{Name: "Issue Description", Value: notice.Issue},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Footer:    embedFooter{Text: "Velocity Rides Dashboard - Issue Report"},
			Thumbnail: thumbnail(notice.Image),
		}},
	}

	return n.send(ctx, msg)
}

func (n *WebhookNotifier) send(ctx context.Context, msg webhookMessage) error {
	if n.url == "" {
		return fmt.Errorf("webhook url is not configured")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the log; webhook APIs return a
		// JSON error description.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if n.logger != nil {
			n.logger.Warn("webhook delivery rejected", "status", resp.StatusCode, "body", string(detail))
		}
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	return nil
}

func thumbnail(imageURL string) *embedThumbnail {
	if imageURL == "" {
		return nil
	}
	return &embedThumbnail{URL: imageURL}
}
