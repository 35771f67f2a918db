package service

import "context"

// PurchaseNotice is the payload handed to the outbound notifier when a user
// submits a purchase request.
type PurchaseNotice struct {
	Username   string
	TemplateID string
	Title      string
	Price      float64
	Gamepass   string
	Image      string
	Contact    string
	PickupDate string // human-readable, empty when no date was captured
}

// ReportNotice is the payload for a template issue report.
type ReportNotice struct {
	Username   string
	TemplateID string
	Title      string
	Image      string
	Issue      string
}

// Notifier delivers human-readable event messages to an external system
// (chat webhook class). Delivery failure is recoverable: callers reject the
// user-facing operation and leave local state unchanged.
type Notifier interface {
	NotifyPurchase(ctx context.Context, notice PurchaseNotice) error
	NotifyReport(ctx context.Context, notice ReportNotice) error
}
