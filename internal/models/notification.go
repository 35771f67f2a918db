package models

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

// Notification is a per-user feed entry. Entries expire 24h after creation
// and are pruned lazily whenever the feed is read.
type Notification struct {
	ID         string           `gorm:"primaryKey" json:"id"`
	Username   string           `gorm:"not null;index" json:"username"`
	Kind       NotificationKind `gorm:"type:varchar(16);not null" json:"kind"`
	Title      string           `gorm:"not null" json:"title"`
	Message    string           `json:"message"`
	TemplateID *string          `json:"template_id,omitempty"`
	CreatedAt  int64            `gorm:"not null" json:"created_at"` // epoch millis
	Read       bool             `gorm:"not null;default:false" json:"read"`
}
