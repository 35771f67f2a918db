package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList is stored as a JSON-encoded text column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TagList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list type %T", value)
	}
}

type Template struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Gamepass    string    `json:"gamepass"`
	Image       string    `json:"image"`
	Purchased   bool      `gorm:"not null;default:false" json:"purchased"`
	Buyer       *string   `json:"buyer,omitempty"`
	Tags        TagList   `gorm:"type:text" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TemplateState is the per-(template, user) view state. Exactly one state
// holds for any pair: purchased templates are either owned or sold to
// someone else, unpurchased ones are pending, wishlisted or available.
type TemplateState string

const (
	StateAvailable   TemplateState = "available"
	StateWishlisted  TemplateState = "wishlisted"
	StatePending     TemplateState = "pending"
	StateOwned       TemplateState = "owned"
	StateSoldToOther TemplateState = "sold"
)
