package models

// Reservation is a user's in-flight purchase claim on a template. Several
// users may hold reservations for the same template at once; an admin
// resolves one of them as the buyer. At most one reservation exists per
// (template, user) pair, enforced by a unique index.
type Reservation struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	TemplateID string  `gorm:"not null;uniqueIndex:idx_reservation_template_user" json:"template_id"`
	Username   string  `gorm:"not null;uniqueIndex:idx_reservation_template_user" json:"username"`
	Contact    string  `gorm:"not null" json:"contact"`
	PickupDate *string `json:"pickup_date,omitempty"` // calendar date, YYYY-MM-DD
	CreatedAt  int64   `gorm:"not null" json:"created_at"`   // epoch millis
}

// WishlistEntry marks a template a user wants to keep an eye on.
// One entry per (template, user); all entries for a template are purged
// once it is sold.
type WishlistEntry struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TemplateID string `gorm:"not null;uniqueIndex:idx_wishlist_template_user" json:"template_id"`
	Username   string `gorm:"not null;uniqueIndex:idx_wishlist_template_user" json:"username"`
	CreatedAt  int64  `gorm:"not null" json:"created_at"` // epoch millis
}
