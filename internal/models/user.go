package models

import "time"

// User is plain identity capture: a username and when it was last seen.
// There is no password and no authentication.
type User struct {
	Username    string    `gorm:"primaryKey" json:"username"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
}
