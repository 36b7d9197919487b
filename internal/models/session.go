package models

import "time"

// Session is the server-side record backing a login cookie. The cookie
// token references a row by TokenID; deleting the row invalidates the
// token immediately regardless of its embedded expiry.
type Session struct {
	Base
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenID   string    `gorm:"size:36;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
