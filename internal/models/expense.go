package models

import "time"

// Expense represents a single expense recorded by a user.
// Amount is stored in cents to avoid floating point drift.
type Expense struct {
	Base
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Description string     `gorm:"not null" json:"description"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"`
	Category    string     `gorm:"index" json:"category"`
	Date        time.Time  `gorm:"not null" json:"date"`
	IsRecurring bool       `gorm:"default:false" json:"is_recurring"`
	DayOfMonth  *int       `json:"day_of_month,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}
