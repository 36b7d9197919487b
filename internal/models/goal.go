package models

import "time"

// GoalStatus represents the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// Goal represents a savings goal. CurrentAmount is only ever written
// through the dedicated progress update, never through a generic update.
type Goal struct {
	Base
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Title         string     `gorm:"not null" json:"title"`
	TargetAmount  int64      `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount int64      `gorm:"type:bigint;default:0" json:"current_amount"`
	Category      string     `json:"category"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Status        GoalStatus `gorm:"not null;default:active" json:"status"`
}
