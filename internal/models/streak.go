package models

import "time"

// StreakFrequency represents the cadence of a savings streak
type StreakFrequency string

const (
	StreakFrequencyDaily   StreakFrequency = "daily"
	StreakFrequencyWeekly  StreakFrequency = "weekly"
	StreakFrequencyMonthly StreakFrequency = "monthly"
)

// SavingsStreak represents a recurring savings challenge. The derived
// fields (CurrentStreak, LongestStreak, LastSaveDate, TotalSaved) are
// recomputed from the entry history on every entry insertion.
type SavingsStreak struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	ChallengeName string          `gorm:"not null" json:"challenge_name"`
	TargetAmount  int64           `gorm:"type:bigint;not null" json:"target_amount"`
	Frequency     StreakFrequency `gorm:"not null" json:"frequency"`
	CurrentStreak int             `gorm:"default:0" json:"current_streak"`
	LongestStreak int             `gorm:"default:0" json:"longest_streak"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	LastSaveDate  *time.Time      `json:"last_save_date,omitempty"`
	TotalSaved    int64           `gorm:"type:bigint;default:0" json:"total_saved"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Entries       []StreakEntry   `gorm:"foreignKey:StreakID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// StreakEntry represents one recorded contribution toward a streak.
type StreakEntry struct {
	Base
	StreakID uint      `gorm:"not null;index" json:"streak_id"`
	Amount   int64     `gorm:"type:bigint;not null" json:"amount"`
	SaveDate time.Time `gorm:"not null" json:"save_date"`
}
