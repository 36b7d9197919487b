package models

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget represents a spending limit for a category
type Budget struct {
	Base
	UserID   uint         `gorm:"not null;index" json:"user_id"`
	Category string       `gorm:"not null" json:"category"`
	Amount   int64        `gorm:"type:bigint;not null" json:"amount"`
	Period   BudgetPeriod `gorm:"not null;default:monthly" json:"period"`
}
