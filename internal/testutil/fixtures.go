package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stash/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense with the given amount (in cents).
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount int64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      amount,
		Category:    "groceries",
		Date:        time.Now(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a monthly budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, category string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   10000, // $100.00
		Period:   models.BudgetPeriodMonthly,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates an active goal with the given target (in cents).
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, target int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Title:        fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
		Status:       models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestStreak creates an active streak with the given frequency.
func CreateTestStreak(t *testing.T, db *gorm.DB, userID uint, frequency models.StreakFrequency) *models.SavingsStreak {
	t.Helper()

	streak := &models.SavingsStreak{
		UserID:        userID,
		ChallengeName: fmt.Sprintf("Test Challenge %d", nextID()),
		TargetAmount:  50000, // $500.00
		Frequency:     frequency,
		IsActive:      true,
		StartDate:     time.Now().AddDate(0, -1, 0),
	}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("failed to create test streak: %v", err)
	}
	return streak
}

// CreateTestStreakEntry creates an entry on the given streak for the given
// save date and amount (in cents). Derived streak fields are not touched.
func CreateTestStreakEntry(t *testing.T, db *gorm.DB, streakID uint, amount int64, saveDate time.Time) *models.StreakEntry {
	t.Helper()

	entry := &models.StreakEntry{
		StreakID: streakID,
		Amount:   amount,
		SaveDate: saveDate,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test streak entry: %v", err)
	}
	return entry
}
