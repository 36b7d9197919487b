package services

import (
	"time"

	"stash/internal/models"
	"stash/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// SessionServicer defines the contract for session lifecycle management.
// Create returns the cookie token; Resolve maps a token back to its user
// or fails with ErrUnauthorized/ErrSessionExpired; Destroy invalidates
// the server-side session record.
type SessionServicer interface {
	Create(user *models.User) (string, error)
	Resolve(token string) (*models.User, error)
	Destroy(token string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category *string
	FromDate *time.Time
	ToDate   *time.Time
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, description string, amount int64, category string, date time.Time, isRecurring bool, dayOfMonth *int, endDate, dueDate *time.Time) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, description *string, amount *int64, category *string, date *time.Time, isRecurring *bool, dayOfMonth *int, endDate, dueDate *time.Time) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, category string, amount int64, period models.BudgetPeriod) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, category *string, amount *int64, period *models.BudgetPeriod) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
}

// GoalServicer defines the contract for savings-goal business logic.
// SetCurrentAmount is the only way to write CurrentAmount; UpdateGoal
// never touches it.
type GoalServicer interface {
	CreateGoal(userID uint, title string, targetAmount int64, category string, targetDate *time.Time) (*models.Goal, error)
	GetUserGoals(userID uint, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, title *string, targetAmount *int64, category *string, targetDate *time.Time, status *models.GoalStatus) (*models.Goal, error)
	SetCurrentAmount(userID, goalID uint, amount int64) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// StreakServicer defines the contract for savings-streak business logic.
type StreakServicer interface {
	CreateStreak(userID uint, challengeName string, targetAmount int64, frequency models.StreakFrequency, startDate time.Time, endDate *time.Time) (*models.SavingsStreak, error)
	GetUserStreaks(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.SavingsStreak], error)
	GetStreakByID(userID, streakID uint) (*models.SavingsStreak, error)
	DeleteStreak(userID, streakID uint) error
	AddEntry(userID, streakID uint, amount int64, saveDate time.Time) (*models.SavingsStreak, *models.StreakEntry, error)
	GetStreakEntries(userID, streakID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StreakEntry], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
