package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "stash/internal/errors"
	"stash/internal/models"
	"stash/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense creates a new expense for a user.
func (s *expenseService) CreateExpense(
	userID uint,
	description string,
	amount int64,
	category string,
	date time.Time,
	isRecurring bool,
	dayOfMonth *int,
	endDate, dueDate *time.Time,
) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now()
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		IsRecurring: isRecurring,
		DayOfMonth:  dayOfMonth,
		EndDate:     endDate,
		DueDate:     dueDate,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses returns a paginated list of the user's expenses with
// optional category and date-range filters.
func (s *expenseService) GetUserExpenses(
	userID uint,
	page pagination.PageRequest,
	filter ExpenseFilter,
) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense by ID if it belongs to the user.
// The id and owner are checked in the same query, so a foreign id is
// indistinguishable from a missing one.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense applies a partial update; nil fields are left untouched.
func (s *expenseService) UpdateExpense(
	userID, expenseID uint,
	description *string,
	amount *int64,
	category *string,
	date *time.Time,
	isRecurring *bool,
	dayOfMonth *int,
	endDate, dueDate *time.Time,
) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if description != nil {
		updates["description"] = *description
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if category != nil {
		updates["category"] = *category
	}
	if date != nil {
		updates["date"] = *date
	}
	if isRecurring != nil {
		updates["is_recurring"] = *isRecurring
	}
	if dayOfMonth != nil {
		updates["day_of_month"] = dayOfMonth
	}
	if endDate != nil {
		updates["end_date"] = endDate
	}
	if dueDate != nil {
		updates["due_date"] = dueDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
