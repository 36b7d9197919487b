package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "stash/internal/errors"
	"stash/internal/models"
	"stash/internal/pagination"
)

// goalService handles savings-goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal with zero progress.
func (s *goalService) CreateGoal(userID uint, title string, targetAmount int64, category string, targetDate *time.Time) (*models.Goal, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal := &models.Goal{
		UserID:       userID,
		Title:        title,
		TargetAmount: targetAmount,
		Category:     category,
		TargetDate:   targetDate,
		Status:       models.GoalStatusActive,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns a paginated list of goals for the user with an optional status filter.
func (s *goalService) GetUserGoals(
	userID uint,
	page pagination.PageRequest,
	status *models.GoalStatus,
) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update. CurrentAmount is intentionally
// not updatable here; use SetCurrentAmount so accumulated progress
// cannot be wiped by a blind field overwrite.
func (s *goalService) UpdateGoal(
	userID, goalID uint,
	title *string,
	targetAmount *int64,
	category *string,
	targetDate *time.Time,
	status *models.GoalStatus,
) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != nil {
		updates["title"] = *title
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *targetAmount
	}
	if category != nil {
		updates["category"] = *category
	}
	if targetDate != nil {
		updates["target_date"] = targetDate
	}
	if status != nil {
		updates["status"] = *status
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return goal, nil
}

// SetCurrentAmount sets the goal's accumulated progress to an exact value.
func (s *goalService) SetCurrentAmount(userID, goalID uint, amount int64) (*models.Goal, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(goal).Update("current_amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.CurrentAmount = amount

	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
