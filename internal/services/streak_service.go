package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "stash/internal/errors"
	"stash/internal/models"
	"stash/internal/pagination"
	"stash/internal/streak"
)

// streakService handles savings-streak business logic.
type streakService struct {
	db *gorm.DB
}

// NewStreakService creates a new StreakServicer.
func NewStreakService(db *gorm.DB) StreakServicer {
	return &streakService{db: db}
}

// CreateStreak creates a new savings streak challenge.
func (s *streakService) CreateStreak(
	userID uint,
	challengeName string,
	targetAmount int64,
	frequency models.StreakFrequency,
	startDate time.Time,
	endDate *time.Time,
) (*models.SavingsStreak, error) {
	if challengeName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "challenge name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	st := &models.SavingsStreak{
		UserID:        userID,
		ChallengeName: challengeName,
		TargetAmount:  targetAmount,
		Frequency:     frequency,
		IsActive:      true,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	if err := s.db.Create(st).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return st, nil
}

// GetUserStreaks returns a paginated list of the user's streaks with an
// optional active filter.
func (s *streakService) GetUserStreaks(
	userID uint,
	page pagination.PageRequest,
	isActive *bool,
) (*pagination.PageResponse[models.SavingsStreak], error) {
	page.Defaults()

	base := s.db.Model(&models.SavingsStreak{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var streaks []models.SavingsStreak
	if err := base.Scopes(pagination.Paginate(page)).Find(&streaks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(streaks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStreakByID returns a streak by ID if it belongs to the user.
func (s *streakService) GetStreakByID(userID, streakID uint) (*models.SavingsStreak, error) {
	var st models.SavingsStreak
	if err := s.db.Where("id = ? AND user_id = ?", streakID, userID).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStreakNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &st, nil
}

// DeleteStreak deletes a streak and all of its entries.
func (s *streakService) DeleteStreak(userID, streakID uint) error {
	st, err := s.GetStreakByID(userID, streakID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("streak_id = ?", st.ID).Delete(&models.StreakEntry{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(st).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddEntry records a contribution and recomputes the streak's derived
// fields from the full entry history, all inside one transaction so the
// entry insert and the derived-field write land together. Concurrent
// additions to the same streak must be serialized by the store; under
// Postgres the row update conflicts resolve via row-level locking within
// the transaction.
func (s *streakService) AddEntry(userID, streakID uint, amount int64, saveDate time.Time) (*models.SavingsStreak, *models.StreakEntry, error) {
	if amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if saveDate.IsZero() {
		saveDate = time.Now()
	}

	var (
		updated models.SavingsStreak
		entry   *models.StreakEntry
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Ownership is checked against id and user_id together; a
		// foreign streak behaves like a missing one.
		if err := tx.Where("id = ? AND user_id = ?", streakID, userID).First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrStreakNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry = &models.StreakEntry{
			StreakID: updated.ID,
			Amount:   amount,
			SaveDate: saveDate,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var entries []models.StreakEntry
		if err := tx.Where("streak_id = ?", updated.ID).Find(&entries).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		progress := streak.Recompute(updated.Frequency, updated.LongestStreak, entries, time.Now())

		updates := map[string]interface{}{
			"total_saved":    progress.TotalSaved,
			"current_streak": progress.CurrentStreak,
			"longest_streak": progress.LongestStreak,
			"last_save_date": progress.LastSaveDate,
		}
		if err := tx.Model(&updated).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updated.TotalSaved = progress.TotalSaved
		updated.CurrentStreak = progress.CurrentStreak
		updated.LongestStreak = progress.LongestStreak
		updated.LastSaveDate = progress.LastSaveDate
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &updated, entry, nil
}

// GetStreakEntries returns a paginated list of a streak's entries,
// most recent first. Streak ownership is re-verified before the entries
// are read.
func (s *streakService) GetStreakEntries(
	userID, streakID uint,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.StreakEntry], error) {
	st, err := s.GetStreakByID(userID, streakID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.StreakEntry{}).Where("streak_id = ?", st.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.StreakEntry
	if err := base.Order("save_date DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
