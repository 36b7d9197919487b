package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stash/internal/errors"
	"stash/internal/models"
	"stash/internal/pagination"
	"stash/internal/services"
)

// StreakHandler handles savings-streak requests.
type StreakHandler struct {
	streakService services.StreakServicer
	auditService  services.AuditServicer
}

// NewStreakHandler creates a new StreakHandler.
func NewStreakHandler(streakService services.StreakServicer, auditService services.AuditServicer) *StreakHandler {
	return &StreakHandler{streakService: streakService, auditService: auditService}
}

// CreateStreakRequest represents the request payload for creating a streak.
type CreateStreakRequest struct {
	ChallengeName string                 `json:"challenge_name" binding:"required,min=1,max=100"`
	TargetAmount  int64                  `json:"target_amount" binding:"required,gt=0"`
	Frequency     models.StreakFrequency `json:"frequency" binding:"required,streak_frequency"`
	StartDate     time.Time              `json:"start_date"`
	EndDate       *time.Time             `json:"end_date"`
}

// AddStreakEntryRequest represents the request payload for recording a contribution.
type AddStreakEntryRequest struct {
	Amount   int64     `json:"amount" binding:"required,gt=0"`
	SaveDate time.Time `json:"save_date"`
}

// CreateStreak handles the creation of a new savings streak.
// @Summary     Create a streak
// @Description Create a new savings streak challenge
// @Tags        streaks
// @Accept      json
// @Produce     json
// @Param       request body CreateStreakRequest true "Streak details"
// @Success     201 {object} models.SavingsStreak "Streak created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /streaks [post]
func (h *StreakHandler) CreateStreak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateStreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	st, err := h.streakService.CreateStreak(userID, req.ChallengeName, req.TargetAmount, req.Frequency, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_STREAK", "streak", st.ID, c.ClientIP(),
		map[string]interface{}{"challenge_name": req.ChallengeName, "frequency": req.Frequency})

	c.JSON(http.StatusCreated, gin.H{"streak": st})
}

// GetStreaks handles listing streaks for the authenticated user.
// @Summary     Get streaks
// @Description Get a paginated list of savings streaks for the authenticated user
// @Tags        streaks
// @Accept      json
// @Produce     json
// @Param       is_active query bool false "Filter by active status"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.SavingsStreak] "Paginated streaks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /streaks [get]
func (h *StreakHandler) GetStreaks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		switch v {
		case "true":
			b := true
			isActive = &b
		case "false":
			b := false
			isActive = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_active must be 'true' or 'false'"))
			return
		}
	}

	result, err := h.streakService.GetUserStreaks(userID, page, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStreak handles retrieving a specific streak.
// @Summary     Get streak by ID
// @Description Get a specific savings streak by ID
// @Tags        streaks
// @Accept      json
// @Produce     json
// @Param       id path int true "Streak ID"
// @Success     200 {object} models.SavingsStreak "Streak details"
// @Failure     400 {object} ErrorResponse "Invalid streak ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Streak not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /streaks/{id} [get]
func (h *StreakHandler) GetStreak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	streakID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	st, err := h.streakService.GetStreakByID(userID, streakID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": st})
}

// DeleteStreak handles deleting a streak and its entries.
// @Summary     Delete streak
// @Description Delete a streak by ID; its entries are deleted with it
// @Tags        streaks
// @Accept      json
// @Produce     json
// @Param       id path int true "Streak ID"
// @Success     200 {object} MessageResponse "Streak deleted"
// @Failure     400 {object} ErrorResponse "Invalid streak ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Streak not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /streaks/{id} [delete]
func (h *StreakHandler) DeleteStreak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	streakID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.streakService.DeleteStreak(userID, streakID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_STREAK", "streak", streakID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Streak deleted successfully"})
}

// AddStreakEntry handles recording a contribution toward a streak.
// @Summary     Add streak entry
// @Description Record a contribution and recompute the streak's progress
// @Tags        streaks
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Streak ID"
// @Param       request body AddStreakEntryRequest true "Entry details"
// @Success     201 {object} models.SavingsStreak "Entry recorded and streak recomputed"
// @Failure     400 {object} ErrorResponse "Invalid input or streak ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Streak not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /streaks/{id}/entries [post]
func (h *StreakHandler) AddStreakEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	streakID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddStreakEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	st, entry, err := h.streakService.AddEntry(userID, streakID, req.Amount, req.SaveDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_STREAK_ENTRY", "streak", streakID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"streak": st, "entry": entry})
}

// GetStreakEntries handles listing a streak's entries.
// @Summary     Get streak entries
// @Description Get a paginated list of a streak's entries, most recent first
// @Tags        streaks
// @Accept      json
// @Produce     json
// @Param       id        path  int true  "Streak ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.StreakEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid streak ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Streak not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /streaks/{id}/entries [get]
func (h *StreakHandler) GetStreakEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	streakID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.streakService.GetStreakEntries(userID, streakID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
