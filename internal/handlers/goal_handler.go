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

// GoalHandler handles savings-goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=100"`
	TargetAmount int64      `json:"target_amount" binding:"required,gt=0"`
	Category     string     `json:"category" binding:"max=100"`
	TargetDate   *time.Time `json:"target_date"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
// CurrentAmount has no field here: progress changes go through
// UpdateGoalProgress only.
type UpdateGoalRequest struct {
	Title        *string            `json:"title" binding:"omitempty,min=1,max=100"`
	TargetAmount *int64             `json:"target_amount" binding:"omitempty,gt=0"`
	Category     *string            `json:"category" binding:"omitempty,max=100"`
	TargetDate   *time.Time         `json:"target_date"`
	Status       *models.GoalStatus `json:"status" binding:"omitempty,goal_status"`
}

// UpdateGoalProgressRequest represents the request payload for setting goal progress.
type UpdateGoalProgressRequest struct {
	Amount *int64 `json:"amount" binding:"required,min=0"`
}

// CreateGoal handles the creation of a new goal.
// @Summary     Create a goal
// @Description Create a new savings goal with zero progress
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, req.Title, req.TargetAmount, req.Category, req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "target_amount": req.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals for the authenticated user.
// @Summary     Get goals
// @Description Get a paginated list of goals for the authenticated user
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       status    query string false "Filter by status (active/completed/abandoned)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Goal] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
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

	var status *models.GoalStatus
	if v := c.Query("status"); v != "" {
		s := models.GoalStatus(v)
		switch s {
		case models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusAbandoned:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be 'active', 'completed', or 'abandoned'"))
			return
		}
	}

	result, err := h.goalService.GetUserGoals(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoal handles retrieving a specific goal.
// @Summary     Get goal by ID
// @Description Get a specific goal by ID
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal "Goal details"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles updating an existing goal.
// @Summary     Update goal
// @Description Update an existing goal; absent fields are left untouched, progress is not updatable here
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated goal details"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Title, req.TargetAmount, req.Category, req.TargetDate, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoalProgress handles setting a goal's accumulated progress.
// @Summary     Update goal progress
// @Description Set the goal's current amount to an exact non-negative value
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int                       true "Goal ID"
// @Param       request body UpdateGoalProgressRequest true "New progress amount"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/progress [patch]
func (h *GoalHandler) UpdateGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.SetCurrentAmount(userID, goalID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL_PROGRESS", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount": *req.Amount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal.
// @Summary     Delete goal
// @Description Delete a goal by ID (soft delete)
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
