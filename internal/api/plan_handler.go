package api

import (
	"errors"
	"net/http"

	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves workout and meal plan assignment and listing.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type AssignWorkoutPlanRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Exercises   string `json:"exercises"`
}

type AssignMealPlanRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Meals       string `json:"meals"`
}

// assignTargets resolves who a plan assignment is from and for. The
// assigning trainer is always the authenticated caller.
func (h *PlanHandler) assignTargets(c *gin.Context, rawUserID string) (trainerUserID, userID primitive.ObjectID, ok bool) {
	trainerUserID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	userID, err = primitive.ObjectIDFromHex(rawUserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return trainerUserID, userID, true
}

func (h *PlanHandler) mapAssignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrClientNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to assign plan.")
	}
}

// AssignWorkoutPlan stores a workout plan for a managed client.
func (h *PlanHandler) AssignWorkoutPlan(c *gin.Context) {
	var req AssignWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerUserID, userID, ok := h.assignTargets(c, req.UserID)
	if !ok {
		return
	}

	plan, err := h.planService.AssignWorkoutPlan(c.Request.Context(), trainerUserID, service.WorkoutPlanInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Exercises:   req.Exercises,
	})
	if err != nil {
		h.mapAssignError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// AssignMealPlan stores a meal plan for a managed client.
func (h *PlanHandler) AssignMealPlan(c *gin.Context) {
	var req AssignMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerUserID, userID, ok := h.assignTargets(c, req.UserID)
	if !ok {
		return
	}

	plan, err := h.planService.AssignMealPlan(c.Request.Context(), trainerUserID, service.MealPlanInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Meals:       req.Meals,
	})
	if err != nil {
		h.mapAssignError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// MyWorkoutPlans lists the authenticated user's workout plans, newest first.
func (h *PlanHandler) MyWorkoutPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.planService.UserWorkoutPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workout plans.")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// MyMealPlans lists the authenticated user's meal plans, newest first.
func (h *PlanHandler) MyMealPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.planService.UserMealPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list meal plans.")
		return
	}
	c.JSON(http.StatusOK, plans)
}
