package api

import (
	"net/http"
	"time"

	"wellnest/backend/internal/repository"
	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackerHandler serves the daily log write path and the derived
// analytics windows.
type TrackerHandler struct {
	trackerService   service.TrackerService
	analyticsService service.AnalyticsService
}

func NewTrackerHandler(trackerService service.TrackerService, analyticsService service.AnalyticsService) *TrackerHandler {
	return &TrackerHandler{
		trackerService:   trackerService,
		analyticsService: analyticsService,
	}
}

// --- DTOs ---

type LogWorkoutRequest struct {
	ExerciseType    string `json:"exerciseType" binding:"required"`
	DurationMinutes *int   `json:"durationMinutes"`
	CaloriesBurned  *int   `json:"caloriesBurned"`
	LogDate         string `json:"logDate"` // ISO date, defaults to today
	LogTime         string `json:"logTime"`
}

type LogMealRequest struct {
	MealType    string `json:"mealType" binding:"required"`
	Description string `json:"description"`
	Calories    *int   `json:"calories"`
	Protein     *int   `json:"protein"`
	Carbs       *int   `json:"carbs"`
	LogDate     string `json:"logDate"`
	MealTime    string `json:"mealTime"`
}

type LogWaterSleepRequest struct {
	WaterIntakeLiters *float64 `json:"waterIntakeLiters"`
	SleepHours        *float64 `json:"sleepHours"`
	SleepQuality      string   `json:"sleepQuality"`
	LogDate           string   `json:"logDate"`
	LogTime           string   `json:"logTime"`
}

// parseOptionalDate parses an ISO calendar date, returning nil when absent.
func parseOptionalDate(c *gin.Context, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD.")
		return nil, false
	}
	return &d, true
}

// parseDateRange reads the required start/end query parameters.
func parseDateRange(c *gin.Context) (repository.DateRange, bool) {
	start, err := time.Parse(time.DateOnly, c.Query("start"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing or invalid start date, expected YYYY-MM-DD.")
		return repository.DateRange{}, false
	}
	end, err := time.Parse(time.DateOnly, c.Query("end"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing or invalid end date, expected YYYY-MM-DD.")
		return repository.DateRange{}, false
	}
	if end.Before(start) {
		abortWithError(c, http.StatusBadRequest, "End date must not precede start date.")
		return repository.DateRange{}, false
	}
	return repository.DateRange{Start: start, End: end}, true
}

func (h *TrackerHandler) userID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// --- Workouts ---

func (h *TrackerHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	logDate, ok := parseOptionalDate(c, req.LogDate)
	if !ok {
		return
	}

	log, err := h.trackerService.LogWorkout(c.Request.Context(), service.WorkoutLogInput{
		UserID:          userID,
		ExerciseType:    req.ExerciseType,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		LogDate:         logDate,
		LogTime:         req.LogTime,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log workout.")
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *TrackerHandler) TodayWorkouts(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	logs, err := h.trackerService.TodayWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts.")
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *TrackerHandler) WorkoutsInRange(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}
	logs, err := h.trackerService.WorkoutsInRange(c.Request.Context(), userID, dateRange)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts.")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// --- Meals ---

func (h *TrackerHandler) LogMeal(c *gin.Context) {
	var req LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	logDate, ok := parseOptionalDate(c, req.LogDate)
	if !ok {
		return
	}

	log, err := h.trackerService.LogMeal(c.Request.Context(), service.MealLogInput{
		UserID:      userID,
		MealType:    req.MealType,
		Description: req.Description,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		LogDate:     logDate,
		MealTime:    req.MealTime,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log meal.")
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *TrackerHandler) TodayMeals(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	logs, err := h.trackerService.TodayMeals(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list meals.")
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *TrackerHandler) MealsInRange(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}
	logs, err := h.trackerService.MealsInRange(c.Request.Context(), userID, dateRange)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list meals.")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// --- Water & Sleep ---

func (h *TrackerHandler) LogWaterSleep(c *gin.Context) {
	var req LogWaterSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	logDate, ok := parseOptionalDate(c, req.LogDate)
	if !ok {
		return
	}

	log, err := h.trackerService.LogWaterSleep(c.Request.Context(), service.WaterSleepLogInput{
		UserID:            userID,
		WaterIntakeLiters: req.WaterIntakeLiters,
		SleepHours:        req.SleepHours,
		SleepQuality:      req.SleepQuality,
		LogDate:           logDate,
		LogTime:           req.LogTime,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log water/sleep.")
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *TrackerHandler) TodayWaterSleep(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	logs, err := h.trackerService.TodayWaterSleep(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list water/sleep entries.")
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *TrackerHandler) WaterSleepInRange(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	dateRange, ok := parseDateRange(c)
	if !ok {
		return
	}
	logs, err := h.trackerService.WaterSleepInRange(c.Request.Context(), userID, dateRange)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list water/sleep entries.")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// --- Analytics ---

// Dashboard returns the 7-day per-day breakdown for the charts.
func (h *TrackerHandler) Dashboard(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	stats, err := h.analyticsService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute dashboard stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Weekly returns the 7-day scalar rollup.
func (h *TrackerHandler) Weekly(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	summary, err := h.analyticsService.Weekly(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute weekly summary.")
		return
	}
	c.JSON(http.StatusOK, summary)
}
