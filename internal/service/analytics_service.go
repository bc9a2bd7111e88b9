package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// windowDays is the fixed analytics window: today and the six days before it.
const windowDays = 7

// DashboardStats is the per-day breakdown for the dashboard charts.
// Labels, WorkoutData and CalorieData are parallel 7-element sequences,
// oldest day first; days without activity hold explicit zeros.
type DashboardStats struct {
	Labels        []string `json:"labels"` // 3-letter weekday abbreviations
	WorkoutData   []int    `json:"workoutData"`
	CalorieData   []int    `json:"calorieData"`
	TodayCalories int      `json:"todayCalories"`
}

// WeeklySummary is the scalar rollup over the same window, with no
// per-day breakdown.
type WeeklySummary struct {
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	TotalWorkoutMinutes  int       `json:"totalWorkoutMinutes"`
	TotalWorkoutSessions int       `json:"totalWorkoutSessions"`
	TotalMealCalories    int       `json:"totalMealCalories"`
	AvgWaterIntake       float64   `json:"avgWaterIntake"`
	AvgSleepHours        float64   `json:"avgSleepHours"`
}

// AnalyticsService reduces raw log records into fixed-window summaries.
// Every call recomputes from the store; nothing is cached between calls.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID primitive.ObjectID) (*DashboardStats, error)
	Weekly(ctx context.Context, userID primitive.ObjectID) (*WeeklySummary, error)
}

// analyticsService implements the AnalyticsService interface.
type analyticsService struct {
	workoutLogRepo    repository.WorkoutLogRepository
	mealLogRepo       repository.MealLogRepository
	waterSleepLogRepo repository.WaterSleepLogRepository
	now               func() time.Time
}

// NewAnalyticsService creates a new instance of analyticsService.
func NewAnalyticsService(
	workoutLogRepo repository.WorkoutLogRepository,
	mealLogRepo repository.MealLogRepository,
	waterSleepLogRepo repository.WaterSleepLogRepository,
) AnalyticsService {
	return &analyticsService{
		workoutLogRepo:    workoutLogRepo,
		mealLogRepo:       mealLogRepo,
		waterSleepLogRepo: waterSleepLogRepo,
		now:               time.Now,
	}
}

// window returns the inclusive [today-6, today] calendar range.
func (s *analyticsService) window() repository.DateRange {
	today := domain.LogDay(s.now().UTC())
	return repository.DateRange{
		Start: today.AddDate(0, 0, -(windowDays - 1)),
		End:   today,
	}
}

// Dashboard folds the window's workout logs into per-day minute and
// calorie buckets.
func (s *analyticsService) Dashboard(ctx context.Context, userID primitive.ObjectID) (*DashboardStats, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}

	window := s.window()
	workouts, err := s.workoutLogRepo.ListByUserAndDateRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	return foldDashboard(window, workouts), nil
}

// foldDashboard is the pure reduction behind Dashboard. Every day is
// pre-initialized to zero before records are folded in, and records
// outside the window are skipped even if the query returned them.
func foldDashboard(window repository.DateRange, workouts []domain.WorkoutLog) *DashboardStats {
	stats := &DashboardStats{
		Labels:      make([]string, windowDays),
		WorkoutData: make([]int, windowDays),
		CalorieData: make([]int, windowDays),
	}

	for i := 0; i < windowDays; i++ {
		day := window.Start.AddDate(0, 0, i)
		stats.Labels[i] = strings.ToUpper(day.Weekday().String()[:3])
	}

	for _, w := range workouts {
		day := domain.LogDay(w.LogDate)
		if !window.Contains(day) {
			continue
		}
		idx := int(day.Sub(window.Start).Hours() / 24)
		stats.WorkoutData[idx] += intOrZero(w.DurationMinutes)
		stats.CalorieData[idx] += intOrZero(w.CaloriesBurned)
	}

	stats.TodayCalories = stats.CalorieData[windowDays-1]
	return stats
}

// Weekly computes the window's scalar totals and averages, independently
// of Dashboard.
func (s *analyticsService) Weekly(ctx context.Context, userID primitive.ObjectID) (*WeeklySummary, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}

	window := s.window()

	workouts, err := s.workoutLogRepo.ListByUserAndDateRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	meals, err := s.mealLogRepo.ListByUserAndDateRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	waterSleep, err := s.waterSleepLogRepo.ListByUserAndDateRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	return foldWeekly(window, workouts, meals, waterSleep), nil
}

// foldWeekly is the pure reduction behind Weekly. Absent numeric fields
// count as zero in sums; averages skip absent values in both numerator
// and denominator and come out 0.0 (never NaN) over an empty set.
func foldWeekly(window repository.DateRange, workouts []domain.WorkoutLog, meals []domain.MealLog, waterSleep []domain.WaterSleepLog) *WeeklySummary {
	summary := &WeeklySummary{
		StartDate:            window.Start,
		EndDate:              window.End,
		TotalWorkoutSessions: len(workouts),
	}

	for _, w := range workouts {
		summary.TotalWorkoutMinutes += intOrZero(w.DurationMinutes)
	}
	for _, m := range meals {
		summary.TotalMealCalories += intOrZero(m.Calories)
	}

	summary.AvgWaterIntake = meanOfPresent(waterSleep, func(ws domain.WaterSleepLog) *float64 {
		return ws.WaterIntakeLiters
	})
	summary.AvgSleepHours = meanOfPresent(waterSleep, func(ws domain.WaterSleepLog) *float64 {
		return ws.SleepHours
	})

	return summary
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// meanOfPresent averages the non-nil values selected from the logs.
// Zero qualifying records yields 0.0.
func meanOfPresent(logs []domain.WaterSleepLog, pick func(domain.WaterSleepLog) *float64) float64 {
	var sum float64
	var count int
	for _, l := range logs {
		if v := pick(l); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
