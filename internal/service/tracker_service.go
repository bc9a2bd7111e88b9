package service

import (
	"context"
	"errors"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input structures for logging. Date and time default to "now" when omitted.

type WorkoutLogInput struct {
	UserID          primitive.ObjectID
	ExerciseType    string
	DurationMinutes *int
	CaloriesBurned  *int
	LogDate         *time.Time
	LogTime         string
}

type MealLogInput struct {
	UserID      primitive.ObjectID
	MealType    string
	Description string
	Calories    *int
	Protein     *int
	Carbs       *int
	LogDate     *time.Time
	MealTime    string
}

type WaterSleepLogInput struct {
	UserID            primitive.ObjectID
	WaterIntakeLiters *float64
	SleepHours        *float64
	SleepQuality      string
	LogDate           *time.Time
	LogTime           string
}

// TrackerService is the write and raw-read surface over the log store.
// Records are immutable once written; there is no update or delete.
type TrackerService interface {
	LogWorkout(ctx context.Context, input WorkoutLogInput) (*domain.WorkoutLog, error)
	TodayWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	WorkoutsInRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WorkoutLog, error)

	LogMeal(ctx context.Context, input MealLogInput) (*domain.MealLog, error)
	TodayMeals(ctx context.Context, userID primitive.ObjectID) ([]domain.MealLog, error)
	MealsInRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.MealLog, error)

	LogWaterSleep(ctx context.Context, input WaterSleepLogInput) (*domain.WaterSleepLog, error)
	TodayWaterSleep(ctx context.Context, userID primitive.ObjectID) ([]domain.WaterSleepLog, error)
	WaterSleepInRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WaterSleepLog, error)
}

// trackerService implements the TrackerService interface.
type trackerService struct {
	workoutLogRepo    repository.WorkoutLogRepository
	mealLogRepo       repository.MealLogRepository
	waterSleepLogRepo repository.WaterSleepLogRepository
	now               func() time.Time
}

// NewTrackerService creates a new instance of trackerService.
func NewTrackerService(
	workoutLogRepo repository.WorkoutLogRepository,
	mealLogRepo repository.MealLogRepository,
	waterSleepLogRepo repository.WaterSleepLogRepository,
) TrackerService {
	return &trackerService{
		workoutLogRepo:    workoutLogRepo,
		mealLogRepo:       mealLogRepo,
		waterSleepLogRepo: waterSleepLogRepo,
		now:               time.Now,
	}
}

// logMoment resolves the record's calendar date and clock time, falling
// back to the current moment for whichever the caller omitted.
func (s *trackerService) logMoment(date *time.Time, clock string) (time.Time, string) {
	now := s.now().UTC()
	d := now
	if date != nil {
		d = *date
	}
	if clock == "" {
		clock = now.Format("15:04")
	}
	return domain.LogDay(d), clock
}

// LogWorkout writes a new workout record.
func (s *trackerService) LogWorkout(ctx context.Context, input WorkoutLogInput) (*domain.WorkoutLog, error) {
	if input.UserID.IsZero() {
		return nil, errors.New("user ID is required")
	}

	date, clock := s.logMoment(input.LogDate, input.LogTime)
	log := &domain.WorkoutLog{
		UserID:          input.UserID,
		LogDate:         date,
		LogTime:         clock,
		ExerciseType:    input.ExerciseType,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
	}

	if _, err := s.workoutLogRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// TodayWorkouts returns the user's workouts logged today.
func (s *trackerService) TodayWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.workoutLogRepo.ListByUserAndDate(ctx, userID, domain.LogDay(s.now().UTC()))
}

// WorkoutsInRange returns the user's workouts inside the inclusive range.
func (s *trackerService) WorkoutsInRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WorkoutLog, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.workoutLogRepo.ListByUserAndDateRange(ctx, userID, dateRange)
}

// LogMeal writes a new meal record.
func (s *trackerService) LogMeal(ctx context.Context, input MealLogInput) (*domain.MealLog, error) {
	if input.UserID.IsZero() {
		return nil, errors.New("user ID is required")
	}

	date, clock := s.logMoment(input.LogDate, input.MealTime)
	log := &domain.MealLog{
		UserID:      input.UserID,
		LogDate:     date,
		MealTime:    clock,
		MealType:    input.MealType,
		Description: input.Description,
		Calories:    input.Calories,
		Protein:     input.Protein,
		Carbs:       input.Carbs,
	}

	if _, err := s.mealLogRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// TodayMeals returns the user's meals logged today, ordered by meal time.
func (s *trackerService) TodayMeals(ctx context.Context, userID primitive.ObjectID) ([]domain.MealLog, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.mealLogRepo.ListByUserAndDate(ctx, userID, domain.LogDay(s.now().UTC()))
}

// MealsInRange returns the user's meals inside the inclusive range.
func (s *trackerService) MealsInRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.MealLog, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.mealLogRepo.ListByUserAndDateRange(ctx, userID, dateRange)
}

// LogWaterSleep writes a new water/sleep record.
func (s *trackerService) LogWaterSleep(ctx context.Context, input WaterSleepLogInput) (*domain.WaterSleepLog, error) {
	if input.UserID.IsZero() {
		return nil, errors.New("user ID is required")
	}

	date, clock := s.logMoment(input.LogDate, input.LogTime)
	log := &domain.WaterSleepLog{
		UserID:            input.UserID,
		LogDate:           date,
		LogTime:           clock,
		WaterIntakeLiters: input.WaterIntakeLiters,
		SleepHours:        input.SleepHours,
		SleepQuality:      input.SleepQuality,
	}

	if _, err := s.waterSleepLogRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// TodayWaterSleep returns the user's water/sleep entries logged today.
func (s *trackerService) TodayWaterSleep(ctx context.Context, userID primitive.ObjectID) ([]domain.WaterSleepLog, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.waterSleepLogRepo.ListByUserAndDate(ctx, userID, domain.LogDay(s.now().UTC()))
}

// WaterSleepInRange returns the user's water/sleep entries inside the inclusive range.
func (s *trackerService) WaterSleepInRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WaterSleepLog, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.waterSleepLogRepo.ListByUserAndDateRange(ctx, userID, dateRange)
}
