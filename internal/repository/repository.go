package repository

import (
	"context"
	"time"

	"wellnest/backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DateRange is an inclusive calendar-date window for log queries.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range (inclusive on both ends).
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// UserRepository defines the interface for interacting with user accounts.
// Together with TrainerRepository it forms the directory the enrollment
// and matching services read and write.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)

	// Enrollment link updates. Each mutates exactly one document; passing
	// nil clears the field.
	SetPendingTrainer(ctx context.Context, userID primitive.ObjectID, trainerID *primitive.ObjectID) error
	SetTrainer(ctx context.Context, userID primitive.ObjectID, trainerID *primitive.ObjectID) error
	// PromotePendingTrainer sets the active link and clears the pending
	// one in a single document write.
	PromotePendingTrainer(ctx context.Context, userID primitive.ObjectID, trainerID primitive.ObjectID) error

	// Indexed reverse lookups from trainer profile IDs to linked users.
	FindByTrainerIDs(ctx context.Context, trainerIDs []primitive.ObjectID) ([]domain.User, error)
	FindByPendingTrainerIDs(ctx context.Context, trainerIDs []primitive.ObjectID) ([]domain.User, error)
}

// TrainerRepository defines the interface for interacting with trainer profiles.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	Update(ctx context.Context, trainer *domain.Trainer) error
	FindBySpecializationContaining(ctx context.Context, keyword string) ([]domain.Trainer, error)
	FindByContactEmail(ctx context.Context, email string) ([]domain.Trainer, error)
	ExistsByContactEmail(ctx context.Context, email string) (bool, error)
}

// WorkoutLogRepository defines the interface for workout log records.
// Records are insert-only; there is no update or delete.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutLog, error)
	ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange DateRange) ([]domain.WorkoutLog, error)
}

// MealLogRepository defines the interface for meal log records.
type MealLogRepository interface {
	Create(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error)
	ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.MealLog, error)
	ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange DateRange) ([]domain.MealLog, error)
}

// WaterSleepLogRepository defines the interface for water/sleep log records.
type WaterSleepLogRepository interface {
	Create(ctx context.Context, log *domain.WaterSleepLog) (primitive.ObjectID, error)
	ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WaterSleepLog, error)
	ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange DateRange) ([]domain.WaterSleepLog, error)
}

// PlanRepository defines the interface for workout and meal plan assignments.
type PlanRepository interface {
	CreateWorkoutPlan(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetWorkoutPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) // Newest first
	CreateMealPlan(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetMealPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.MealPlan, error) // Newest first
}
