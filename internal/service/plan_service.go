package service

import (
	"context"
	"errors"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlanInput carries a workout plan assignment from a trainer.
type WorkoutPlanInput struct {
	UserID      primitive.ObjectID
	Title       string
	Description string
	Exercises   string
}

// MealPlanInput carries a meal plan assignment from a trainer.
type MealPlanInput struct {
	UserID      primitive.ObjectID
	Title       string
	Description string
	Meals       string
}

// PlanService lets trainers assign workout and meal plans to the clients
// they manage, and clients list what was assigned to them.
type PlanService interface {
	AssignWorkoutPlan(ctx context.Context, trainerUserID primitive.ObjectID, input WorkoutPlanInput) (*domain.WorkoutPlan, error)
	AssignMealPlan(ctx context.Context, trainerUserID primitive.ObjectID, input MealPlanInput) (*domain.MealPlan, error)
	UserWorkoutPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	UserMealPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.MealPlan, error)
}

// planService implements the PlanService interface.
type planService struct {
	userRepo    repository.UserRepository
	trainerRepo repository.TrainerRepository
	planRepo    repository.PlanRepository
	now         func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	trainerRepo repository.TrainerRepository,
	planRepo repository.PlanRepository,
) PlanService {
	return &planService{
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		now:         time.Now,
	}
}

// resolveManagedClient checks that the client exists and is actively
// linked to one of the calling trainer's profiles, and returns the
// profile id the client's link points at. The caller is identified by
// account id, never by request input.
func (s *planService) resolveManagedClient(ctx context.Context, trainerUserID, userID primitive.ObjectID) (primitive.ObjectID, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrUserNotFound
		}
		return primitive.NilObjectID, err
	}
	if user.TrainerID == nil {
		return primitive.NilObjectID, ErrClientNotManaged
	}

	account, err := s.userRepo.GetByID(ctx, trainerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrTrainerNotFound
		}
		return primitive.NilObjectID, err
	}

	profiles, err := s.trainerRepo.FindByContactEmail(ctx, account.Email)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if len(profiles) == 0 {
		return primitive.NilObjectID, ErrTrainerNotFound
	}
	for _, p := range profiles {
		if *user.TrainerID == p.ID {
			return p.ID, nil
		}
	}
	return primitive.NilObjectID, ErrClientNotManaged
}

// AssignWorkoutPlan stores a workout plan for a managed client. The plan
// is attributed to the profile the client is enrolled with.
func (s *planService) AssignWorkoutPlan(ctx context.Context, trainerUserID primitive.ObjectID, input WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	if trainerUserID.IsZero() || input.UserID.IsZero() {
		return nil, errors.New("trainer ID and client ID are required")
	}
	if input.Title == "" {
		return nil, errors.New("plan title is required")
	}

	profileID, err := s.resolveManagedClient(ctx, trainerUserID, input.UserID)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		UserID:      input.UserID,
		TrainerID:   profileID,
		Title:       input.Title,
		Description: input.Description,
		Exercises:   input.Exercises,
		AssignedAt:  s.now().UTC(),
	}
	if _, err := s.planRepo.CreateWorkoutPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// AssignMealPlan stores a meal plan for a managed client.
func (s *planService) AssignMealPlan(ctx context.Context, trainerUserID primitive.ObjectID, input MealPlanInput) (*domain.MealPlan, error) {
	if trainerUserID.IsZero() || input.UserID.IsZero() {
		return nil, errors.New("trainer ID and client ID are required")
	}
	if input.Title == "" {
		return nil, errors.New("plan title is required")
	}

	profileID, err := s.resolveManagedClient(ctx, trainerUserID, input.UserID)
	if err != nil {
		return nil, err
	}

	plan := &domain.MealPlan{
		UserID:      input.UserID,
		TrainerID:   profileID,
		Title:       input.Title,
		Description: input.Description,
		Meals:       input.Meals,
		AssignedAt:  s.now().UTC(),
	}
	if _, err := s.planRepo.CreateMealPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UserWorkoutPlans returns a client's workout plans, newest first.
func (s *planService) UserWorkoutPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.planRepo.GetWorkoutPlansByUser(ctx, userID)
}

// UserMealPlans returns a client's meal plans, newest first.
func (s *planService) UserMealPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.MealPlan, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}
	return s.planRepo.GetMealPlansByUser(ctx, userID)
}
