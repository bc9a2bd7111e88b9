package service

import (
	"context"
	"errors"
	"strings"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specialization keywords a free-text goal classifies into.
const (
	SpecializationWeightLoss     = "Weight Loss"
	SpecializationMuscleGain     = "Muscle Gain"
	SpecializationYoga           = "Yoga"
	SpecializationCardio         = "Cardio"
	SpecializationGeneralFitness = "General Fitness"
)

// MatchingService recommends trainers for a user based on their stated goal.
type MatchingService interface {
	Recommend(ctx context.Context, userID primitive.ObjectID) ([]domain.Trainer, error)
}

// matchingService implements the MatchingService interface. Pure reads,
// no side effects.
type matchingService struct {
	userRepo    repository.UserRepository
	trainerRepo repository.TrainerRepository
}

// NewMatchingService creates a new instance of matchingService.
func NewMatchingService(userRepo repository.UserRepository, trainerRepo repository.TrainerRepository) MatchingService {
	return &matchingService{
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
	}
}

// ClassifyGoal maps free-text goal input to exactly one specialization
// keyword. Substring tests are case-insensitive and evaluated in a fixed
// priority order; the first match wins, and "General Fitness" is the
// unconditional catch-all.
func ClassifyGoal(goal string) string {
	g := strings.ToLower(goal)
	switch {
	case strings.Contains(g, "weight") || strings.Contains(g, "fat"):
		return SpecializationWeightLoss
	case strings.Contains(g, "muscle") || strings.Contains(g, "strength"):
		return SpecializationMuscleGain
	case strings.Contains(g, "yoga") || strings.Contains(g, "flexibility"):
		return SpecializationYoga
	case strings.Contains(g, "run") || strings.Contains(g, "cardio"):
		return SpecializationCardio
	default:
		return SpecializationGeneralFitness
	}
}

// Recommend returns trainers matching the user's goal. With no goal set
// the full roster comes back unfiltered, and an empty filtered set also
// falls back to the full roster: the recommendation is never empty while
// any trainer exists.
func (s *matchingService) Recommend(ctx context.Context, userID primitive.ObjectID) ([]domain.Trainer, error) {
	if userID.IsZero() {
		return nil, errors.New("user ID is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Only the truly empty goal skips classification. A whitespace-only
	// goal still classifies (to the catch-all keyword) and gets the
	// keyword filter applied first.
	if user.Goal == "" {
		return s.trainerRepo.List(ctx)
	}

	keyword := ClassifyGoal(user.Goal)
	matches, err := s.trainerRepo.FindBySpecializationContaining(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return s.trainerRepo.List(ctx)
	}
	return matches, nil
}
