package service

import (
	"context"
	"testing"

	"wellnest/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClassifyGoal(t *testing.T) {
	tests := []struct {
		goal string
		want string
	}{
		{"I want to lose weight", SpecializationWeightLoss},
		{"burn some FAT", SpecializationWeightLoss},
		{"build muscle", SpecializationMuscleGain},
		{"strength training", SpecializationMuscleGain},
		{"get into yoga", SpecializationYoga},
		{"improve flexibility", SpecializationYoga},
		{"train for a 10k run", SpecializationCardio},
		{"more cardio", SpecializationCardio},
		{"just feel better", SpecializationGeneralFitness},
		{"", SpecializationGeneralFitness},
		// Priority order: weight beats muscle, muscle beats cardio.
		{"lose weight and build muscle", SpecializationWeightLoss},
		{"build muscle with cardio", SpecializationMuscleGain},
	}
	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyGoal(tt.goal))
		})
	}
}

func TestRecommend_MatchesGoal(t *testing.T) {
	ctx := context.Background()

	muscle := &domain.Trainer{Name: "Jack", Specialization: "Muscle Gain", ContactEmail: "jack@example.com"}
	yoga := &domain.Trainer{Name: "Hardin", Specialization: "Yoga & Mindfulness", ContactEmail: "hardin@example.com"}

	for _, goal := range []string{"build muscle", "strength training"} {
		user := &domain.User{FullName: "Alice", Email: "alice@example.com", Goal: goal}
		svc := NewMatchingService(newFakeUserRepo(user), newFakeTrainerRepo(muscle, yoga))

		trainers, err := svc.Recommend(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, trainers, 1)
		assert.Equal(t, "Jack", trainers[0].Name)
	}
}

// The specialization match is a substring test, so "Yoga & Mindfulness"
// matches the "Yoga" keyword.
func TestRecommend_SubstringSpecialization(t *testing.T) {
	ctx := context.Background()

	yoga := &domain.Trainer{Name: "Hardin", Specialization: "Yoga & Mindfulness", ContactEmail: "hardin@example.com"}
	user := &domain.User{FullName: "Alice", Email: "alice@example.com", Goal: "improve flexibility"}

	svc := NewMatchingService(newFakeUserRepo(user), newFakeTrainerRepo(yoga))

	trainers, err := svc.Recommend(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trainers, 1)
	assert.Equal(t, "Hardin", trainers[0].Name)
}

func TestRecommend_NoGoalReturnsFullRoster(t *testing.T) {
	ctx := context.Background()

	muscle := &domain.Trainer{Name: "Jack", Specialization: "Muscle Gain", ContactEmail: "jack@example.com"}
	yoga := &domain.Trainer{Name: "Hardin", Specialization: "Yoga & Mindfulness", ContactEmail: "hardin@example.com"}

	user := &domain.User{FullName: "Alice", Email: "alice@example.com", Goal: ""}
	svc := NewMatchingService(newFakeUserRepo(user), newFakeTrainerRepo(muscle, yoga))

	trainers, err := svc.Recommend(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, trainers, 2)
}

// A whitespace-only goal is still a goal: it classifies to the catch-all
// keyword and the specialization filter applies before any fallback.
func TestRecommend_WhitespaceGoalClassifies(t *testing.T) {
	ctx := context.Background()

	general := &domain.Trainer{Name: "Jack", Specialization: "General Fitness", ContactEmail: "jack@example.com"}
	yoga := &domain.Trainer{Name: "Hardin", Specialization: "Yoga & Mindfulness", ContactEmail: "hardin@example.com"}
	user := &domain.User{FullName: "Alice", Email: "alice@example.com", Goal: "   "}

	svc := NewMatchingService(newFakeUserRepo(user), newFakeTrainerRepo(general, yoga))

	trainers, err := svc.Recommend(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trainers, 1)
	assert.Equal(t, "Jack", trainers[0].Name)
}

// When the classified keyword matches nobody, the full roster comes back
// instead of an empty list.
func TestRecommend_EmptyMatchFallsBack(t *testing.T) {
	ctx := context.Background()

	muscle := &domain.Trainer{Name: "Jack", Specialization: "Muscle Gain", ContactEmail: "jack@example.com"}
	yoga := &domain.Trainer{Name: "Hardin", Specialization: "Yoga & Mindfulness", ContactEmail: "hardin@example.com"}
	user := &domain.User{FullName: "Alice", Email: "alice@example.com", Goal: "train for a marathon run"}

	svc := NewMatchingService(newFakeUserRepo(user), newFakeTrainerRepo(muscle, yoga))

	trainers, err := svc.Recommend(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, trainers, 2)
}

func TestRecommend_UnknownUser(t *testing.T) {
	ctx := context.Background()

	svc := NewMatchingService(newFakeUserRepo(), newFakeTrainerRepo())
	_, err := svc.Recommend(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
