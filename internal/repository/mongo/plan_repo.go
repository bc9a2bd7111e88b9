package mongo

import (
	"context"
	"errors"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	workoutPlanCollectionName = "workout_plans"
	mealPlanCollectionName    = "meal_plans"
)

// mongoPlanRepository implements repository.PlanRepository using MongoDB.
// Workout and meal plans live in separate collections but share the same
// assignment shape, so one repository covers both.
type mongoPlanRepository struct {
	workoutPlans *mongo.Collection
	mealPlans    *mongo.Collection
}

// NewMongoPlanRepository creates a new instance of mongoPlanRepository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		workoutPlans: db.Collection(workoutPlanCollectionName),
		mealPlans:    db.Collection(mealPlanCollectionName),
	}
}

// CreateWorkoutPlan inserts a new workout plan assignment.
func (r *mongoPlanRepository) CreateWorkoutPlan(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.UserID.IsZero() || plan.TrainerID.IsZero() {
		return primitive.NilObjectID, errors.New("plan user ID and trainer ID are required")
	}

	plan.ID = primitive.NewObjectID()
	result, err := r.workoutPlans.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetWorkoutPlansByUser returns the client's workout plans, newest first.
func (r *mongoPlanRepository) GetWorkoutPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	cursor, err := r.workoutPlans.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.WorkoutPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreateMealPlan inserts a new meal plan assignment.
func (r *mongoPlanRepository) CreateMealPlan(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	if plan.UserID.IsZero() || plan.TrainerID.IsZero() {
		return primitive.NilObjectID, errors.New("plan user ID and trainer ID are required")
	}

	plan.ID = primitive.NewObjectID()
	result, err := r.mealPlans.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetMealPlansByUser returns the client's meal plans, newest first.
func (r *mongoPlanRepository) GetMealPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.MealPlan, error) {
	cursor, err := r.mealPlans.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.MealPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// EnsurePlanIndexes creates necessary indexes for both plan collections.
func EnsurePlanIndexes(ctx context.Context, workoutPlans, mealPlans *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "assignedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = workoutPlans.Indexes().CreateMany(ctx, indexes)
	_, _ = mealPlans.Indexes().CreateMany(ctx, indexes)
}
