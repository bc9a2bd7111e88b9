package mongo

import (
	"context"
	"errors"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// logDateFilter builds the shared user + calendar-date filter for the log
// collections. Dates are normalized to midnight UTC on write, so equality
// and inclusive range comparisons line up with calendar days.
func logDateFilter(userID primitive.ObjectID, date time.Time) bson.M {
	return bson.M{
		"userId":  userID,
		"logDate": domain.LogDay(date),
	}
}

func logDateRangeFilter(userID primitive.ObjectID, dateRange repository.DateRange) bson.M {
	return bson.M{
		"userId": userID,
		"logDate": bson.M{
			"$gte": domain.LogDay(dateRange.Start),
			"$lte": domain.LogDay(dateRange.End),
		},
	}
}

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository using MongoDB.
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new instance of mongoWorkoutLogRepository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create inserts a new workout log record. Records are immutable once written.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID.IsZero() {
		return primitive.NilObjectID, errors.New("workout log user ID is required")
	}

	log.ID = primitive.NewObjectID()
	log.LogDate = domain.LogDay(log.LogDate)
	log.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByUserAndDate returns the user's workout logs for a single calendar day.
func (r *mongoWorkoutLogRepository) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutLog, error) {
	return r.find(ctx, logDateFilter(userID, date))
}

// ListByUserAndDateRange returns the user's workout logs inside the
// inclusive date range.
func (r *mongoWorkoutLogRepository) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WorkoutLog, error) {
	return r.find(ctx, logDateRangeFilter(userID, dateRange))
}

func (r *mongoWorkoutLogRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutLog, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "logDate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WorkoutLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workout_logs collection.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "logDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
