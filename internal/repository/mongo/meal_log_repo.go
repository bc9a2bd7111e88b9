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

const mealLogCollectionName = "meal_logs"

// mongoMealLogRepository implements repository.MealLogRepository using MongoDB.
type mongoMealLogRepository struct {
	collection *mongo.Collection
}

// NewMongoMealLogRepository creates a new instance of mongoMealLogRepository.
func NewMongoMealLogRepository(db *mongo.Database) repository.MealLogRepository {
	return &mongoMealLogRepository{
		collection: db.Collection(mealLogCollectionName),
	}
}

// Create inserts a new meal log record. Records are immutable once written.
func (r *mongoMealLogRepository) Create(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error) {
	if log.UserID.IsZero() {
		return primitive.NilObjectID, errors.New("meal log user ID is required")
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

// ListByUserAndDate returns the user's meals for a single calendar day,
// ordered by meal time.
func (r *mongoMealLogRepository) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.MealLog, error) {
	return r.find(ctx, logDateFilter(userID, date), bson.D{{Key: "mealTime", Value: 1}})
}

// ListByUserAndDateRange returns the user's meals inside the inclusive date range.
func (r *mongoMealLogRepository) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.MealLog, error) {
	return r.find(ctx, logDateRangeFilter(userID, dateRange), bson.D{{Key: "logDate", Value: 1}})
}

func (r *mongoMealLogRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]domain.MealLog, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.MealLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureMealLogIndexes creates necessary indexes for the meal_logs collection.
func EnsureMealLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "logDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
