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

const waterSleepLogCollectionName = "water_sleep_logs"

// mongoWaterSleepLogRepository implements repository.WaterSleepLogRepository using MongoDB.
type mongoWaterSleepLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWaterSleepLogRepository creates a new instance of mongoWaterSleepLogRepository.
func NewMongoWaterSleepLogRepository(db *mongo.Database) repository.WaterSleepLogRepository {
	return &mongoWaterSleepLogRepository{
		collection: db.Collection(waterSleepLogCollectionName),
	}
}

// Create inserts a new water/sleep log record. Records are immutable once written.
func (r *mongoWaterSleepLogRepository) Create(ctx context.Context, log *domain.WaterSleepLog) (primitive.ObjectID, error) {
	if log.UserID.IsZero() {
		return primitive.NilObjectID, errors.New("water/sleep log user ID is required")
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

// ListByUserAndDate returns the user's water/sleep entries for a single calendar day.
func (r *mongoWaterSleepLogRepository) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WaterSleepLog, error) {
	return r.find(ctx, logDateFilter(userID, date))
}

// ListByUserAndDateRange returns the user's water/sleep entries inside the
// inclusive date range.
func (r *mongoWaterSleepLogRepository) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WaterSleepLog, error) {
	return r.find(ctx, logDateRangeFilter(userID, dateRange))
}

func (r *mongoWaterSleepLogRepository) find(ctx context.Context, filter bson.M) ([]domain.WaterSleepLog, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "logDate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WaterSleepLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWaterSleepLogIndexes creates necessary indexes for the water_sleep_logs collection.
func EnsureWaterSleepLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "logDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
