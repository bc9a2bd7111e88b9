package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainerCollectionName = "trainers"

// mongoTrainerRepository implements the repository.TrainerRepository interface using MongoDB.
type mongoTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerRepository creates a new instance of mongoTrainerRepository.
func NewMongoTrainerRepository(db *mongo.Database) repository.TrainerRepository {
	return &mongoTrainerRepository{
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer profile.
func (r *mongoTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.Name == "" || trainer.ContactEmail == "" {
		return primitive.NilObjectID, errors.New("trainer name and contact email are required")
	}

	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trainer)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a trainer profile by its ObjectID.
func (r *mongoTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// List returns the full trainer roster.
func (r *mongoTrainerRepository) List(ctx context.Context) ([]domain.Trainer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update replaces the mutable fields of an existing trainer profile.
func (r *mongoTrainerRepository) Update(ctx context.Context, trainer *domain.Trainer) error {
	filter := bson.M{"_id": trainer.ID}
	update := bson.M{
		"$set": bson.M{
			"name":            trainer.Name,
			"specialization":  trainer.Specialization,
			"experienceYears": trainer.ExperienceYears,
			"bio":             trainer.Bio,
			"imageUrl":        trainer.ImageURL,
			"age":             trainer.Age,
			"userId":          trainer.UserID,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindBySpecializationContaining returns trainers whose specialization
// contains the keyword, matched case-insensitively.
func (r *mongoTrainerRepository) FindBySpecializationContaining(ctx context.Context, keyword string) ([]domain.Trainer, error) {
	filter := bson.M{
		"specialization": bson.M{
			"$regex":   regexp.QuoteMeta(keyword),
			"$options": "i",
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// FindByContactEmail returns every trainer profile registered under the
// given contact email. Duplicate profiles per person are tolerated.
func (r *mongoTrainerRepository) FindByContactEmail(ctx context.Context, email string) ([]domain.Trainer, error) {
	filter := bson.M{
		"contactEmail": bson.M{
			"$regex":   "^" + regexp.QuoteMeta(email) + "$",
			"$options": "i",
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// ExistsByContactEmail reports whether any trainer profile uses the email.
func (r *mongoTrainerRepository) ExistsByContactEmail(ctx context.Context, email string) (bool, error) {
	filter := bson.M{
		"contactEmail": bson.M{
			"$regex":   "^" + regexp.QuoteMeta(email) + "$",
			"$options": "i",
		},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "contactEmail", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "specialization", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
