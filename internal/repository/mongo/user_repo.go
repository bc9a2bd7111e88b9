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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	// Basic validation; more robust validation belongs in the service layer.
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email, password hash, and role are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, errors.New("user with this email already exists")
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update replaces the mutable profile fields of an existing user.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	filter := bson.M{"_id": user.ID}
	update := bson.M{
		"$set": bson.M{
			"fullName":  user.FullName,
			"goal":      user.Goal,
			"role":      user.Role,
			"updatedAt": time.Now().UTC(),
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

// List returns every user account.
func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// setLinkField writes or clears one of the enrollment link fields on a
// single user document. A nil trainerID unsets the field entirely so the
// document matches the "absent" shape the domain expects.
func (r *mongoUserRepository) setLinkField(ctx context.Context, userID primitive.ObjectID, field string, trainerID *primitive.ObjectID) error {
	filter := bson.M{"_id": userID}

	var update bson.M
	if trainerID == nil {
		update = bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{
				field:       *trainerID,
				"updatedAt": time.Now().UTC(),
			},
		}
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

// SetPendingTrainer overwrites (or clears, when nil) the user's pending
// enrollment request. Last write wins.
func (r *mongoUserRepository) SetPendingTrainer(ctx context.Context, userID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	return r.setLinkField(ctx, userID, "pendingTrainerId", trainerID)
}

// SetTrainer overwrites (or clears, when nil) the user's active trainer link.
func (r *mongoUserRepository) SetTrainer(ctx context.Context, userID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	return r.setLinkField(ctx, userID, "trainerId", trainerID)
}

// PromotePendingTrainer copies the pending link into the active one and
// clears the pending field, all in one document update.
func (r *mongoUserRepository) PromotePendingTrainer(ctx context.Context, userID primitive.ObjectID, trainerID primitive.ObjectID) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set": bson.M{
			"trainerId": trainerID,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{"pendingTrainerId": ""},
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

// FindByTrainerIDs returns all users actively linked to any of the given
// trainer profile IDs. Served by the sparse trainerId index.
func (r *mongoUserRepository) FindByTrainerIDs(ctx context.Context, trainerIDs []primitive.ObjectID) ([]domain.User, error) {
	if len(trainerIDs) == 0 {
		return []domain.User{}, nil
	}

	filter := bson.M{"trainerId": bson.M{"$in": trainerIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByPendingTrainerIDs returns all users with an open enrollment request
// for any of the given trainer profiles. Served by the sparse
// pendingTrainerId index.
func (r *mongoUserRepository) FindByPendingTrainerIDs(ctx context.Context, trainerIDs []primitive.ObjectID) ([]domain.User, error) {
	if len(trainerIDs) == 0 {
		return []domain.User{}, nil
	}

	filter := bson.M{"pendingTrainerId": bson.M{"$in": trainerIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup. The sparse link-field
// indexes back the reverse trainer-to-clients lookups.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "pendingTrainerId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
