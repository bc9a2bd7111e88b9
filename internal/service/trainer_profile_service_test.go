package service

import (
	"context"
	"testing"
	"time"

	"wellnest/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func TestEnrollAsTrainer(t *testing.T) {
	ctx := context.Background()

	user := &domain.User{FullName: "Jack", Email: "jack@example.com", Role: domain.RoleUser}
	userRepo := newFakeUserRepo(user)
	trainerRepo := newFakeTrainerRepo()
	svc := NewTrainerProfileService(userRepo, trainerRepo, &fakeFileStorage{})

	trainer, err := svc.EnrollAsTrainer(ctx, user.ID, TrainerEnrollmentInput{
		Specialization:  "Muscle Gain",
		ExperienceYears: 5,
		Bio:             "Strength coach",
		Age:             31,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jack", trainer.Name)
	assert.Equal(t, "jack@example.com", trainer.ContactEmail)
	require.NotNil(t, trainer.UserID)
	assert.Equal(t, user.ID, *trainer.UserID)
	assert.Contains(t, trainer.ImageURL, "ui-avatars.com")

	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTrainer, stored.Role)

	// Second enrollment under the same email is rejected.
	_, err = svc.EnrollAsTrainer(ctx, user.ID, TrainerEnrollmentInput{Specialization: "Yoga", Age: 31})
	assert.ErrorIs(t, err, ErrAlreadyTrainer)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	account, trainer := trainerFixture("Jack", "jack@example.com")
	userRepo := newFakeUserRepo(account)
	trainerRepo := newFakeTrainerRepo(trainer)
	svc := NewTrainerProfileService(userRepo, trainerRepo, &fakeFileStorage{})

	actor := Actor{ID: account.ID, Role: domain.RoleTrainer}
	updated, err := svc.UpdateProfile(ctx, actor, trainer.ID, TrainerProfileUpdate{
		Name:           "Jack Reacher",
		Specialization: "Weight Loss",
		Bio:            "New bio",
		Age:            32,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jack Reacher", updated.Name)
	assert.Equal(t, "Weight Loss", updated.Specialization)

	// The display name syncs back to the account.
	stored, err := userRepo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jack Reacher", stored.FullName)
}

// A trainer can only edit their own profile; admins can edit any.
func TestUpdateProfile_Ownership(t *testing.T) {
	ctx := context.Background()

	ownerAccount, trainer := trainerFixture("Jack", "jack@example.com")
	otherAccount, _ := trainerFixture("Hardin", "hardin@example.com")
	admin := &domain.User{ID: primitive.NewObjectID(), FullName: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	userRepo := newFakeUserRepo(ownerAccount, otherAccount, admin)
	trainerRepo := newFakeTrainerRepo(trainer)
	svc := NewTrainerProfileService(userRepo, trainerRepo, &fakeFileStorage{})

	update := TrainerProfileUpdate{Name: "Hijacked", Specialization: "Cardio", Age: 40}

	_, err := svc.UpdateProfile(ctx, Actor{ID: otherAccount.ID, Role: domain.RoleTrainer}, trainer.ID, update)
	assert.ErrorIs(t, err, ErrNotProfileOwner)

	stored, err := trainerRepo.GetByID(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jack", stored.Name)

	_, err = svc.UpdateProfile(ctx, Actor{ID: admin.ID, Role: domain.RoleAdmin}, trainer.ID, update)
	assert.NoError(t, err)
}

// Profiles without an account link fall back to contact email matching.
func TestUpdateProfile_LegacyProfileMatchedByEmail(t *testing.T) {
	ctx := context.Background()

	account := &domain.User{ID: primitive.NewObjectID(), FullName: "Jack", Email: "jack@example.com", Role: domain.RoleTrainer}
	trainer := &domain.Trainer{ID: primitive.NewObjectID(), Name: "Jack", ContactEmail: "JACK@example.com"}
	stranger := &domain.User{ID: primitive.NewObjectID(), FullName: "Eve", Email: "eve@example.com", Role: domain.RoleTrainer}
	userRepo := newFakeUserRepo(account, stranger)
	svc := NewTrainerProfileService(userRepo, newFakeTrainerRepo(trainer), &fakeFileStorage{})

	_, err := svc.UpdateProfile(ctx, Actor{ID: account.ID, Role: domain.RoleTrainer}, trainer.ID, TrainerProfileUpdate{Name: "Jack", Age: 31})
	assert.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, Actor{ID: stranger.ID, Role: domain.RoleTrainer}, trainer.ID, TrainerProfileUpdate{Name: "Eve", Age: 25})
	assert.ErrorIs(t, err, ErrNotProfileOwner)
}

func TestImageUploadFlow(t *testing.T) {
	ctx := context.Background()

	account, trainer := trainerFixture("Jack", "jack@example.com")
	userRepo := newFakeUserRepo(account)
	trainerRepo := newFakeTrainerRepo(trainer)
	svc := NewTrainerProfileService(userRepo, trainerRepo, &fakeFileStorage{})
	actor := Actor{ID: account.ID, Role: domain.RoleTrainer}

	resp, err := svc.RequestImageUploadURL(ctx, actor, trainer.ID, "image/png")
	require.NoError(t, err)
	assert.Contains(t, resp.ObjectKey, "trainers/"+trainer.ID.Hex()+"/")
	assert.Contains(t, resp.ObjectKey, ".png")
	assert.NotEmpty(t, resp.UploadURL)

	updated, err := svc.ConfirmImageUpload(ctx, actor, trainer.ID, resp.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, resp.ObjectKey, updated.ImageURL)

	// Stored object keys get presigned for viewing.
	url, err := svc.ImageDownloadURL(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "https://bucket.example.com/download/")
}

func TestRequestImageUploadURL_Validation(t *testing.T) {
	ctx := context.Background()

	ownerAccount, trainer := trainerFixture("Jack", "jack@example.com")
	otherAccount, _ := trainerFixture("Hardin", "hardin@example.com")
	userRepo := newFakeUserRepo(ownerAccount, otherAccount)
	svc := NewTrainerProfileService(userRepo, newFakeTrainerRepo(trainer), &fakeFileStorage{})

	_, err := svc.RequestImageUploadURL(ctx, Actor{ID: ownerAccount.ID, Role: domain.RoleTrainer}, trainer.ID, "text/html")
	assert.ErrorIs(t, err, ErrInvalidImageType)

	_, err = svc.RequestImageUploadURL(ctx, Actor{ID: otherAccount.ID, Role: domain.RoleTrainer}, trainer.ID, "image/png")
	assert.ErrorIs(t, err, ErrNotProfileOwner)

	_, err = svc.ConfirmImageUpload(ctx, Actor{ID: otherAccount.ID, Role: domain.RoleTrainer}, trainer.ID, "trainers/x/y.png")
	assert.ErrorIs(t, err, ErrNotProfileOwner)
}

func TestImageDownloadURL_PassThroughAndMissing(t *testing.T) {
	ctx := context.Background()

	external := &domain.Trainer{ID: primitive.NewObjectID(), Name: "Jack", ContactEmail: "jack@example.com", ImageURL: "https://ui-avatars.com/api/?name=Jack"}
	bare := &domain.Trainer{ID: primitive.NewObjectID(), Name: "Hardin", ContactEmail: "hardin@example.com"}
	svc := NewTrainerProfileService(newFakeUserRepo(), newFakeTrainerRepo(external, bare), &fakeFileStorage{})

	url, err := svc.ImageDownloadURL(ctx, external.ID)
	require.NoError(t, err)
	assert.Equal(t, external.ImageURL, url)

	_, err = svc.ImageDownloadURL(ctx, bare.ID)
	assert.ErrorIs(t, err, ErrTrainerHasNoImage)
}
