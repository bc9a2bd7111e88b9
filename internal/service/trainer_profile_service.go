package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"
	"wellnest/backend/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAlreadyTrainer    = errors.New("user is already enrolled as a trainer")
	ErrNotProfileOwner   = errors.New("trainer profile belongs to another user")
	ErrInvalidImageType  = errors.New("invalid or missing image content type")
	ErrTrainerHasNoImage = errors.New("trainer has no profile image")
	ErrUploadURLError    = errors.New("failed to generate upload URL")
	ErrDownloadURLError  = errors.New("failed to generate download URL")
)

// Actor identifies the authenticated account behind a profile edit.
type Actor struct {
	ID   primitive.ObjectID
	Role domain.Role
}

// TrainerEnrollmentInput carries the profile details a user submits when
// becoming a trainer.
type TrainerEnrollmentInput struct {
	Specialization  string
	ExperienceYears int
	Bio             string
	Age             int
}

// TrainerProfileUpdate carries the editable profile fields.
type TrainerProfileUpdate struct {
	Name            string
	Specialization  string
	ExperienceYears int
	Bio             string
	ImageURL        string
	Age             int
}

// ImageUploadResponse returns the presigned URL and the object key the
// client reports back on confirm.
type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// TrainerProfileService manages the trainer directory: the public roster
// plus the become-a-trainer and profile-editing flows.
type TrainerProfileService interface {
	ListTrainers(ctx context.Context) ([]domain.Trainer, error)
	GetTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	EnrollAsTrainer(ctx context.Context, userID primitive.ObjectID, input TrainerEnrollmentInput) (*domain.Trainer, error)

	// Edits require the acting account to own the profile; admins may
	// edit any profile.
	UpdateProfile(ctx context.Context, actor Actor, trainerID primitive.ObjectID, update TrainerProfileUpdate) (*domain.Trainer, error)

	// Profile image flow: presigned PUT to upload, confirm to record the
	// key, presigned GET to view.
	RequestImageUploadURL(ctx context.Context, actor Actor, trainerID primitive.ObjectID, contentType string) (*ImageUploadResponse, error)
	ConfirmImageUpload(ctx context.Context, actor Actor, trainerID primitive.ObjectID, objectKey string) (*domain.Trainer, error)
	ImageDownloadURL(ctx context.Context, trainerID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// trainerProfileService implements the TrainerProfileService interface.
type trainerProfileService struct {
	userRepo    repository.UserRepository
	trainerRepo repository.TrainerRepository
	fileStorage storage.FileStorage
}

// NewTrainerProfileService creates a new instance of trainerProfileService.
func NewTrainerProfileService(
	userRepo repository.UserRepository,
	trainerRepo repository.TrainerRepository,
	fileStorage storage.FileStorage,
) TrainerProfileService {
	return &trainerProfileService{
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
		fileStorage: fileStorage,
	}
}

// ListTrainers returns the full roster.
func (s *trainerProfileService) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.List(ctx)
}

// GetTrainer returns a single trainer profile.
func (s *trainerProfileService) GetTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// EnrollAsTrainer creates a trainer profile from the user's identity and
// the submitted details, and promotes the account to the trainer role.
// One profile per contact email; a second enrollment is rejected.
func (s *trainerProfileService) EnrollAsTrainer(ctx context.Context, userID primitive.ObjectID, input TrainerEnrollmentInput) (*domain.Trainer, error) {
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

	exists, err := s.trainerRepo.ExistsByContactEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyTrainer
	}

	trainer := &domain.Trainer{
		Name:            user.FullName,
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		Bio:             input.Bio,
		ContactEmail:    user.Email,
		ImageURL:        defaultAvatarURL(user.FullName),
		Age:             input.Age,
		UserID:          &user.ID,
	}

	trainerID, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		return nil, err
	}
	trainer.ID = trainerID

	user.Role = domain.RoleTrainer
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return trainer, nil
}

// authorizeEdit checks that the actor may modify the given profile.
// Admins may edit anything; trainers only profiles they own, matched by
// the account link or, for older profiles without one, by contact email.
func (s *trainerProfileService) authorizeEdit(ctx context.Context, trainer *domain.Trainer, actor Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if trainer.UserID != nil {
		if *trainer.UserID == actor.ID {
			return nil
		}
		return ErrNotProfileOwner
	}

	account, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotProfileOwner
		}
		return err
	}
	if strings.EqualFold(account.Email, trainer.ContactEmail) {
		return nil
	}
	return ErrNotProfileOwner
}

// UpdateProfile edits a trainer profile and syncs the display name back
// to the owning user account.
func (s *trainerProfileService) UpdateProfile(ctx context.Context, actor Actor, trainerID primitive.ObjectID, update TrainerProfileUpdate) (*domain.Trainer, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEdit(ctx, trainer, actor); err != nil {
		return nil, err
	}

	trainer.Name = update.Name
	trainer.Specialization = update.Specialization
	trainer.ExperienceYears = update.ExperienceYears
	trainer.Bio = update.Bio
	if update.ImageURL != "" {
		trainer.ImageURL = update.ImageURL
	}
	trainer.Age = update.Age

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}

	// Keep the user account's display name in sync. A missing account is
	// tolerated; profile data may predate registration.
	if user, err := s.userRepo.GetByEmail(ctx, trainer.ContactEmail); err == nil {
		if user.FullName != update.Name {
			user.FullName = update.Name
			_ = s.userRepo.Update(ctx, user)
		}
	}

	return trainer, nil
}

// RequestImageUploadURL generates a presigned PUT URL for a new profile image.
func (s *trainerProfileService) RequestImageUploadURL(ctx context.Context, actor Actor, trainerID primitive.ObjectID, contentType string) (*ImageUploadResponse, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEdit(ctx, trainer, actor); err != nil {
		return nil, err
	}

	ext := extensionForContentType(contentType)
	objectKey := path.Join("trainers", trainer.ID.Hex(), uuid.NewString()+ext)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &ImageUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmImageUpload records the uploaded object key on the profile.
// The key is stored and presigned for viewing on demand.
func (s *trainerProfileService) ConfirmImageUpload(ctx context.Context, actor Actor, trainerID primitive.ObjectID, objectKey string) (*domain.Trainer, error) {
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}

	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEdit(ctx, trainer, actor); err != nil {
		return nil, err
	}

	trainer.ImageURL = objectKey
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// ImageDownloadURL returns a temporary viewing URL for the trainer's
// stored profile image. External http(s) image references pass through
// unchanged; object keys get presigned.
func (s *trainerProfileService) ImageDownloadURL(ctx context.Context, trainerID primitive.ObjectID) (string, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return "", err
	}

	if trainer.ImageURL == "" {
		return "", ErrTrainerHasNoImage
	}
	if strings.HasPrefix(trainer.ImageURL, "http://") || strings.HasPrefix(trainer.ImageURL, "https://") {
		return trainer.ImageURL, nil
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, trainer.ImageURL, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

// defaultAvatarURL builds a placeholder avatar from the trainer's name.
func defaultAvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s", url.QueryEscape(name))
}

func extensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
