package service

import (
	"context"
	"errors"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTrainerNotFound  = errors.New("trainer not found")
	ErrNoPendingRequest = errors.New("user has no pending enrollment request")
	ErrClientNotManaged = errors.New("client is not managed by this trainer")
)

// ClientSummary is the identity-plus-goal view a trainer sees of a linked
// or requesting user.
type ClientSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Goal     string             `json:"goal"`
	Progress int                `json:"progress,omitempty"`
	Status   string             `json:"status,omitempty"`
}

// EnrollmentService owns the user-trainer relationship lifecycle:
// none -> pending -> active, with reject/cancel/remove paths back to none.
//
// Trainer-side operations take the acting trainer's ACCOUNT id (the
// authenticated user), never a caller-chosen profile id; the service
// resolves the account to its trainer profiles itself.
type EnrollmentService interface {
	RequestEnrollment(ctx context.Context, userID, trainerID primitive.ObjectID) error
	AcceptRequest(ctx context.Context, trainerUserID, userID primitive.ObjectID) (*domain.User, error)
	RejectRequest(ctx context.Context, trainerUserID, userID primitive.ObjectID) error
	CancelEnrollment(ctx context.Context, userID primitive.ObjectID) error
	RemoveClient(ctx context.Context, trainerUserID, userID primitive.ObjectID) error
	ListPendingRequests(ctx context.Context, trainerUserID primitive.ObjectID) ([]ClientSummary, error)
	ListClients(ctx context.Context, trainerUserID primitive.ObjectID) ([]ClientSummary, error)
}

// --- Service Implementation ---

// enrollmentService implements the EnrollmentService interface.
type enrollmentService struct {
	userRepo    repository.UserRepository
	trainerRepo repository.TrainerRepository
}

// NewEnrollmentService creates a new instance of enrollmentService.
func NewEnrollmentService(userRepo repository.UserRepository, trainerRepo repository.TrainerRepository) EnrollmentService {
	return &enrollmentService{
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
	}
}

// RequestEnrollment records the user's intent to enroll with a trainer.
// The pending link is overwritten unconditionally: a second request
// silently supersedes a prior pending one, last write wins. A standing
// active link to a previous trainer is NOT cleared; it stays in place
// until the new request is accepted.
func (s *enrollmentService) RequestEnrollment(ctx context.Context, userID, trainerID primitive.ObjectID) error {
	if userID.IsZero() || trainerID.IsZero() {
		return errors.New("user ID and trainer ID are required")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := s.trainerRepo.GetByID(ctx, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	return s.userRepo.SetPendingTrainer(ctx, userID, &trainerID)
}

// AcceptRequest promotes the user's pending link to the active one and
// clears the pending field. Fails when nothing is pending, or when the
// pending request points at a different trainer than the caller.
func (s *enrollmentService) AcceptRequest(ctx context.Context, trainerUserID, userID primitive.ObjectID) (*domain.User, error) {
	if trainerUserID.IsZero() || userID.IsZero() {
		return nil, errors.New("trainer and user IDs are required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.PendingTrainerID == nil || user.PendingTrainerID.IsZero() {
		return nil, ErrNoPendingRequest
	}

	profileIDs, err := s.actingTrainerProfiles(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	if !containsID(profileIDs, *user.PendingTrainerID) {
		// The request is addressed to somebody else; from this trainer's
		// point of view there is nothing pending.
		return nil, ErrNoPendingRequest
	}

	promoted := *user.PendingTrainerID
	if err := s.userRepo.PromotePendingTrainer(ctx, userID, promoted); err != nil {
		return nil, err
	}

	user.TrainerID = &promoted
	user.PendingTrainerID = nil
	user.PasswordHash = ""
	return user, nil
}

// RejectRequest clears the user's pending link when it points at one of
// the caller's profiles. Rejecting when nothing is pending for this
// trainer is a no-op, not an error; a pending request addressed to a
// different trainer and the active link are never touched.
func (s *enrollmentService) RejectRequest(ctx context.Context, trainerUserID, userID primitive.ObjectID) error {
	if trainerUserID.IsZero() || userID.IsZero() {
		return errors.New("trainer and user IDs are required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.PendingTrainerID == nil || user.PendingTrainerID.IsZero() {
		return nil
	}

	profileIDs, err := s.actingTrainerProfiles(ctx, trainerUserID)
	if err != nil {
		return err
	}
	if !containsID(profileIDs, *user.PendingTrainerID) {
		return nil
	}

	return s.userRepo.SetPendingTrainer(ctx, userID, nil)
}

// CancelEnrollment is the user-initiated clear of the active link.
func (s *enrollmentService) CancelEnrollment(ctx context.Context, userID primitive.ObjectID) error {
	if userID.IsZero() {
		return errors.New("user ID is required")
	}

	err := s.userRepo.SetTrainer(ctx, userID, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// RemoveClient is the trainer-initiated clear of a client's active link.
// The calling trainer must actually manage the client: the client's
// active link has to point at one of the caller's profiles (profiles
// sharing the caller's contact email count as the same person).
func (s *enrollmentService) RemoveClient(ctx context.Context, trainerUserID, userID primitive.ObjectID) error {
	if trainerUserID.IsZero() || userID.IsZero() {
		return errors.New("trainer and user IDs are required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	profileIDs, err := s.actingTrainerProfiles(ctx, trainerUserID)
	if err != nil {
		return err
	}

	if user.TrainerID == nil || !containsID(profileIDs, *user.TrainerID) {
		return ErrClientNotManaged
	}

	return s.userRepo.SetTrainer(ctx, userID, nil)
}

// ListPendingRequests returns the users with an open request for any of
// the caller's profiles, as identity+goal summaries.
func (s *enrollmentService) ListPendingRequests(ctx context.Context, trainerUserID primitive.ObjectID) ([]ClientSummary, error) {
	if trainerUserID.IsZero() {
		return nil, errors.New("trainer ID is required")
	}

	profileIDs, err := s.actingTrainerProfiles(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByPendingTrainerIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClientSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ClientSummary{
			ID:    u.ID,
			Name:  u.FullName,
			Email: u.Email,
			Goal:  u.Goal,
		})
	}
	return summaries, nil
}

// ListClients returns the users actively linked to any of the caller's
// profiles, deduplicated by user identity.
func (s *enrollmentService) ListClients(ctx context.Context, trainerUserID primitive.ObjectID) ([]ClientSummary, error) {
	if trainerUserID.IsZero() {
		return nil, errors.New("trainer ID is required")
	}

	profileIDs, err := s.actingTrainerProfiles(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByTrainerIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]bool, len(users))
	summaries := make([]ClientSummary, 0, len(users))
	for _, u := range users {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true

		name := u.FullName
		if name == "" {
			name = "Unknown User"
		}
		goal := u.Goal
		if goal == "" {
			goal = "No goal set"
		}
		summaries = append(summaries, ClientSummary{
			ID:       u.ID,
			Name:     name,
			Email:    u.Email,
			Goal:     goal,
			Progress: clientProgress(u.FullName),
			Status:   "Active",
		})
	}
	return summaries, nil
}

// actingTrainerProfiles resolves the authenticated trainer's account to
// the full set of profile ids registered under the account's contact
// email. Duplicate profiles per person are tolerated in the directory, so
// client links may point at any of them. The caller's identity comes from
// the account, never from request input.
func (s *enrollmentService) actingTrainerProfiles(ctx context.Context, trainerUserID primitive.ObjectID) ([]primitive.ObjectID, error) {
	account, err := s.userRepo.GetByID(ctx, trainerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	profiles, err := s.trainerRepo.FindByContactEmail(ctx, account.Email)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrTrainerNotFound
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// clientProgress derives a stable placeholder progress percentage until
// real progress tracking lands.
func clientProgress(name string) int {
	if name == "" {
		return 15
	}
	return (len(name)*7)%71 + 15
}
