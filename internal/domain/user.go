package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system. Regular users track logs and
// enroll with trainers; users promoted to the trainer role additionally
// own one or more Trainer profiles (linked by contact email).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Goal         string             `bson:"goal,omitempty" json:"goal,omitempty"` // Free text, e.g. "Lose weight", "Build muscle"
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Enrollment link fields ---
	// TrainerID references the Trainer profile the user is actively
	// enrolled with. PendingTrainerID references a profile awaiting that
	// trainer's approval. Both may be set at once: a user can request a
	// new trainer while a previous link still stands, and accepting the
	// request replaces the old link.
	TrainerID        *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	PendingTrainerID *primitive.ObjectID `bson:"pendingTrainerId,omitempty" json:"pendingTrainerId,omitempty"`
}

// EnrollmentState is the explicit view over the two optional link fields.
type EnrollmentState string

const (
	EnrollmentNone              EnrollmentState = "none"
	EnrollmentPending           EnrollmentState = "pending"
	EnrollmentActive            EnrollmentState = "active"
	EnrollmentActiveWithPending EnrollmentState = "active_with_pending"
)

// EnrollmentStateOf derives the tagged state from the user's link fields.
func (u *User) EnrollmentStateOf() EnrollmentState {
	hasActive := u.TrainerID != nil && !u.TrainerID.IsZero()
	hasPending := u.PendingTrainerID != nil && !u.PendingTrainerID.IsZero()
	switch {
	case hasActive && hasPending:
		return EnrollmentActiveWithPending
	case hasActive:
		return EnrollmentActive
	case hasPending:
		return EnrollmentPending
	default:
		return EnrollmentNone
	}
}

// Helper methods (Optional but can be useful)
func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
