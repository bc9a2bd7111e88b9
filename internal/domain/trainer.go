package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer is a coaching profile listed in the directory. A person may own
// more than one profile (same ContactEmail, different specializations);
// enrollment links on User records point at profile IDs, not user IDs.
type Trainer struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Specialization  string              `bson:"specialization" json:"specialization"` // e.g. "Weight Loss", "Muscle Gain", "Yoga"
	ExperienceYears int                 `bson:"experienceYears" json:"experienceYears"`
	Bio             string              `bson:"bio,omitempty" json:"bio,omitempty"`
	ContactEmail    string              `bson:"contactEmail" json:"contactEmail"`
	ImageURL        string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Age             int                 `bson:"age,omitempty" json:"age,omitempty"`
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"` // Owning user account, set once known
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
