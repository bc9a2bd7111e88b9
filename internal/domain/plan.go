package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is a training program a trainer assigns to a managed client.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`       // The client
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Assigning trainer profile
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   string             `bson:"exercises,omitempty" json:"exercises,omitempty"` // e.g. "Pushups: 3x12, Squats: 4x10"
	AssignedAt  time.Time          `bson:"assignedAt" json:"assignedAt"`
}

// MealPlan is a nutrition program a trainer assigns to a managed client.
type MealPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Meals       string             `bson:"meals,omitempty" json:"meals,omitempty"` // Breakfast, Lunch, Dinner, Snacks as formatted text
	AssignedAt  time.Time          `bson:"assignedAt" json:"assignedAt"`
}
