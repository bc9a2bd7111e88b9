package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Daily log records. All three variants are immutable once written: the
// tracker only ever inserts and reads them, aggregation never mutates.
// Numeric fields the client may omit are pointers; aggregation treats a
// nil sum operand as zero and excludes nil values from averages entirely.

// LogDay returns d normalized to midnight UTC so that records written
// with arbitrary timestamps compare equal on the calendar date.
func LogDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// WorkoutLog is a single logged exercise session.
type WorkoutLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	LogDate         time.Time          `bson:"logDate" json:"logDate"` // Calendar day, midnight UTC
	LogTime         string             `bson:"logTime,omitempty" json:"logTime,omitempty"`
	ExerciseType    string             `bson:"exerciseType" json:"exerciseType"`
	DurationMinutes *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CaloriesBurned  *int               `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// MealLog is a single logged meal.
type MealLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	LogDate     time.Time          `bson:"logDate" json:"logDate"`
	MealTime    string             `bson:"mealTime,omitempty" json:"mealTime,omitempty"`
	MealType    string             `bson:"mealType" json:"mealType"` // Breakfast / Lunch / Snack / Dinner
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Calories    *int               `bson:"calories,omitempty" json:"calories,omitempty"`
	Protein     *int               `bson:"protein,omitempty" json:"protein,omitempty"` // grams
	Carbs       *int               `bson:"carbs,omitempty" json:"carbs,omitempty"`     // grams
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// WaterSleepLog is a combined hydration and sleep entry.
type WaterSleepLog struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	LogDate           time.Time          `bson:"logDate" json:"logDate"`
	LogTime           string             `bson:"logTime,omitempty" json:"logTime,omitempty"`
	WaterIntakeLiters *float64           `bson:"waterIntakeLiters,omitempty" json:"waterIntakeLiters,omitempty"`
	SleepHours        *float64           `bson:"sleepHours,omitempty" json:"sleepHours,omitempty"`
	SleepQuality      string             `bson:"sleepQuality,omitempty" json:"sleepQuality,omitempty"` // Poor / Ok / Good / Excellent
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
