package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiaryEntry records what was actually done for a training.
// Creating one marks the referenced Training as accomplished.
type DiaryEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	TrainingID   primitive.ObjectID `bson:"trainingId" json:"trainingId"` // Training this entry accomplishes
	Date         time.Time          `bson:"date" json:"date"`             // Civil date
	TrainingInfo string             `bson:"trainingInfo" json:"trainingInfo"`
	Distance     float64            `bson:"distance" json:"distance"` // Total km
	Time         int                `bson:"time" json:"time"`         // Total minutes
	Comments     string             `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
