// internal/domain/workout_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is a user-owned training schedule covering the closed date range
// [StartDate, EndDate]. Trainings reference the plan by ID; the plan keeps no
// list of them.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name        string             `bson:"name" json:"name"` // e.g., "Spring half marathon"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"` // Civil date, UTC midnight
	EndDate     time.Time          `bson:"endDate" json:"endDate"`     // Civil date, UTC midnight, inclusive
	IsActive    bool               `bson:"isActive" json:"isActive"`   // At most one active plan per owner
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Owns reports whether the user is the plan owner.
func (p *WorkoutPlan) Owns(userID primitive.ObjectID) bool {
	return p.OwnerID == userID
}

// ContainsDay reports whether day lies within the plan range, both ends included.
func (p *WorkoutPlan) ContainsDay(day time.Time) bool {
	d := CivilDate(day)
	return !d.Before(CivilDate(p.StartDate)) && !d.After(CivilDate(p.EndDate))
}
