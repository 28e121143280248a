// internal/domain/training.go
package domain

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training is one planned workout on one day of a WorkoutPlan.
// A plan holds at most one training per day (unique index on workoutPlanId+day).
type Training struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutPlanID primitive.ObjectID `bson:"workoutPlanId" json:"workoutPlanId"` // Owning plan
	Day           time.Time          `bson:"day" json:"day"`                     // Civil date inside the plan range

	TrainingMain string   `bson:"trainingMain" json:"trainingMain"`                     // e.g., "OWB", "WB2", "TR"
	DistanceMain *float64 `bson:"distanceMain,omitempty" json:"distanceMain,omitempty"` // km, one decimal
	TimeMain     *int     `bson:"timeMain,omitempty" json:"timeMain,omitempty"`         // minutes

	TrainingAdditional string   `bson:"trainingAdditional,omitempty" json:"trainingAdditional,omitempty"` // e.g., "SB", "M3"
	DistanceAdditional *float64 `bson:"distanceAdditional,omitempty" json:"distanceAdditional,omitempty"`
	TimeAdditional     *int     `bson:"timeAdditional,omitempty" json:"timeAdditional,omitempty"`

	Accomplished bool      `bson:"accomplished" json:"accomplished"` // Set once a diary entry is logged
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Info is the human readable summary shown in calendar cells and copied into
// diary entries, e.g. "OWB 10.0km 60min SB".
func (t *Training) Info() string {
	parts := []string{t.TrainingMain}
	if t.DistanceMain != nil && *t.DistanceMain != 0 {
		parts = append(parts, formatKm(*t.DistanceMain))
	}
	if t.TimeMain != nil && *t.TimeMain != 0 {
		parts = append(parts, formatMin(*t.TimeMain))
	}
	if t.TrainingAdditional != "" {
		parts = append(parts, t.TrainingAdditional)
	}
	if t.DistanceAdditional != nil && *t.DistanceAdditional != 0 {
		parts = append(parts, formatKm(*t.DistanceAdditional))
	}
	if t.TimeAdditional != nil && *t.TimeAdditional != 0 {
		parts = append(parts, formatMin(*t.TimeAdditional))
	}
	return strings.Join(parts, " ")
}

// TotalDistance sums main and additional distance. Nil when neither is set.
func (t *Training) TotalDistance() *float64 {
	var total float64
	found := false
	for _, d := range []*float64{t.DistanceMain, t.DistanceAdditional} {
		if d != nil && *d != 0 {
			total += *d
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

// TotalTime sums main and additional minutes. Nil when neither is set.
func (t *Training) TotalTime() *int {
	var total int
	found := false
	for _, m := range []*int{t.TimeMain, t.TimeAdditional} {
		if m != nil && *m != 0 {
			total += *m
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64) + "km"
}

func formatMin(minutes int) string {
	return strconv.Itoa(minutes) + "min"
}
