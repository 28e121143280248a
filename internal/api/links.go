package api

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/domain"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// calendarLinks builds calendar cell targets pointing at the training routes.
type calendarLinks struct {
	prefix string
}

// NewCalendarLinks returns the LinkBuilder for routes mounted under prefix (e.g. "/api/v1").
func NewCalendarLinks(prefix string) calendar.LinkBuilder {
	return calendarLinks{prefix: strings.TrimRight(prefix, "/")}
}

// AddTraining -> <prefix>/plans/<id>/trainings?day=2020-06-03&month=2
func (l calendarLinks) AddTraining(planID primitive.ObjectID, date time.Time, ordinal int) string {
	q := url.Values{}
	q.Set("day", date.Format(domain.DateLayout))
	q.Set("month", strconv.Itoa(ordinal))
	return fmt.Sprintf("%s/plans/%s/trainings?%s", l.prefix, planID.Hex(), q.Encode())
}

// EditTraining -> <prefix>/plans/<id>/trainings/<tid>?month=2
func (l calendarLinks) EditTraining(planID, trainingID primitive.ObjectID, ordinal int) string {
	return fmt.Sprintf("%s/plans/%s/trainings/%s?month=%d", l.prefix, planID.Hex(), trainingID.Hex(), ordinal)
}
