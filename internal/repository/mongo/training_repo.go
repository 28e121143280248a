// internal/repository/mongo/training_repo.go
package mongo

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingCollectionName = "trainings"

type mongoTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingRepository creates a new Training repository.
func NewMongoTrainingRepository(db *mongo.Database) repository.TrainingRepository {
	return &mongoTrainingRepository{
		collection: db.Collection(trainingCollectionName),
	}
}

// Create inserts a new training. The day is normalized to a civil date.
func (r *mongoTrainingRepository) Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error) {
	if training.WorkoutPlanID == primitive.NilObjectID || training.TrainingMain == "" {
		return primitive.NilObjectID, errors.New("training requires workoutPlanId and trainingMain")
	}
	training.ID = primitive.NewObjectID()
	training.Day = domain.CivilDate(training.Day)
	now := time.Now().UTC()
	training.CreatedAt = now
	training.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, training)
	if err != nil {
		// Unique index on (workoutPlanId, day)
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted training ID")
	}
	return insertedID, nil
}

// GetByID retrieves a training by its ID.
func (r *mongoTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error) {
	var training domain.Training
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&training)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &training, nil
}

// GetByPlanID returns every training of a plan ordered by day.
func (r *mongoTrainingRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Training, error) {
	return r.find(ctx, bson.M{"workoutPlanId": planID})
}

// FindByPlanAndMonth returns the plan's trainings whose day falls in the given month.
func (r *mongoTrainingRepository) FindByPlanAndMonth(ctx context.Context, planID primitive.ObjectID, year int, month time.Month) ([]domain.Training, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	filter := bson.M{
		"workoutPlanId": planID,
		"day": bson.M{
			"$gte": first,
			"$lt":  first.AddDate(0, 1, 0),
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoTrainingRepository) find(ctx context.Context, filter bson.M) ([]domain.Training, error) {
	trainings := []domain.Training{}
	findOptions := options.Find().SetSort(bson.D{{Key: "day", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return trainings, nil
}

// FindByPlanAndDay returns the single training of a plan on day.
// ErrNotFound when there is none, ErrAmbiguous when there are several.
func (r *mongoTrainingRepository) FindByPlanAndDay(ctx context.Context, planID primitive.ObjectID, day time.Time) (*domain.Training, error) {
	filter := bson.M{"workoutPlanId": planID, "day": domain.CivilDate(day)}
	trainings := []domain.Training{}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	switch len(trainings) {
	case 0:
		return nil, repository.ErrNotFound
	case 1:
		return &trainings[0], nil
	default:
		return nil, repository.ErrAmbiguous
	}
}

// Update saves the editable fields of a training. The plan reference never changes.
func (r *mongoTrainingRepository) Update(ctx context.Context, training *domain.Training) error {
	if training.ID == primitive.NilObjectID {
		return errors.New("training ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"day":                domain.CivilDate(training.Day),
			"trainingMain":       training.TrainingMain,
			"distanceMain":       training.DistanceMain,
			"timeMain":           training.TimeMain,
			"trainingAdditional": training.TrainingAdditional,
			"distanceAdditional": training.DistanceAdditional,
			"timeAdditional":     training.TimeAdditional,
			"accomplished":       training.Accomplished,
			"updatedAt":          time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": training.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkAccomplished flags the training as done.
func (r *mongoTrainingRepository) MarkAccomplished(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"accomplished": true, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a single training.
func (r *mongoTrainingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByPlanID removes every training of a plan and reports how many went.
func (r *mongoTrainingRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"workoutPlanId": planID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureTrainingIndexes creates necessary indexes for the trainings collection.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One training per plan day; also serves the month range query
			Keys:    bson.D{{Key: "workoutPlanId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
