// internal/repository/mongo/diary_repo.go
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

const diaryCollectionName = "diary_entries"

type mongoDiaryRepository struct {
	collection *mongo.Collection
}

// NewMongoDiaryRepository creates a new diary repository.
func NewMongoDiaryRepository(db *mongo.Database) repository.DiaryRepository {
	return &mongoDiaryRepository{
		collection: db.Collection(diaryCollectionName),
	}
}

// Create inserts a diary entry.
func (r *mongoDiaryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.TrainingID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("diary entry requires userId and trainingId")
	}
	entry.ID = primitive.NewObjectID()
	entry.Date = domain.CivilDate(entry.Date)
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted diary entry ID")
	}
	return insertedID, nil
}

// GetByUserID lists a user's diary, oldest first.
func (r *mongoDiaryRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.DiaryEntry, error) {
	entries := []domain.DiaryEntry{}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a diary entry.
func (r *mongoDiaryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDiaryIndexes creates necessary indexes for the diary collection.
func EnsureDiaryIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainingId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
