package service

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"alcyxob/run-schedule/internal/storage"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExportUnavailable = errors.New("diary export storage is not configured")
)

const exportContentType = "text/csv"

// DiaryInput is what the user logs for a training. Nil numbers fall back to
// the planned totals, a zero Date to the training day.
type DiaryInput struct {
	Date     time.Time
	Distance *float64
	Time     *int
	Comments string
}

// DiaryExport points at an uploaded CSV copy of the diary.
type DiaryExport struct {
	ObjectKey string    `json:"objectKey"`
	URL       string    `json:"url"`
	Entries   int       `json:"entries"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DiaryService interface {
	SuggestEntry(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.DiaryEntry, error)
	AddEntry(ctx context.Context, userID, trainingID primitive.ObjectID, input DiaryInput) (*domain.DiaryEntry, error)
	ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.DiaryEntry, error)
	ExportEntries(ctx context.Context, userID primitive.ObjectID) (*DiaryExport, error)
}

type diaryService struct {
	diaryRepo    repository.DiaryRepository
	trainingRepo repository.TrainingRepository
	planRepo     repository.WorkoutPlanRepository
	fileStorage  storage.FileStorage // nil disables exports
	urlExpiry    time.Duration
}

// NewDiaryService creates a new instance of diaryService.
func NewDiaryService(
	diaryRepo repository.DiaryRepository,
	trainingRepo repository.TrainingRepository,
	planRepo repository.WorkoutPlanRepository,
	fileStorage storage.FileStorage,
	urlExpiry time.Duration,
) DiaryService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &diaryService{
		diaryRepo:    diaryRepo,
		trainingRepo: trainingRepo,
		planRepo:     planRepo,
		fileStorage:  fileStorage,
		urlExpiry:    urlExpiry,
	}
}

// SuggestEntry prefills a diary entry from the planned training.
func (s *diaryService) SuggestEntry(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.DiaryEntry, error) {
	training, err := s.ownedTraining(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}
	return suggestionFor(userID, training), nil
}

func suggestionFor(userID primitive.ObjectID, training *domain.Training) *domain.DiaryEntry {
	entry := &domain.DiaryEntry{
		UserID:       userID,
		TrainingID:   training.ID,
		Date:         domain.CivilDate(training.Day),
		TrainingInfo: training.Info(),
	}
	if d := training.TotalDistance(); d != nil {
		entry.Distance = *d
	}
	if t := training.TotalTime(); t != nil {
		entry.Time = *t
	}
	return entry
}

// AddEntry logs a diary entry and marks the training accomplished.
func (s *diaryService) AddEntry(ctx context.Context, userID, trainingID primitive.ObjectID, input DiaryInput) (*domain.DiaryEntry, error) {
	training, err := s.ownedTraining(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}
	if input.Distance != nil && *input.Distance < 0 {
		return nil, fmt.Errorf("%w: distance cannot be negative", ErrInvalidInput)
	}
	if input.Time != nil && *input.Time < 0 {
		return nil, fmt.Errorf("%w: time cannot be negative", ErrInvalidInput)
	}

	entry := suggestionFor(userID, training)
	if !input.Date.IsZero() {
		entry.Date = domain.CivilDate(input.Date)
	}
	if input.Distance != nil {
		entry.Distance = *input.Distance
	}
	if input.Time != nil {
		entry.Time = *input.Time
	}
	entry.Comments = strings.TrimSpace(input.Comments)

	id, err := s.diaryRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	// An entry only exists for an accomplished training.
	if err := s.trainingRepo.MarkAccomplished(ctx, training.ID); err != nil {
		if delErr := s.diaryRepo.Delete(ctx, id); delErr != nil {
			log.Printf("ERROR: Diary entry %s left for training %s not marked accomplished: %v", id.Hex(), training.ID.Hex(), delErr)
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries returns the user's diary, oldest first.
func (s *diaryService) ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.DiaryEntry, error) {
	return s.diaryRepo.GetByUserID(ctx, userID)
}

// ExportEntries uploads the diary as CSV and returns a temporary download link.
func (s *diaryService) ExportEntries(ctx context.Context, userID primitive.ObjectID) (*DiaryExport, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}
	entries, err := s.diaryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := renderDiaryCSV(entries)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exports/%s/%s.csv", userID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, exportContentType, bytes.NewReader(body)); err != nil {
		return nil, err
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		// Nobody can reach the object without a link.
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.Printf("WARN: Failed to remove unreachable export %s: %v", objectKey, delErr)
		}
		return nil, err
	}

	log.Printf("INFO: Exported %d diary entries of user %s to %s", len(entries), userID.Hex(), objectKey)
	return &DiaryExport{
		ObjectKey: objectKey,
		URL:       url,
		Entries:   len(entries),
		ExpiresAt: time.Now().UTC().Add(s.urlExpiry),
	}, nil
}

var diaryCSVHeader = []string{"date", "training", "distance_km", "time_min", "comments"}

func renderDiaryCSV(entries []domain.DiaryEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(diaryCSVHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		record := []string{
			e.Date.Format(domain.DateLayout),
			e.TrainingInfo,
			strconv.FormatFloat(e.Distance, 'f', 1, 64),
			strconv.Itoa(e.Time),
			e.Comments,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ownedTraining loads a training and checks the user owns its plan.
func (s *diaryService) ownedTraining(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	if _, err := loadOwnedPlan(ctx, s.planRepo, userID, training.WorkoutPlanID); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return training, nil
}
