package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
)

// exerciseDocument — представление упражнения в коллекции exercises.
// Дата хранится строкой в формате domain.DateLayout: такие строки
// сравниваются $gte/$lte так же, как календарные даты.
type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        string             `bson:"date"`
}

func (d exerciseDocument) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date,
	}
}

// ExerciseStore реализует ports.ExerciseStore поверх коллекции exercises.
type ExerciseStore struct {
	col    *mongo.Collection
	logger *slog.Logger
}

// NewExerciseStore создаёт новый экземпляр ExerciseStore.
func NewExerciseStore(client *Client, logger *slog.Logger) *ExerciseStore {
	return &ExerciseStore{col: client.Exercises(), logger: logger}
}

// SaveExercise вставляет запись об упражнении и проставляет ей id.
func (s *ExerciseStore) SaveExercise(ctx context.Context, exercise *domain.Exercise) error {
	start := time.Now()

	doc := exerciseDocument{
		Username:    exercise.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		s.logger.Error("failed to insert exercise", "username", exercise.Username, "error", err)
		return fmt.Errorf("ошибка при сохранении упражнения: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("хранилище вернуло идентификатор неожиданного типа: %T", res.InsertedID)
	}
	exercise.ID = oid.Hex()

	s.logger.Info("exercise inserted",
		"exercise_id", exercise.ID,
		"username", exercise.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// FindExercises возвращает упражнения по фильтру в естественном порядке
// коллекции (явная сортировка не применяется).
func (s *ExerciseStore) FindExercises(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error) {
	start := time.Now()

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.col.Find(ctx, ExerciseQuery(filter), opts)
	if err != nil {
		s.logger.Error("failed to find exercises", "username", filter.Username, "error", err)
		return nil, fmt.Errorf("ошибка при выборке упражнений: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка при чтении выборки упражнений: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercises = append(exercises, doc.toDomain())
	}

	s.logger.Info("exercises query completed",
		"username", filter.Username,
		"found", len(exercises),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return exercises, nil
}

// ExerciseQuery транслирует доменный фильтр журнала в bson-выражение:
// равенство по username плюс диапазон $gte/$lte по date, если он задан.
func ExerciseQuery(filter domain.LogFilter) bson.M {
	query := bson.M{"username": filter.Username}
	if filter.Date == nil {
		return query
	}

	dateQuery := bson.M{}
	if filter.Date.From != "" {
		dateQuery["$gte"] = filter.Date.From
	}
	if filter.Date.To != "" {
		dateQuery["$lte"] = filter.Date.To
	}
	query["date"] = dateQuery
	return query
}
