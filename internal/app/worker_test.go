package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/messaging/payloads"
)

// stubTracker — минимальная реализация usecase для проверок воркера.
type stubTracker struct {
	archivingEnabled bool
	archivedUserIDs  []string
}

func (s *stubTracker) CreateUser(context.Context, string) (*domain.User, error) { return nil, nil }
func (s *stubTracker) ListUsers(context.Context) ([]domain.User, error)         { return nil, nil }

func (s *stubTracker) AddExercise(context.Context, string, string, int, string) (*domain.ExerciseResult, error) {
	return nil, nil
}

func (s *stubTracker) GetLog(context.Context, string, string, string, int) (*domain.ExerciseLog, error) {
	return nil, nil
}

func (s *stubTracker) ArchiveLog(_ context.Context, userID string) (string, error) {
	s.archivedUserIDs = append(s.archivedUserIDs, userID)
	return "http://archive.local/logs/" + userID + ".json", nil
}

func (s *stubTracker) ArchivingEnabled() bool { return s.archivingEnabled }

// stubConsumer сохраняет переданный обработчик, ничего не потребляя.
type stubConsumer struct {
	handler func(context.Context, payloads.ExerciseLoggedPayload) error
}

func (c *stubConsumer) StartConsumingExerciseLogged(_ context.Context, handler func(context.Context, payloads.ExerciseLoggedPayload) error) error {
	c.handler = handler
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunWorkerRequiresConsumer(t *testing.T) {
	err := runWorker(context.Background(), discardLogger(), &stubTracker{archivingEnabled: true}, nil)
	if err == nil {
		t.Fatal("runWorker() = nil error without consumer, want error")
	}
}

func TestRunWorkerRequiresArchiveStorage(t *testing.T) {
	// без архивного хранилища воркер обязан отказаться стартовать,
	// иначе каждое событие возвращалось бы в очередь бесконечно
	err := runWorker(context.Background(), discardLogger(), &stubTracker{}, &stubConsumer{})
	if err == nil {
		t.Fatal("runWorker() = nil error without archive storage, want error")
	}
	if !strings.Contains(err.Error(), "MINIO_ENDPOINT") {
		t.Errorf("error = %v, want mention of MINIO_ENDPOINT", err)
	}
}

func TestRunWorkerHandlesEvent(t *testing.T) {
	tracker := &stubTracker{archivingEnabled: true}
	consumer := &stubConsumer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runWorker(ctx, discardLogger(), tracker, consumer); err != nil {
		t.Fatalf("runWorker() error: %v", err)
	}
	if consumer.handler == nil {
		t.Fatal("consumer handler was not registered")
	}

	payload := payloads.ExerciseLoggedPayload{UserID: "user-1", Username: "alice"}
	if err := consumer.handler(context.Background(), payload); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(tracker.archivedUserIDs) != 1 || tracker.archivedUserIDs[0] != "user-1" {
		t.Errorf("archived users = %v, want [user-1]", tracker.archivedUserIDs)
	}
}
