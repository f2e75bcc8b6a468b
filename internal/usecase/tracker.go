package usecase

import (
	"context"
	"io"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
)

// ArchiveStorage определяет интерфейс для работы с объектным хранилищем
// (AWS S3, MinIO) — порт для выгрузки архивов журналов.
type ArchiveStorage interface {
	// UploadFile загружает объект в хранилище и возвращает его публичный URL.
	// `key` — уникальное имя объекта, `contentType` — его MIME-тип.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// TrackerUseCase определяет интерфейс бизнес-логики трекера упражнений.
type TrackerUseCase interface {
	// CreateUser создаёт пользователя или возвращает существующего
	// с тем же username (первое совпадение).
	CreateUser(ctx context.Context, username string) (*domain.User, error)

	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// AddExercise записывает упражнение для пользователя.
	// Пустая date заменяется текущей датой (UTC); непустая нормализуется
	// в формат domain.DateLayout, нераспознаваемая отклоняется.
	AddExercise(ctx context.Context, userID, description string, duration int, date string) (*domain.ExerciseResult, error)

	// GetLog возвращает журнал упражнений пользователя, отфильтрованный
	// по диапазону дат и ограниченный limit (0 — без ограничения).
	GetLog(ctx context.Context, userID, from, to string, limit int) (*domain.ExerciseLog, error)

	// ArchiveLog выгружает полный журнал пользователя в объектное
	// хранилище и возвращает URL архива.
	ArchiveLog(ctx context.Context, userID string) (string, error)

	// ArchivingEnabled сообщает, сконфигурировано ли архивное хранилище.
	// Без него ArchiveLog всегда возвращает ошибку.
	ArchivingEnabled() bool
}
