package di

import (
	"io"

	minioadapter "github.com/vcward/freecodecamp-exercise-tracker/internal/adapter/storage/minio"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/app"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/config"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/core/ports"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/database/client"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/database/mongodb"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/database/storage"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/logger"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/rabbitmq"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация выбранного бэкенда хранилища
	var (
		userStore     ports.UserStore
		exerciseStore ports.ExerciseStore
		storeCloser   io.Closer
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dbClient, err := client.NewClient(cfg.DatabaseURL, slogger)
		if err != nil {
			return nil, err
		}
		userStore = storage.NewUserStorage(dbClient.Gorm, slogger)
		exerciseStore = storage.NewExerciseStorage(dbClient.Gorm, slogger)
		storeCloser = dbClient

	default: // config.StoreDriverMongo
		mongoClient, err := mongodb.NewClient(cfg.MongoURI, cfg.MongoDBName, slogger)
		if err != nil {
			return nil, err
		}
		userStore = mongodb.NewUserStore(mongoClient, slogger)
		exerciseStore = mongodb.NewExerciseStore(mongoClient, slogger)
		storeCloser = mongoClient
	}

	// 3. Публикация событий — опциональна
	var (
		publisher ports.ExerciseEventPublisher
		consumer  ports.ExerciseEventConsumer
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(cfg.RabbitMQ.RabbitMQURL, cfg.RabbitMQ.RabbitMQQueueName, slogger)
		if err != nil {
			return nil, err
		}
		publisher = mqClient
		consumer = mqClient
	} else {
		slogger.Info("RABBITMQ_URL not set, exercise events disabled")
	}

	// 4. Архивное объектное хранилище — опционально
	var archive usecase.ArchiveStorage
	if cfg.MinioEndpoint != "" {
		archiveClient, err := minioadapter.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		archive = archiveClient
	} else {
		slogger.Info("MINIO_ENDPOINT not set, log archiving disabled")
	}

	// 5. Инициализация бизнес-логики
	trackerUseCase := usecase.NewTrackerUseCase(userStore, exerciseStore, publisher, archive, slogger)

	// 6. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		storeCloser,
		trackerUseCase,
		publisher,
		consumer,
	)

	slogger.Info("all dependencies initialized", "store_driver", cfg.StoreDriver)
	return application, nil
}
