package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды хранилища.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	// Выбор бэкенда хранилища: "mongo" (по умолчанию) или "postgres".
	StoreDriver string `env:"STORE_DRIVER"`

	// Строка подключения к хранилищу документов (обязательна при STORE_DRIVER=mongo).
	MongoURI    string `env:"MONGO_URI"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"exercise_tracker"`

	// Строка подключения к PostgreSQL (обязательна при STORE_DRIVER=postgres).
	DatabaseURL string `env:"DATABASE_URL"`

	ServerPort     string        `env:"PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	StaticDir      string        `env:"STATIC_DIR" envDefault:"public"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Настройки архивного объектного хранилища (MinIO / S3-совместимое).
	// Если MINIO_ENDPOINT не задан, архивирование журналов отключено.
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"exercise-logs"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	// Если RABBITMQ_URL не задан, публикация событий отключена.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"exercise_logged_queue"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Значения по умолчанию, не выражаемые тегами.
	if cfg.ServerPort == "" {
		cfg.ServerPort = "3000"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreDriverMongo
	}

	// Строка подключения выбранного бэкенда обязательна: без хранилища
	// процесс не стартует.
	switch cfg.StoreDriver {
	case StoreDriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI обязателен при STORE_DRIVER=%s", StoreDriverMongo)
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL обязателен при STORE_DRIVER=%s", StoreDriverPostgres)
		}
	default:
		return nil, fmt.Errorf("неизвестный STORE_DRIVER: %s", cfg.StoreDriver)
	}

	return &cfg, nil
}
