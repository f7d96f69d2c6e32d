package app

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "calcHistory/internal/api/grpc"
	"calcHistory/internal/api/http"
	"calcHistory/internal/infrastructure/click"
	"calcHistory/internal/infrastructure/kafka"
	"calcHistory/internal/infrastructure/mongo"
	"calcHistory/internal/infrastructure/pg"
	"calcHistory/internal/infrastructure/redis"
	"calcHistory/internal/infrastructure/sqlite"
	"calcHistory/internal/pkg/logger"
)

const AppName = "CALCULATOR"

// Драйверы хранилища записей.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
)

// StoreConfig — выбор хранилища. Переменная: CALCULATOR_STORE_DRIVER.
type StoreConfig struct {
	Driver string `default:"sqlite"`
}

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
// Путь к SQLite: CALCULATOR_SQLITE_DATABASE_PATH, иначе просто DATABASE_PATH.
// Тег envconfig у поля-значения включает чтение имени без префикса, поэтому он есть только у DATABASE_PATH.
type Config struct {
	Log        logger.Config     `envconfig:"LOG"`
	Server     http.ServerConfig `envconfig:"SERVER"`
	Grpc       apigrpc.Config    `envconfig:"GRPC"`
	Store      StoreConfig       `envconfig:"STORE"`
	SQLite     sqlite.Config     `envconfig:"SQLITE"`
	DB         pg.Config         `envconfig:"DB"`
	Mongo      mongo.Config      `envconfig:"MONGO"`
	Redis      redis.Config      `envconfig:"REDIS"`
	Kafka      kafka.Config      `envconfig:"KAFKA"`
	ClickHouse click.Config      `envconfig:"CLICKHOUSE"`
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Переменные окружения важнее значений из .env.
func LoadCfg() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: .env не прочитан, используем окружение: %v", err)
	}
	return loadEnv()
}

func loadEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
