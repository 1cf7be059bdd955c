package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	env "github.com/joho/godotenv"
)

type Config struct {
	HTTP_ADDR         string        // Адрес HTTP API
	GRPC_ADDR         string        // Адрес gRPC API
	DB_PATH           string        // Путь к файлу SQLite с пользователями и выгрузками
	JWT_SECRET        string        // Секретный ключ для JWT
	TOKEN_TTL         time.Duration // Время жизни токена
	DEFAULT_PRECISION int           // Точность новых сессий
	PREFERENCES_FILE  string        // YAML с настройками интерфейса
}

const (
	defaultHTTPAddr        = ":8080"
	defaultGRPCAddr        = "localhost:8081"
	defaultDBPath          = "./calculator.db"
	defaultTokenTTLMinutes = 10
	defaultPrecision       = 10
	defaultPreferences     = "calculator.yaml"
)

// LoadConfig читает envFile (если он есть) и переменные окружения.
// Отсутствие файла не ошибка, некорректное значение переменной ошибка
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := env.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	ttl, err := intVar("TOKEN_TTL_MINUTES", defaultTokenTTLMinutes)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: must be positive")
	}

	precision, err := intVar("DEFAULT_PRECISION", defaultPrecision)
	if err != nil {
		return nil, err
	}
	if precision < 2 || precision > 15 {
		return nil, fmt.Errorf("invalid DEFAULT_PRECISION: must be between 2 and 15")
	}

	return &Config{
		HTTP_ADDR:         stringVar("HTTP_ADDR", defaultHTTPAddr),
		GRPC_ADDR:         stringVar("GRPC_ADDR", defaultGRPCAddr),
		DB_PATH:           stringVar("DB_PATH", defaultDBPath),
		JWT_SECRET:        os.Getenv("JWT_SECRET"),
		TOKEN_TTL:         time.Duration(ttl) * time.Minute,
		DEFAULT_PRECISION: precision,
		PREFERENCES_FILE:  stringVar("PREFERENCES_FILE", defaultPreferences),
	}, nil
}

// RequireSecret нужен серверу: без секрета токены подписывать нечем
func (c *Config) RequireSecret() error {
	if c.JWT_SECRET == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

func stringVar(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func intVar(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
