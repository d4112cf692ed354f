package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string   // токен бота, нужен только для cmd/bot
	ModelPath     string   // путь к весам YOLOv8 в формате ONNX
	ReportsDir    string   // корневой каталог отчётов
	Confidence    float64  // порог уверенности детектора
	ClassNames    []string // классы модели, пусто — значения по умолчанию
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		ModelPath:     getEnv("MODEL_PATH", filepath.Join("Weights", "best.onnx")),
		ReportsDir:    getEnv("REPORTS_DIR", filepath.Join("outputs", "reports")),
		Confidence:    getEnvAsFloat("CONFIDENCE", 0.25),
		ClassNames:    splitList(os.Getenv("CLASS_NAMES")),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
