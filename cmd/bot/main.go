package main

import (
	"log"

	"cleaneye/config"
	telegram "cleaneye/internal/api"
	"cleaneye/internal/container"
	"cleaneye/internal/infrastructure/storage"
	"cleaneye/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	detector, err := vision.NewYOLODetector(cfg.ModelPath, cfg.ClassNames, cfg.Confidence)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer detector.Close()

	// Создаём хранилища: пользователи в памяти, отчёты на диске
	userRepo := storage.NewMemoryUserRepository()
	reportRepo := storage.NewFileReportRepository(cfg.ReportsDir)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, detector, reportRepo, cfg.Confidence)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
