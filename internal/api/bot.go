package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cleaneye/internal/container"
	"cleaneye/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот CleanEye для поиска мусора на фотографиях.

📸 Отправьте мне фото участка, и я найду мусор и соберу отчёт о загрязнении.

📋 Команды:
/check — начать проверку участка
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото участка
2️⃣ Бот найдёт мусор на изображении
3️⃣ Вы получите фото с рамками и отчёт: статус, серьёзность, оценка чистоты

💡 Рекомендации:
• Снимайте при хорошем освещении
• Держите камеру ровно
• Фото должно быть чётким

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото участка для проверки на мусор."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото участка для проверки на мусор."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	services *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		services: services,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.services.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.services.UserService.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		b.services.UserService.BeginCheck(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		b.services.UserService.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto запускает детекцию и отправляет отчёт с размеченным фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	b.services.UserService.SetState(ctx, userID, chatID, entity.StateProcessing)
	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		b.services.UserService.Cancel(ctx, userID, chatID)
		return
	}

	imageName := fmt.Sprintf("photo_%s.jpg", photo.FileUniqueID)
	report, err := b.services.ReportService.InspectImage(ctx, imageName, imageData)
	if err != nil {
		log.Printf("Error building report: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		b.services.UserService.Cancel(ctx, userID, chatID)
		return
	}

	b.sendReport(chatID, report)
	b.services.UserService.Cancel(ctx, userID, chatID)
}

// sendReport отправляет размеченное фото с краткой сводкой отчёта
func (b *Bot) sendReport(chatID int64, report *entity.Report) {
	caption := fmt.Sprintf(
		"%s Отчёт %s\n\nНайдено объектов: %d\nСтатус: %s (%s)\nОценка чистоты: %d/100",
		statusEmoji(report.Detection.Status),
		report.ID,
		report.Detection.TotalItems,
		report.Detection.Status,
		report.Detection.Severity,
		report.Detection.CleanlinessScore,
	)

	annotated, err := os.ReadFile(report.Image.After)
	if err != nil {
		log.Printf("Error reading annotated image: %v", err)
		b.sendMessage(chatID, caption)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "after.jpg",
		Bytes: annotated,
	})
	photo.Caption = caption

	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending report photo: %v", err)
		b.sendMessage(chatID, caption)
	}
}

func statusEmoji(status entity.Status) string {
	switch status {
	case entity.StatusClean:
		return "✅"
	case entity.StatusHigh:
		return "🚨"
	default:
		return "⚠️"
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
