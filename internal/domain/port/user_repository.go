package port

import (
	"context"

	"cleaneye/internal/domain/entity"
)

// UserRepository хранилище пользователей бота
type UserRepository interface {
	// Get возвращает пользователя, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error
}
