package port

import (
	"context"

	"cleaneye/internal/domain/entity"
)

// WasteDetector интерфейс детектора мусора
type WasteDetector interface {
	// Detect анализирует изображение и возвращает найденные объекты.
	// Порог уверенности применяется самим детектором.
	Detect(ctx context.Context, imageData []byte) (*entity.DetectionResult, error)

	// Annotate создаёт копию изображения с рамками и подписями детекций
	Annotate(imageData []byte, result *entity.DetectionResult) ([]byte, error)

	// ModelReference возвращает идентификатор модели для провенанса отчёта
	ModelReference() string
}
