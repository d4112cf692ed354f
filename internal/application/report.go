package app

import (
	"context"
	"errors"
	"os"
	"time"

	"cleaneye/internal/domain/entity"
	"cleaneye/internal/domain/port"
)

// ReportService собирает отчёты о загрязнении по одному изображению.
// Вызов одноразовый и синхронный: промежуточного состояния между шагами нет,
// параллельные вызовы независимы и не разделяют ничего кроме каталога отчётов.
type ReportService struct {
	detector  port.WasteDetector
	reports   port.ReportRepository
	threshold float64

	// Время и суффикс идентификатора — внешние коллабораторы,
	// в тестах их подменяют на фиксированные.
	now       func() time.Time
	newSuffix func() string
}

// NewReportService создаёт сервис сборки отчётов.
func NewReportService(detector port.WasteDetector, reports port.ReportRepository, threshold float64) *ReportService {
	return &ReportService{
		detector:  detector,
		reports:   reports,
		threshold: threshold,
		now:       time.Now,
		newSuffix: entity.RandomSuffix,
	}
}

// Inspect читает изображение с диска, запускает детектор и собирает отчёт.
func (s *ReportService) Inspect(ctx context.Context, imagePath string) (*entity.Report, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, &entity.InputError{Path: imagePath, Err: err}
	}
	return s.InspectImage(ctx, imagePath, data)
}

// InspectImage запускает детектор по уже загруженным байтам и собирает отчёт.
// Ошибки детектора пробрасываются как есть: если детекция не прошла,
// отчёт не создаётся и артефакты не пишутся.
func (s *ReportService) InspectImage(ctx context.Context, imagePath string, imageData []byte) (*entity.Report, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	result, err := s.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	return s.BuildReport(imagePath, imageData, result)
}

// BuildReport собирает и сохраняет отчёт по готовому результату детекции.
// Пустой результат (ноль объектов) — валидный «чистый» исход.
func (s *ReportService) BuildReport(imagePath string, imageData []byte, result *entity.DetectionResult) (*entity.Report, error) {
	if result.ImageWidth <= 0 || result.ImageHeight <= 0 {
		return nil, &entity.InputError{Path: imagePath, Err: errors.New("image has zero area")}
	}

	report := entity.NewReport(s.now(), s.newSuffix(), imagePath, result, s.threshold, s.detector.ModelReference())

	// Копия «после»: рамки рисуются в порядке, в котором их вернул детектор.
	annotated, err := s.detector.Annotate(imageData, result)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(report, imageData, annotated); err != nil {
		return nil, err
	}

	return report, nil
}
