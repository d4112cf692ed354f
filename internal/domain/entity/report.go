package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status итоговая оценка загрязнённости участка.
type Status string

// Severity уровень серьёзности, парный к статусу.
type Severity string

const (
	StatusClean    Status = "CLEAN"
	StatusLow      Status = "LOW"
	StatusModerate Status = "MODERATE"
	StatusHigh     Status = "HIGH"

	SeverityNone     Severity = "NONE"
	SeverityMinor    Severity = "MINOR"
	SeverityMedium   Severity = "MEDIUM"
	SeverityCritical Severity = "CRITICAL"
)

// Classify определяет статус и серьёзность по количеству найденных объектов.
// Границы включительные, проверяются по возрастанию.
func Classify(totalItems int) (Status, Severity) {
	switch {
	case totalItems == 0:
		return StatusClean, SeverityNone
	case totalItems <= 3:
		return StatusLow, SeverityMinor
	case totalItems <= 7:
		return StatusModerate, SeverityMedium
	default:
		return StatusHigh, SeverityCritical
	}
}

// CleanlinessScore считает оценку чистоты: 100 минус 10 за каждый объект,
// не ниже нуля.
func CleanlinessScore(totalItems int) int {
	score := 100 - totalItems*10
	if score < 0 {
		return 0
	}
	return score
}

// ModelTypeYOLOv8 тип модели, пишется в отчёт как провенанс.
const ModelTypeYOLOv8 = "YOLOv8"

// TimestampLayout формат человекочитаемой отметки времени в отчёте.
const TimestampLayout = "2006-01-02 15:04:05"

// reportIDLayout формат отметки времени внутри идентификатора отчёта.
const reportIDLayout = "20060102-150405"

// NewReportID собирает идентификатор отчёта вида CLN-YYYYMMDD-HHMMSS-XXXXXXXX.
// Суффикс передаётся снаружи, чтобы тесты могли его зафиксировать.
func NewReportID(t time.Time, suffix string) string {
	return fmt.Sprintf("CLN-%s-%s", t.Format(reportIDLayout), suffix)
}

// RandomSuffix возвращает случайный восьмисимвольный hex-суффикс в верхнем регистре.
func RandomSuffix() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// ImageSize размеры исходного изображения в пикселях.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageInfo пути к артефактам изображения и его размеры.
type ImageInfo struct {
	Original string    `json:"original"` // путь к исходному файлу
	Before   string    `json:"before"`   // копия «до» внутри каталога отчёта
	After    string    `json:"after"`    // размеченная копия «после»
	Size     ImageSize `json:"size"`
}

// DetectionSummary сводка детекции: статус, серьёзность и оценка чистоты
// выводятся только из количества объектов и никогда не задаются порознь.
type DetectionSummary struct {
	TotalItems          int      `json:"total_items"`
	Status              Status   `json:"status"`
	Severity            Severity `json:"severity"`
	CleanlinessScore    int      `json:"cleanliness_score"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
}

// Statistics разбивка по классам и полный список детекций.
type Statistics struct {
	ClassCounts map[string]int `json:"class_counts"`
	Detections  []Detection    `json:"detections"`
}

// ModelInfo провенанс модели: путь и тип, обе строки непрозрачны.
type ModelInfo struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Report итоговый отчёт по одному изображению. Создаётся один раз,
// после записи на диск не изменяется и не перезаписывается.
type Report struct {
	ID         string           `json:"report_id"`
	Timestamp  string           `json:"timestamp"`
	Image      ImageInfo        `json:"image"`
	Detection  DetectionSummary `json:"detection"`
	Statistics Statistics       `json:"statistics"`
	Model      ModelInfo        `json:"model"`
}

// NewReport собирает отчёт из результата детекции. Момент времени и суффикс
// идентификатора — внешние коллабораторы: отметка времени и идентификатор
// всегда согласованы, потому что выводятся из одного instant.
func NewReport(t time.Time, suffix string, imagePath string, result *DetectionResult, threshold float64, modelPath string) *Report {
	total := result.Total()
	status, severity := Classify(total)

	return &Report{
		ID:        NewReportID(t, suffix),
		Timestamp: t.Format(TimestampLayout),
		Image: ImageInfo{
			Original: imagePath,
			Size:     ImageSize{Width: result.ImageWidth, Height: result.ImageHeight},
		},
		Detection: DetectionSummary{
			TotalItems:          total,
			Status:              status,
			Severity:            severity,
			CleanlinessScore:    CleanlinessScore(total),
			ConfidenceThreshold: threshold,
		},
		Statistics: Statistics{
			ClassCounts: result.ClassCounts(),
			Detections:  result.Detections,
		},
		Model: ModelInfo{
			Path: modelPath,
			Type: ModelTypeYOLOv8,
		},
	}
}
