package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cleaneye/internal/domain/entity"
	"cleaneye/internal/infrastructure/storage"
)

// fakeDetector возвращает заранее заданный результат вместо инференса.
type fakeDetector struct {
	result *entity.DetectionResult
	err    error
}

func (f *fakeDetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeDetector) Annotate(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	return []byte("annotated"), nil
}

func (f *fakeDetector) ModelReference() string {
	return "Weights/best.onnx"
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "street.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o644))
	return path
}

func newTestService(t *testing.T, detector *fakeDetector) (*ReportService, *storage.FileReportRepository) {
	t.Helper()
	reports := storage.NewFileReportRepository(t.TempDir())
	svc := NewReportService(detector, reports, 0.25)
	return svc, reports
}

func TestReportService_InspectMissingFile(t *testing.T) {
	svc, _ := newTestService(t, &fakeDetector{})

	_, err := svc.Inspect(context.Background(), "no/such/image.jpg")
	require.Error(t, err)

	var inputErr *entity.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestReportService_DetectorErrorPassesThrough(t *testing.T) {
	detectorErr := errors.New("model exploded")
	svc, _ := newTestService(t, &fakeDetector{err: detectorErr})

	_, err := svc.Inspect(context.Background(), writeTestImage(t))
	require.ErrorIs(t, err, detectorErr)
}

func TestReportService_ZeroAreaImage(t *testing.T) {
	svc, _ := newTestService(t, &fakeDetector{result: &entity.DetectionResult{}})

	_, err := svc.Inspect(context.Background(), writeTestImage(t))
	require.Error(t, err)

	var inputErr *entity.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestReportService_ModerateScenario(t *testing.T) {
	confidences := []float64{0.644, 0.629, 0.520, 0.404, 0.404, 0.329}
	result := &entity.DetectionResult{ImageWidth: 1280, ImageHeight: 720}
	for _, c := range confidences {
		result.Detections = append(result.Detections, entity.Detection{
			Label:      "garbage",
			Confidence: c,
			Box:        entity.BoundingBox{X1: 5, Y1: 5, X2: 60, Y2: 80},
		})
	}

	svc, reports := newTestService(t, &fakeDetector{result: result})

	// Фиксируем время и суффикс, чтобы отчёт был детерминированным.
	at := time.Date(2025, 3, 15, 9, 30, 45, 0, time.Local)
	svc.now = func() time.Time { return at }
	svc.newSuffix = func() string { return "AABBCCDD" }

	report, err := svc.Inspect(context.Background(), writeTestImage(t))
	require.NoError(t, err)

	require.Equal(t, "CLN-20250315-093045-AABBCCDD", report.ID)
	require.Equal(t, "2025-03-15 09:30:45", report.Timestamp)
	require.Equal(t, 6, report.Detection.TotalItems)
	require.Equal(t, entity.StatusModerate, report.Detection.Status)
	require.Equal(t, entity.SeverityMedium, report.Detection.Severity)
	require.Equal(t, 40, report.Detection.CleanlinessScore)
	require.Equal(t, 0.25, report.Detection.ConfidenceThreshold)
	require.Equal(t, map[string]int{"garbage": 6}, report.Statistics.ClassCounts)
	require.Equal(t, "Weights/best.onnx", report.Model.Path)

	// Каталог отчёта содержит все четыре артефакта.
	dir := reports.Dir(report.ID)
	require.FileExists(t, filepath.Join(dir, "before_street.jpg"))
	require.FileExists(t, filepath.Join(dir, "after_street.jpg"))
	require.FileExists(t, filepath.Join(dir, "report_"+report.ID+".json"))
	require.FileExists(t, filepath.Join(dir, "report_"+report.ID+".txt"))

	before, err := os.ReadFile(report.Image.Before)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg bytes"), before)

	after, err := os.ReadFile(report.Image.After)
	require.NoError(t, err)
	require.Equal(t, []byte("annotated"), after)
}

func TestReportService_HighScenario(t *testing.T) {
	labels := []string{"garbage", "waste", "trash", "garbage_bag", "garbage",
		"waste", "trash", "garbage", "waste", "garbage"}
	result := &entity.DetectionResult{ImageWidth: 640, ImageHeight: 480}
	for i, label := range labels {
		result.Detections = append(result.Detections, entity.Detection{
			Label:      label,
			Confidence: 0.9 - float64(i)*0.05,
		})
	}

	svc, _ := newTestService(t, &fakeDetector{result: result})

	report, err := svc.Inspect(context.Background(), writeTestImage(t))
	require.NoError(t, err)

	require.Equal(t, 10, report.Detection.TotalItems)
	require.Equal(t, entity.StatusHigh, report.Detection.Status)
	require.Equal(t, entity.SeverityCritical, report.Detection.Severity)
	require.Equal(t, 0, report.Detection.CleanlinessScore)
}

func TestReportService_Idempotence(t *testing.T) {
	result := &entity.DetectionResult{
		ImageWidth:  800,
		ImageHeight: 600,
		Detections: []entity.Detection{
			{Label: "garbage", Confidence: 0.7},
			{Label: "waste", Confidence: 0.6},
		},
	}

	svc, _ := newTestService(t, &fakeDetector{result: result})
	imagePath := writeTestImage(t)

	first, err := svc.Inspect(context.Background(), imagePath)
	require.NoError(t, err)
	second, err := svc.Inspect(context.Background(), imagePath)
	require.NoError(t, err)

	// Одинаковые входы дают одинаковые выводимые поля, но разные идентификаторы.
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, first.Detection.Status, second.Detection.Status)
	require.Equal(t, first.Detection.Severity, second.Detection.Severity)
	require.Equal(t, first.Detection.CleanlinessScore, second.Detection.CleanlinessScore)
	require.Equal(t, first.Statistics.ClassCounts, second.Statistics.ClassCounts)
}

func TestReportService_DetectorNotConfigured(t *testing.T) {
	reports := storage.NewFileReportRepository(t.TempDir())
	svc := NewReportService(nil, reports, 0.25)

	_, err := svc.InspectImage(context.Background(), "street.jpg", []byte("jpeg bytes"))
	require.Error(t, err)
}
