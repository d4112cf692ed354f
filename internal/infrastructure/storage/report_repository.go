package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cleaneye/internal/domain/entity"
	"cleaneye/internal/domain/port"
)

// FileReportRepository хранит отчёты на файловой системе: один каталог
// на отчёт, имя каталога — идентификатор отчёта. Каталоги только добавляются,
// готовые отчёты никогда не перезаписываются.
type FileReportRepository struct {
	baseDir string
}

// NewFileReportRepository создаёт хранилище с корневым каталогом отчётов.
func NewFileReportRepository(baseDir string) *FileReportRepository {
	return &FileReportRepository{baseDir: baseDir}
}

// Dir возвращает путь каталога для отчёта с данным идентификатором.
func (r *FileReportRepository) Dir(reportID string) string {
	return filepath.Join(r.baseDir, reportID)
}

// Save записывает четыре артефакта отчёта: копию «до», размеченную копию
// «после», JSON и текстовый отчёт. Пути артефактов проставляются в отчёт
// до сериализации. Записи не атомарны и не откатываются.
func (r *FileReportRepository) Save(report *entity.Report, original, annotated []byte) error {
	dir := r.Dir(report.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entity.StorageError{Path: dir, Err: err}
	}

	base := filepath.Base(report.Image.Original)
	report.Image.Before = filepath.Join(dir, "before_"+base)
	report.Image.After = filepath.Join(dir, "after_"+base)

	if err := os.WriteFile(report.Image.Before, original, 0o644); err != nil {
		return &entity.StorageError{Path: report.Image.Before, Err: err}
	}
	if err := os.WriteFile(report.Image.After, annotated, 0o644); err != nil {
		return &entity.StorageError{Path: report.Image.After, Err: err}
	}

	jsonPath := filepath.Join(dir, "report_"+report.ID+".json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &entity.StorageError{Path: jsonPath, Err: err}
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return &entity.StorageError{Path: jsonPath, Err: err}
	}

	txtPath := filepath.Join(dir, "report_"+report.ID+".txt")
	if err := os.WriteFile(txtPath, []byte(RenderText(report)), 0o644); err != nil {
		return &entity.StorageError{Path: txtPath, Err: err}
	}

	return nil
}

// Load читает JSON-отчёт обратно из каталога отчёта.
func (r *FileReportRepository) Load(reportID string) (*entity.Report, error) {
	jsonPath := filepath.Join(r.Dir(reportID), "report_"+reportID+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, &entity.StorageError{Path: jsonPath, Err: err}
	}

	var report entity.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &entity.StorageError{Path: jsonPath, Err: err}
	}
	return &report, nil
}

// List возвращает идентификаторы всех сохранённых отчётов.
// Индекса нет: отчёты находятся перечислением каталогов.
func (r *FileReportRepository) List() ([]string, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &entity.StorageError{Path: r.baseDir, Err: err}
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

const line = "================================================================================"
const thinLine = "--------------------------------------------------------------------------------"

// RenderText собирает человекочитаемый текст отчёта.
// Разбивка по классам идёт по убыванию количества (при равенстве — по имени),
// список детекций — по убыванию уверенности.
func RenderText(report *entity.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "CLEANEYE - AI GARBAGE DETECTION REPORT\n")
	fmt.Fprintf(&b, "%s\n\n", line)
	fmt.Fprintf(&b, "Report ID: %s\n", report.ID)
	fmt.Fprintf(&b, "Generated: %s\n", report.Timestamp)
	fmt.Fprintf(&b, "Image: %s (%dx%d pixels)\n\n",
		filepath.Base(report.Image.Original), report.Image.Size.Width, report.Image.Size.Height)

	fmt.Fprintf(&b, "%s\n", thinLine)
	fmt.Fprintf(&b, "SUMMARY\n")
	fmt.Fprintf(&b, "%s\n", thinLine)
	fmt.Fprintf(&b, "Total Waste Detected: %d items\n", report.Detection.TotalItems)
	fmt.Fprintf(&b, "Status: %s\n", report.Detection.Status)
	fmt.Fprintf(&b, "Severity: %s\n", report.Detection.Severity)
	fmt.Fprintf(&b, "Cleanliness Score: %d/100\n\n", report.Detection.CleanlinessScore)

	if len(report.Statistics.ClassCounts) > 0 {
		fmt.Fprintf(&b, "%s\n", thinLine)
		fmt.Fprintf(&b, "BREAKDOWN BY TYPE\n")
		fmt.Fprintf(&b, "%s\n", thinLine)
		total := report.Detection.TotalItems
		for _, label := range sortedLabels(report.Statistics.ClassCounts) {
			count := report.Statistics.ClassCounts[label]
			percentage := float64(count) / float64(total) * 100
			fmt.Fprintf(&b, "  %s: %d items (%.1f%%)\n", label, count, percentage)
		}
		b.WriteString("\n")
	}

	if len(report.Statistics.Detections) > 0 {
		fmt.Fprintf(&b, "%s\n", thinLine)
		fmt.Fprintf(&b, "DETAILED DETECTIONS\n")
		fmt.Fprintf(&b, "%s\n", thinLine)
		result := entity.DetectionResult{Detections: report.Statistics.Detections}
		for i, det := range result.ByConfidence() {
			fmt.Fprintf(&b, "%d. %s (%.1f%%)\n", i+1, det.Label, det.Confidence*100)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n", line)
	return b.String()
}

// sortedLabels упорядочивает классы по убыванию количества, при равенстве
// по имени: порядок обхода map в Go случайный, а отчёт должен быть
// детерминированным.
func sortedLabels(counts map[string]int) []string {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

// Проверка реализации интерфейса
var _ port.ReportRepository = (*FileReportRepository)(nil)
