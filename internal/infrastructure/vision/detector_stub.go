//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"cleaneye/internal/domain/entity"
)

// YOLODetector заглушка детектора для сборки без OpenCV.
type YOLODetector struct {
	classNames []string
	modelPath  string
	threshold  float64
}

// NewYOLODetector создаёт детектор-заглушку (без OpenCV).
func NewYOLODetector(modelPath string, classNames []string, threshold float64) (*YOLODetector, error) {
	if len(classNames) == 0 {
		classNames = DefaultClassNames
	}
	return &YOLODetector{
		classNames: classNames,
		modelPath:  modelPath,
		threshold:  threshold,
	}, nil
}

// Close ничего не освобождает в сборке без тега gocv.
func (d *YOLODetector) Close() error { return nil }

// ModelReference возвращает путь к файлу модели.
func (d *YOLODetector) ModelReference() string {
	return d.modelPath
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionResult, error) {
	_ = ctx
	_ = imageData
	return nil, errors.New("gocv build tag is not enabled")
}

// Annotate возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Annotate(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, errors.New("gocv build tag is not enabled")
}
