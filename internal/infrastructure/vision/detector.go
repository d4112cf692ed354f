//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	"gocv.io/x/gocv"

	"cleaneye/internal/domain/entity"
)

const (
	inputSize    = 640  // сторона входного блоба YOLOv8
	nmsThreshold = 0.45 // порог подавления пересекающихся рамок
)

// labelColors цвета рамок по классам, для неизвестных классов — белый.
var labelColors = map[string]color.RGBA{
	"0":           {R: 255, G: 165, A: 255},
	"c":           {G: 215, B: 255, A: 255},
	"garbage":     {R: 255, A: 255},
	"garbage_bag": {R: 255, B: 255, A: 255},
	"waste":       {G: 255, A: 255},
	"trash":       {G: 140, B: 255, A: 255},
}

// YOLODetector детектор мусора на базе YOLOv8 в формате ONNX.
type YOLODetector struct {
	net        gocv.Net
	classNames []string
	modelPath  string
	threshold  float64
}

// NewYOLODetector загружает сеть из ONNX-файла и готовит детектор.
func NewYOLODetector(modelPath string, classNames []string, threshold float64) (*YOLODetector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		return nil, fmt.Errorf("set backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		return nil, fmt.Errorf("set target: %w", err)
	}

	if len(classNames) == 0 {
		classNames = DefaultClassNames
	}

	return &YOLODetector{
		net:        net,
		classNames: classNames,
		modelPath:  modelPath,
		threshold:  threshold,
	}, nil
}

// Close освобождает сеть.
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

// ModelReference возвращает путь к файлу модели для провенанса отчёта.
func (d *YOLODetector) ModelReference() string {
	return d.modelPath
}

// Detect запускает инференс и возвращает найденные объекты.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionResult, error) {
	_ = ctx
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	origW := mat.Cols()
	origH := mat.Rows()

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(inputSize, inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	detections, err := d.parseOutput(output, origW, origH)
	if err != nil {
		return nil, err
	}

	return &entity.DetectionResult{
		ImageWidth:  origW,
		ImageHeight: origH,
		Detections:  detections,
	}, nil
}

// parseOutput разбирает выход YOLOv8: тензор 1 x (4+классы) x N,
// где каждая колонка — кандидат (cx, cy, w, h, очки по классам).
func (d *YOLODetector) parseOutput(output gocv.Mat, origW, origH int) ([]entity.Detection, error) {
	dims := output.Size()
	if len(dims) < 3 {
		return nil, fmt.Errorf("unexpected network output shape %v", dims)
	}

	reshaped := output.Reshape(1, dims[1])
	defer reshaped.Close()

	// Транспонируем в N x (4+классы), чтобы обходить кандидатов построчно.
	rows := gocv.NewMat()
	defer rows.Close()
	gocv.Transpose(reshaped, &rows)

	scaleX := float64(origW) / float64(inputSize)
	scaleY := float64(origH) / float64(inputSize)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for r := 0; r < rows.Rows(); r++ {
		classID, score := bestClass(rows, r)
		if float64(score) < d.threshold {
			continue
		}

		cx := float64(rows.GetFloatAt(r, 0))
		cy := float64(rows.GetFloatAt(r, 1))
		w := float64(rows.GetFloatAt(r, 2))
		h := float64(rows.GetFloatAt(r, 3))

		x1 := int((cx - w/2) * scaleX)
		y1 := int((cy - h/2) * scaleY)
		x2 := int((cx + w/2) * scaleX)
		y2 := int((cy + h/2) * scaleY)

		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		scores = append(scores, score)
		classIDs = append(classIDs, classID)
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, float32(d.threshold), nmsThreshold)

	detections := make([]entity.Detection, 0, len(indices))
	for _, idx := range indices {
		box := boxes[idx]
		detections = append(detections, entity.Detection{
			Label:      d.className(classIDs[idx]),
			Confidence: float64(scores[idx]),
			Box: entity.BoundingBox{
				X1: box.Min.X,
				Y1: box.Min.Y,
				X2: box.Max.X,
				Y2: box.Max.Y,
			},
		})
	}

	return detections, nil
}

// bestClass находит класс с максимальным очком в строке кандидата.
func bestClass(rows gocv.Mat, r int) (int, float32) {
	bestID := 0
	var bestScore float32
	for c := 4; c < rows.Cols(); c++ {
		if score := rows.GetFloatAt(r, c); score > bestScore {
			bestScore = score
			bestID = c - 4
		}
	}
	return bestID, bestScore
}

func (d *YOLODetector) className(classID int) string {
	if classID >= 0 && classID < len(d.classNames) {
		return d.classNames[classID]
	}
	return fmt.Sprintf("class_%d", classID)
}

// Annotate рисует рамки и подписи детекций поверх копии изображения.
// Рамки рисуются в порядке детектора, некорректные координаты не проверяются.
func (d *YOLODetector) Annotate(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	for _, det := range result.Detections {
		c, ok := labelColors[det.Label]
		if !ok {
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}

		rect := image.Rect(det.Box.X1, det.Box.Y1, det.Box.X2, det.Box.Y2)
		gocv.Rectangle(&mat, rect, c, 2)

		// Подпись над рамкой, но не выше верхнего края кадра.
		textY := det.Box.Y1 - 10
		if textY < 25 {
			textY = 25
		}
		text := fmt.Sprintf("%s %.0f%%", det.Label, det.Confidence*100)
		gocv.PutText(&mat, text, image.Pt(det.Box.X1, textY),
			gocv.FontHersheySimplex, 0.7, c, 2)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), &entity.InputError{Err: errors.New("failed to decode image")}
}
