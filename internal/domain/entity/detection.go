package entity

import (
	"encoding/json"
	"math"
	"sort"
)

// BoundingBox рамка объекта в пиксельных координатах углов.
// Корректность (x1<x2, y1<y2) не проверяется: выводу детектора доверяем.
type BoundingBox struct {
	X1 int // левый край
	Y1 int // верхний край
	X2 int // правый край
	Y2 int // нижний край
}

// Center возвращает координаты центра рамки.
func (b BoundingBox) Center() (x, y int) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Detection один найденный объект мусора на изображении.
type Detection struct {
	Label      string      // класс из модели (открытое множество строк)
	Confidence float64     // уверенность модели в диапазоне [0, 1]
	Box        BoundingBox // рамка объекта
}

type detectionJSON struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	BBox       [4]int  `json:"bbox"`
}

// MarshalJSON сериализует детекцию в формат отчёта:
// уверенность округляется до трёх знаков, рамка пишется списком [x1,y1,x2,y2].
func (d Detection) MarshalJSON() ([]byte, error) {
	return json.Marshal(detectionJSON{
		Label:      d.Label,
		Confidence: math.Round(d.Confidence*1000) / 1000,
		BBox:       [4]int{d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2},
	})
}

// UnmarshalJSON читает детекцию из формата отчёта.
func (d *Detection) UnmarshalJSON(data []byte) error {
	var raw detectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Label = raw.Label
	d.Confidence = raw.Confidence
	d.Box = BoundingBox{X1: raw.BBox[0], Y1: raw.BBox[1], X2: raw.BBox[2], Y2: raw.BBox[3]}
	return nil
}

// DetectionResult итог детекции по одному изображению.
// Порядок детекций сохраняется таким, каким его вернул детектор.
type DetectionResult struct {
	ImageWidth  int         // ширина исходного изображения
	ImageHeight int         // высота исходного изображения
	Detections  []Detection // найденные объекты
}

// Total возвращает количество найденных объектов.
func (r *DetectionResult) Total() int {
	return len(r.Detections)
}

// ClassCounts считает количество объектов по каждому классу.
func (r *DetectionResult) ClassCounts() map[string]int {
	counts := make(map[string]int, len(r.Detections))
	for _, d := range r.Detections {
		counts[d.Label]++
	}
	return counts
}

// ByConfidence возвращает копию детекций по убыванию уверенности.
// Сортировка стабильная: равные значения сохраняют исходный порядок.
func (r *DetectionResult) ByConfidence() []Detection {
	sorted := make([]Detection, len(r.Detections))
	copy(sorted, r.Detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}
