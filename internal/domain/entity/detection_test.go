package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxCenter(t *testing.T) {
	b := BoundingBox{X1: 10, Y1: 20, X2: 18, Y2: 26}
	x, y := b.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestDetectionResultClassCounts(t *testing.T) {
	result := DetectionResult{
		Detections: []Detection{
			{Label: "garbage", Confidence: 0.9},
			{Label: "garbage", Confidence: 0.8},
			{Label: "waste", Confidence: 0.7},
		},
	}

	counts := result.ClassCounts()
	require.Equal(t, map[string]int{"garbage": 2, "waste": 1}, counts)

	sum := 0
	for _, c := range counts {
		sum += c
	}
	require.Equal(t, result.Total(), sum)
}

func TestDetectionResultByConfidence(t *testing.T) {
	result := DetectionResult{
		Detections: []Detection{
			{Label: "waste", Confidence: 0.3},
			{Label: "garbage", Confidence: 0.9},
			{Label: "trash", Confidence: 0.5},
		},
	}

	sorted := result.ByConfidence()
	require.Equal(t, []string{"garbage", "trash", "waste"},
		[]string{sorted[0].Label, sorted[1].Label, sorted[2].Label})

	// Исходный порядок не меняется.
	require.Equal(t, "waste", result.Detections[0].Label)
}

func TestDetectionResultByConfidenceStable(t *testing.T) {
	result := DetectionResult{
		Detections: []Detection{
			{Label: "first", Confidence: 0.404},
			{Label: "second", Confidence: 0.404},
		},
	}

	sorted := result.ByConfidence()
	require.Equal(t, "first", sorted[0].Label)
	require.Equal(t, "second", sorted[1].Label)
}

func TestDetectionJSON(t *testing.T) {
	d := Detection{
		Label:      "garbage",
		Confidence: 0.6444444,
		Box:        BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 140},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	// Рамка пишется списком, уверенность округляется до трёх знаков.
	require.JSONEq(t, `{"label":"garbage","confidence":0.644,"bbox":[10,20,110,140]}`, string(data))

	var restored Detection
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, d.Label, restored.Label)
	require.Equal(t, d.Box, restored.Box)
	require.InDelta(t, 0.644, restored.Confidence, 1e-9)
}

func TestDetectionJSONMalformedBoxPreserved(t *testing.T) {
	// Некорректная рамка (x1 >= x2) записывается как есть: выводу детектора доверяем.
	d := Detection{Label: "garbage", Confidence: 0.5, Box: BoundingBox{X1: 50, Y1: 10, X2: 20, Y2: 40}}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Contains(t, string(data), `"bbox":[50,10,20,40]`)
}
