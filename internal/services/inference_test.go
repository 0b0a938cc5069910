package services

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

const testManifest = `models:
  - id: 1
    name: linear-test
    artifact: linear.json
  - id: 2
    name: gbt-test
    artifact: gbt.json
  - id: 3
    name: broken
    artifact: missing.json
`

const testLinearArtifact = `{
  "kind": "linear",
  "features": ["c", "mn", "size", "category_steel", "rolling_hot"],
  "intercept": 100.0,
  "coefficients": [400.0, 30.0, -0.5, 20.0, 10.0]
}`

const testGBTArtifact = `{
  "kind": "gbt",
  "features": ["c", "mn"],
  "base_score": 300.0,
  "trees": [
    [
      {"feature": 0, "threshold": 0.5, "left": 1, "right": 2, "value": 0},
      {"feature": -1, "threshold": 0, "left": 0, "right": 0, "value": -10.0},
      {"feature": -1, "threshold": 0, "left": 0, "right": 0, "value": 25.0}
    ]
  ]
}`

func newTestInference(t *testing.T) InferenceService {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"manifest.yaml": testManifest,
		"linear.json":   testLinearArtifact,
		"gbt.json":      testGBTArtifact,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	svc, err := NewInferenceService(log, dir)
	if err != nil {
		t.Fatalf("init inference: %v", err)
	}
	return svc
}

func TestPredictLinear(t *testing.T) {
	svc := newTestInference(t)

	size := 12.0
	got, err := svc.Predict(1, "steel", "hot", &size, map[string]float64{"c": 0.4, "mn": 1.2, "zz": 99})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	// 100 + 400*0.4 + 30*1.2 - 0.5*12 + 20 + 10; the unknown symbol is ignored
	want := 100.0 + 160.0 + 36.0 - 6.0 + 20.0 + 10.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("prediction: want=%v got=%v", want, got)
	}
}

func TestPredictGBT(t *testing.T) {
	svc := newTestInference(t)

	got, err := svc.Predict(2, "", "", nil, map[string]float64{"c": 0.8})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if want := 325.0; got != want {
		t.Fatalf("prediction: want=%v got=%v", want, got)
	}

	got, err = svc.Predict(2, "", "", nil, map[string]float64{"c": 0.2})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if want := 290.0; got != want {
		t.Fatalf("prediction: want=%v got=%v", want, got)
	}
}

func TestPredictUnknownModel(t *testing.T) {
	svc := newTestInference(t)

	_, err := svc.Predict(99, "steel", "hot", nil, nil)
	if !types.IsValidation(err) {
		t.Fatalf("expected validation error for unknown model, got %v", err)
	}
}

func TestPredictModelWithMissingArtifact(t *testing.T) {
	svc := newTestInference(t)

	_, err := svc.Predict(3, "steel", "hot", nil, nil)
	if !types.IsValidation(err) {
		t.Fatalf("expected validation error for missing artifact, got %v", err)
	}
}

func TestBuildFeatureVector(t *testing.T) {
	features := []string{"c", "mn", "size", "category_steel", "rolling_cold"}
	size := 8.5

	row := buildFeatureVector(features, "steel", "hot", &size, map[string]float64{
		"C":  0.4, // mixed case resolves to the lowercase column
		"mn": 1.1,
		"ni": 3.0, // no matching column, dropped
	})

	want := []float64{0.4, 1.1, 8.5, 1, 0}
	if len(row) != len(want) {
		t.Fatalf("row length: want=%d got=%d", len(want), len(row))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row[%d]: want=%v got=%v", i, want[i], row[i])
		}
	}
}
