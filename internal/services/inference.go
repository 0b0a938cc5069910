package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

// InferenceService wraps the pre-trained regression artifacts. Models are
// exported from the training pipeline as JSON (feature column list plus
// either linear weights or a tree ensemble) and registered in a YAML
// manifest keyed by the model id the catalog stores.
type InferenceService interface {
	Predict(mlModelID uint, category, rollingType string, size *float64, compositionBySymbol map[string]float64) (float64, error)
}

type manifest struct {
	Models []manifestEntry `yaml:"models"`
}

type manifestEntry struct {
	ID       uint   `yaml:"id"`
	Name     string `yaml:"name"`
	Artifact string `yaml:"artifact"`
}

type treeNode struct {
	// Feature < 0 marks a leaf; Value then holds the leaf output.
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type modelArtifact struct {
	Kind         string     `json:"kind"` // "linear" or "gbt"
	Features     []string   `json:"features"`
	Intercept    float64    `json:"intercept"`
	Coefficients []float64  `json:"coefficients"`
	BaseScore    float64    `json:"base_score"`
	Trees        [][]treeNode `json:"trees"`
}

type loadedModel struct {
	name     string
	artifact *modelArtifact
	loadErr  error
}

type inferenceService struct {
	log    *logger.Logger
	models map[uint]*loadedModel
}

func NewInferenceService(log *logger.Logger, modelDir string) (InferenceService, error) {
	serviceLog := log.With("service", "InferenceService")

	raw, err := os.ReadFile(filepath.Join(modelDir, "manifest.yaml"))
	if err != nil {
		return nil, fmt.Errorf("read model manifest: %w", err)
	}
	var mf manifest
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse model manifest: %w", err)
	}

	models := make(map[uint]*loadedModel, len(mf.Models))
	for _, entry := range mf.Models {
		lm := &loadedModel{name: entry.Name}
		artifact, err := loadArtifact(filepath.Join(modelDir, entry.Artifact))
		if err != nil {
			// a registered model with missing artifacts stays addressable
			// and reports a validation failure on use, not a crash
			serviceLog.Warn("Model artifact unavailable", "model", entry.Name, "error", err)
			lm.loadErr = err
		} else {
			lm.artifact = artifact
		}
		models[entry.ID] = lm
	}
	serviceLog.Info("Inference models registered", "count", len(models))
	return &inferenceService{log: serviceLog, models: models}, nil
}

func loadArtifact(path string) (*modelArtifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if len(artifact.Features) == 0 {
		return nil, fmt.Errorf("model artifact %s has no feature columns", path)
	}
	switch artifact.Kind {
	case "linear":
		if len(artifact.Coefficients) != len(artifact.Features) {
			return nil, fmt.Errorf("model artifact %s: %d coefficients for %d features", path, len(artifact.Coefficients), len(artifact.Features))
		}
	case "gbt":
		if len(artifact.Trees) == 0 {
			return nil, fmt.Errorf("model artifact %s has no trees", path)
		}
	default:
		return nil, fmt.Errorf("model artifact %s: unknown kind %q", path, artifact.Kind)
	}
	return &artifact, nil
}

// buildFeatureVector zero-initializes one row over the model's feature
// columns, writes element percentages into matching symbol columns, the
// optional size, and one-hot indicators for category and rolling type when
// the artifact carries such columns. Unknown symbols are ignored.
func buildFeatureVector(features []string, category, rollingType string, size *float64, compositionBySymbol map[string]float64) []float64 {
	index := make(map[string]int, len(features))
	for i, col := range features {
		index[col] = i
	}

	row := make([]float64, len(features))
	for sym, val := range compositionBySymbol {
		col := strings.ToLower(strings.TrimSpace(sym))
		if i, ok := index[col]; ok {
			row[i] = val
		}
	}
	if size != nil {
		if i, ok := index["size"]; ok {
			row[i] = *size
		}
	}
	if category != "" {
		if i, ok := index["category_"+category]; ok {
			row[i] = 1
		}
	}
	if rollingType != "" {
		if i, ok := index["rolling_"+rollingType]; ok {
			row[i] = 1
		}
	}
	return row
}

func (is *inferenceService) Predict(mlModelID uint, category, rollingType string, size *float64, compositionBySymbol map[string]float64) (float64, error) {
	lm, ok := is.models[mlModelID]
	if !ok {
		return 0, types.Validationf("unknown ml_model_id %d", mlModelID)
	}
	if lm.artifact == nil {
		return 0, types.Validationf("model %q is not configured: artifacts unavailable", lm.name)
	}

	row := buildFeatureVector(lm.artifact.Features, category, rollingType, size, compositionBySymbol)

	switch lm.artifact.Kind {
	case "linear":
		sum := lm.artifact.Intercept
		for i, coef := range lm.artifact.Coefficients {
			sum += coef * row[i]
		}
		return sum, nil
	case "gbt":
		sum := lm.artifact.BaseScore
		for _, tree := range lm.artifact.Trees {
			sum += evalTree(tree, row)
		}
		return sum, nil
	}
	return 0, types.Validationf("model %q has unsupported kind %q", lm.name, lm.artifact.Kind)
}

func evalTree(nodes []treeNode, row []float64) float64 {
	i := 0
	for {
		node := nodes[i]
		if node.Feature < 0 {
			return node.Value
		}
		if row[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}
