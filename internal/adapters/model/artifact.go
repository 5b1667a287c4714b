package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
	"github.com/vitasense/vitasense-go/internal/domain/ports"
)

// Artifact file names inside the artifact directory. The training pipeline
// exports the fitted objects as JSON under these names.
const (
	ForestFile   = "forest.json"
	ScalerFile   = "scaler.json"
	EncodersFile = "encoders.json"
	TargetFile   = "target.json"
)

type forestSpec struct {
	NumClasses int            `json:"n_classes"`
	Trees      []DecisionTree `json:"trees"`
}

type scalerSpec struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

type targetSpec struct {
	Classes []string `json:"classes"` // risk labels in class-index order
}

// LoadBundle reads the four artifact files from dir, cross-checks them, and
// returns an immutable bundle. Any missing or malformed file, or any
// internal mismatch, fails the load; callers treat that as fatal at startup
// and as keep-the-old-snapshot during hot reload.
func LoadBundle(dir string) (*ports.ModelBundle, error) {
	var forest forestSpec
	if err := readJSON(dir, ForestFile, &forest); err != nil {
		return nil, err
	}
	var scaler scalerSpec
	if err := readJSON(dir, ScalerFile, &scaler); err != nil {
		return nil, err
	}
	var vocab map[string][]string
	if err := readJSON(dir, EncodersFile, &vocab); err != nil {
		return nil, err
	}
	var target targetSpec
	if err := readJSON(dir, TargetFile, &target); err != nil {
		return nil, err
	}

	classifier, err := NewRandomForest(forest.Trees, forest.NumClasses)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ForestFile, err)
	}

	sc, err := NewStandardScaler(scaler.Mean, scaler.Std)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ScalerFile, err)
	}
	if sc.NumFeatures() != entities.NumFeatures {
		return nil, fmt.Errorf("%s: fitted for %d features, pipeline produces %d",
			ScalerFile, sc.NumFeatures(), entities.NumFeatures)
	}

	encoders := make(map[string]ports.CategoryEncoder, len(vocab))
	for field, classes := range vocab {
		if len(classes) == 0 {
			return nil, fmt.Errorf("%s: empty vocabulary for field %s", EncodersFile, field)
		}
		encoders[field] = NewLabelEncoder(classes)
	}
	for _, field := range entities.CategoricalFields {
		if _, ok := encoders[field]; !ok {
			return nil, fmt.Errorf("%s: no encoder for field %s", EncodersFile, field)
		}
	}

	labels := make([]entities.RiskLabel, len(target.Classes))
	for i, c := range target.Classes {
		label := entities.RiskLabel(c)
		if !label.Valid() {
			return nil, fmt.Errorf("%s: unknown risk label %q", TargetFile, c)
		}
		labels[i] = label
	}
	if len(labels) != classifier.NumClasses() {
		return nil, fmt.Errorf("target encoder has %d classes, forest declares %d",
			len(labels), classifier.NumClasses())
	}

	return &ports.ModelBundle{
		Classifier: classifier,
		Scaler:     sc,
		Encoders:   encoders,
		Target:     NewTargetEncoder(labels),
	}, nil
}

func readJSON(dir, name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("reading artifact %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing artifact %s: %w", name, err)
	}
	return nil
}
