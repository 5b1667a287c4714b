// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not concrete implementations;
// adapters implement them. This keeps the inference pipeline independent
// of how the model artifact is stored or evaluated.
package ports

import (
	"context"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
)

// RiskClassifier is the fitted statistical model. Deterministic for a given
// artifact: the same vector always yields the same index and distribution.
type RiskClassifier interface {
	// Predict returns the classifier's internal class index for a
	// normalized feature vector.
	Predict(vector []float64) (int, error)

	// PredictProba returns the probability distribution over class
	// indices. Probabilities sum to 1 within floating tolerance.
	PredictProba(vector []float64) ([]float64, error)
}

// Scaler applies the pre-fitted per-feature normalization (x - mean) / std.
// It never refits; the statistics were learned at training time.
type Scaler interface {
	Transform(vector []float64) ([]float64, error)
}

// CategoryEncoder is a fitted bidirectional mapping between a finite
// vocabulary of string values and integer codes.
type CategoryEncoder interface {
	// Encode maps a raw value to its code, failing for values outside
	// the fitted vocabulary.
	Encode(value string) (int, error)

	// Decode maps a code back to its raw value.
	Decode(code int) (string, error)

	// Vocabulary returns the known values in code order.
	Vocabulary() []string
}

// TargetEncoder decodes the classifier's class indices into risk labels.
type TargetEncoder interface {
	DecodeLabel(index int) (entities.RiskLabel, error)
}

// ModelBundle is one immutable snapshot of the trained artifact: classifier,
// scaler, one encoder per categorical field, and the target encoder. Loaded
// atomically before any request is served and never mutated afterwards.
type ModelBundle struct {
	Classifier RiskClassifier
	Scaler     Scaler
	Encoders   map[string]CategoryEncoder // keyed by field name
	Target     TargetEncoder
}

// ModelProvider yields the current bundle snapshot. Implementations may swap
// snapshots atomically (hot reload); callers hold one snapshot per request.
type ModelProvider interface {
	Bundle() *ModelBundle
}

// AssessmentStore persists completed assessments for the history endpoint.
type AssessmentStore interface {
	Save(ctx context.Context, record entities.AssessmentRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]entities.AssessmentRecord, error)
}

// ArtifactWatcher monitors the model artifact directory for changes.
type ArtifactWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan ArtifactEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// ArtifactEvent signals that an artifact file changed on disk.
type ArtifactEvent struct {
	Path string
}
