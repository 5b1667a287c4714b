// Package model provides adapters for the trained artifact: label encoders,
// the standard scaler, the random-forest evaluator, and the loader that
// assembles them into an immutable bundle.
package model

import (
	"fmt"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
)

// LabelEncoder is a fitted bidirectional mapping between a categorical
// vocabulary and integer codes. Codes follow the order the artifact ships
// the classes in; the service never assumes a particular assignment.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder from classes in code order.
func NewLabelEncoder(classes []string) *LabelEncoder {
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return &LabelEncoder{classes: classes, index: idx}
}

// Encode maps a raw value to its fitted code.
func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("value %q not in fitted vocabulary", value)
	}
	return code, nil
}

// Decode maps a code back to its raw value.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("code %d outside fitted vocabulary of size %d", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Vocabulary returns the known values in code order.
func (e *LabelEncoder) Vocabulary() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// TargetEncoder decodes classifier class indices into risk labels.
type TargetEncoder struct {
	labels []entities.RiskLabel
}

// NewTargetEncoder builds the target mapping from labels in class-index order.
func NewTargetEncoder(labels []entities.RiskLabel) *TargetEncoder {
	out := make([]entities.RiskLabel, len(labels))
	copy(out, labels)
	return &TargetEncoder{labels: out}
}

// DecodeLabel maps a class index to its risk label. An index outside the
// fitted class set means the classifier and target encoder disagree about
// the artifact, which is an integrity error rather than a client error.
func (e *TargetEncoder) DecodeLabel(index int) (entities.RiskLabel, error) {
	if index < 0 || index >= len(e.labels) {
		return "", &entities.ArtifactIntegrityError{
			Detail: fmt.Sprintf("class index %d outside target encoder range %d", index, len(e.labels)),
		}
	}
	return e.labels[index], nil
}

// StandardScaler applies the pre-fitted per-feature (x - mean) / std
// transform. Statistics come from training; Transform never refits them.
type StandardScaler struct {
	mean []float64
	std  []float64
}

// NewStandardScaler builds a scaler from stored statistics.
func NewStandardScaler(mean, std []float64) (*StandardScaler, error) {
	if len(mean) != len(std) {
		return nil, fmt.Errorf("scaler mean width %d does not match std width %d", len(mean), len(std))
	}
	return &StandardScaler{mean: mean, std: std}, nil
}

// NumFeatures returns the width the scaler was fitted for.
func (s *StandardScaler) NumFeatures() int {
	return len(s.mean)
}

// Transform normalizes a feature vector with the stored statistics.
// A zero standard deviation leaves the centered value as-is, matching the
// behavior of the training-side scaler for constant features.
func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.mean) {
		return nil, fmt.Errorf("vector width %d does not match fitted width %d", len(vector), len(s.mean))
	}
	out := make([]float64, len(vector))
	for i, x := range vector {
		std := s.std[i]
		if std == 0 {
			std = 1
		}
		out[i] = (x - s.mean[i]) / std
	}
	return out, nil
}
