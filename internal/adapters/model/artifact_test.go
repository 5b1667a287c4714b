package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
)

// fixture describes a complete, consistent artifact directory. Tests mutate
// individual pieces to produce the failure cases.
type fixture struct {
	forest   forestSpec
	scaler   scalerSpec
	encoders map[string][]string
	target   targetSpec
}

func validFixture() fixture {
	// One stump routing on BMI (feature 10): low BMI -> class 1, else class 0.
	tree := DecisionTree{
		{Feature: 10, Threshold: 0, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: []float64{0, 4, 1}},
		{Left: -1, Right: -1, Value: []float64{5, 0, 0}},
	}

	mean := make([]float64, entities.NumFeatures)
	std := make([]float64, entities.NumFeatures)
	for i := range std {
		std[i] = 1
	}

	return fixture{
		forest: forestSpec{NumClasses: 3, Trees: []DecisionTree{tree}},
		scaler: scalerSpec{Mean: mean, Std: std},
		encoders: map[string][]string{
			"exercise":     {"high", "low", "medium"},
			"sugar_intake": {"high", "low", "medium"},
			"smoking":      {"no", "yes"},
			"alcohol":      {"no", "yes"},
			"married":      {"no", "yes"},
			"profession":   {"artist", "engineer", "healthcare", "office_worker", "teacher"},
		},
		target: targetSpec{Classes: []string{"high", "low", "medium"}},
	}
}

func (f fixture) write(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeArtifact(t, dir, ForestFile, f.forest)
	writeArtifact(t, dir, ScalerFile, f.scaler)
	writeArtifact(t, dir, EncodersFile, f.encoders)
	writeArtifact(t, dir, TargetFile, f.target)
	return dir
}

func writeArtifact(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func TestLoadBundle(t *testing.T) {
	dir := validFixture().write(t)

	bundle, err := LoadBundle(dir)
	require.NoError(t, err)

	// Every categorical field got its encoder.
	for _, field := range entities.CategoricalFields {
		assert.Contains(t, bundle.Encoders, field)
	}

	// The loaded pieces work end to end: negative BMI routes left -> class
	// index 1, which the target encoder decodes as low.
	vec := make([]float64, entities.NumFeatures)
	vec[10] = -1
	scaled, err := bundle.Scaler.Transform(vec)
	require.NoError(t, err)
	idx, err := bundle.Classifier.Predict(scaled)
	require.NoError(t, err)
	label, err := bundle.Target.DecodeLabel(idx)
	require.NoError(t, err)
	assert.Equal(t, entities.RiskLow, label)
}

func TestLoadBundle_MissingFile(t *testing.T) {
	dir := validFixture().write(t)
	require.NoError(t, os.Remove(filepath.Join(dir, ScalerFile)))

	_, err := LoadBundle(dir)
	assert.ErrorContains(t, err, ScalerFile)
}

func TestLoadBundle_MalformedJSON(t *testing.T) {
	dir := validFixture().write(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ForestFile), []byte("{not json"), 0644))

	_, err := LoadBundle(dir)
	assert.ErrorContains(t, err, ForestFile)
}

func TestLoadBundle_ScalerWidthMismatch(t *testing.T) {
	f := validFixture()
	f.scaler = scalerSpec{Mean: []float64{0, 0}, Std: []float64{1, 1}}

	_, err := LoadBundle(f.write(t))
	assert.ErrorContains(t, err, "features")
}

func TestLoadBundle_MissingEncoder(t *testing.T) {
	f := validFixture()
	delete(f.encoders, "smoking")

	_, err := LoadBundle(f.write(t))
	assert.ErrorContains(t, err, "smoking")
}

func TestLoadBundle_UnknownTargetLabel(t *testing.T) {
	f := validFixture()
	f.target = targetSpec{Classes: []string{"high", "low", "severe"}}

	_, err := LoadBundle(f.write(t))
	assert.ErrorContains(t, err, "severe")
}

func TestLoadBundle_ClassCountMismatch(t *testing.T) {
	f := validFixture()
	f.target = targetSpec{Classes: []string{"high", "low"}}

	_, err := LoadBundle(f.write(t))
	assert.Error(t, err)
}

func TestRegistry_ServesSnapshot(t *testing.T) {
	dir := validFixture().write(t)

	registry, err := NewRegistry(dir)
	require.NoError(t, err)
	assert.NotNil(t, registry.Bundle())
}

func TestRegistry_FailedInitialLoad(t *testing.T) {
	_, err := NewRegistry(t.TempDir())
	assert.Error(t, err)
}

func TestRegistry_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	dir := validFixture().write(t)

	registry, err := NewRegistry(dir)
	require.NoError(t, err)
	before := registry.Bundle()

	require.NoError(t, os.WriteFile(filepath.Join(dir, TargetFile), []byte("broken"), 0644))
	assert.Error(t, registry.Reload())
	assert.Same(t, before, registry.Bundle(), "previous snapshot keeps serving")
}

func TestRegistry_ReloadSwapsSnapshot(t *testing.T) {
	dir := validFixture().write(t)

	registry, err := NewRegistry(dir)
	require.NoError(t, err)
	before := registry.Bundle()

	require.NoError(t, registry.Reload())
	assert.NotSame(t, before, registry.Bundle())
}
