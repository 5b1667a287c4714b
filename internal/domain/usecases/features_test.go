package usecases

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
	"github.com/vitasense/vitasense-go/internal/domain/ports"
)

// fakeEncoder implements ports.CategoryEncoder over a plain vocabulary list.
type fakeEncoder struct {
	classes []string
}

func (e *fakeEncoder) Encode(value string) (int, error) {
	for i, c := range e.classes {
		if c == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("value %q not in fitted vocabulary", value)
}

func (e *fakeEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("code %d out of range", code)
	}
	return e.classes[code], nil
}

func (e *fakeEncoder) Vocabulary() []string { return e.classes }

// testEncoders mirrors the vocabularies the training pipeline exports, in
// alphabetical code order.
func testEncoders() map[string]ports.CategoryEncoder {
	return map[string]ports.CategoryEncoder{
		"exercise":     &fakeEncoder{classes: []string{"high", "low", "medium"}},
		"sugar_intake": &fakeEncoder{classes: []string{"high", "low", "medium"}},
		"smoking":      &fakeEncoder{classes: []string{"no", "yes"}},
		"alcohol":      &fakeEncoder{classes: []string{"no", "yes"}},
		"married":      &fakeEncoder{classes: []string{"no", "yes"}},
		"profession":   &fakeEncoder{classes: []string{"artist", "engineer", "healthcare", "office_worker", "teacher"}},
	}
}

func testProfile() entities.Profile {
	return entities.Profile{
		Age:         45,
		Weight:      95,
		Height:      170,
		Exercise:    "low",
		Sleep:       5,
		SugarIntake: "high",
		Smoking:     "yes",
		Alcohol:     "no",
		Married:     "yes",
		Profession:  "office_worker",
	}
}

func TestBuildFeatureVector_EncodesCategories(t *testing.T) {
	vec, err := BuildFeatureVector(testProfile(), testEncoders())
	require.NoError(t, err)

	assert.Equal(t, 45.0, vec.Age)
	assert.Equal(t, 95.0, vec.Weight)
	assert.Equal(t, 170.0, vec.Height)
	assert.Equal(t, 1.0, vec.Exercise, "low -> code 1")
	assert.Equal(t, 5.0, vec.Sleep)
	assert.Equal(t, 0.0, vec.Sugar, "high -> code 0")
	assert.Equal(t, 1.0, vec.Smoking, "yes -> code 1")
	assert.Equal(t, 0.0, vec.Alcohol, "no -> code 0")
	assert.Equal(t, 1.0, vec.Married)
	assert.Equal(t, 3.0, vec.Profession, "office_worker -> code 3")
}

func TestBuildFeatureVector_DerivesRoundedBMI(t *testing.T) {
	vec, err := BuildFeatureVector(testProfile(), testEncoders())
	require.NoError(t, err)

	// 95 / 1.70^2 = 32.87..., rounded to 1 decimal.
	assert.Equal(t, 32.9, vec.BMI)
}

func TestBuildFeatureVector_UnknownCategory(t *testing.T) {
	p := testProfile()
	p.Profession = "astronaut"

	_, err := BuildFeatureVector(p, testEncoders())

	var invalid *entities.InvalidCategoryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "profession", invalid.Field)
	assert.Equal(t, "astronaut", invalid.Value)
	assert.Equal(t, "Invalid value for profession", err.Error())
}

func TestBuildFeatureVector_MissingEncoderIsIntegrityError(t *testing.T) {
	encoders := testEncoders()
	delete(encoders, "married")

	_, err := BuildFeatureVector(testProfile(), encoders)

	var integrity *entities.ArtifactIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Detail, "married")
}

func TestFeatureVector_SliceOrder(t *testing.T) {
	vec := entities.FeatureVector{
		Age: 1, Weight: 2, Height: 3, Exercise: 4, Sleep: 5, Sugar: 6,
		Smoking: 7, Alcohol: 8, Married: 9, Profession: 10, BMI: 11,
	}

	// The classifier was fitted against exactly this column order.
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, vec.Slice())
	assert.Len(t, vec.Slice(), entities.NumFeatures)
}
