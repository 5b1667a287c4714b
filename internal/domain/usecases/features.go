// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces - no framework
// code, no knowledge of how the model artifact is stored or evaluated.
package usecases

import (
	"github.com/vitasense/vitasense-go/internal/domain/entities"
	"github.com/vitasense/vitasense-go/internal/domain/ports"
)

// BuildFeatureVector encodes the categorical fields through their fitted
// encoders and derives BMI, producing the named-field record that feeds the
// scaler. Numeric ranges are validated upstream by the orchestrator; an
// unknown categorical value surfaces as InvalidCategoryError naming the field.
func BuildFeatureVector(p entities.Profile, encoders map[string]ports.CategoryEncoder) (entities.FeatureVector, error) {
	raw := map[string]string{
		"exercise":     p.Exercise,
		"sugar_intake": p.SugarIntake,
		"smoking":      p.Smoking,
		"alcohol":      p.Alcohol,
		"married":      p.Married,
		"profession":   p.Profession,
	}

	codes := make(map[string]float64, len(entities.CategoricalFields))
	for _, field := range entities.CategoricalFields {
		enc, ok := encoders[field]
		if !ok {
			return entities.FeatureVector{}, &entities.ArtifactIntegrityError{
				Detail: "no encoder fitted for field " + field,
			}
		}
		code, err := enc.Encode(raw[field])
		if err != nil {
			return entities.FeatureVector{}, &entities.InvalidCategoryError{
				Field: field,
				Value: raw[field],
			}
		}
		codes[field] = float64(code)
	}

	return entities.FeatureVector{
		Age:        float64(p.Age),
		Weight:     p.Weight,
		Height:     p.Height,
		Exercise:   codes["exercise"],
		Sleep:      p.Sleep,
		Sugar:      codes["sugar_intake"],
		Smoking:    codes["smoking"],
		Alcohol:    codes["alcohol"],
		Married:    codes["married"],
		Profession: codes["profession"],
		BMI:        p.BMI(),
	}, nil
}
