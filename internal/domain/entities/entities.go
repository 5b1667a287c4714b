// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import (
	"math"
	"time"
)

// RiskLabel is a health risk class, totally ordered by severity.
type RiskLabel string

const (
	RiskLow    RiskLabel = "low"
	RiskMedium RiskLabel = "medium"
	RiskHigh   RiskLabel = "high"
)

// Severity maps labels onto their ordering (low < medium < high).
// Unknown labels rank below low so a corrupted value never outranks a real one.
func (r RiskLabel) Severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the label is one of the three known classes.
func (r RiskLabel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// Profile is a fully validated inference input. The transport layer decodes
// into ProfileRequest first so missing fields can be told apart from zero values.
type Profile struct {
	Age         int     `json:"age"`
	Weight      float64 `json:"weight"`       // kg
	Height      float64 `json:"height"`       // cm
	Exercise    string  `json:"exercise"`     // low / medium / high
	Sleep       float64 `json:"sleep"`        // hours
	SugarIntake string  `json:"sugar_intake"` // low / medium / high
	Smoking     string  `json:"smoking"`      // yes / no
	Alcohol     string  `json:"alcohol"`      // yes / no
	Married     string  `json:"married"`      // yes / no
	Profession  string  `json:"profession"`
}

// BMI computes weight / (height in meters)^2 rounded to 1 decimal.
// Always recomputed per request, never cached.
func (p Profile) BMI() float64 {
	m := p.Height / 100
	return math.Round(p.Weight/(m*m)*10) / 10
}

// ProfileRequest is the wire-level input. Pointer fields distinguish
// absent from zero so validation can name the first missing field.
type ProfileRequest struct {
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Exercise    *string  `json:"exercise"`
	Sleep       *float64 `json:"sleep"`
	SugarIntake *string  `json:"sugar_intake"`
	Smoking     *string  `json:"smoking"`
	Alcohol     *string  `json:"alcohol"`
	Married     *string  `json:"married"`
	Profession  *string  `json:"profession"`
}

// CategoricalFields lists the profile fields that require a fitted encoder,
// in request-declaration order. The artifact must ship one encoder per field.
var CategoricalFields = []string{
	"exercise", "sugar_intake", "smoking", "alcohol", "married", "profession",
}

// NumFeatures is the classifier's fixed input width.
const NumFeatures = 11

// FeatureVector is the encoded input as a named-field record. The classifier
// expects a fixed column order; keeping named fields here and serializing
// only at the classifier boundary (Slice) makes that coupling explicit
// instead of relying on incidental array-literal ordering.
type FeatureVector struct {
	Age        float64
	Weight     float64
	Height     float64
	Exercise   float64 // encoded code
	Sleep      float64
	Sugar      float64 // encoded code
	Smoking    float64 // encoded code
	Alcohol    float64 // encoded code
	Married    float64 // encoded code
	Profession float64 // encoded code
	BMI        float64
}

// Slice serializes the vector in the order the classifier was fitted with:
// age, weight, height, exercise, sleep, sugar, smoking, alcohol, married,
// profession, bmi. Reordering silently corrupts predictions, so this is
// the only place the order is written down.
func (v FeatureVector) Slice() []float64 {
	return []float64{
		v.Age, v.Weight, v.Height,
		v.Exercise, v.Sleep, v.Sugar,
		v.Smoking, v.Alcohol, v.Married,
		v.Profession, v.BMI,
	}
}

// Assessment is the outcome of one inference transaction.
type Assessment struct {
	MLPrediction RiskLabel `json:"ml_prediction"`
	FinalRisk    RiskLabel `json:"final_risk"`
	Confidence   float64   `json:"confidence"` // percent, 2 decimals
	Explanation  []string  `json:"explanation"`
}

// AssessmentRecord is a persisted assessment for the history endpoint.
type AssessmentRecord struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Profile    Profile    `json:"profile"`
	Assessment Assessment `json:"assessment"`
}
