// assess.go is the pipeline orchestrator: one request-scoped, synchronous
// transaction composing validation -> encoding -> scaling -> classification ->
// confidence -> refinement. Any step failing aborts the transaction; partial
// results are never returned.
package usecases

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
	"github.com/vitasense/vitasense-go/internal/domain/ports"
)

// AssessUseCase runs the full inference pipeline for one profile.
type AssessUseCase struct {
	models  ports.ModelProvider
	history ports.AssessmentStore // optional; nil disables history
	policy  Policy
}

// NewAssessUseCase creates an AssessUseCase with injected dependencies.
func NewAssessUseCase(models ports.ModelProvider, history ports.AssessmentStore, policy Policy) *AssessUseCase {
	return &AssessUseCase{
		models:  models,
		history: history,
		policy:  policy,
	}
}

// Assess validates the request, runs the classifier, scores confidence, and
// applies the refinement rules. Validation and encoding failures are client
// errors; an inconsistent artifact surfaces as ArtifactIntegrityError.
func (uc *AssessUseCase) Assess(ctx context.Context, req entities.ProfileRequest) (*entities.Assessment, error) {
	profile, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	bundle := uc.models.Bundle()
	if bundle == nil {
		return nil, &entities.ArtifactIntegrityError{Detail: "no model artifact loaded"}
	}

	vector, err := BuildFeatureVector(profile, bundle.Encoders)
	if err != nil {
		return nil, err
	}

	scaled, err := bundle.Scaler.Transform(vector.Slice())
	if err != nil {
		return nil, fmt.Errorf("scaling features: %w", err)
	}

	classIdx, err := bundle.Classifier.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("classifying: %w", err)
	}

	mlRisk, err := bundle.Target.DecodeLabel(classIdx)
	if err != nil {
		return nil, err
	}

	proba, err := bundle.Classifier.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("scoring confidence: %w", err)
	}

	finalRisk, explanation := uc.policy.Refine(
		mlRisk, vector.BMI, profile.Smoking, profile.Exercise, profile.Sleep,
	)

	assessment := &entities.Assessment{
		MLPrediction: mlRisk,
		FinalRisk:    finalRisk,
		Confidence:   Confidence(proba),
		Explanation:  explanation,
	}

	uc.record(ctx, profile, assessment)

	return assessment, nil
}

// record persists the assessment for the history endpoint. Best effort: a
// store failure is logged and never fails the request.
func (uc *AssessUseCase) record(ctx context.Context, profile entities.Profile, a *entities.Assessment) {
	if uc.history == nil {
		return
	}
	rec := entities.AssessmentRecord{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Profile:    profile,
		Assessment: *a,
	}
	if err := uc.history.Save(ctx, rec); err != nil {
		log.Printf("[WARN] saving assessment history: %v", err)
	}
}

// Confidence reports the classifier's certainty in its top choice as a
// percentage with 2 decimals. A one-hot distribution yields exactly 100.00.
// Independent of whether refinement later overrides the label.
func Confidence(distribution []float64) float64 {
	var top float64
	for _, p := range distribution {
		if p > top {
			top = p
		}
	}
	return math.Round(top*100*100) / 100
}

// validateRequest checks the ten mandatory fields in declaration order and
// the numeric domains the encoder relies on. The first missing field is the
// one reported.
func validateRequest(req entities.ProfileRequest) (entities.Profile, error) {
	missing := func(field string) (entities.Profile, error) {
		return entities.Profile{}, &entities.MissingFieldError{Field: field}
	}

	switch {
	case req.Age == nil:
		return missing("age")
	case req.Weight == nil:
		return missing("weight")
	case req.Height == nil:
		return missing("height")
	case req.Exercise == nil:
		return missing("exercise")
	case req.Sleep == nil:
		return missing("sleep")
	case req.SugarIntake == nil:
		return missing("sugar_intake")
	case req.Smoking == nil:
		return missing("smoking")
	case req.Alcohol == nil:
		return missing("alcohol")
	case req.Married == nil:
		return missing("married")
	case req.Profession == nil:
		return missing("profession")
	}

	if *req.Age <= 0 {
		return entities.Profile{}, &entities.NumericDomainError{Field: "age", Reason: "must be positive"}
	}
	if *req.Weight <= 0 {
		return entities.Profile{}, &entities.NumericDomainError{Field: "weight", Reason: "must be positive"}
	}
	if *req.Height <= 0 {
		return entities.Profile{}, &entities.NumericDomainError{Field: "height", Reason: "must be positive"}
	}
	if *req.Sleep < 0 {
		return entities.Profile{}, &entities.NumericDomainError{Field: "sleep", Reason: "must not be negative"}
	}

	return entities.Profile{
		Age:         *req.Age,
		Weight:      *req.Weight,
		Height:      *req.Height,
		Exercise:    *req.Exercise,
		Sleep:       *req.Sleep,
		SugarIntake: *req.SugarIntake,
		Smoking:     *req.Smoking,
		Alcohol:     *req.Alcohol,
		Married:     *req.Married,
		Profession:  *req.Profession,
	}, nil
}
