// refine.go is the knowledge refinement engine: an ordered, short-circuiting
// rule chain that post-processes the classifier's verdict with human-authored
// domain constraints. Rules read the raw semantic values (not encoder codes)
// so they stay readable and survive encoder code reassignment.
package usecases

import "github.com/vitasense/vitasense-go/internal/domain/entities"

// Explanation notes, one per rule. The default note is appended when no
// override fires so the explanation trace is never empty.
const (
	NoteMetabolicOverride = "High BMI and smoking detected"
	NoteLifestyleSoftened = "Good lifestyle reduced risk"
	NoteNoRuleTriggered   = "No rule triggered"
)

// Policy holds the refinement thresholds. They are policy constants, not
// tunables: the defaults are the contract and changing them changes verdicts.
type Policy struct {
	BMIThreshold   float64 // rule 1: bmi at or above this plus smoking forces high
	SleepThreshold float64 // rule 2: sleep at or above this plus high exercise softens high
}

// DefaultPolicy returns the standard thresholds (BMI 30, 8 hours of sleep).
func DefaultPolicy() Policy {
	return Policy{BMIThreshold: 30, SleepThreshold: 8}
}

// Refine evaluates the rule chain in priority order; the first matching rule
// wins and no further rules run.
//
//  1. bmi >= threshold and smoking         -> high, regardless of the model
//  2. high exercise, enough sleep, ml high -> medium
//  3. pass-through
func (p Policy) Refine(ml entities.RiskLabel, bmi float64, smoking, exercise string, sleep float64) (entities.RiskLabel, []string) {
	if bmi >= p.BMIThreshold && smoking == "yes" {
		return entities.RiskHigh, []string{NoteMetabolicOverride}
	}

	if exercise == "high" && sleep >= p.SleepThreshold && ml == entities.RiskHigh {
		return entities.RiskMedium, []string{NoteLifestyleSoftened}
	}

	return ml, []string{NoteNoRuleTriggered}
}
