package entities

import "fmt"

// MissingFieldError reports a mandatory request field that was absent.
// Recovered at the boundary; the classifier is never invoked.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing field: %s", e.Field)
}

// InvalidCategoryError reports a categorical value outside the encoder's
// fitted vocabulary. A client error, never silently defaulted.
type InvalidCategoryError struct {
	Field string
	Value string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("Invalid value for %s", e.Field)
}

// NumericDomainError reports a numeric field outside its valid domain,
// e.g. a non-positive height that would make BMI undefined.
type NumericDomainError struct {
	Field  string
	Reason string
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("Invalid value for %s: %s", e.Field, e.Reason)
}

// ArtifactIntegrityError reports an internally inconsistent model artifact,
// e.g. a class index the target encoder cannot decode. Fatal to the
// request and a strong signal of corrupted or mismatched model files.
type ArtifactIntegrityError struct {
	Detail string
}

func (e *ArtifactIntegrityError) Error() string {
	return fmt.Sprintf("model artifact integrity error: %s", e.Detail)
}
