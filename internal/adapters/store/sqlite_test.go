package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
)

func testRecord(id string, at time.Time) entities.AssessmentRecord {
	return entities.AssessmentRecord{
		ID:        id,
		CreatedAt: at,
		Profile: entities.Profile{
			Age: 45, Weight: 95, Height: 170,
			Exercise: "low", Sleep: 5, SugarIntake: "high",
			Smoking: "yes", Alcohol: "no", Married: "yes",
			Profession: "office_worker",
		},
		Assessment: entities.Assessment{
			MLPrediction: entities.RiskLow,
			FinalRisk:    entities.RiskHigh,
			Confidence:   87.5,
			Explanation:  []string{"High BMI and smoking detected"},
		},
	}
}

func TestSQLiteStore_SaveAndRecent(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assessments.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, testRecord("a", base)))
	require.NoError(t, s.Save(ctx, testRecord("b", base.Add(time.Minute))))
	require.NoError(t, s.Save(ctx, testRecord("c", base.Add(2*time.Minute))))

	records, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID, "newest first")
	assert.Equal(t, "b", records[1].ID)
}

func TestSQLiteStore_RoundTripsRecord(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assessments.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	want := testRecord("a", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(ctx, want))

	records, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, want, records[0])
}

func TestSQLiteStore_EmptyHistory(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assessments.db"))
	require.NoError(t, err)
	defer s.Close()

	records, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStore_CreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "assessments.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), testRecord("a", time.Now().UTC())))
}
