package comparables

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/normalizers"
)

func TestSubjectComparable(t *testing.T) {
	t.Run("should derive the per-sqft price by truncation", func(t *testing.T) {
		record := SubjectComparable(models.PropertyFields{
			"total_value_inr": "16,642,800",
			"actual_area_sft": "3621",
		})

		assert.Equal(t, "4596", record.TransactionPricePerSftINR)
		assert.Equal(t, "16,642,800", record.ApproxTransactionPriceINR)
		assert.Equal(t, "3621", record.ApproxAreaSft)
	})

	t.Run("should apportion the land value by area ratio when built-up is known", func(t *testing.T) {
		record := SubjectComparable(models.PropertyFields{
			"total_value_inr": "16642800",
			"actual_area_sft": "3621",
			"land_area_sft":   "1500",
		})

		// (1500 / 3621) * 16642800 truncates to 6894283
		assert.Equal(t, "6894283", record.ApproxTransactionPriceLandINR)
		assert.Equal(t, "4596", record.TransactionPricePerSftLandINR)
	})

	t.Run("should treat the whole value as land value without a built-up area", func(t *testing.T) {
		record := SubjectComparable(models.PropertyFields{
			"total_value_inr": "5000000",
			"land_area_sft":   "2000",
		})

		assert.Equal(t, "5000000", record.ApproxTransactionPriceLandINR)
		assert.Equal(t, "2500", record.TransactionPricePerSftLandINR)
		assert.Equal(t, "2000", record.ApproxAreaSft)
	})

	t.Run("should carry the fixed subject labels", func(t *testing.T) {
		record := SubjectComparable(models.PropertyFields{})

		assert.Equal(t, "Subject Property", record.TransactionType)
		assert.Equal(t, "Subject Property Details - Current property being valued", record.SourceOfInformation)
	})

	t.Run("should collapse sentinel inputs to NA", func(t *testing.T) {
		record := SubjectComparable(models.PropertyFields{
			"address_1": "None None",
			"locality":  "null",
			"city":      "Hyderabad",
		})

		assert.Equal(t, normalizers.NA, record.Address1)
		assert.Equal(t, normalizers.NA, record.Locality)
		assert.Equal(t, "Hyderabad", record.City)
		assert.Equal(t, normalizers.NA, record.ApproxAreaSft)
		assert.Equal(t, normalizers.NA, record.TransactionPricePerSftINR)
	})
}

func TestCandidateComparable(t *testing.T) {
	t.Run("should prefer the actual area for the price calculation", func(t *testing.T) {
		record := CandidateComparable(models.ScoredCandidate{
			Candidate: models.CorpusCandidate{
				Property: models.Property{
					ID:            "cand-1",
					TotalValueINR: strPtr("9000000"),
					LandAreaSft:   strPtr("2000"),
				},
				ActualAreaSft: strPtr("3000"),
			},
			Score: 90,
		})

		assert.Equal(t, "3000", record.ApproxAreaSft)
		assert.Equal(t, "3000", record.TransactionPricePerSftINR)
		assert.Equal(t, "4500", record.TransactionPricePerSftLandINR)
	})

	t.Run("should fall back to land then adopted area", func(t *testing.T) {
		record := CandidateComparable(models.ScoredCandidate{
			Candidate: models.CorpusCandidate{
				Property: models.Property{
					ID:            "cand-2",
					TotalValueINR: strPtr("6000000"),
				},
				AreaAdoptedForValuationSft: strPtr("1200"),
			},
		})

		assert.Equal(t, "1200", record.ApproxAreaSft)
		assert.Equal(t, "5000", record.TransactionPricePerSftINR)
		assert.Equal(t, normalizers.NA, record.TransactionPricePerSftLandINR)
	})

	t.Run("should estimate the land value only when land, built-up and total are present", func(t *testing.T) {
		record := CandidateComparable(models.ScoredCandidate{
			Candidate: models.CorpusCandidate{
				Property: models.Property{
					ID:            "cand-3",
					TotalValueINR: strPtr("9000000"),
					LandAreaSft:   strPtr("1500"),
				},
				ActualAreaSft: strPtr("3000"),
			},
		})

		assert.Equal(t, "4500000", record.ApproxTransactionPriceLandINR)

		record = CandidateComparable(models.ScoredCandidate{
			Candidate: models.CorpusCandidate{
				Property: models.Property{
					ID:            "cand-4",
					TotalValueINR: strPtr("9000000"),
					LandAreaSft:   strPtr("1500"),
				},
			},
		})

		assert.Equal(t, normalizers.NA, record.ApproxTransactionPriceLandINR)
	})

	t.Run("should stamp the provenance with ID and score", func(t *testing.T) {
		record := CandidateComparable(models.ScoredCandidate{
			Candidate: models.CorpusCandidate{
				Property: models.Property{ID: "prop-123"},
			},
			Score: 87.5,
		})

		assert.Equal(t,
			"Database Property ID: prop-123 (Similarity Score: 87.5) - Market comparable from property database",
			record.SourceOfInformation)
		assert.Equal(t, "Comparable Property", record.TransactionType)
		assert.Equal(t, normalizers.NA, record.DateOfTransaction)
	})
}

func TestPlaceholderComparable(t *testing.T) {
	t.Run("should fill every field with NA", func(t *testing.T) {
		record := PlaceholderComparable()

		for _, field := range reportFields {
			assert.Equal(t, normalizers.NA, record.Field(field), "field: %s", field)
		}
		assert.Equal(t, normalizers.NA, record.TransactionType)
		assert.Equal(t, normalizers.NA, record.AreaType)
	})
}

func TestMerge(t *testing.T) {
	subjectFields := models.PropertyFields{
		"address_1":       "Plot 12, Phase 2",
		"locality":        "Ameenpur",
		"city":            "Hyderabad",
		"pin_code":        "502032",
		"total_value_inr": "16642800",
		"actual_area_sft": "3621",
	}

	t.Run("should emit the subject first and the best match second", func(t *testing.T) {
		best := []models.ScoredCandidate{{
			Candidate: models.CorpusCandidate{
				Property: models.Property{ID: "cand-1", Locality: strPtr("Ameenpur")},
			},
			Score: 90,
		}}

		merged := Merge(subjectFields, best)

		assert.Len(t, merged.Comparables, 2)
		assert.Equal(t, "Subject Property", merged.Comparables[0].TransactionType)
		assert.Equal(t, "Comparable Property", merged.Comparables[1].TransactionType)
		assert.Equal(t, "Ameenpur", merged.PDFFields["locality_comparable_2"])
	})

	t.Run("should substitute the placeholder when no candidate exists", func(t *testing.T) {
		merged := Merge(subjectFields, nil)

		assert.Len(t, merged.Comparables, 2)
		assert.Equal(t, normalizers.NA, merged.Comparables[1].SourceOfInformation)
		assert.Equal(t, normalizers.NA, merged.PDFFields["pin_code_comparable_2"])
	})

	t.Run("should flatten exactly the report fields for both comparables", func(t *testing.T) {
		merged := Merge(subjectFields, nil)

		assert.Len(t, merged.PDFFields, len(reportFields)*2)
		for _, field := range reportFields {
			for _, idx := range []int{1, 2} {
				key := fmt.Sprintf("%s_comparable_%d", field, idx)
				_, ok := merged.PDFFields[key]
				assert.True(t, ok, "missing key %s", key)
			}
		}

		// Record-only fields never flatten
		_, ok := merged.PDFFields["transaction_type_comparable_1"]
		assert.False(t, ok)
		_, ok = merged.PDFFields["area_type_comparable_1"]
		assert.False(t, ok)
	})

	t.Run("should re-normalize sentinel artifacts in the flattened output", func(t *testing.T) {
		fields := models.PropertyFields{
			"address_1": "None None",
			"pin_code":  "502032",
		}

		merged := Merge(fields, nil)

		assert.Equal(t, normalizers.NA, merged.PDFFields["address_1_comparable_1"])
		assert.Equal(t, "502032", merged.PDFFields["pin_code_comparable_1"])
	})
}
