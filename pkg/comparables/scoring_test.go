package comparables

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/laurel/pkg/models"
)

func strPtr(s string) *string {
	return &s
}

func subjectFromFields(fields map[string]string) Profile {
	return NewSubjectProfile(models.PropertyFields(fields))
}

func TestScore(t *testing.T) {
	t.Run("should award full location points for exact pincode and locality", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{
			"pin_code": "502032",
			"locality": "Ameenpur",
		})
		candidate := subjectFromFields(map[string]string{
			"pin_code": "502032",
			"locality": "Ameenpur",
		})

		assert.Equal(t, 90.0, Score(subject, candidate))
	})

	t.Run("should award prefix points when only the pincode region matches", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})
		candidate := subjectFromFields(map[string]string{"pin_code": "502110"})

		assert.Equal(t, 40.0, Score(subject, candidate))
	})

	t.Run("should ignore pincodes when either side is a sentinel", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "NA", "locality": "Ameenpur"})
		candidate := subjectFromFields(map[string]string{"pin_code": "502032", "locality": "Ameenpur"})

		assert.Equal(t, 30.0, Score(subject, candidate))
	})

	t.Run("should match locality case-insensitively", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"locality": "AMEENPUR"})
		candidate := subjectFromFields(map[string]string{"locality": "ameenpur"})

		assert.Equal(t, 30.0, Score(subject, candidate))
	})

	t.Run("should award partial locality points on containment either way", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"locality": "Ameenpur"})
		candidate := subjectFromFields(map[string]string{"locality": "Ameenpur Village"})

		assert.Equal(t, 20.0, Score(subject, candidate))
		assert.Equal(t, 20.0, Score(candidate, subject))
	})

	t.Run("should double area weight when no location matched", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{
			"pin_code":      "NA",
			"land_area_sft": "1500",
		})
		candidate := subjectFromFields(map[string]string{
			"pin_code":      "None",
			"land_area_sft": "1450",
		})

		// 50/1500 = 3.3% relative difference, no location regime
		assert.Equal(t, 40.0, Score(subject, candidate))
	})

	t.Run("should use the reduced area bands when location matched", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{
			"pin_code":      "502032",
			"land_area_sft": "1500",
		})
		candidate := subjectFromFields(map[string]string{
			"pin_code":      "502032",
			"land_area_sft": "1450",
		})

		assert.Equal(t, 60.0+20.0, Score(subject, candidate))
	})

	t.Run("should score the area bands monotonically", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"land_area_sft": "1000"})

		previous := 1000.0
		for _, candidateArea := range []string{"1050", "1200", "1450", "1900", "2500"} {
			candidate := subjectFromFields(map[string]string{"land_area_sft": candidateArea})
			score := Score(subject, candidate)
			assert.LessOrEqual(t, score, previous, "area %s should not score above a closer area", candidateArea)
			previous = score
		}
	})

	t.Run("should measure area difference relative to the subject", func(t *testing.T) {
		// 500/1000 = 50% from the smaller subject, 500/1500 = 33% from the
		// larger one, so the direction changes the band.
		small := subjectFromFields(map[string]string{"land_area_sft": "1000"})
		large := subjectFromFields(map[string]string{"land_area_sft": "1500"})

		assert.Equal(t, 10.0, Score(small, large))
		assert.Equal(t, 20.0, Score(large, small))
	})

	t.Run("should score land and actual areas independently", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{
			"land_area_sft":   "1500",
			"actual_area_sft": "3600",
		})
		candidate := subjectFromFields(map[string]string{
			"land_area_sft":   "1500",
			"actual_area_sft": "3600",
		})

		assert.Equal(t, 80.0, Score(subject, candidate))
	})

	t.Run("should score years by gap bands", func(t *testing.T) {
		cases := []struct {
			name          string
			candidateYear string
			expected      float64
		}{
			{name: "same year", candidateYear: "2016", expected: 15.0},
			{name: "two years apart", candidateYear: "2014", expected: 10.0},
			{name: "five years apart", candidateYear: "2011", expected: 7.0},
			{name: "ten years apart", candidateYear: "2006", expected: 3.0},
			// The year alone is not a floor signal, so a gap beyond every
			// band scores zero.
			{name: "eleven years apart", candidateYear: "2005", expected: 0.0},
		}

		subject := subjectFromFields(map[string]string{"year_of_construction": "2016"})
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				candidate := subjectFromFields(map[string]string{"year_of_construction": tc.candidateYear})
				assert.Equal(t, tc.expected, Score(subject, candidate))
			})
		}
	})

	t.Run("should extract the year from free text", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"year_of_construction": "built 2016"})
		candidate := subjectFromFields(map[string]string{"year_of_construction": "2016 (approx)"})

		assert.Equal(t, 15.0, Score(subject, candidate))
	})

	t.Run("should boost bedroom weight when no location matched", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"bedrooms": "3"})
		candidate := subjectFromFields(map[string]string{"bedrooms": "3"})

		assert.Equal(t, 35.0, Score(subject, candidate))
	})

	t.Run("should use the reduced bedroom bands when location matched", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032", "bedrooms": "3"})
		candidate := subjectFromFields(map[string]string{"pin_code": "502032", "bedrooms": "4"})

		assert.Equal(t, 60.0+8.0, Score(subject, candidate))
	})

	t.Run("should not switch regime on sub-locality or city alone", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{
			"city":          "Hyderabad",
			"land_area_sft": "1500",
		})
		candidate := subjectFromFields(map[string]string{
			"city":          "Hyderabad",
			"land_area_sft": "1500",
		})

		// City exact (20) plus the no-location area band (40)
		assert.Equal(t, 60.0, Score(subject, candidate))
	})

	t.Run("should floor the score when the subject has any signal", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})
		candidate := subjectFromFields(map[string]string{"locality": "Gachibowli"})

		assert.Equal(t, 1.0, Score(subject, candidate))
	})

	t.Run("should score zero when the subject carries no signal", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{})
		candidate := subjectFromFields(map[string]string{"pin_code": "502032", "locality": "Ameenpur"})

		assert.Equal(t, 0.0, Score(subject, candidate))
	})
}

func TestHasAnySignal(t *testing.T) {
	t.Run("should detect each scorable attribute", func(t *testing.T) {
		assert.True(t, subjectFromFields(map[string]string{"pin_code": "502032"}).HasAnySignal())
		assert.True(t, subjectFromFields(map[string]string{"locality": "Ameenpur"}).HasAnySignal())
		assert.True(t, subjectFromFields(map[string]string{"land_area_sft": "1500"}).HasAnySignal())
		assert.True(t, subjectFromFields(map[string]string{"actual_area_sft": "3600"}).HasAnySignal())
		assert.True(t, subjectFromFields(map[string]string{"bedrooms": "2"}).HasAnySignal())
	})

	t.Run("should ignore sentinel and non-signal fields", func(t *testing.T) {
		assert.False(t, subjectFromFields(map[string]string{
			"pin_code": "None",
			"locality": "NA",
			"city":     "Hyderabad",
		}).HasAnySignal())
	})
}

func TestNewCandidateProfile(t *testing.T) {
	t.Run("should normalize nullable corpus columns", func(t *testing.T) {
		profile := NewCandidateProfile(models.CorpusCandidate{
			Property: models.Property{
				ID:          "abc",
				PinCode:     strPtr(" 502032 "),
				Locality:    strPtr("Ameenpur"),
				LandAreaSft: strPtr("1,500 sft"),
			},
			Bedrooms: strPtr("None"),
		})

		assert.Equal(t, "abc", profile.ID)
		assert.Equal(t, "502032", profile.PinCode)
		assert.Equal(t, "ameenpur", profile.Locality)
		assert.Equal(t, 1500.0, profile.LandArea.Value)
		assert.False(t, profile.Bedrooms.Valid)
	})
}
