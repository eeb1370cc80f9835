package comparables

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/laurel/pkg/models"
)

func candidateWith(id string, fields map[string]*string) models.CorpusCandidate {
	c := models.CorpusCandidate{Property: models.Property{ID: id}}
	for name, value := range fields {
		switch name {
		case "pin_code":
			c.PinCode = value
		case "locality":
			c.Locality = value
		case "land_area_sft":
			c.LandAreaSft = value
		case "bedrooms":
			c.Bedrooms = value
		}
	}
	return c
}

func TestRank(t *testing.T) {
	t.Run("should order candidates best first", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{
			"pin_code": "502032",
			"locality": "Ameenpur",
		})

		candidates := []models.CorpusCandidate{
			candidateWith("far", map[string]*string{"pin_code": strPtr("600001")}),
			candidateWith("near", map[string]*string{"pin_code": strPtr("502032"), "locality": strPtr("Ameenpur")}),
			candidateWith("region", map[string]*string{"pin_code": strPtr("502110")}),
		}

		ranked := Rank(subject, candidates)

		assert.Len(t, ranked, 3)
		assert.Equal(t, "near", ranked[0].Candidate.ID)
		assert.Equal(t, 90.0, ranked[0].Score)
		assert.Equal(t, "region", ranked[1].Candidate.ID)
		assert.Equal(t, 40.0, ranked[1].Score)
		assert.Equal(t, "far", ranked[2].Candidate.ID)
	})

	t.Run("should break score ties on ID ascending", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})

		candidates := []models.CorpusCandidate{
			candidateWith("bbb", map[string]*string{"pin_code": strPtr("502032")}),
			candidateWith("aaa", map[string]*string{"pin_code": strPtr("502032")}),
		}

		ranked := Rank(subject, candidates)

		assert.Equal(t, "aaa", ranked[0].Candidate.ID)
		assert.Equal(t, "bbb", ranked[1].Candidate.ID)
		assert.Equal(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("should never discard a candidate on score", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})

		candidates := []models.CorpusCandidate{
			candidateWith("empty-1", nil),
			candidateWith("empty-2", nil),
		}

		ranked := Rank(subject, candidates)

		assert.Len(t, ranked, 2)
		for _, scored := range ranked {
			assert.Equal(t, 1.0, scored.Score)
		}
	})
}

func TestSelectBest(t *testing.T) {
	t.Run("should return at most limit candidates", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})

		candidates := []models.CorpusCandidate{
			candidateWith("a", map[string]*string{"pin_code": strPtr("502032")}),
			candidateWith("b", map[string]*string{"pin_code": strPtr("502110")}),
			candidateWith("c", map[string]*string{"pin_code": strPtr("600001")}),
		}

		best := SelectBest(subject, candidates, 2)

		assert.Len(t, best, 2)
		assert.Equal(t, "a", best[0].Candidate.ID)
		assert.Equal(t, "b", best[1].Candidate.ID)
	})

	t.Run("should return everything when limit exceeds the corpus", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})

		best := SelectBest(subject, []models.CorpusCandidate{candidateWith("only", nil)}, 10)

		assert.Len(t, best, 1)
	})

	t.Run("should treat a negative limit as zero", func(t *testing.T) {
		subject := subjectFromFields(map[string]string{"pin_code": "502032"})

		best := SelectBest(subject, []models.CorpusCandidate{candidateWith("only", nil)}, -1)

		assert.Empty(t, best)
	})
}
