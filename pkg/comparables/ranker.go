package comparables

import (
	"sort"

	"github.com/Ramsey-B/laurel/pkg/models"
)

// Rank scores every candidate against the subject and returns them ordered
// best first. Ties break on property ID ascending so results are stable
// regardless of store ordering. No candidate is ever filtered out on score.
func Rank(subject Profile, candidates []models.CorpusCandidate) []models.ScoredCandidate {
	scored := make([]models.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, models.ScoredCandidate{
			Candidate: candidate,
			Score:     Score(subject, NewCandidateProfile(candidate)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Candidate.ID < scored[j].Candidate.ID
	})

	return scored
}

// SelectBest ranks the candidates and returns the top limit entries. A limit
// beyond the candidate count returns everything available.
func SelectBest(subject Profile, candidates []models.CorpusCandidate, limit int) []models.ScoredCandidate {
	ranked := Rank(subject, candidates)
	if limit < 0 {
		limit = 0
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}
