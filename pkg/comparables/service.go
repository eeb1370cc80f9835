// Package comparables implements the comparable-property engine: weighted
// similarity scoring of corpus candidates against a subject property, ranked
// selection of the best match, and formatting of the comparable pair for the
// valuation report.
package comparables

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// CorpusReader reads candidate rows from the valuation corpus.
type CorpusReader interface {
	ListComparables(ctx context.Context, excludeID string) ([]models.CorpusCandidate, error)
}

// EventPublisher emits an event when a comparable is selected for a report.
type EventPublisher interface {
	PublishComparableSelected(ctx context.Context, subjectID string, selected models.ScoredCandidate) error
}

// Config contains configuration for the comparables service.
type Config struct {
	Limit int // Maximum comparables to select from the corpus (default: 2)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Limit: 2}
}

// Service runs the full comparable pipeline: corpus read, score and rank,
// then format. A corpus failure never fails the caller; the report degrades
// to the all-"NA" placeholder instead.
type Service struct {
	log    ectologger.Logger
	corpus CorpusReader
	events EventPublisher
	cfg    Config
}

// NewService creates a new comparables service. events may be nil when no
// producer is configured.
func NewService(log ectologger.Logger, corpus CorpusReader, events EventPublisher, cfg Config) *Service {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultConfig().Limit
	}
	return &Service{
		log:    log,
		corpus: corpus,
		events: events,
		cfg:    cfg,
	}
}

// FindComparables scores the corpus against the subject and returns the best
// matches, excluding the subject's own row.
func (s *Service) FindComparables(ctx context.Context, subjectID string, subjectFields models.PropertyFields) []models.ScoredCandidate {
	ctx, span := tracing.StartSpan(ctx, "comparables.Service.FindComparables")
	defer span.End()

	log := s.log.WithContext(ctx).WithField("subject_id", subjectID)

	candidates, err := s.corpus.ListComparables(ctx, subjectID)
	if err != nil {
		// Degrade to an empty corpus; the report still renders with the
		// placeholder comparable.
		log.WithError(err).Error("Failed to read comparable candidates; continuing with empty corpus")
		return nil
	}

	if len(candidates) == 0 {
		log.Info("No candidate properties in corpus")
		return nil
	}

	subject := NewSubjectProfile(subjectFields)
	best := SelectBest(subject, candidates, s.cfg.Limit)

	log.WithFields(map[string]any{
		"candidate_count": len(candidates),
		"selected_count":  len(best),
	}).Info("Selected comparable candidates")

	for _, selected := range best {
		log.WithFields(map[string]any{
			"candidate_id": selected.Candidate.ID,
			"score":        selected.Score,
		}).Debug("Comparable candidate scored")
	}

	return best
}

// GenerateReportComparables runs the pipeline end to end and returns the
// merged comparable pair plus the flattened report fields.
func (s *Service) GenerateReportComparables(ctx context.Context, subjectID string, subjectFields models.PropertyFields) models.MergedComparables {
	ctx, span := tracing.StartSpan(ctx, "comparables.Service.GenerateReportComparables")
	defer span.End()

	best := s.FindComparables(ctx, subjectID, subjectFields)
	merged := Merge(subjectFields, best)

	if s.events != nil && len(best) > 0 {
		if err := s.events.PublishComparableSelected(ctx, subjectID, best[0]); err != nil {
			// Event emission is best effort; the report result stands.
			s.log.WithContext(ctx).WithError(err).Warn("Failed to publish comparable selected event")
		}
	}

	return merged
}
