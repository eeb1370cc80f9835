package property

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/laurel/pkg/database"
	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/normalizers"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

const candidateColumns = `p.id, p.address_1, p.address_2, p.address_3, p.address_4,
	p.building_name, p.sub_locality, p.locality, p.city, p.pin_code,
	p.land_area_sft, p.year_of_construction, p.total_value_inr, p.created_at,
	pad.actual_area_sft, pad.area_adopted_for_valuation_sft, pad.area_adopted_type,
	pcd.bedrooms`

// Repository handles valuation corpus persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new property repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create persists a property with its area and construction sub-records in
// one transaction. Raw extracted values are stored verbatim; sentinel-only
// values are stored as NULL.
func (r *Repository) Create(ctx context.Context, fields models.PropertyFields) (*models.Property, error) {
	ctx, span := tracing.StartSpan(ctx, "property.Repository.Create")
	defer span.End()

	return r.insert(ctx, uuid.New().String(), fields, false)
}

// Ingest persists an extracted document under a deterministic ID derived from
// the document ID, with conflict-ignoring inserts. Redelivered messages land
// on the same row instead of duplicating the corpus.
func (r *Repository) Ingest(ctx context.Context, documentID string, fields models.PropertyFields) (*models.Property, error) {
	ctx, span := tracing.StartSpan(ctx, "property.Repository.Ingest")
	defer span.End()

	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(documentID)).String()
	return r.insert(ctx, id, fields, true)
}

func (r *Repository) insert(ctx context.Context, id string, fields models.PropertyFields, ignoreConflicts bool) (*models.Property, error) {
	createdAt := time.Now().UTC()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewInsertBuilder()
	sb.InsertInto("property")
	sb.Cols("id", "address_1", "address_2", "address_3", "address_4", "building_name", "sub_locality", "locality", "city", "pin_code", "land_area_sft", "year_of_construction", "total_value_inr", "created_at")
	sb.Values(id,
		storable(fields.Get("address_1")),
		storable(fields.Get("address_2")),
		storable(fields.Get("address_3")),
		storable(fields.Get("address_4")),
		storable(fields.Get("building_name")),
		storable(fields.Get("sub_locality")),
		storable(fields.Get("locality")),
		storable(fields.Get("city")),
		storable(fields.Get("pin_code")),
		storable(fields.Get("land_area_sft")),
		storable(fields.Get("year_of_construction")),
		storable(fields.Get("total_value_inr")),
		createdAt,
	)
	if ignoreConflicts {
		sb.OnConflictDoNothing()
	}

	query, args := sb.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"property_id": id}).Error("Failed to create property")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create property")
	}

	sb = database.NewInsertBuilder()
	sb.InsertInto("property_area_details")
	sb.Cols("property_id", "actual_area_sft", "area_adopted_for_valuation_sft", "area_adopted_type")
	sb.Values(id,
		storable(fields.Get("actual_area_sft")),
		storable(fields.Get("area_adopted_for_valuation_sft")),
		storable(fields.Get("area_adopted_type")),
	)
	if ignoreConflicts {
		sb.OnConflictDoNothing()
	}

	query, args = sb.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"property_id": id}).Error("Failed to create property area details")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create property area details")
	}

	sb = database.NewInsertBuilder()
	sb.InsertInto("property_construction_details")
	sb.Cols("property_id", "bedrooms")
	sb.Values(id, storable(fields.Get("bedrooms")))
	if ignoreConflicts {
		sb.OnConflictDoNothing()
	}

	query, args = sb.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"property_id": id}).Error("Failed to create property construction details")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create property construction details")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to commit property")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"property_id": id}).Info("Created property")

	return r.Get(ctx, id)
}

// Get retrieves a property by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Property, error) {
	ctx, span := tracing.StartSpan(ctx, "property.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "address_1", "address_2", "address_3", "address_4", "building_name", "sub_locality", "locality", "city", "pin_code", "land_area_sft", "year_of_construction", "total_value_inr", "created_at")
	sb.From("property")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var property models.Property
	if err := r.db.GetContext(ctx, &property, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("property %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get property")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get property")
	}

	return &property, nil
}

// ListComparables reads every corpus row except the excluded subject, left
// joined with the area and construction sub-records so missing sub-records
// yield null fields rather than dropping the row. Recency ordering is a
// default only; the ranker re-orders by score.
func (r *Repository) ListComparables(ctx context.Context, excludeID string) ([]models.CorpusCandidate, error) {
	ctx, span := tracing.StartSpan(ctx, "property.Repository.ListComparables")
	defer span.End()

	query := fmt.Sprintf(`
		SELECT %s
		FROM property p
		LEFT JOIN property_area_details pad ON p.id = pad.property_id
		LEFT JOIN property_construction_details pcd ON p.id = pcd.property_id
		WHERE p.id != $1
		ORDER BY p.created_at DESC
	`, candidateColumns)

	var candidates []models.CorpusCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, excludeID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list comparable candidates")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list comparable candidates")
	}

	return candidates, nil
}

// Count returns the number of properties in the corpus
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "property.Repository.Count")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("property")

	query, args := sb.Build()
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count properties")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count properties")
	}

	return count, nil
}

// storable maps a raw extracted value to its stored form: NULL when the
// value is empty or any sentinel spelling, verbatim otherwise.
func storable(value string) any {
	cleaned := normalizers.CleanValue(value)
	if cleaned == normalizers.NA {
		return nil
	}
	return cleaned
}
