package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/laurel/internal/handlers"
	"github.com/Ramsey-B/laurel/pkg/comparables"
	"github.com/Ramsey-B/laurel/pkg/middleware"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// TestAPIHelpers contains helper functions for API testing
type TestAPIHelpers struct {
	t *testing.T
	e *echo.Echo
}

type fakeCorpus struct {
	candidates []models.CorpusCandidate
	err        error
}

func (f *fakeCorpus) ListComparables(_ context.Context, _ string) ([]models.CorpusCandidate, error) {
	return f.candidates, f.err
}

func NewTestAPIHelpers(t *testing.T, corpus *fakeCorpus) *TestAPIHelpers {
	e := echo.New()

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	e.Use(middleware.Context())
	e.HTTPErrorHandler = middleware.Error(logger)

	service := comparables.NewService(logger, corpus, nil, comparables.Config{})

	api := e.Group("/api/v1")
	handlers.NewComparableHandler(service, logger).RegisterRoutes(api)

	return &TestAPIHelpers{t: t, e: e}
}

func (h *TestAPIHelpers) MakeRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func strPtr(s string) *string {
	return &s
}

func TestGenerateComparablesAPI(t *testing.T) {
	subjectID := uuid.New().String()

	t.Run("should return the comparable pair and flattened fields", func(t *testing.T) {
		corpus := &fakeCorpus{candidates: []models.CorpusCandidate{{
			Property: models.Property{
				ID:            uuid.New().String(),
				PinCode:       strPtr("502032"),
				Locality:      strPtr("Ameenpur"),
				TotalValueINR: strPtr("9000000"),
				LandAreaSft:   strPtr("1500"),
			},
		}}}
		h := NewTestAPIHelpers(t, corpus)

		rec := h.MakeRequest(http.MethodPost, "/api/v1/properties/"+subjectID+"/comparables", map[string]any{
			"subject_fields": map[string]string{
				"pin_code":        "502032",
				"locality":        "Ameenpur",
				"total_value_inr": "16642800",
				"actual_area_sft": "3621",
			},
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.ComparablesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, subjectID, resp.PropertyID)
		require.Len(t, resp.Comparables, 2)
		assert.Equal(t, "Subject Property", resp.Comparables[0].TransactionType)
		assert.Equal(t, "Comparable Property", resp.Comparables[1].TransactionType)
		assert.Equal(t, "4596", resp.Comparables[0].TransactionPricePerSftINR)
		assert.Equal(t, "502032", resp.PDFFields["pin_code_comparable_2"])
		assert.Len(t, resp.PDFFields, 34)
	})

	t.Run("should degrade to the placeholder when the corpus is empty", func(t *testing.T) {
		h := NewTestAPIHelpers(t, &fakeCorpus{})

		rec := h.MakeRequest(http.MethodPost, "/api/v1/properties/"+subjectID+"/comparables", map[string]any{
			"subject_fields": map[string]string{"pin_code": "502032"},
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.ComparablesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		require.Len(t, resp.Comparables, 2)
		assert.Equal(t, "NA", resp.Comparables[1].PinCode)
	})

	t.Run("should reject a non-UUID property ID", func(t *testing.T) {
		h := NewTestAPIHelpers(t, &fakeCorpus{})

		rec := h.MakeRequest(http.MethodPost, "/api/v1/properties/not-a-uuid/comparables", map[string]any{
			"subject_fields": map[string]string{},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a body without subject fields", func(t *testing.T) {
		h := NewTestAPIHelpers(t, &fakeCorpus{})

		rec := h.MakeRequest(http.MethodPost, "/api/v1/properties/"+subjectID+"/comparables", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
