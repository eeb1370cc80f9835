package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/laurel/pkg/comparables"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// ComparableHandler runs the comparable engine for report generation
type ComparableHandler struct {
	service *comparables.Service
	logger  ectologger.Logger
}

// NewComparableHandler creates a new comparable handler
func NewComparableHandler(service *comparables.Service, logger ectologger.Logger) *ComparableHandler {
	return &ComparableHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers comparable routes
func (h *ComparableHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/properties/:id/comparables", h.GenerateComparables)
}

// GenerateComparablesRequest carries the subject's extracted fields.
type GenerateComparablesRequest struct {
	SubjectFields models.PropertyFields `json:"subject_fields" validate:"required"`
}

// GenerateComparables scores the corpus against the subject property and
// returns the merged comparable pair plus the flattened report fields. An
// empty corpus is never an error; the response carries the placeholder.
func (h *ComparableHandler) GenerateComparables(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	var req GenerateComparablesRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if req.SubjectFields == nil {
		return BadRequest("subject_fields is required")
	}

	merged := h.service.GenerateReportComparables(ctx, id.String(), req.SubjectFields)

	return SuccessResponse(c, models.ComparablesResponse{
		PropertyID:  id.String(),
		Comparables: merged.Comparables,
		PDFFields:   merged.PDFFields,
	})
}
