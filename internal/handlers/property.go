package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/laurel/internal/repositories/property"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// PropertyHandler handles property persistence and corpus stats
type PropertyHandler struct {
	propertyRepo *property.Repository
	validate     *validator.Validate
	logger       ectologger.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyRepo *property.Repository, logger ectologger.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyRepo: propertyRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/properties", h.CreateProperty)
	g.GET("/properties/count", h.GetPropertyCount)
	g.GET("/properties/:id", h.GetProperty)
}

// CreateProperty persists an extracted property into the valuation corpus
func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return BadRequest(err.Error())
	}

	created, err := h.propertyRepo.Create(ctx, req.Fields())
	if err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithField("property_id", created.ID).Info("Property added to corpus")

	return CreatedResponse(c, created)
}

// GetProperty returns a single corpus property
func (h *PropertyHandler) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	prop, err := h.propertyRepo.Get(ctx, id.String())
	if err != nil {
		return err
	}

	return SuccessResponse(c, prop)
}

// GetPropertyCount returns the corpus size
func (h *PropertyHandler) GetPropertyCount(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.propertyRepo.Count(ctx)
	if err != nil {
		return err
	}

	return SuccessResponse(c, models.PropertyCountResponse{Count: count})
}
