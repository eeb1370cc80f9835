package models

import (
	"time"
)

// Property represents a persisted valuation corpus row.
// Field order matches schema: id, address_1..address_4, building_name, ...
// Every attribute column is text; extracted values are stored verbatim and
// normalized at comparison/output time, never at rest.
type Property struct {
	ID                 string    `json:"id" db:"id"`
	Address1           *string   `json:"address_1,omitempty" db:"address_1"`
	Address2           *string   `json:"address_2,omitempty" db:"address_2"`
	Address3           *string   `json:"address_3,omitempty" db:"address_3"`
	Address4           *string   `json:"address_4,omitempty" db:"address_4"`
	BuildingName       *string   `json:"building_name,omitempty" db:"building_name"`
	SubLocality        *string   `json:"sub_locality,omitempty" db:"sub_locality"`
	Locality           *string   `json:"locality,omitempty" db:"locality"`
	City               *string   `json:"city,omitempty" db:"city"`
	PinCode            *string   `json:"pin_code,omitempty" db:"pin_code"`
	LandAreaSft        *string   `json:"land_area_sft,omitempty" db:"land_area_sft"`
	YearOfConstruction *string   `json:"year_of_construction,omitempty" db:"year_of_construction"`
	TotalValueINR      *string   `json:"total_value_inr,omitempty" db:"total_value_inr"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// PropertyAreaDetails holds the area sub-record for a property
type PropertyAreaDetails struct {
	PropertyID                 string  `json:"property_id" db:"property_id"`
	ActualAreaSft              *string `json:"actual_area_sft,omitempty" db:"actual_area_sft"`
	AreaAdoptedForValuationSft *string `json:"area_adopted_for_valuation_sft,omitempty" db:"area_adopted_for_valuation_sft"`
	AreaAdoptedType            *string `json:"area_adopted_type,omitempty" db:"area_adopted_type"`
}

// PropertyConstructionDetails holds the construction sub-record for a property
type PropertyConstructionDetails struct {
	PropertyID string  `json:"property_id" db:"property_id"`
	Bedrooms   *string `json:"bedrooms,omitempty" db:"bedrooms"`
}

// CorpusCandidate is a property row joined with its area and construction
// sub-records. Missing sub-records yield null sub-fields, not row exclusion.
type CorpusCandidate struct {
	Property
	ActualAreaSft              *string `json:"actual_area_sft,omitempty" db:"actual_area_sft"`
	AreaAdoptedForValuationSft *string `json:"area_adopted_for_valuation_sft,omitempty" db:"area_adopted_for_valuation_sft"`
	AreaAdoptedType            *string `json:"area_adopted_type,omitempty" db:"area_adopted_type"`
	Bedrooms                   *string `json:"bedrooms,omitempty" db:"bedrooms"`
}

// PropertyFields is the flat field-name to value mapping produced by the
// extraction pipeline. Any field may be missing or hold a sentinel spelling.
type PropertyFields map[string]string

// Get returns the raw value for a field, or "" when absent.
func (f PropertyFields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// CreatePropertyRequest is the request for persisting an extracted property
type CreatePropertyRequest struct {
	Address1           string `json:"address_1"`
	Address2           string `json:"address_2"`
	Address3           string `json:"address_3"`
	Address4           string `json:"address_4"`
	BuildingName       string `json:"building_name"`
	SubLocality        string `json:"sub_locality"`
	Locality           string `json:"locality"`
	City               string `json:"city"`
	PinCode            string `json:"pin_code"`
	LandAreaSft        string `json:"land_area_sft"`
	YearOfConstruction string `json:"year_of_construction"`
	TotalValueINR      string `json:"total_value_inr"`

	ActualAreaSft              string `json:"actual_area_sft"`
	AreaAdoptedForValuationSft string `json:"area_adopted_for_valuation_sft"`
	AreaAdoptedType            string `json:"area_adopted_type"`
	Bedrooms                   string `json:"bedrooms"`
}

// Fields flattens the request into the extraction field mapping.
func (r *CreatePropertyRequest) Fields() PropertyFields {
	return PropertyFields{
		"address_1":                      r.Address1,
		"address_2":                      r.Address2,
		"address_3":                      r.Address3,
		"address_4":                      r.Address4,
		"building_name":                  r.BuildingName,
		"sub_locality":                   r.SubLocality,
		"locality":                       r.Locality,
		"city":                           r.City,
		"pin_code":                       r.PinCode,
		"land_area_sft":                  r.LandAreaSft,
		"year_of_construction":           r.YearOfConstruction,
		"total_value_inr":                r.TotalValueINR,
		"actual_area_sft":                r.ActualAreaSft,
		"area_adopted_for_valuation_sft": r.AreaAdoptedForValuationSft,
		"area_adopted_type":              r.AreaAdoptedType,
		"bedrooms":                       r.Bedrooms,
	}
}

// PropertyCountResponse is the response for the corpus count endpoint
type PropertyCountResponse struct {
	Count int `json:"count"`
}
