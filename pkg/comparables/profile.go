package comparables

import (
	"strings"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/normalizers"
)

// Profile is the parse-once comparison view of a property. Location strings
// are canonicalized ("" for any sentinel spelling, lowercased for the
// substring checks) and numeric fields are parsed up front so the scorer
// never touches raw text.
type Profile struct {
	ID          string
	PinCode     string
	Locality    string
	SubLocality string
	City        string
	LandArea    normalizers.Number
	ActualArea  normalizers.Number
	Bedrooms    normalizers.Number
	Year        int
	HasYear     bool
}

// HasAnySignal reports whether the profile carries at least one scorable
// attribute. Used for the minimum-score floor.
func (p Profile) HasAnySignal() bool {
	return p.LandArea.Positive() ||
		p.ActualArea.Positive() ||
		p.Bedrooms.Positive() ||
		p.PinCode != "" ||
		p.Locality != ""
}

func canonLocation(value string) string {
	cleaned := normalizers.CleanValue(value)
	if cleaned == normalizers.NA {
		return ""
	}
	return strings.ToLower(cleaned)
}

// NewSubjectProfile builds a profile from extracted subject fields.
func NewSubjectProfile(fields models.PropertyFields) Profile {
	p := Profile{
		PinCode:     normalizers.NormalizePinCode(fields.Get("pin_code")),
		Locality:    canonLocation(fields.Get("locality")),
		SubLocality: canonLocation(fields.Get("sub_locality")),
		City:        canonLocation(fields.Get("city")),
		LandArea:    normalizers.ExtractNumeric(fields.Get("land_area_sft")),
		ActualArea:  normalizers.ExtractNumeric(fields.Get("actual_area_sft")),
		Bedrooms:    normalizers.ExtractNumeric(fields.Get("bedrooms")),
	}
	p.Year, p.HasYear = normalizers.ExtractYear(fields.Get("year_of_construction"))
	return p
}

// NewCandidateProfile builds a profile from a joined corpus row.
func NewCandidateProfile(c models.CorpusCandidate) Profile {
	p := Profile{
		ID:          c.ID,
		PinCode:     normalizers.NormalizePinCode(deref(c.PinCode)),
		Locality:    canonLocation(deref(c.Locality)),
		SubLocality: canonLocation(deref(c.SubLocality)),
		City:        canonLocation(deref(c.City)),
		LandArea:    normalizers.ExtractNumeric(deref(c.LandAreaSft)),
		ActualArea:  normalizers.ExtractNumeric(deref(c.ActualAreaSft)),
		Bedrooms:    normalizers.ExtractNumeric(deref(c.Bedrooms)),
	}
	p.Year, p.HasYear = normalizers.ExtractYear(deref(c.YearOfConstruction))
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
