package comparables

import (
	"math"
	"strings"

	"github.com/Ramsey-B/laurel/pkg/normalizers"
)

// Location weights. Pincode dominates, then locality, then sub-locality and
// city context.
const (
	pincodeExactPoints  = 60.0
	pincodePrefixPoints = 40.0
	pincodePrefixLen    = 3
	localityExactPoints = 30.0
	localityPartial     = 20.0
	subLocalityExact    = 20.0
	subLocalityPartial  = 10.0
	cityExactPoints     = 20.0
	cityPartialPoints   = 10.0
	yearSamePoints      = 15.0
	minimumSignalScore  = 1.0
)

// proximityBand awards points when a relative difference falls under the
// limit. Bands are checked in order; the first hit wins.
type proximityBand struct {
	limit  float64
	points float64
}

// Area bands on |subject - candidate| / subject. The no-location bands carry
// double weight so physically similar properties can still surface when no
// location data matched.
var (
	areaBands = []proximityBand{
		{limit: 0.10, points: 20.0},
		{limit: 0.25, points: 15.0},
		{limit: 0.50, points: 10.0},
		{limit: 1.00, points: 5.0},
	}
	areaBandsNoLocation = []proximityBand{
		{limit: 0.10, points: 40.0},
		{limit: 0.25, points: 30.0},
		{limit: 0.50, points: 20.0},
		{limit: 1.00, points: 10.0},
	}
)

// Year bands on the absolute year gap, inclusive.
var yearBands = []struct {
	maxGap int
	points float64
}{
	{maxGap: 0, points: yearSamePoints},
	{maxGap: 2, points: 10.0},
	{maxGap: 5, points: 7.0},
	{maxGap: 10, points: 3.0},
}

// Bedroom bands on the absolute bedroom-count gap.
var (
	bedroomBands = []struct {
		maxGap float64
		points float64
	}{
		{maxGap: 0, points: 15.0},
		{maxGap: 1, points: 8.0},
		{maxGap: 2, points: 3.0},
	}
	bedroomBandsNoLocation = []struct {
		maxGap float64
		points float64
	}{
		{maxGap: 0, points: 35.0},
		{maxGap: 1, points: 20.0},
		{maxGap: 2, points: 10.0},
	}
)

// Score computes the weighted similarity of a candidate against the subject.
// Location terms score first; whether any location matched then selects the
// weighting regime for the physical-attribute terms. Missing fields simply
// contribute nothing. A subject with any scorable signal guarantees a floor
// score so candidates are never silently discarded.
func Score(subject, candidate Profile) float64 {
	score := 0.0

	score += pincodeScore(subject.PinCode, candidate.PinCode)
	score += textScore(subject.Locality, candidate.Locality, localityExactPoints, localityPartial)
	score += textScore(subject.SubLocality, candidate.SubLocality, subLocalityExact, subLocalityPartial)
	score += textScore(subject.City, candidate.City, cityExactPoints, cityPartialPoints)

	hasLocation := hasLocationMatch(subject, candidate)

	score += areaScore(subject.LandArea, candidate.LandArea, hasLocation)
	score += areaScore(subject.ActualArea, candidate.ActualArea, hasLocation)
	score += yearScore(subject, candidate)
	score += bedroomScore(subject, candidate, hasLocation)

	if score == 0.0 && subject.HasAnySignal() {
		score = minimumSignalScore
	}

	return score
}

// hasLocationMatch reports whether the pincode matched exactly or the
// locality matched exactly or by containment. Sub-locality and city alone do
// not count.
func hasLocationMatch(subject, candidate Profile) bool {
	if subject.PinCode != "" && candidate.PinCode != "" && subject.PinCode == candidate.PinCode {
		return true
	}
	if subject.Locality != "" && candidate.Locality != "" {
		if subject.Locality == candidate.Locality ||
			strings.Contains(candidate.Locality, subject.Locality) ||
			strings.Contains(subject.Locality, candidate.Locality) {
			return true
		}
	}
	return false
}

func pincodeScore(subject, candidate string) float64 {
	if subject == "" || candidate == "" {
		return 0.0
	}
	if subject == candidate {
		return pincodeExactPoints
	}
	if len(subject) >= pincodePrefixLen && len(candidate) >= pincodePrefixLen &&
		subject[:pincodePrefixLen] == candidate[:pincodePrefixLen] {
		return pincodePrefixPoints
	}
	return 0.0
}

func textScore(subject, candidate string, exact, partial float64) float64 {
	if subject == "" || candidate == "" {
		return 0.0
	}
	if subject == candidate {
		return exact
	}
	if strings.Contains(candidate, subject) || strings.Contains(subject, candidate) {
		return partial
	}
	return 0.0
}

func areaScore(subject, candidate normalizers.Number, hasLocation bool) float64 {
	if !subject.Positive() || !candidate.Positive() {
		return 0.0
	}

	relDiff := math.Abs(subject.Value-candidate.Value) / subject.Value

	bands := areaBandsNoLocation
	if hasLocation {
		bands = areaBands
	}
	for _, band := range bands {
		if relDiff < band.limit {
			return band.points
		}
	}
	return 0.0
}

func yearScore(subject, candidate Profile) float64 {
	if !subject.HasYear || !candidate.HasYear {
		return 0.0
	}

	gap := subject.Year - candidate.Year
	if gap < 0 {
		gap = -gap
	}
	for _, band := range yearBands {
		if gap <= band.maxGap {
			return band.points
		}
	}
	return 0.0
}

func bedroomScore(subject, candidate Profile, hasLocation bool) float64 {
	if !subject.Bedrooms.Positive() || !candidate.Bedrooms.Positive() {
		return 0.0
	}

	gap := math.Abs(subject.Bedrooms.Value - candidate.Bedrooms.Value)

	bands := bedroomBandsNoLocation
	if hasLocation {
		bands = bedroomBands
	}
	for _, band := range bands {
		if gap <= band.maxGap {
			return band.points
		}
	}
	return 0.0
}
