package comparables

import (
	"fmt"
	"strconv"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/normalizers"
)

const (
	subjectTransactionType   = "Subject Property"
	candidateTransactionType = "Comparable Property"
	subjectSource            = "Subject Property Details - Current property being valued"
)

// reportFields is the fixed report-layer field contract. Every name is
// emitted twice in the flattened output, suffixed _comparable_1 and
// _comparable_2. Renaming any entry requires a rendering-layer change.
var reportFields = []string{
	"address_1",
	"address_2",
	"address_3",
	"address_4",
	"building_name",
	"sub_locality",
	"locality",
	"city",
	"pin_code",
	"date_of_transaction",
	"approx_area_sft",
	"land_area_sft",
	"approx_transaction_price_inr",
	"approx_transaction_price_land_inr",
	"transaction_price_per_sft_inr",
	"transaction_price_per_sft_land_inr",
	"source_of_information",
}

// SubjectComparable reshapes the subject's extracted fields into Comparable
// #1. The two monetary per-sqft figures and the land-value estimate are
// derived here; everything else is a straight field mapping.
func SubjectComparable(fields models.PropertyFields) models.ComparableRecord {
	totalValue := normalizers.CleanValue(fields.Get("total_value_inr"))
	builtUpArea := normalizers.CleanValue(fields.Get("actual_area_sft"))
	landArea := normalizers.CleanValue(fields.Get("land_area_sft"))

	pricePerSft := normalizers.NA
	if totalValue != normalizers.NA && builtUpArea != normalizers.NA {
		pricePerSft = ratio(totalValue, builtUpArea)
	}

	// Land value: proportional allocation of the total by land/built-up area
	// ratio when the built-up area is known, otherwise the whole total is
	// treated as land value.
	landValue := normalizers.NA
	landPricePerSft := normalizers.NA
	if landArea != normalizers.NA && totalValue != normalizers.NA {
		land := normalizers.ExtractNumeric(landArea)
		total := normalizers.ExtractNumeric(totalValue)
		builtUp := normalizers.ExtractNumeric(builtUpArea)

		if land.Positive() && total.Positive() {
			if builtUp.Positive() {
				estimate := int((land.Value / builtUp.Value) * total.Value)
				landValue = strconv.Itoa(estimate)
				landPricePerSft = strconv.Itoa(int(float64(estimate) / land.Value))
			} else {
				landValue = strconv.Itoa(int(total.Value))
				landPricePerSft = strconv.Itoa(int(total.Value / land.Value))
			}
		}
	}

	approxArea := builtUpArea
	if approxArea == normalizers.NA {
		approxArea = landArea
	}

	record := models.ComparableRecord{
		Address1:                      fields.Get("address_1"),
		Address2:                      fields.Get("address_2"),
		Address3:                      fields.Get("address_3"),
		Address4:                      fields.Get("address_4"),
		BuildingName:                  fields.Get("building_name"),
		SubLocality:                   fields.Get("sub_locality"),
		Locality:                      fields.Get("locality"),
		City:                          fields.Get("city"),
		PinCode:                       fields.Get("pin_code"),
		DateOfTransaction:             fields.Get("date_of_transaction"),
		TransactionType:               subjectTransactionType,
		ApproxAreaSft:                 approxArea,
		AreaType:                      fields.Get("area_adopted_type"),
		LandAreaSft:                   landArea,
		ApproxTransactionPriceINR:     totalValue,
		ApproxTransactionPriceLandINR: landValue,
		TransactionPricePerSftINR:     pricePerSft,
		TransactionPricePerSftLandINR: landPricePerSft,
		SourceOfInformation:           subjectSource,
	}

	return cleanRecord(record)
}

// CandidateComparable reshapes a scored corpus candidate into Comparable #2.
func CandidateComparable(scored models.ScoredCandidate) models.ComparableRecord {
	c := scored.Candidate

	totalValue := normalizers.CleanPtr(c.TotalValueINR)
	landArea := normalizers.CleanPtr(c.LandAreaSft)
	builtUpArea := normalizers.CleanPtr(c.ActualAreaSft)

	// Area preference for the price calculation: actual, then land, then the
	// area adopted for valuation.
	area := builtUpArea
	if area == normalizers.NA {
		area = landArea
	}
	if area == normalizers.NA {
		area = normalizers.CleanPtr(c.AreaAdoptedForValuationSft)
	}

	pricePerSft := normalizers.NA
	if totalValue != normalizers.NA && area != normalizers.NA {
		pricePerSft = ratio(totalValue, area)
	}

	// The corpus stores no land-only price, so the total value stands in for
	// the land rate.
	landPricePerSft := normalizers.NA
	if landArea != normalizers.NA && totalValue != normalizers.NA {
		landPricePerSft = ratio(totalValue, landArea)
	}

	landValue := normalizers.NA
	if landArea != normalizers.NA && builtUpArea != normalizers.NA && totalValue != normalizers.NA {
		land := normalizers.ExtractNumeric(landArea)
		builtUp := normalizers.ExtractNumeric(builtUpArea)
		total := normalizers.ExtractNumeric(totalValue)
		if land.Positive() && builtUp.Positive() && total.Positive() {
			landValue = strconv.Itoa(int((land.Value / builtUp.Value) * total.Value))
		}
	}

	record := models.ComparableRecord{
		Address1:     normalizers.CleanPtr(c.Address1),
		Address2:     normalizers.CleanPtr(c.Address2),
		Address3:     normalizers.CleanPtr(c.Address3),
		Address4:     normalizers.CleanPtr(c.Address4),
		BuildingName: normalizers.CleanPtr(c.BuildingName),
		SubLocality:  normalizers.CleanPtr(c.SubLocality),
		Locality:     normalizers.CleanPtr(c.Locality),
		City:         normalizers.CleanPtr(c.City),
		PinCode:      normalizers.CleanPtr(c.PinCode),
		// Transaction dates are only known for comparables extracted from
		// documents, never for corpus rows.
		DateOfTransaction:             normalizers.NA,
		TransactionType:               candidateTransactionType,
		ApproxAreaSft:                 area,
		AreaType:                      normalizers.CleanPtr(c.AreaAdoptedType),
		LandAreaSft:                   landArea,
		ApproxTransactionPriceINR:     totalValue,
		ApproxTransactionPriceLandINR: landValue,
		TransactionPricePerSftINR:     pricePerSft,
		TransactionPricePerSftLandINR: landPricePerSft,
		SourceOfInformation: fmt.Sprintf(
			"Database Property ID: %s (Similarity Score: %.1f) - Market comparable from property database",
			c.ID, scored.Score,
		),
	}

	return cleanRecord(record)
}

// PlaceholderComparable is the all-"NA" record emitted when the corpus holds
// no candidate.
func PlaceholderComparable() models.ComparableRecord {
	return models.ComparableRecord{
		Address1:                      normalizers.NA,
		Address2:                      normalizers.NA,
		Address3:                      normalizers.NA,
		Address4:                      normalizers.NA,
		BuildingName:                  normalizers.NA,
		SubLocality:                   normalizers.NA,
		Locality:                      normalizers.NA,
		City:                          normalizers.NA,
		PinCode:                       normalizers.NA,
		DateOfTransaction:             normalizers.NA,
		TransactionType:               normalizers.NA,
		ApproxAreaSft:                 normalizers.NA,
		AreaType:                      normalizers.NA,
		LandAreaSft:                   normalizers.NA,
		ApproxTransactionPriceINR:     normalizers.NA,
		ApproxTransactionPriceLandINR: normalizers.NA,
		TransactionPricePerSftINR:     normalizers.NA,
		TransactionPricePerSftLandINR: normalizers.NA,
		SourceOfInformation:           normalizers.NA,
	}
}

// Merge assembles the engine output: the ordered comparable pair and the
// flattened report field set. Every value is re-normalized on the way out as
// the final defense against sentinel artifacts reaching a rendered report.
func Merge(subjectFields models.PropertyFields, best []models.ScoredCandidate) models.MergedComparables {
	records := []models.ComparableRecord{SubjectComparable(subjectFields)}

	if len(best) > 0 {
		records = append(records, CandidateComparable(best[0]))
	} else {
		records = append(records, PlaceholderComparable())
	}

	pdfFields := make(map[string]string, len(reportFields)*len(records))
	for idx, record := range records {
		for _, field := range reportFields {
			key := fmt.Sprintf("%s_comparable_%d", field, idx+1)
			pdfFields[key] = normalizers.CleanValue(record.Field(field))
		}
	}

	return models.MergedComparables{
		Comparables: records,
		PDFFields:   pdfFields,
	}
}

// ratio formats the truncated quotient of two numeric-bearing strings, or NA
// when either side fails to parse or the divisor is zero.
func ratio(numerator, denominator string) string {
	num := normalizers.ExtractNumeric(numerator)
	den := normalizers.ExtractNumeric(denominator)
	if !num.Positive() || !den.Positive() {
		return normalizers.NA
	}
	return strconv.Itoa(int(num.Value / den.Value))
}

// cleanRecord re-normalizes every field of a record so sentinel spellings
// from raw inputs collapse to NA.
func cleanRecord(r models.ComparableRecord) models.ComparableRecord {
	return models.ComparableRecord{
		Address1:                      normalizers.CleanValue(r.Address1),
		Address2:                      normalizers.CleanValue(r.Address2),
		Address3:                      normalizers.CleanValue(r.Address3),
		Address4:                      normalizers.CleanValue(r.Address4),
		BuildingName:                  normalizers.CleanValue(r.BuildingName),
		SubLocality:                   normalizers.CleanValue(r.SubLocality),
		Locality:                      normalizers.CleanValue(r.Locality),
		City:                          normalizers.CleanValue(r.City),
		PinCode:                       normalizers.CleanValue(r.PinCode),
		DateOfTransaction:             normalizers.CleanValue(r.DateOfTransaction),
		TransactionType:               normalizers.CleanValue(r.TransactionType),
		ApproxAreaSft:                 normalizers.CleanValue(r.ApproxAreaSft),
		AreaType:                      normalizers.CleanValue(r.AreaType),
		LandAreaSft:                   normalizers.CleanValue(r.LandAreaSft),
		ApproxTransactionPriceINR:     normalizers.CleanValue(r.ApproxTransactionPriceINR),
		ApproxTransactionPriceLandINR: normalizers.CleanValue(r.ApproxTransactionPriceLandINR),
		TransactionPricePerSftINR:     normalizers.CleanValue(r.TransactionPricePerSftINR),
		TransactionPricePerSftLandINR: normalizers.CleanValue(r.TransactionPricePerSftLandINR),
		SourceOfInformation:           normalizers.CleanValue(r.SourceOfInformation),
	}
}
