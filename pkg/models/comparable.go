package models

// ComparableRecord is the canonical comparable shape consumed by the report
// layer. Two instances exist per report: Comparable #1 is always the subject
// property and Comparable #2 is the best corpus match or an all-"NA"
// placeholder.
type ComparableRecord struct {
	Address1                      string `json:"address_1"`
	Address2                      string `json:"address_2"`
	Address3                      string `json:"address_3"`
	Address4                      string `json:"address_4"`
	BuildingName                  string `json:"building_name"`
	SubLocality                   string `json:"sub_locality"`
	Locality                      string `json:"locality"`
	City                          string `json:"city"`
	PinCode                       string `json:"pin_code"`
	DateOfTransaction             string `json:"date_of_transaction"`
	TransactionType               string `json:"transaction_type"`
	ApproxAreaSft                 string `json:"approx_area_sft"`
	AreaType                      string `json:"area_type"`
	LandAreaSft                   string `json:"land_area_sft"`
	ApproxTransactionPriceINR     string `json:"approx_transaction_price_inr"`
	ApproxTransactionPriceLandINR string `json:"approx_transaction_price_land_inr"`
	TransactionPricePerSftINR     string `json:"transaction_price_per_sft_inr"`
	TransactionPricePerSftLandINR string `json:"transaction_price_per_sft_land_inr"`
	SourceOfInformation           string `json:"source_of_information"`
}

// Field returns the record value for a report field name.
func (r *ComparableRecord) Field(name string) string {
	switch name {
	case "address_1":
		return r.Address1
	case "address_2":
		return r.Address2
	case "address_3":
		return r.Address3
	case "address_4":
		return r.Address4
	case "building_name":
		return r.BuildingName
	case "sub_locality":
		return r.SubLocality
	case "locality":
		return r.Locality
	case "city":
		return r.City
	case "pin_code":
		return r.PinCode
	case "date_of_transaction":
		return r.DateOfTransaction
	case "transaction_type":
		return r.TransactionType
	case "approx_area_sft":
		return r.ApproxAreaSft
	case "area_type":
		return r.AreaType
	case "land_area_sft":
		return r.LandAreaSft
	case "approx_transaction_price_inr":
		return r.ApproxTransactionPriceINR
	case "approx_transaction_price_land_inr":
		return r.ApproxTransactionPriceLandINR
	case "transaction_price_per_sft_inr":
		return r.TransactionPricePerSftINR
	case "transaction_price_per_sft_land_inr":
		return r.TransactionPricePerSftLandINR
	case "source_of_information":
		return r.SourceOfInformation
	}
	return ""
}

// ScoredCandidate pairs a corpus candidate with its similarity score
type ScoredCandidate struct {
	Candidate CorpusCandidate `json:"candidate"`
	Score     float64         `json:"score"`
}

// MergedComparables is the engine output: the ordered pair of comparable
// records (index 0 subject, index 1 match or placeholder) plus the flattened
// report field set keyed "<field>_comparable_1" / "<field>_comparable_2".
type MergedComparables struct {
	Comparables []ComparableRecord `json:"comparables"`
	PDFFields   map[string]string  `json:"pdf_fields"`
}

// ComparablesResponse is the API response for the comparables endpoint
type ComparablesResponse struct {
	PropertyID  string             `json:"property_id"`
	Comparables []ComparableRecord `json:"comparables"`
	PDFFields   map[string]string  `json:"pdf_fields"`
}
