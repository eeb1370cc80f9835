package kafka

import (
	"encoding/json"
	"time"

	"github.com/Ramsey-B/laurel/pkg/extractor"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// IncomingMessage wraps a raw Kafka message with parsed headers
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Parsed content
	Document *ExtractedDocumentMessage
}

// ExtractedDocumentMessage is the ingestion payload emitted by the document
// extraction pipeline: the structured fields pulled out of one valuation
// document, ready to be persisted into the corpus.
type ExtractedDocumentMessage struct {
	DocumentID string                `json:"document_id"`
	Source     string                `json:"source"`
	Fields     models.PropertyFields `json:"fields"`
	Payload    json.RawMessage       `json:"document,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// documentFieldPaths maps flat field names to their location in a nested
// extraction document, for producers that send the raw document instead of
// pre-flattened fields.
var documentFieldPaths = map[string]string{
	"address_1":                      "address.line_1",
	"address_2":                      "address.line_2",
	"address_3":                      "address.line_3",
	"address_4":                      "address.line_4",
	"building_name":                  "address.building_name",
	"sub_locality":                   "address.sub_locality",
	"locality":                       "address.locality",
	"city":                           "address.city",
	"pin_code":                       "address.pin_code",
	"land_area_sft":                  "area_details.land_area_sft",
	"actual_area_sft":                "area_details.actual_area_sft",
	"area_adopted_for_valuation_sft": "area_details.area_adopted_for_valuation_sft",
	"area_adopted_type":              "area_details.area_adopted_type",
	"bedrooms":                       "construction_details.bedrooms",
	"year_of_construction":           "construction_details.year_of_construction",
	"total_value_inr":                "valuation.total_value_inr",
}

// ParseDocument parses the message value as an extracted document
func (m *IncomingMessage) ParseDocument() error {
	var msg ExtractedDocumentMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return err
	}
	m.Document = &msg
	return nil
}

// GetDocumentID returns the document ID, falling back to the message key
func (m *IncomingMessage) GetDocumentID() string {
	if m.Document != nil && m.Document.DocumentID != "" {
		return m.Document.DocumentID
	}
	return m.Key
}

// GetFields returns the extracted fields, or nil when unparsed. When the
// producer sent a nested document instead of pre-flattened fields, the
// known field paths are resolved against it.
func (m *IncomingMessage) GetFields() models.PropertyFields {
	if m.Document == nil {
		return nil
	}
	if len(m.Document.Fields) > 0 {
		return m.Document.Fields
	}
	return m.Document.FlattenDocument()
}

// FlattenDocument resolves the nested extraction document into the flat
// field mapping. Unresolvable paths are simply absent from the result.
func (d *ExtractedDocumentMessage) FlattenDocument() models.PropertyFields {
	if len(d.Payload) == 0 {
		return nil
	}

	doc, err := extractor.FromJSON(d.Payload)
	if err != nil {
		return nil
	}

	ex := extractor.New()
	fields := make(models.PropertyFields, len(documentFieldPaths))
	for name, path := range documentFieldPaths {
		value, err := ex.ExtractString(doc, path)
		if err != nil || value == nil {
			continue
		}
		fields[name] = *value
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
