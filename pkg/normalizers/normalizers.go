// Package normalizers provides field normalization for comparable matching.
// Extracted document values arrive as free text with a zoo of "no value"
// spellings; everything funnels through CleanValue before comparison or
// report output.
package normalizers

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// NA is the canonical token for an absent or unusable value.
const NA = "NA"

// Normalizer is a function that normalizes a string value
type Normalizer func(string) string

// registry holds all registered normalizers
var registry = make(map[string]Normalizer)

func init() {
	Register("lowercase", Lowercase)
	Register("uppercase", Uppercase)
	Register("trim", Trim)
	Register("remove_whitespace", RemoveWhitespace)
	Register("digits_only", DigitsOnly)
	Register("alphanumeric", Alphanumeric)
	Register("clean", CleanValue)
	Register("npincode", NormalizePinCode)
}

// Register adds a normalizer to the registry
func Register(name string, fn Normalizer) {
	registry[name] = fn
}

// Get retrieves a normalizer by name
func Get(name string) (Normalizer, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Apply applies a named normalizer to a value
func Apply(value, normalizer string) string {
	fn, ok := registry[normalizer]
	if !ok {
		return value
	}
	return fn(value)
}

// ApplyChain applies multiple normalizers in sequence
func ApplyChain(value string, normalizers ...string) string {
	result := value
	for _, name := range normalizers {
		result = Apply(result, name)
	}
	return result
}

// sentinelWords are the spellings that mean "no value", compared lowercase.
var sentinelWords = map[string]bool{
	"null": true,
	"none": true,
	"n/a":  true,
	"na":   true,
}

// doubledSentinels catches concatenated duplicates ("None None", "null-null")
// after spaces and hyphens are stripped.
var doubledSentinels = map[string]bool{
	"nonenone": true,
	"nullnull": true,
	"nana":     true,
	"n/an/a":   true,
}

// CleanValue canonicalizes a field value to NA when it is empty or any
// sentinel spelling, and returns the trimmed value verbatim otherwise.
// A genuine value is never reformatted: commas, units and casing survive.
func CleanValue(value string) string {
	return CleanValueDefault(value, NA)
}

// CleanValueDefault is CleanValue with a caller-chosen fallback token.
func CleanValueDefault(value, def string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}

	lower := strings.ToLower(trimmed)
	if sentinelWords[lower] {
		return def
	}

	squashed := strings.NewReplacer(" ", "", "-", "").Replace(lower)
	if doubledSentinels[squashed] {
		return def
	}

	// "None None None" and friends: every token is itself a sentinel word.
	allSentinel := true
	for _, word := range strings.Fields(lower) {
		if !sentinelWords[word] {
			allSentinel = false
			break
		}
	}
	if allSentinel {
		return def
	}

	return trimmed
}

// CleanPtr cleans a nullable column value.
func CleanPtr(value *string) string {
	if value == nil {
		return NA
	}
	return CleanValue(*value)
}

// IsNA reports whether a cleaned value is the canonical absent token.
func IsNA(value string) bool {
	return CleanValue(value) == NA
}

// Number is an optional numeric value parsed from free text.
type Number struct {
	Value float64
	Valid bool
}

// Positive reports whether the number parsed and is greater than zero.
func (n Number) Positive() bool {
	return n.Valid && n.Value > 0
}

var numberPattern = regexp.MustCompile(`\d+\.?\d*`)
var yearPattern = regexp.MustCompile(`\d{4}`)

// ExtractNumeric pulls the first number out of a free-text value
// ("1,200 sq.ft" -> 1200). Commas and whitespace are stripped first, then
// the first maximal digit run (optionally with a decimal part) wins.
// Negative numbers and additional numbers in the same value are not
// handled; the first match is the value.
func ExtractNumeric(value string) Number {
	cleaned := CleanValue(value)
	if cleaned == NA {
		return Number{}
	}

	cleaned = strings.NewReplacer(",", "", " ", "", "\t", "").Replace(cleaned)
	match := numberPattern.FindString(cleaned)
	if match == "" {
		return Number{}
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return Number{}
	}
	return Number{Value: parsed, Valid: true}
}

// ExtractYear pulls the first 4-digit run out of a value ("built 2016" -> 2016).
func ExtractYear(value string) (int, bool) {
	cleaned := CleanValue(value)
	if cleaned == NA {
		return 0, false
	}

	match := yearPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	year := 0
	for _, r := range match {
		year = year*10 + int(r-'0')
	}
	return year, true
}

// Built-in normalizers

// Lowercase converts string to lowercase
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// Uppercase converts string to uppercase
func Uppercase(s string) string {
	return strings.ToUpper(s)
}

// Trim removes leading and trailing whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveWhitespace removes all whitespace characters
func RemoveWhitespace(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// DigitsOnly keeps only digit characters
func DigitsOnly(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Alphanumeric keeps only alphanumeric characters
func Alphanumeric(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// NormalizePinCode trims a postal pin code and collapses sentinels to "".
// Pin codes are compared as text, so formatting is otherwise preserved.
func NormalizePinCode(s string) string {
	cleaned := CleanValue(s)
	if cleaned == NA {
		return ""
	}
	return cleaned
}
