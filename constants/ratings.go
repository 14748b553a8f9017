package constants

import "strings"

const (
	// NeutralRating is filled in for rating-scale fields the model could not determine.
	NeutralRating = "5"
	// MissingValue is filled in for free-text fields the model could not determine.
	MissingValue = "N/A"
)

// DefaultRatingKeywords classify survey field names as numeric rating-scale
// questions. A field whose name contains one of these (case-insensitive)
// defaults to NeutralRating instead of MissingValue.
var DefaultRatingKeywords = []string{
	"rating",
	"rate",
	"scale",
	"score",
	"skill",
	"competence",
	"performance",
	"quality",
	"teamwork",
	"communication",
	"punctuality",
	"attendance",
	"initiative",
	"attitude",
	"reliability",
}

// IsRatingField reports whether a field name matches any of the keywords.
// An empty keyword list means no field is treated as a rating.
func IsRatingField(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
