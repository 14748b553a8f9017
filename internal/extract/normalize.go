package extract

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
)

// Normalize projects a raw decoded response onto the field specification:
// values are coerced to strings, keys outside the specification are dropped
// (returned for logging), and missing or empty values get the policy default
// (neutral rating for rating-scale fields, "N/A" otherwise).
func Normalize(raw map[string]any, list *fields.List, logger *slog.Logger) (Record, []string) {
	if logger == nil {
		logger = slog.Default()
	}

	rec := make(Record, list.Len())
	var dropped []string

	for k, v := range raw {
		if !list.Contains(k) {
			dropped = append(dropped, k)
			continue
		}
		rec[k] = coerceString(v)
	}
	slices.Sort(dropped)

	for _, name := range list.Names() {
		v := strings.TrimSpace(rec[name])
		switch {
		case v == "":
			if list.IsRating(name) {
				rec[name] = constants.NeutralRating
			} else {
				rec[name] = constants.MissingValue
			}
		case list.IsRating(name) && strings.EqualFold(v, constants.MissingValue):
			// models sometimes answer "N/A" for an unselected rating
			rec[name] = constants.NeutralRating
		default:
			rec[name] = v
		}
	}

	if len(dropped) > 0 {
		logger.Warn("extract.normalize.dropped_keys", "dropped", dropped)
	}
	return rec, dropped
}

// coerceString renders a decoded JSON value as cell text. Integral numbers
// render without a decimal point ("7", not "7.0").
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		// nested arrays or objects: keep the JSON text rather than lose data
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
