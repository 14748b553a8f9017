package fields

import (
	"fmt"
	"os"
	"strings"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/common"
)

// List is the ordered set of survey fields to extract. Order is significant:
// it drives the model instruction and the final column layout end-to-end.
type List struct {
	names    []string
	index    map[string]int
	isRating map[string]bool
}

// Load reads a field specification file: UTF-8 text with field names
// separated by line breaks or tabs. Blank tokens are dropped and duplicates
// keep their first position. An unreadable or empty specification is an error.
func Load(path string, ratingKeywords []string) (*List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("fields file %s: %w", path, common.ErrNotFound)
		}
		return nil, fmt.Errorf("read fields file: %w", err)
	}
	list := Parse(string(raw), ratingKeywords)
	if list.Len() == 0 {
		return nil, fmt.Errorf("fields file %s contains no field names", path)
	}
	return list, nil
}

// Parse builds a List from raw specification text.
func Parse(content string, ratingKeywords []string) *List {
	tokens := strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\t'
	})
	l := &List{index: make(map[string]int), isRating: make(map[string]bool)}
	for _, tok := range tokens {
		name := strings.TrimSpace(tok)
		if name == "" {
			continue
		}
		if _, seen := l.index[name]; seen {
			continue
		}
		l.index[name] = len(l.names)
		l.names = append(l.names, name)
		l.isRating[name] = constants.IsRatingField(name, ratingKeywords)
	}
	return l
}

// Names returns the field names in specification order.
func (l *List) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len returns the number of fields.
func (l *List) Len() int { return len(l.names) }

// Contains reports whether name is part of the specification.
func (l *List) Contains(name string) bool {
	_, ok := l.index[name]
	return ok
}

// IsRating reports whether the named field is a numeric rating-scale question.
func (l *List) IsRating(name string) bool {
	return l.isRating[name]
}
