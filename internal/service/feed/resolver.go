package feed

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName produces the canonical matching key for an engineer
// name: casefolded, diacritics stripped, whitespace collapsed. The key
// exists only for matching legacy rows, never for display.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}

// Resolver maps assignment rows to catalog engineers. Resolution is
// two-tier: the explicit engineer id wins when it is present and known;
// otherwise the normalized display name is matched against the catalog.
type Resolver struct {
	byID   map[string]catalog.Engineer
	byName map[string]catalog.Engineer
}

func NewResolver(engineers []catalog.Engineer) *Resolver {
	r := &Resolver{
		byID:   make(map[string]catalog.Engineer, len(engineers)),
		byName: make(map[string]catalog.Engineer, len(engineers)),
	}
	for _, e := range engineers {
		r.byID[e.ID] = e
		r.byName[NormalizeName(e.DisplayName)] = e
	}
	return r
}

// Resolve returns the catalog engineer a raw row belongs to.
func (r *Resolver) Resolve(row assignment.RawRow) (catalog.Engineer, bool) {
	if row.EngineerID != nil && *row.EngineerID != "" {
		if e, ok := r.byID[*row.EngineerID]; ok {
			return e, true
		}
	}
	if key := NormalizeName(row.EngineerName); key != "" {
		if e, ok := r.byName[key]; ok {
			return e, true
		}
	}
	return catalog.Engineer{}, false
}
