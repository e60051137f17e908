// Package shelf matches call numbers against configured shelf ranges so the
// discovery front-end can highlight the right shelves on a floor-plan map.
package shelf

import (
	"strings"

	"github.com/lehigh-university-libraries/wayfinder/internal/callnum"
)

// Range is one configured shelf range. A call number in
// [CallNumberLow, CallNumberHigh] whose location matches Library and
// Collection belongs on the shelf identified by SVGCode.
type Range struct {
	Library              string `yaml:"library"`
	Collection           string `yaml:"collection,omitempty"`
	CallNumberLow        string `yaml:"low"`
	CallNumberHigh       string `yaml:"high"`
	SVGCode              string `yaml:"svg"`
	Floor                string `yaml:"floor,omitempty"`
	Description          string `yaml:"description,omitempty"`
	DescriptionLocalized string `yaml:"description_localized,omitempty"`
}

// MatchPolicy controls how the library and collection matchers are applied.
type MatchPolicy string

const (
	// MatchContains accepts a location whose name contains the configured
	// matcher, case-insensitively. This is the default: the discovery UI
	// renders decorated location names ("Main Library - 2nd Floor").
	MatchContains MatchPolicy = "contains"
	// MatchExact requires the location name to equal the matcher,
	// case-insensitively.
	MatchExact MatchPolicy = "exact"
)

// Table is an ordered list of shelf ranges plus the matcher policy.
type Table struct {
	Policy MatchPolicy `yaml:"match,omitempty"`
	Ranges []Range     `yaml:"ranges"`
}

// Context is the location extracted from a single item in the discovery UI.
// CallNumber is the cutter-stripped value used for matching; RawCallNumber
// is kept for display. The English fields carry translations of the
// interface language names when the UI runs in another locale.
type Context struct {
	CallNumber        string
	RawCallNumber     string
	Library           string
	Collection        string
	LibraryEnglish    string
	CollectionEnglish string
}

// Match returns every range containing the context's call number whose
// library and collection matchers accept the context, in configured order.
// Overlapping ranges all appear: a class split across shelves should
// highlight every shelf it sits on. An empty call number, or no match at
// all, yields nil. Match never fails.
func (t *Table) Match(ctx Context) []Range {
	call := callnum.Normalize(ctx.CallNumber)
	if call == "" {
		return nil
	}

	var matches []Range
	for _, r := range t.Ranges {
		if !t.matcherAccepts(r.Library, ctx.Library, ctx.LibraryEnglish) {
			continue
		}
		if !t.matcherAccepts(r.Collection, ctx.Collection, ctx.CollectionEnglish) {
			continue
		}
		if callnum.InRange(call, r.CallNumberLow, r.CallNumberHigh) {
			matches = append(matches, r)
		}
	}
	return matches
}

// matcherAccepts applies the table policy to one configured matcher. An
// empty matcher accepts any location. The English translation of the
// location name is accepted as an alternative, since range configuration is
// written in English regardless of the UI locale.
func (t *Table) matcherAccepts(matcher, value, valueEnglish string) bool {
	if matcher == "" {
		return true
	}
	m := strings.ToLower(strings.TrimSpace(matcher))
	for _, v := range []string{value, valueEnglish} {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		switch t.Policy {
		case MatchExact:
			if v == m {
				return true
			}
		default:
			if strings.Contains(v, m) {
				return true
			}
		}
	}
	return false
}
