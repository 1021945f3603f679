// Package query implements the roster's filter, search and sort
// semantics plus the battle toy's pure scoring function. Facets are a
// closed set with per-facet extractors; no reflection.
package query

import (
	"strings"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/normalize"
)

// Facet keys consumers filter against. Gender, alignment and status
// are single-valued; the rest draw from list fields. The era facet
// spans the union of the primary era and the era tags.
const (
	FacetGender    = "gender"
	FacetAlignment = "alignment"
	FacetStatus    = "status"
	FacetEra       = "era"
	FacetFaction   = "faction"
	FacetLocation  = "location"
	FacetTag       = "tag"
	FacetPower     = "power"
)

// Mode selects how multi-value selections combine per facet.
type Mode string

const (
	// ModeBlend matches when at least one desired value is present.
	ModeBlend Mode = "blend"
	// ModeAnd matches only when every desired value is present.
	ModeAnd Mode = "and"
)

// Filters maps facet keys to desired values. Empty selections are
// ignored; facets combine conjunctively.
type Filters map[string][]string

// FacetValues extracts a character's values for a facet key. Unknown
// keys yield nil, which never satisfies a non-empty selection.
func FacetValues(c *entity.Character, key string) []string {
	switch key {
	case FacetGender:
		return scalar(c.Gender)
	case FacetAlignment:
		return scalar(c.Alignment)
	case FacetStatus:
		return scalar(c.Status)
	case FacetEra:
		return c.EraValues()
	case FacetFaction:
		return c.Faction
	case FacetLocation:
		return c.Locations
	case FacetTag:
		return c.Tags
	case FacetPower:
		names := make([]string, len(c.Powers))
		for i, p := range c.Powers {
			names[i] = p.Name
		}
		return names
	}
	return nil
}

func scalar(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return []string{v}
}

// Matches is the full predicate: the character must satisfy the text
// query and every non-empty facet selection.
func Matches(c *entity.Character, filters Filters, mode Mode, rawQuery string) bool {
	return matchesQuery(c, rawQuery) && matchesFilters(c, filters, mode)
}

func matchesFilters(c *entity.Character, filters Filters, mode Mode) bool {
	for key, desired := range filters {
		desired = nonEmpty(desired)
		if len(desired) == 0 {
			continue
		}
		have := map[string]struct{}{}
		for _, v := range FacetValues(c, key) {
			have[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
		}
		hits := 0
		for _, want := range desired {
			if _, ok := have[strings.ToLower(strings.TrimSpace(want))]; ok {
				hits++
			}
		}
		switch mode {
		case ModeAnd:
			if hits != len(desired) {
				return false
			}
		default: // blend
			if hits == 0 {
				return false
			}
		}
	}
	return true
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// searchFields is every field a text query can hit, individually
// folded so a phrase can match inside one field across the haystack
// boundary.
func searchFields(c *entity.Character) []string {
	fields := []string{
		c.Id, c.Name, c.Identity, c.Gender, c.Alignment, c.Status, c.Era,
		strings.Join(c.Alias, " "),
		strings.Join(c.Locations, " "),
		strings.Join(c.Faction, " "),
		strings.Join(c.Tags, " "),
		strings.Join(c.Stories, " "),
		c.ShortDesc, c.LongDesc,
	}
	powerNames := make([]string, len(c.Powers))
	for i, p := range c.Powers {
		powerNames[i] = p.Name
	}
	fields = append(fields, strings.Join(powerNames, " "))

	folded := fields[:0]
	for _, f := range fields {
		if f = normalize.Fold(f); f != "" {
			folded = append(folded, f)
		}
	}
	return folded
}

func matchesQuery(c *entity.Character, rawQuery string) bool {
	query := normalize.Fold(rawQuery)
	if query == "" {
		return true
	}

	fields := searchFields(c)
	haystack := strings.Join(fields, " ")

	allTokens := true
	for _, token := range strings.Fields(query) {
		if !strings.Contains(haystack, token) {
			allTokens = false
			break
		}
	}
	if allTokens {
		return true
	}
	for _, field := range fields {
		if strings.Contains(field, query) {
			return true
		}
	}
	return false
}
