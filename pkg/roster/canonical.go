// Package roster canonicalises mapped character sequences and embeds
// the fallback dataset served when the upstream sheet is unreachable.
package roster

import (
	"fmt"
	"regexp"
	"strings"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/normalize"
)

var eraTagRe = regexp.MustCompile(`(?i)^era[\s:\-]+(.+)$`)

// Canonicalise fixes up a mapped sequence in place: unique slugs,
// slug-derived ids, era-tag extraction and non-nil list fields.
// Applying it twice is a no-op.
func Canonicalise(characters []*entity.Character) []*entity.Character {
	taken := make(map[string]struct{}, len(characters))
	for i, c := range characters {
		c.Slug = assignSlug(slugBase(c, i), taken)
		if c.Id == "" {
			c.Id = c.Slug
		}
		extractEras(c)
		ensureLists(c)
	}
	return characters
}

// slugBase picks the preferred slug source: an existing slug, then the
// feed id, then the name, then a positional fallback.
func slugBase(c *entity.Character, ordinal int) string {
	for _, candidate := range []string{c.Slug, c.Id, c.Name} {
		if base := normalize.Slugify(candidate); base != "" {
			return base
		}
	}
	return fmt.Sprintf("character-%d", ordinal+1)
}

func assignSlug(base string, taken map[string]struct{}) string {
	slug := base
	for n := 2; ; n++ {
		if _, collision := taken[slug]; !collision {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	taken[slug] = struct{}{}
	return slug
}

// extractEras strips era-prefixed tags into era values and rebuilds
// EraTags as the insertion-ordered union of the existing tags, the
// split primary era and the stripped values. The primary era becomes
// the first split value, falling back to the first stripped one.
func extractEras(c *entity.Character) {
	kept := make([]string, 0, len(c.Tags))
	stripped := make([]string, 0, 2)
	for _, tag := range c.Tags {
		if m := eraTagRe.FindStringSubmatch(tag); m != nil {
			stripped = append(stripped, strings.TrimSpace(m[1]))
			continue
		}
		kept = append(kept, tag)
	}
	c.Tags = kept

	base := normalize.SplitEras(c.Era)

	union := make([]string, 0, len(c.EraTags)+len(base)+len(stripped))
	seen := make(map[string]struct{})
	add := func(values []string) {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			union = append(union, v)
		}
	}
	add(c.EraTags)
	add(base)
	add(stripped)
	c.EraTags = union

	switch {
	case len(base) > 0:
		c.Era = base[0]
	case c.Era == "" && len(stripped) > 0:
		c.Era = stripped[0]
	}
}

func ensureLists(c *entity.Character) {
	if c.Alias == nil {
		c.Alias = []string{}
	}
	if c.Locations == nil {
		c.Locations = []string{}
	}
	if c.Faction == nil {
		c.Faction = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Stories == nil {
		c.Stories = []string{}
	}
	if c.EraTags == nil {
		c.EraTags = []string{}
	}
	if c.Powers == nil {
		c.Powers = []entity.Power{}
	}
	if c.Gallery == nil {
		c.Gallery = []string{}
	}
}
