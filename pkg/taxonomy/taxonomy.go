// Package taxonomy aggregates the roster into faction, power, location
// and timeline collections with membership, snippets and power metrics.
package taxonomy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/normalize"
)

const snippetLimit = 3

type accumulator struct {
	entry    *entity.TaxonomyEntry
	memberOf map[string]struct{}
	snippets map[string]struct{}
}

type builder struct {
	entries map[entity.TaxonomyType]map[string]*accumulator
	order   map[entity.TaxonomyType][]string
}

// filterKeys is the facet key a consumer would filter against for each
// variant; it matches the query engine's facet names.
var filterKeys = map[entity.TaxonomyType]string{
	entity.TaxonomyFaction:  "faction",
	entity.TaxonomyPower:    "power",
	entity.TaxonomyLocation: "location",
	entity.TaxonomyTimeline: "era",
}

// Build is deterministic on its input: same roster, same set.
func Build(roster []*entity.Character) *entity.TaxonomySet {
	b := &builder{
		entries: map[entity.TaxonomyType]map[string]*accumulator{
			entity.TaxonomyFaction:  {},
			entity.TaxonomyPower:    {},
			entity.TaxonomyLocation: {},
			entity.TaxonomyTimeline: {},
		},
		order: map[entity.TaxonomyType][]string{},
	}

	for _, c := range roster {
		for _, faction := range c.Faction {
			b.upsert(entity.TaxonomyFaction, faction, c, nil)
		}
		for _, p := range c.Powers {
			level := p.Level
			b.upsert(entity.TaxonomyPower, p.Name, c, &level)
		}
		for _, loc := range c.Locations {
			b.upsert(entity.TaxonomyLocation, loc, c, nil)
		}
		for _, era := range c.EraValues() {
			b.upsert(entity.TaxonomyTimeline, era, c, nil)
		}
	}

	set := &entity.TaxonomySet{
		Factions:  b.finalise(entity.TaxonomyFaction),
		Powers:    b.finalise(entity.TaxonomyPower),
		Locations: b.finalise(entity.TaxonomyLocation),
		Timelines: b.finalise(entity.TaxonomyTimeline),
	}
	assignSlugs(set)
	return set
}

func (b *builder) upsert(t entity.TaxonomyType, name string, c *entity.Character, powerLevel *int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	acc, ok := b.entries[t][name]
	if !ok {
		acc = &accumulator{
			entry: &entity.TaxonomyEntry{
				Type:      t,
				Name:      name,
				FilterKey: filterKeys[t],
				Members:   []entity.CharacterRef{},
				Snippets:  []string{},
			},
			memberOf: map[string]struct{}{},
			snippets: map[string]struct{}{},
		}
		if t == entity.TaxonomyPower {
			acc.entry.Metrics = &entity.PowerMetrics{MinLevel: math.MaxInt32}
		}
		b.entries[t][name] = acc
		b.order[t] = append(b.order[t], name)
	}

	if _, dup := acc.memberOf[c.Id]; !dup {
		acc.memberOf[c.Id] = struct{}{}
		ref := c.Ref()
		if powerLevel != nil {
			ref.PowerLevel = *powerLevel
		}
		acc.entry.Members = append(acc.entry.Members, ref)

		if acc.entry.PrimaryImage == "" && c.Cover != "" {
			acc.entry.PrimaryImage = c.Cover
		}
		if snip := snippetFor(c); snip != "" && len(acc.entry.Snippets) < snippetLimit {
			if _, seen := acc.snippets[snip]; !seen {
				acc.snippets[snip] = struct{}{}
				acc.entry.Snippets = append(acc.entry.Snippets, snip)
			}
		}
	}

	if powerLevel != nil && acc.entry.Metrics != nil {
		m := acc.entry.Metrics
		m.TotalLevel += *powerLevel
		m.Samples++
		if *powerLevel > m.MaxLevel {
			m.MaxLevel = *powerLevel
		}
		if *powerLevel < m.MinLevel {
			m.MinLevel = *powerLevel
		}
	}
}

// snippetFor prefers the short description, falling back to the first
// sentence of the long one.
func snippetFor(c *entity.Character) string {
	if s := strings.TrimSpace(c.ShortDesc); s != "" {
		return s
	}
	long := strings.TrimSpace(c.LongDesc)
	if long == "" {
		return ""
	}
	if dot := strings.Index(long, "."); dot >= 0 {
		return long[:dot+1]
	}
	return long
}

func (b *builder) finalise(t entity.TaxonomyType) []*entity.TaxonomyEntry {
	entries := make([]*entity.TaxonomyEntry, 0, len(b.order[t]))
	for _, name := range b.order[t] {
		e := b.entries[t][name].entry
		sort.SliceStable(e.Members, func(i, j int) bool {
			return strings.ToLower(e.Members[i].Name) < strings.ToLower(e.Members[j].Name)
		})
		e.MemberCount = len(e.Members)
		if m := e.Metrics; m != nil {
			if m.Samples > 0 {
				m.AverageLevel = math.Round(float64(m.TotalLevel)/float64(m.Samples)*10) / 10
			} else {
				m.MinLevel = 0
			}
			e.Summary = fmt.Sprintf("%s unites %d member(s) within the LoreMaker Universe, averaging %.1f/10 mastery.", e.Name, e.MemberCount, m.AverageLevel)
		} else {
			e.Summary = fmt.Sprintf("%s unites %d member(s) within the LoreMaker Universe.", e.Name, e.MemberCount)
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].MemberCount != entries[j].MemberCount {
			return entries[i].MemberCount > entries[j].MemberCount
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries
}

// assignSlugs hands out slugs in one shared space across all four
// variants, suffixing -2, -3, ... on collisions.
func assignSlugs(set *entity.TaxonomySet) {
	taken := map[string]struct{}{}
	for _, entries := range [][]*entity.TaxonomyEntry{set.Factions, set.Powers, set.Locations, set.Timelines} {
		for _, e := range entries {
			base := normalize.Slugify(e.Name)
			if base == "" {
				base = string(e.Type)
			}
			slug := base
			for n := 2; ; n++ {
				if _, collision := taken[slug]; !collision {
					break
				}
				slug = fmt.Sprintf("%s-%d", base, n)
			}
			taken[slug] = struct{}{}
			e.Slug = slug
		}
	}
}
