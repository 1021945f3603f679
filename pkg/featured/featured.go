// Package featured computes the daily featured bundle: one day-seeded
// character pick plus the collections anchored on its primary faction,
// location and top power.
package featured

import (
	"sort"
	"strings"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/seed"
)

const groupLimit = 8

// Compute selects the featured character for the given day key. The
// pick prefers characters with art and is uniform over the pool; an
// empty roster yields a fully-null bundle with empty backgrounds.
func Compute(roster []*entity.Character, dayKey string) *entity.FeaturedBundle {
	bundle := &entity.FeaturedBundle{Backgrounds: []string{}}
	if len(roster) == 0 {
		return bundle
	}

	pool := make([]*entity.Character, 0, len(roster))
	for _, c := range roster {
		if c.HasArt() {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = roster
	}

	rng := seed.New("featured|" + dayKey)
	pick := pool[int(rng()*float64(len(pool)))]

	bundle.Character = pick
	bundle.Backgrounds = pick.Backgrounds()

	if len(pick.Faction) > 0 {
		bundle.Faction = group(pick.Faction[0], roster, pick, factionCarrier, nil)
	}
	if len(pick.Locations) > 0 {
		bundle.Location = group(pick.Locations[0], roster, pick, locationCarrier, nil)
	}
	if top, ok := topPower(pick); ok {
		bundle.Power = group(top, roster, pick, powerCarrier, powerLevelOf)
	}
	return bundle
}

// topPower is the highest seeded level, first occurrence winning ties.
func topPower(c *entity.Character) (string, bool) {
	if len(c.Powers) == 0 {
		return "", false
	}
	best := c.Powers[0]
	for _, p := range c.Powers[1:] {
		if p.Level > best.Level {
			best = p
		}
	}
	return best.Name, true
}

func factionCarrier(c *entity.Character, value string) bool {
	return containsFold(c.Faction, value)
}

func locationCarrier(c *entity.Character, value string) bool {
	return containsFold(c.Locations, value)
}

func powerCarrier(c *entity.Character, value string) bool {
	for _, p := range c.Powers {
		if strings.EqualFold(strings.TrimSpace(p.Name), value) {
			return true
		}
	}
	return false
}

func powerLevelOf(c *entity.Character, value string) int {
	for _, p := range c.Powers {
		if strings.EqualFold(strings.TrimSpace(p.Name), value) {
			return p.Level
		}
	}
	return 0
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

// group collects everyone carrying the value, sorted A→Z by name with
// the featured character moved to the front, capped at eight members.
func group(value string, roster []*entity.Character, pick *entity.Character, carries func(*entity.Character, string) bool, levelOf func(*entity.Character, string) int) *entity.FeaturedGroup {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	carriers := make([]*entity.Character, 0, 8)
	for _, c := range roster {
		if carries(c, value) {
			carriers = append(carriers, c)
		}
	}
	sort.SliceStable(carriers, func(i, j int) bool {
		return strings.ToLower(carriers[i].Name) < strings.ToLower(carriers[j].Name)
	})

	ordered := []*entity.Character{pick}
	for _, c := range carriers {
		if c.Id == pick.Id && c.Name == pick.Name {
			continue
		}
		ordered = append(ordered, c)
	}
	if len(ordered) > groupLimit {
		ordered = ordered[:groupLimit]
	}

	members := make([]entity.CharacterRef, len(ordered))
	for i, c := range ordered {
		ref := c.Ref()
		if levelOf != nil {
			ref.PowerLevel = levelOf(c, value)
		}
		members[i] = ref
	}
	return &entity.FeaturedGroup{Name: value, Members: members}
}
