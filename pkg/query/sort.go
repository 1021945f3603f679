package query

import (
	"sort"
	"strings"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/seed"
)

// Sort mode names accepted by consumers.
const (
	SortDefault = "default"
	SortRandom  = "random"
	SortAZ      = "az"
	SortZA      = "za"
	SortFaction = "faction"
	SortEra     = "era"
	SortMost    = "most"
	SortLeast   = "least"
)

// SortCharacters returns a new slice ordered by the given mode. The
// random mode shuffles deterministically for the day key, so a given
// day's order is stable across requests.
func SortCharacters(roster []*entity.Character, mode, dayKey string) []*entity.Character {
	out := make([]*entity.Character, len(roster))
	copy(out, roster)

	switch mode {
	case SortRandom:
		return shuffleSplit(out, dayKey)
	case SortAZ:
		sort.SliceStable(out, func(i, j int) bool { return nameLess(out[i], out[j]) })
	case SortZA:
		sort.SliceStable(out, func(i, j int) bool { return nameLess(out[j], out[i]) })
	case SortFaction:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(firstFaction(out[i])) < strings.ToLower(firstFaction(out[j]))
		})
	case SortEra:
		sort.SliceStable(out, func(i, j int) bool { return eraLess(out[i], out[j]) })
	case SortMost:
		sort.SliceStable(out, func(i, j int) bool { return Score(out[i]) > Score(out[j]) })
	case SortLeast:
		sort.SliceStable(out, func(i, j int) bool { return Score(out[i]) < Score(out[j]) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return defaultLess(out[i], out[j]) })
	}
	return out
}

// defaultLess puts illustrated characters first, then feed order.
func defaultLess(a, b *entity.Character) bool {
	if a.HasArt() != b.HasArt() {
		return a.HasArt()
	}
	return a.SourceIndex < b.SourceIndex
}

func nameLess(a, b *entity.Character) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func firstFaction(c *entity.Character) string {
	if len(c.Faction) == 0 {
		return ""
	}
	return c.Faction[0]
}

// eraLess sorts characters with an era first, by lowercased era, ties
// broken by default order.
func eraLess(a, b *entity.Character) bool {
	ea, eb := strings.ToLower(a.Era), strings.ToLower(b.Era)
	if (ea == "") != (eb == "") {
		return ea != ""
	}
	if ea != eb {
		return ea < eb
	}
	return defaultLess(a, b)
}

// shuffleSplit shuffles the illustrated and text-only partitions
// independently, illustrated first.
func shuffleSplit(roster []*entity.Character, dayKey string) []*entity.Character {
	var art, plain []*entity.Character
	for _, c := range roster {
		if c.HasArt() {
			art = append(art, c)
		} else {
			plain = append(plain, c)
		}
	}
	rng := seed.New("shuffle|" + dayKey)
	shuffle(art, rng)
	shuffle(plain, rng)
	return append(art, plain...)
}

func shuffle(list []*entity.Character, rng func() float64) {
	for i := len(list) - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		list[i], list[j] = list[j], list[i]
	}
}
