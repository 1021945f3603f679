// Package seed implements the deterministic daily RNG that drives
// wire-visible outputs: seeded power levels, the featured-of-the-day
// pick and the stable daily shuffle. The generator is a mulberry32
// variant over an FNV-1a-mixed string seed and must stay byte-identical
// across consumers, so all arithmetic is fixed-width uint32.
package seed

import (
	"time"

	"loremaker-codex-be/internal/entity"
)

// New returns a generator yielding floats in [0,1) for the given seed.
func New(s string) func() float64 {
	var acc uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		acc ^= uint32(s[i])
		acc += (acc << 1) + (acc << 4) + (acc << 7) + (acc << 8) + (acc << 24)
	}
	state := acc
	return func() float64 {
		state += 0x6d2b79f5
		t := (state ^ (state >> 15)) * (1 | state)
		t ^= t + (t^(t>>7))*(61|t)
		return float64(t^(t>>14)) / 4294967296.0
	}
}

// DayKey is the UTC ISO-8601 date used to key all daily draws.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyInt draws the day's integer in [min,max] inclusive for a seed.
func DailyInt(s, dayKey string, min, max int) int {
	if max < min {
		max = min
	}
	r := New(s + "|" + dayKey)()
	return min + int(r*float64(max-min+1))
}

// RebalancePowers derives the day's level for every power, preserving
// order. A raw level anchors the draw to [base-2,base+2] clamped into
// [3,10]; an unrated power draws from [3,9].
func RebalancePowers(powers []entity.Power, characterSeed, dayKey string) []entity.Power {
	out := make([]entity.Power, len(powers))
	for i, p := range powers {
		lo, hi := 3, 9
		if p.Level > 0 {
			lo = p.Level - 2
			if lo < 3 {
				lo = 3
			}
			hi = p.Level + 2
			if hi > 10 {
				hi = 10
			}
		}
		out[i] = entity.Power{
			Name:  p.Name,
			Level: DailyInt(characterSeed+"|"+p.Name, dayKey, lo, hi),
		}
	}
	return out
}

// CharacterSeed is the stable per-character seed for daily draws.
func CharacterSeed(c *entity.Character) string {
	if c.Id != "" {
		return c.Id
	}
	if c.Slug != "" {
		return c.Slug
	}
	return c.Name
}
