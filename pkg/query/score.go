package query

import (
	"math"
	"regexp"
	"strings"

	"loremaker-codex-be/internal/entity"
)

const eliteBonus = 3

var (
	eliteRe     = regexp.MustCompile(`(?i)leader|legend|mythic|prime`)
	eraModRe    = regexp.MustCompile(`(?i)old gods|ancient`)
	divineEraRe = regexp.MustCompile(`(?i)old gods|ancient gods`)
	divineRe    = regexp.MustCompile(`(?i)divine|god|goddess|deity|celestial`)
	alienRe     = regexp.MustCompile(`(?i)alien|extraterrestrial|cosmic|starborn|off-?world`)
	mythicRe    = regexp.MustCompile(`(?i)myth|legend|fae|spirit|titan`)
	enhancedRe  = regexp.MustCompile(`(?i)enhanced|augment|mutant|engineer|experiment`)
	humanRe     = regexp.MustCompile(`(?i)human|mortal`)
)

// Score is the battle toy's power rating: seeded levels summed, an
// elite bonus for leader/legend/mythic/prime tags, then an origin
// multiplier and an old-gods era modifier. Deterministic on the record.
func Score(c *entity.Character) int {
	total := 0
	for _, p := range c.Powers {
		total += p.Level
	}
	if eliteRe.MatchString(strings.Join(c.Tags, " ")) {
		total += eliteBonus
	}

	eraCorpus := strings.Join(c.EraValues(), " ")
	mod := 1.0
	if eraModRe.MatchString(eraCorpus) {
		mod = 1.07
	}
	return int(math.Round(float64(total) * originMultiplier(c, eraCorpus) * mod))
}

// originMultiplier classifies a character's origin from its tags,
// aliases and descriptions; the divine tier is also reachable through
// an old-gods era.
func originMultiplier(c *entity.Character, eraCorpus string) float64 {
	corpus := strings.Join([]string{
		strings.Join(c.Tags, " "),
		strings.Join(c.Alias, " "),
		c.ShortDesc,
		c.LongDesc,
	}, " ")

	switch {
	case divineRe.MatchString(corpus) || divineEraRe.MatchString(eraCorpus):
		return 1.6
	case alienRe.MatchString(corpus):
		return 1.28
	case mythicRe.MatchString(corpus):
		return 1.24
	case enhancedRe.MatchString(corpus):
		return 1.14
	case humanRe.MatchString(corpus):
		return 1.0
	default:
		return 1.08
	}
}
