// Package normalize holds the value-coercion helpers the ingest
// pipeline and query engine share: slugs, list splitting, power-string
// parsing, Drive URL rewriting and search-text folding.
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"loremaker-codex-be/internal/entity"
)

var (
	slugRunRe   = regexp.MustCompile(`[^a-z0-9]+`)
	andWordRe   = regexp.MustCompile(`(?i)\band\b`)
	listSepRe   = regexp.MustCompile(`[|;/]`)
	powerSepRe  = regexp.MustCompile(`[|;]`)
	commaWsRe   = regexp.MustCompile(`\s*,\s*`)
	dotRunRe    = regexp.MustCompile(`\.{2,}`)
	eraSepRe    = regexp.MustCompile("[;,/|•·&\n\r]")
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]+`)
	powerRatio  = regexp.MustCompile(`^(.*?)\s*[:=]\s*(\d+)\s*(?:/\s*10)?$`)
	powerParens = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)
	powerTrail  = regexp.MustCompile(`^(.*?)\s+(\d+)$`)
)

// Slugify lowercases the input, collapses non-alphanumeric runs to a
// single dash and strips dashes from both ends.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SplitList splits a free-form cell on commas, pipes, semicolons,
// slashes and the word "and", trimming items and dropping empties.
func SplitList(raw string) []string {
	raw = andWordRe.ReplaceAllString(raw, ",")
	raw = listSepRe.ReplaceAllString(raw, ",")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitLocations runs SplitList and then re-splits every item on
// whitespace-padded commas, deduplicating in insertion order.
func SplitLocations(raw string) []string {
	out := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, item := range SplitList(raw) {
		for _, loc := range commaWsRe.Split(item, -1) {
			loc = strings.TrimSpace(loc)
			if loc == "" {
				continue
			}
			key := strings.ToLower(loc)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, loc)
		}
	}
	return out
}

// SplitEras splits an era cell: ellipsis runs and the word "and" become
// commas, then the result is split on era separators and newlines.
func SplitEras(raw string) []string {
	raw = dotRunRe.ReplaceAllString(raw, ",")
	raw = andWordRe.ReplaceAllString(raw, ",")
	parts := eraSepRe.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParsePowerList splits a raw powers cell and extracts a (name, level)
// pair from each item. Accepted shapes, in priority order:
// "name: N" / "name = N" (optionally "/10"), "name (N)", "name N",
// otherwise level 0. Levels clamp to [0,10].
func ParsePowerList(raw string) []entity.Power {
	// Powers keep "/" out of the separator set so "Flight: 7/10"
	// survives as a single item.
	raw = andWordRe.ReplaceAllString(raw, ",")
	raw = powerSepRe.ReplaceAllString(raw, ",")
	items := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	powers := make([]entity.Power, 0, len(items))
	for _, item := range items {
		name, level := parsePowerItem(item)
		if name == "" {
			continue
		}
		powers = append(powers, entity.Power{Name: name, Level: level})
	}
	return powers
}

func parsePowerItem(item string) (string, int) {
	for _, re := range []*regexp.Regexp{powerRatio, powerParens, powerTrail} {
		if m := re.FindStringSubmatch(item); m != nil {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			return strings.TrimSpace(m[1]), ClampLevel(n)
		}
	}
	return strings.TrimSpace(item), 0
}

// ClampLevel bounds a power level to [0,10].
func ClampLevel(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

var driveFileRe = regexp.MustCompile(`/file/d/([^/?#]+)`)

// NormalizeDriveURL rewrites a Google Drive share link into the direct
// "uc?export=view" form, preserving a resourcekey when present. URLs on
// other hosts pass through unchanged; unparseable input yields "".
// The rewrite is idempotent.
func NormalizeDriveURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host != "drive.google.com" && host != "drive.usercontent.google.com" {
		return raw
	}

	q := u.Query()
	id := ""
	if m := driveFileRe.FindStringSubmatch(u.Path); m != nil {
		id = m[1]
	} else if strings.HasPrefix(u.Path, "/thumbnail") || strings.HasPrefix(u.Path, "/open") || strings.HasPrefix(u.Path, "/uc") || strings.HasPrefix(u.Path, "/download") {
		id = q.Get("id")
	}
	if id == "" {
		return raw
	}

	export := q.Get("export")
	if export == "" || export == "download" {
		export = "view"
	}
	out := url.Values{}
	out.Set("export", export)
	out.Set("id", id)
	if rk := q.Get("resourcekey"); rk != "" {
		out.Set("resourcekey", rk)
	}
	return "https://drive.google.com/uc?" + out.Encode()
}

var foldStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalises text for searching: lowercase, diacritics stripped
// via NFKD decomposition, non-alphanumerics reduced to single spaces.
func Fold(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldStripper, s); err == nil {
		s = folded
	}
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
