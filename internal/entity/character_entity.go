package entity

import "strings"

// Power is one ability of a character. Level carries the daily-seeded
// value, not the raw spreadsheet value.
type Power struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Character is the canonical roster record produced by the ingest
// pipeline. Slugs are unique within one load.
type Character struct {
	Id          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	SourceIndex int    `json:"sourceIndex"`

	Gender          string `json:"gender,omitempty"`
	Identity        string `json:"identity,omitempty"`
	Alignment       string `json:"alignment,omitempty"`
	Status          string `json:"status,omitempty"`
	Era             string `json:"era,omitempty"`
	FirstAppearance string `json:"firstAppearance,omitempty"`
	ShortDesc       string `json:"shortDesc,omitempty"`
	LongDesc        string `json:"longDesc,omitempty"`

	Alias     []string `json:"alias"`
	Locations []string `json:"locations"`
	Faction   []string `json:"faction"`
	Tags      []string `json:"tags"`
	Stories   []string `json:"stories"`
	EraTags   []string `json:"eraTags"`

	Powers []Power `json:"powers"`

	Cover   string   `json:"cover,omitempty"`
	Gallery []string `json:"gallery"`
}

// HasArt reports whether the character has any illustration to show.
func (c *Character) HasArt() bool {
	return c.Cover != "" || len(c.Gallery) > 0
}

// EraValues is the union of the primary era and the era tags,
// deduplicated preserving order. This is the value space of the "era"
// facet and of timeline taxonomy entries.
func (c *Character) EraValues() []string {
	values := make([]string, 0, len(c.EraTags)+1)
	seen := make(map[string]struct{})
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		values = append(values, v)
	}
	add(c.Era)
	for _, tag := range c.EraTags {
		add(tag)
	}
	return values
}

// PrimaryLocation is the first listed location, or "".
func (c *Character) PrimaryLocation() string {
	if len(c.Locations) == 0 {
		return ""
	}
	return c.Locations[0]
}

// Backgrounds is the cover followed by the gallery, empties dropped.
func (c *Character) Backgrounds() []string {
	out := make([]string, 0, len(c.Gallery)+1)
	if c.Cover != "" {
		out = append(out, c.Cover)
	}
	for _, url := range c.Gallery {
		if url != "" {
			out = append(out, url)
		}
	}
	return out
}

// Ref projects the character into the lightweight reference used by
// taxonomy members and featured groups. Cross-references go by id and
// slug, never by pointer.
func (c *Character) Ref() CharacterRef {
	return CharacterRef{
		Id:              c.Id,
		Slug:            c.Slug,
		Name:            c.Name,
		Cover:           c.Cover,
		Alias:           c.Alias,
		ShortDesc:       c.ShortDesc,
		Alignment:       c.Alignment,
		Status:          c.Status,
		PrimaryLocation: c.PrimaryLocation(),
		Era:             c.Era,
	}
}
