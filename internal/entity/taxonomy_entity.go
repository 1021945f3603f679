package entity

// TaxonomyType discriminates the four collection variants.
type TaxonomyType string

const (
	TaxonomyFaction  TaxonomyType = "faction"
	TaxonomyPower    TaxonomyType = "power"
	TaxonomyLocation TaxonomyType = "location"
	TaxonomyTimeline TaxonomyType = "timeline"
)

// CharacterRef is the lightweight member projection held by taxonomy
// entries and featured groups. PowerLevel is set for power entries only.
type CharacterRef struct {
	Id              string   `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Cover           string   `json:"cover,omitempty"`
	Alias           []string `json:"alias"`
	ShortDesc       string   `json:"shortDesc,omitempty"`
	Alignment       string   `json:"alignment,omitempty"`
	Status          string   `json:"status,omitempty"`
	PrimaryLocation string   `json:"primaryLocation,omitempty"`
	Era             string   `json:"era,omitempty"`
	PowerLevel      int      `json:"powerLevel,omitempty"`
}

// PowerMetrics aggregates seeded levels across a power entry's members.
type PowerMetrics struct {
	TotalLevel   int     `json:"totalLevel"`
	Samples      int     `json:"samples"`
	MaxLevel     int     `json:"maxLevel"`
	MinLevel     int     `json:"minLevel"`
	AverageLevel float64 `json:"averageLevel"`
}

// TaxonomyEntry aggregates the characters sharing one facet value.
// Slugs are unique across entries of all four variants.
type TaxonomyEntry struct {
	Type         TaxonomyType   `json:"type"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	FilterKey    string         `json:"filterKey"`
	Members      []CharacterRef `json:"members"`
	MemberCount  int            `json:"memberCount"`
	Snippets     []string       `json:"snippets"`
	PrimaryImage string         `json:"primaryImage,omitempty"`
	Metrics      *PowerMetrics  `json:"metrics,omitempty"`
	Summary      string         `json:"summary"`
}

// TaxonomySet is the full output of one taxonomy build.
type TaxonomySet struct {
	Factions  []*TaxonomyEntry `json:"factions"`
	Powers    []*TaxonomyEntry `json:"powers"`
	Locations []*TaxonomyEntry `json:"locations"`
	Timelines []*TaxonomyEntry `json:"timelines"`
}
