package entity

// FeaturedGroup is a collection anchored on one primary facet value of
// the featured character, who is always its first member.
type FeaturedGroup struct {
	Name    string         `json:"name"`
	Members []CharacterRef `json:"members"`
}

// FeaturedBundle is the daily featured selection. Sub-selections are
// nil when the character carries no value for the facet; an empty
// roster yields a fully-null bundle with empty backgrounds.
type FeaturedBundle struct {
	Character   *Character     `json:"character"`
	Faction     *FeaturedGroup `json:"faction,omitempty"`
	Location    *FeaturedGroup `json:"location,omitempty"`
	Power       *FeaturedGroup `json:"power,omitempty"`
	Backgrounds []string       `json:"backgrounds"`
}
