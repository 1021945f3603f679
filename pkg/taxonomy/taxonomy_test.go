package taxonomy

import (
	"reflect"
	"testing"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/roster"
)

func testRoster() []*entity.Character {
	return roster.Canonicalise([]*entity.Character{
		{
			Name:      "Ava",
			ShortDesc: "A skyborne sentinel.",
			Faction:   []string{"Spire Wardens"},
			Locations: []string{"Vel City"},
			Era:       "Age of Embers",
			Powers:    []entity.Power{{Name: "Fire", Level: 6}},
			Cover:     "https://example.com/ava.png",
		},
		{
			Name:      "Kel",
			LongDesc:  "A smuggler with a conscience. He keeps the lanes open.",
			Faction:   []string{"Spire Wardens"},
			Locations: []string{"Vel City", "The Reach"},
			Era:       "Age of Embers",
			Powers:    []entity.Power{{Name: "Fire", Level: 8}},
		},
		{
			Name:    "Orrin",
			Faction: []string{"Iron Court"},
			Era:     "Age of Glass",
			Tags:    []string{"era: Old Gods"},
			Powers:  []entity.Power{{Name: "Voidstep", Level: 7}},
		},
	})
}

func TestBuildPowerMetrics(t *testing.T) {
	set := Build(testRoster())

	var fire *entity.TaxonomyEntry
	for _, e := range set.Powers {
		if e.Name == "Fire" {
			fire = e
		}
	}
	if fire == nil {
		t.Fatal("no Fire power entry")
	}
	if fire.MemberCount != 2 || fire.Metrics == nil {
		t.Fatalf("fire entry incomplete: %+v", fire)
	}
	m := fire.Metrics
	if m.Samples != 2 || m.TotalLevel != 14 || m.MaxLevel != 8 || m.MinLevel != 6 {
		t.Errorf("metrics = %+v", m)
	}
	if m.AverageLevel != 7.0 {
		t.Errorf("average = %v, want 7.0", m.AverageLevel)
	}
	// Members are A→Z and carry their own seeded level.
	if fire.Members[0].Name != "Ava" || fire.Members[0].PowerLevel != 6 {
		t.Errorf("first member = %+v", fire.Members[0])
	}
	if fire.Members[1].PowerLevel != 8 {
		t.Errorf("second member level = %d, want 8", fire.Members[1].PowerLevel)
	}
}

func TestBuildOrderingAndCounts(t *testing.T) {
	set := Build(testRoster())

	// Factions: Spire Wardens (2) before Iron Court (1).
	if set.Factions[0].Name != "Spire Wardens" || set.Factions[0].MemberCount != 2 {
		t.Errorf("factions[0] = %+v", set.Factions[0])
	}
	if set.Factions[1].Name != "Iron Court" {
		t.Errorf("factions[1] = %+v", set.Factions[1])
	}

	// Timelines draw from era plus eraTags.
	names := map[string]bool{}
	for _, e := range set.Timelines {
		names[e.Name] = true
	}
	for _, want := range []string{"Age of Embers", "Age of Glass", "Old Gods"} {
		if !names[want] {
			t.Errorf("timeline %q missing (have %v)", want, names)
		}
	}
}

func TestBuildSnippetsAndImages(t *testing.T) {
	set := Build(testRoster())
	wardens := set.Factions[0]

	want := []string{"A skyborne sentinel.", "A smuggler with a conscience."}
	if !reflect.DeepEqual(wardens.Snippets, want) {
		t.Errorf("snippets = %v, want %v", wardens.Snippets, want)
	}
	if wardens.PrimaryImage != "https://example.com/ava.png" {
		t.Errorf("primaryImage = %q", wardens.PrimaryImage)
	}
	if wardens.Summary != "Spire Wardens unites 2 member(s) within the LoreMaker Universe." {
		t.Errorf("summary = %q", wardens.Summary)
	}
}

func TestBuildSlugCollisionAcrossVariants(t *testing.T) {
	chars := roster.Canonicalise([]*entity.Character{{
		Name:      "Ava",
		Faction:   []string{"Ember"},
		Locations: []string{"Ember"},
		Powers:    []entity.Power{{Name: "Ember", Level: 5}},
		Era:       "Ember",
	}})
	set := Build(chars)

	slugs := map[string]bool{}
	for _, entries := range [][]*entity.TaxonomyEntry{set.Factions, set.Powers, set.Locations, set.Timelines} {
		for _, e := range entries {
			if slugs[e.Slug] {
				t.Errorf("slug %q reused across variants", e.Slug)
			}
			slugs[e.Slug] = true
		}
	}
	if len(slugs) != 4 {
		t.Errorf("expected 4 distinct slugs, got %v", slugs)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(testRoster())
	b := Build(testRoster())
	if !reflect.DeepEqual(a, b) {
		t.Error("taxonomy build not deterministic")
	}
}

func TestBuildEmptyRoster(t *testing.T) {
	set := Build(nil)
	for name, entries := range map[string][]*entity.TaxonomyEntry{
		"factions": set.Factions, "powers": set.Powers,
		"locations": set.Locations, "timelines": set.Timelines,
	} {
		if len(entries) != 0 {
			t.Errorf("%s not empty: %v", name, entries)
		}
	}
}

func TestSnippetFallsBackToFirstSentence(t *testing.T) {
	c := &entity.Character{LongDesc: "First sentence here. Second sentence."}
	if got := snippetFor(c); got != "First sentence here." {
		t.Errorf("snippetFor = %q", got)
	}
}
