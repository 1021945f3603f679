package query

import (
	"testing"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/roster"
)

func testRoster() []*entity.Character {
	return roster.Canonicalise([]*entity.Character{
		{
			Name:      "Ava Dawnspire",
			Gender:    "Female",
			Alignment: "Hero",
			Status:    "Active",
			Era:       "Age of Embers",
			ShortDesc: "A skyborne sentinel sworn to the Dawnspire.",
			Alias:     []string{"The Beacon"},
			Locations: []string{"Vel City"},
			Faction:   []string{"Spire Wardens"},
			Tags:      []string{"leader", "enhanced"},
			Powers:    []entity.Power{{Name: "Flight", Level: 8}, {Name: "Ember Shield", Level: 6}},
			Cover:     "https://example.com/ava.png",
		},
		{
			Name:      "Núria of the Deep",
			Gender:    "Female",
			Alignment: "Neutral",
			Status:    "Dormant",
			Era:       "Old Gods",
			ShortDesc: "An ancient tide-speaker.",
			Locations: []string{"The Sunken Shelf"},
			Faction:   []string{"Tide Choir"},
			Tags:      []string{"mythic"},
			Powers:    []entity.Power{{Name: "Tidecall", Level: 9}},
		},
		{
			Name:      "Kel Varic",
			Gender:    "Male",
			Alignment: "Antihero",
			Status:    "Active",
			Era:       "Age of Embers",
			Locations: []string{"Vel City"},
			Faction:   []string{"Iron Court"},
			Tags:      []string{"human"},
			Powers:    []entity.Power{{Name: "Marksmanship", Level: 7}},
		},
	})
}

func TestMatchesEmptyIsTrue(t *testing.T) {
	for _, c := range testRoster() {
		if !Matches(c, Filters{}, ModeBlend, "") {
			t.Errorf("%s failed the empty predicate", c.Name)
		}
		if !Matches(c, nil, ModeAnd, "   ") {
			t.Errorf("%s failed the blank-query predicate", c.Name)
		}
	}
}

func TestMatchesTextSearch(t *testing.T) {
	chars := testRoster()
	ava, nuria := chars[0], chars[1]

	tests := []struct {
		name  string
		c     *entity.Character
		query string
		want  bool
	}{
		{"name token", ava, "dawnspire", true},
		{"tokens across fields", ava, "vel wardens", true},
		{"diacritics folded", nuria, "nuria", true},
		{"name phrase", nuria, "núria of the deep", true},
		{"power name", nuria, "tidecall", true},
		{"missing token rejects", ava, "dawnspire kraken", false},
		{"case insensitive", ava, "SPIRE", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.c, nil, ModeBlend, tt.query); got != tt.want {
				t.Errorf("Matches(%s, %q) = %v, want %v", tt.c.Name, tt.query, got, tt.want)
			}
		})
	}
}

func TestMatchesFilters(t *testing.T) {
	chars := testRoster()
	ava := chars[0]

	tests := []struct {
		name    string
		filters Filters
		mode    Mode
		want    bool
	}{
		{"single facet", Filters{FacetGender: {"female"}}, ModeBlend, true},
		{"wrong value", Filters{FacetGender: {"male"}}, ModeBlend, false},
		{"blend any-of", Filters{FacetTag: {"human", "leader"}}, ModeBlend, true},
		{"and all-of present", Filters{FacetTag: {"leader", "enhanced"}}, ModeAnd, true},
		{"and all-of missing one", Filters{FacetTag: {"leader", "human"}}, ModeAnd, false},
		{"facets conjoin", Filters{FacetGender: {"female"}, FacetFaction: {"iron court"}}, ModeBlend, false},
		{"empty selection ignored", Filters{FacetGender: {}}, ModeAnd, true},
		{"power facet", Filters{FacetPower: {"flight"}}, ModeBlend, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(ava, tt.filters, tt.mode, ""); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesEraFacetSpansEraTags(t *testing.T) {
	c := roster.Canonicalise([]*entity.Character{{
		Name: "Hollow",
		Era:  "Age of Glass",
		Tags: []string{"era: Old Gods"},
	}})[0]
	if !Matches(c, Filters{FacetEra: {"old gods"}}, ModeBlend, "") {
		t.Error("era facet should include eraTags values")
	}
}

func TestScoreDeterministicAndModifiers(t *testing.T) {
	chars := testRoster()
	ava, nuria, kel := chars[0], chars[1], chars[2]

	if Score(ava) != Score(ava) {
		t.Error("score not deterministic")
	}

	// Ava: (8+6+3 elite) * 1.14 enhanced = 19.38 -> 19.
	if got := Score(ava); got != 19 {
		t.Errorf("Score(ava) = %d, want 19", got)
	}
	// Núria: (9+3 mythic-tag elite) * 1.6 divine-via-era * 1.07 old gods = 20.54 -> 21.
	if got := Score(nuria); got != 21 {
		t.Errorf("Score(nuria) = %d, want 21", got)
	}
	// Kel: 7 * 1.0 human = 7.
	if got := Score(kel); got != 7 {
		t.Errorf("Score(kel) = %d, want 7", got)
	}
}

func TestSortModes(t *testing.T) {
	chars := testRoster()

	t.Run("default puts art first then feed order", func(t *testing.T) {
		got := SortCharacters(chars, SortDefault, "2025-01-01")
		if got[0].Name != "Ava Dawnspire" {
			t.Errorf("first = %s, want illustrated Ava", got[0].Name)
		}
		if got[1].SourceIndex > got[2].SourceIndex {
			t.Error("text-only tail not in feed order")
		}
	})

	t.Run("az and za", func(t *testing.T) {
		az := SortCharacters(chars, SortAZ, "")
		if az[0].Name != "Ava Dawnspire" || az[2].Name != "Núria of the Deep" {
			t.Errorf("az order: %s..%s", az[0].Name, az[2].Name)
		}
		za := SortCharacters(chars, SortZA, "")
		if za[0].Name != az[2].Name {
			t.Error("za is not the reverse of az")
		}
	})

	t.Run("era groups empties last", func(t *testing.T) {
		mixed := append(testRoster(), roster.Canonicalise([]*entity.Character{{Name: "Eraless"}})...)
		got := SortCharacters(mixed, SortEra, "")
		if got[len(got)-1].Name != "Eraless" {
			t.Errorf("last = %s, want Eraless", got[len(got)-1].Name)
		}
	})

	t.Run("most and least", func(t *testing.T) {
		most := SortCharacters(chars, SortMost, "")
		least := SortCharacters(chars, SortLeast, "")
		if Score(most[0]) < Score(most[2]) {
			t.Error("most not descending")
		}
		if most[0].Name != least[2].Name {
			t.Error("least is not the reverse extreme of most")
		}
	})

	t.Run("random is stable per day and art-first", func(t *testing.T) {
		a := SortCharacters(chars, SortRandom, "2025-01-01")
		b := SortCharacters(chars, SortRandom, "2025-01-01")
		for i := range a {
			if a[i].Slug != b[i].Slug {
				t.Fatal("same-day shuffle not stable")
			}
		}
		if !a[0].HasArt() {
			t.Error("illustrated partition should lead the shuffle")
		}
	})

	t.Run("input order untouched", func(t *testing.T) {
		SortCharacters(chars, SortAZ, "")
		if chars[0].Name != "Ava Dawnspire" || chars[1].Name != "Núria of the Deep" {
			t.Error("SortCharacters mutated its input")
		}
	})
}
