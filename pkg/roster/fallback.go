package roster

import "loremaker-codex-be/internal/entity"

// fallbackRoster is the embedded dataset served when every sheet
// candidate fails. It mirrors the Character shape minus daily seeding;
// callers canonicalise and seed it like any upstream load.
var fallbackRoster = []*entity.Character{
	{
		Name:            "Ava Dawnspire",
		Gender:          "Female",
		Identity:        "Public",
		Alignment:       "Hero",
		Status:          "Active",
		Era:             "Age of Embers",
		FirstAppearance: "Chronicle of Embers #1",
		ShortDesc:       "A skyborne sentinel sworn to the Dawnspire.",
		LongDesc:        "Raised among the spire wardens, Ava carries the last ember of the old beacon. Her patrols keep the trade winds open.",
		Alias:           []string{"The Beacon"},
		Locations:       []string{"Dawnspire", "Vel City"},
		Faction:         []string{"Spire Wardens"},
		Tags:            []string{"leader", "enhanced"},
		Stories:         []string{"Chronicle of Embers"},
		Powers:          []entity.Power{{Name: "Flight", Level: 8}, {Name: "Ember Shield", Level: 6}},
		Cover:           "https://static.loremaker.dev/art/ava-dawnspire.png",
		Gallery:         []string{"https://static.loremaker.dev/art/ava-dawnspire-2.png"},
	},
	{
		Name:      "Kel Varic",
		Gender:    "Male",
		Identity:  "Secret",
		Alignment: "Antihero",
		Status:    "Active",
		Era:       "Age of Embers",
		ShortDesc: "A smuggler with a conscience and a stolen warplate.",
		Alias:     []string{"Ironhand"},
		Locations: []string{"Vel City"},
		Faction:   []string{"Iron Court"},
		Tags:      []string{"human"},
		Stories:   []string{"Iron Court Files"},
		Powers:    []entity.Power{{Name: "Warplate", Level: 5}, {Name: "Marksmanship", Level: 7}},
		Cover:     "https://static.loremaker.dev/art/kel-varic.png",
	},
	{
		Name:      "Núria of the Deep",
		Gender:    "Female",
		Identity:  "Mythic",
		Alignment: "Neutral",
		Status:    "Dormant",
		Era:       "Old Gods",
		ShortDesc: "An ancient tide-speaker who sleeps beneath the shelf.",
		LongDesc:  "Fisherfolk leave salt at her shrines. When the deep currents shift, Núria stirs.",
		Locations: []string{"The Sunken Shelf"},
		Faction:   []string{"Tide Choir"},
		Tags:      []string{"mythic", "legend"},
		Powers:    []entity.Power{{Name: "Tidecall", Level: 9}, {Name: "Deep Sight", Level: 6}},
		Cover:     "https://static.loremaker.dev/art/nuria.png",
	},
	{
		Name:      "Professor Sable",
		Gender:    "Nonbinary",
		Identity:  "Public",
		Alignment: "Villain",
		Status:    "At Large",
		Era:       "Age of Glass",
		ShortDesc: "Architect of the glass engines and their quiet coups.",
		Locations: []string{"Glasshaven"},
		Faction:   []string{"The Foundry"},
		Tags:      []string{"mastermind", "enhanced"},
		Stories:   []string{"Glass Engine Saga"},
		Powers:    []entity.Power{{Name: "Intellect", Level: 10}, {Name: "Glasscraft", Level: 8}},
	},
	{
		Name:      "Orrin Starlane",
		Gender:    "Male",
		Identity:  "Public",
		Alignment: "Hero",
		Status:    "Missing",
		Era:       "Age of Glass",
		ShortDesc: "A starborn courier who outran the void once too often.",
		Alias:     []string{"The Lane"},
		Locations: []string{"Vel City", "The Outer Lanes"},
		Faction:   []string{"Spire Wardens"},
		Tags:      []string{"alien"},
		Powers:    []entity.Power{{Name: "Voidstep", Level: 7}, {Name: "Flight", Level: 6}},
		Cover:     "https://static.loremaker.dev/art/orrin.png",
		Gallery:   []string{"https://static.loremaker.dev/art/orrin-2.png", "https://static.loremaker.dev/art/orrin-3.png"},
	},
	{
		Name:      "The Hollow King",
		Identity:  "Mythic",
		Alignment: "Villain",
		Status:    "Sealed",
		Era:       "Old Gods",
		ShortDesc: "A crownless god whose bargains always balance.",
		LongDesc:  "Sealed beneath the Dawnspire by the first wardens. His voice still reaches the ambitious.",
		Locations: []string{"Dawnspire"},
		Faction:   []string{"Court of Hollows"},
		Tags:      []string{"mythic", "prime", "era: Old Gods"},
		Powers:    []entity.Power{{Name: "Dominion", Level: 10}, {Name: "Whisper", Level: 9}},
	},
}

// Fallback returns a fresh copy of the embedded roster so seeding and
// canonicalisation never mutate the package-level data.
func Fallback() []*entity.Character {
	out := make([]*entity.Character, len(fallbackRoster))
	for i, src := range fallbackRoster {
		c := *src
		c.Alias = append([]string(nil), src.Alias...)
		c.Locations = append([]string(nil), src.Locations...)
		c.Faction = append([]string(nil), src.Faction...)
		c.Tags = append([]string(nil), src.Tags...)
		c.Stories = append([]string(nil), src.Stories...)
		c.EraTags = append([]string(nil), src.EraTags...)
		c.Powers = append([]entity.Power(nil), src.Powers...)
		c.Gallery = append([]string(nil), src.Gallery...)
		c.SourceIndex = i
		out[i] = &c
	}
	return out
}
