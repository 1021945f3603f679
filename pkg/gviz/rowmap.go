package gviz

import (
	"fmt"
	"strings"

	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/normalize"
)

const gallerySlots = 15

// headerAliases maps each logical field to its accepted header labels,
// in priority order. Matching is case-insensitive on trimmed labels.
var headerAliases = map[string][]string{
	"id":              {"id", "char_id", "character id", "code"},
	"name":            {"character", "character name", "name"},
	"alias":           {"alias", "aliases", "also known as"},
	"gender":          {"gender", "sex"},
	"identity":        {"identity", "identities", "persona"},
	"alignment":       {"alignment"},
	"location":        {"location", "base of operations", "locations"},
	"status":          {"status"},
	"era":             {"era", "origin/era", "time"},
	"firstAppearance": {"first appearance", "debut", "firstappearance"},
	"powers":          {"powers", "abilities", "power"},
	"faction":         {"faction", "team", "faction/team"},
	"tag":             {"tag", "tags"},
	"shortDesc":       {"short description", "shortdesc", "blurb"},
	"longDesc":        {"long description", "longdesc", "bio"},
	"stories":         {"stories", "story", "appears in"},
	"cover":           {"cover image", "cover", "cover url"},
}

func galleryAliases(n int) []string {
	return []string{
		fmt.Sprintf("gallery image %d", n),
		fmt.Sprintf("gallery %d", n),
		fmt.Sprintf("img %d", n),
		fmt.Sprintf("image %d", n),
	}
}

// headerIndex resolves logical field names to column positions.
type headerIndex map[string]int

func buildHeaderIndex(labels []string) headerIndex {
	position := make(map[string]int, len(labels))
	for i, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		if _, taken := position[label]; !taken {
			position[label] = i
		}
	}

	idx := make(headerIndex)
	resolve := func(field string, aliases []string) {
		for _, alias := range aliases {
			if col, ok := position[alias]; ok {
				idx[field] = col
				return
			}
		}
	}
	for field, aliases := range headerAliases {
		resolve(field, aliases)
	}
	for n := 1; n <= gallerySlots; n++ {
		resolve(fmt.Sprintf("gallery_%d", n), galleryAliases(n))
	}
	return idx
}

func labelsFromCols(cols []Col) []string {
	labels := make([]string, len(cols))
	for i, col := range cols {
		if col.Label != "" {
			labels[i] = col.Label
		} else {
			labels[i] = col.ID
		}
	}
	return labels
}

func labelsFromRow(row Row) []string {
	labels := make([]string, len(row.C))
	for i, cell := range row.C {
		labels[i] = cell.String()
	}
	return labels
}

// MapTable shapes a parsed table into character records. When the
// column labels yield no "name" field but the first row's values do,
// row 0 is treated as the header and dropped from the data.
func MapTable(table *Table) []*entity.Character {
	idx := buildHeaderIndex(labelsFromCols(table.Cols))
	rows := table.Rows
	if _, ok := idx["name"]; !ok && len(rows) > 0 {
		headerIdx := buildHeaderIndex(labelsFromRow(rows[0]))
		if _, ok := headerIdx["name"]; ok {
			idx = headerIdx
			rows = rows[1:]
		}
	}

	characters := make([]*entity.Character, 0, len(rows))
	for i, row := range rows {
		if c := mapRow(idx, row, i); c != nil {
			characters = append(characters, c)
		}
	}
	return characters
}

// mapRow builds one character from one row. Rows without a name are
// skipped, which is not an error.
func mapRow(idx headerIndex, row Row, ordinal int) *entity.Character {
	read := func(field string) string {
		col, ok := idx[field]
		if !ok || col >= len(row.C) {
			return ""
		}
		return row.C[col].String()
	}

	name := read("name")
	if name == "" {
		return nil
	}

	c := &entity.Character{
		Id:              read("id"),
		Name:            name,
		SourceIndex:     ordinal,
		Gender:          read("gender"),
		Identity:        read("identity"),
		Alignment:       read("alignment"),
		Status:          read("status"),
		Era:             read("era"),
		FirstAppearance: read("firstAppearance"),
		ShortDesc:       read("shortDesc"),
		LongDesc:        read("longDesc"),
		Alias:           normalize.SplitList(read("alias")),
		Locations:       normalize.SplitLocations(read("location")),
		Faction:         normalize.SplitList(read("faction")),
		Tags:            normalize.SplitList(read("tag")),
		Stories:         normalize.SplitList(read("stories")),
		Powers:          normalize.ParsePowerList(read("powers")),
		Cover:           normalize.NormalizeDriveURL(read("cover")),
	}

	gallery := make([]string, 0, gallerySlots)
	for n := 1; n <= gallerySlots; n++ {
		if url := normalize.NormalizeDriveURL(read(fmt.Sprintf("gallery_%d", n))); url != "" {
			gallery = append(gallery, url)
		}
	}
	c.Gallery = gallery

	return c
}
