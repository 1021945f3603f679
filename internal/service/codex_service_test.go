package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loremaker-codex-be/internal/constant"
	"loremaker-codex-be/internal/dto"
	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/roster"
)

// stubLibrary serves a fixed snapshot without any network.
type stubLibrary struct {
	snapshot *entity.RosterSnapshot
	stale    bool
	loads    int
}

func (s *stubLibrary) Load(context.Context, bool) (*entity.RosterSnapshot, error) {
	s.loads++
	return s.snapshot, nil
}

func (s *stubLibrary) FetchFromSheets(context.Context, bool) (*entity.RosterSnapshot, error) {
	return s.snapshot, nil
}

func (s *stubLibrary) Cached() (*entity.RosterSnapshot, bool) {
	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

func (s *stubLibrary) Fresh() bool { return s.snapshot != nil && !s.stale }

func (s *stubLibrary) Clear() {}

func fixtureSnapshot() *entity.RosterSnapshot {
	characters := roster.Canonicalise(roster.Fallback())
	return &entity.RosterSnapshot{
		Characters: characters,
		Source:     constant.RosterSourceSheets,
		LoadId:     "load-1",
		LoadedAt:   time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func newCodexService(lib ILibraryService) *codexService {
	svc := NewCodexService(lib).(*codexService)
	svc.now = func() time.Time { return time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestListReturnsWholeRosterByDefault(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	res, err := svc.List(context.Background(), &dto.ListCharactersRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Characters, len(lib.snapshot.Characters))
	assert.Equal(t, 1, res.Meta.Page)
	assert.Equal(t, defaultPerPage, res.Meta.PerPage)
	assert.Equal(t, len(lib.snapshot.Characters), res.Meta.Total)
	assert.Equal(t, constant.RosterSourceSheets, res.Source)
}

func TestListPaginates(t *testing.T) {
	snapshot := fixtureSnapshot()
	lib := &stubLibrary{snapshot: snapshot}
	svc := newCodexService(lib)

	res, err := svc.List(context.Background(), &dto.ListCharactersRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, res.Characters, 2)
	assert.Equal(t, 2, res.Meta.Page)
	assert.Equal(t, (len(snapshot.Characters)+1)/2, res.Meta.TotalPages)

	// A page past the end is empty, not an error.
	far, err := svc.List(context.Background(), &dto.ListCharactersRequest{Page: 99, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, far.Characters)
	assert.Equal(t, res.Meta.Total, far.Meta.Total)
}

func TestListAppliesFiltersAndSearch(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	res, err := svc.List(context.Background(), &dto.ListCharactersRequest{Query: "dawnspire"})
	require.NoError(t, err)
	require.Len(t, res.Characters, 1)
	assert.Equal(t, "ava-dawnspire", res.Characters[0].Slug)

	filtered, err := svc.List(context.Background(), &dto.ListCharactersRequest{
		Filters: map[string][]string{"alignment": {"Hero"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, filtered.Characters)
	for _, c := range filtered.Characters {
		assert.Equal(t, "Hero", c.Alignment)
	}
}

func TestListSortAZ(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	res, err := svc.List(context.Background(), &dto.ListCharactersRequest{Sort: "az", PerPage: 100})
	require.NoError(t, err)
	for i := 1; i < len(res.Characters); i++ {
		assert.LessOrEqual(t, res.Characters[i-1].Name, res.Characters[i].Name)
	}
}

func TestDetailFindsBySlug(t *testing.T) {
	snapshot := fixtureSnapshot()
	lib := &stubLibrary{snapshot: snapshot}
	svc := newCodexService(lib)

	want := snapshot.Characters[0]
	got, err := svc.Detail(context.Background(), "  "+want.Slug+" ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Name, got.Name)

	missing, err := svc.Detail(context.Background(), "nobody-here")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBattleDeterministic(t *testing.T) {
	snapshot := fixtureSnapshot()
	lib := &stubLibrary{snapshot: snapshot}
	svc := newCodexService(lib)

	req := &dto.BattleRequest{
		LeftSlug:  snapshot.Characters[0].Slug,
		RightSlug: snapshot.Characters[1].Slug,
	}
	first, err := svc.Battle(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.Battle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	if !first.Draw {
		winner := first.Winner
		assert.True(t, winner == req.LeftSlug || winner == req.RightSlug)
	}

	// Unknown contender yields no result rather than an error.
	none, err := svc.Battle(context.Background(), &dto.BattleRequest{LeftSlug: "ghost", RightSlug: req.RightSlug})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFeaturedMemoisedPerLoadAndDay(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	first, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first.Character)

	second, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	// A new load id invalidates the memo.
	lib.snapshot = fixtureSnapshot()
	lib.snapshot.LoadId = "load-2"
	third, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestTaxonomiesMemoisedAndInvalidated(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	first, err := svc.Taxonomies(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first.Factions)

	second, err := svc.Taxonomies(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	svc.InvalidateDerived()
	third, err := svc.Taxonomies(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestHealthReportsSourceAndCount(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	res := svc.Health(context.Background())
	assert.Equal(t, "fresh", res.Status)
	assert.Equal(t, constant.RosterSourceSheets, res.Source)
	assert.Equal(t, len(lib.snapshot.Characters), res.CharacterCount)
	require.NotNil(t, res.LastLoadedAt)

	lib.stale = true
	assert.Equal(t, "stale", svc.Health(context.Background()).Status)

	empty := newCodexService(&stubLibrary{})
	assert.Equal(t, "empty", empty.Health(context.Background()).Status)
}

func TestListPerPageIsCapped(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	res, err := svc.List(context.Background(), &dto.ListCharactersRequest{PerPage: 5000})
	require.NoError(t, err)
	assert.Equal(t, maxPerPage, res.Meta.PerPage)
}

func TestRefreshForcesReload(t *testing.T) {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := newCodexService(lib)

	evt, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "load-1", evt.LoadId)
	assert.Equal(t, len(lib.snapshot.Characters), evt.Count)
	assert.Equal(t, 1, lib.loads)
}

func ExampleICodexService() {
	lib := &stubLibrary{snapshot: fixtureSnapshot()}
	svc := NewCodexService(lib)
	res, _ := svc.List(context.Background(), &dto.ListCharactersRequest{Sort: "az", PerPage: 1})
	fmt.Println(res.Characters[0].Name)
	// Output: Ava Dawnspire
}
