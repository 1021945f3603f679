package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"loremaker-codex-be/internal/dto"
	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/pkg/featured"
	"loremaker-codex-be/pkg/query"
	"loremaker-codex-be/pkg/seed"
	"loremaker-codex-be/pkg/taxonomy"
)

const (
	defaultPerPage = 24
	maxPerPage     = 100
)

type ICodexService interface {
	List(ctx context.Context, req *dto.ListCharactersRequest) (*dto.ListCharactersResponse, error)
	Detail(ctx context.Context, slug string) (*entity.Character, error)
	Featured(ctx context.Context) (*entity.FeaturedBundle, error)
	Taxonomies(ctx context.Context) (*entity.TaxonomySet, error)
	Battle(ctx context.Context, req *dto.BattleRequest) (*dto.BattleResponse, error)
	Refresh(ctx context.Context) (*dto.RosterRefreshedEvent, error)
	Health(ctx context.Context) *dto.HealthResponse

	// InvalidateDerived drops the memoised featured and taxonomy
	// views; the consumer calls it when a refresh event arrives.
	InvalidateDerived()
}

type codexService struct {
	library ILibraryService

	now func() time.Time

	// Featured and taxonomy views are deterministic per roster load
	// and day, so they are memoised against both.
	mu           sync.Mutex
	derivedKey   string
	featuredMemo *entity.FeaturedBundle
	taxonomyMemo *entity.TaxonomySet
}

func NewCodexService(library ILibraryService) ICodexService {
	return &codexService{
		library: library,
		now:     time.Now,
	}
}

func (s *codexService) List(ctx context.Context, req *dto.ListCharactersRequest) (*dto.ListCharactersResponse, error) {
	snapshot, err := s.library.Load(ctx, false)
	if err != nil {
		return nil, err
	}

	filters := query.Filters(req.Filters)
	mode := query.ModeBlend
	if req.Mode == string(query.ModeAnd) {
		mode = query.ModeAnd
	}

	matched := make([]*entity.Character, 0, len(snapshot.Characters))
	for _, c := range snapshot.Characters {
		if query.Matches(c, filters, mode, req.Query) {
			matched = append(matched, c)
		}
	}

	sortMode := req.Sort
	if sortMode == "" {
		sortMode = "default"
	}
	matched = query.SortCharacters(matched, sortMode, seed.DayKey(s.now()))

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total := len(matched)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &dto.ListCharactersResponse{
		Characters: matched[start:end],
		Meta: dto.PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
		Source: snapshot.Source,
	}, nil
}

func (s *codexService) Detail(ctx context.Context, slug string) (*entity.Character, error) {
	snapshot, err := s.library.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(slug))
	for _, c := range snapshot.Characters {
		if c.Slug == want {
			return c, nil
		}
	}
	return nil, nil
}

func (s *codexService) Featured(ctx context.Context) (*entity.FeaturedBundle, error) {
	snapshot, err := s.library.Load(ctx, false)
	if err != nil {
		return nil, err
	}

	dayKey := seed.DayKey(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.LoadId + "|" + dayKey
	if s.derivedKey != key {
		s.invalidateLocked(key)
	}
	if s.featuredMemo == nil {
		s.featuredMemo = featured.Compute(snapshot.Characters, dayKey)
	}
	return s.featuredMemo, nil
}

func (s *codexService) Taxonomies(ctx context.Context) (*entity.TaxonomySet, error) {
	snapshot, err := s.library.Load(ctx, false)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.LoadId + "|" + seed.DayKey(s.now())
	if s.derivedKey != key {
		s.invalidateLocked(key)
	}
	if s.taxonomyMemo == nil {
		s.taxonomyMemo = taxonomy.Build(snapshot.Characters)
	}
	return s.taxonomyMemo, nil
}

func (s *codexService) Battle(ctx context.Context, req *dto.BattleRequest) (*dto.BattleResponse, error) {
	left, err := s.Detail(ctx, req.LeftSlug)
	if err != nil {
		return nil, err
	}
	right, err := s.Detail(ctx, req.RightSlug)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}

	res := &dto.BattleResponse{
		Left:  dto.BattleSide{Slug: left.Slug, Name: left.Name, Score: query.Score(left)},
		Right: dto.BattleSide{Slug: right.Slug, Name: right.Name, Score: query.Score(right)},
	}
	switch {
	case res.Left.Score > res.Right.Score:
		res.Winner = left.Slug
	case res.Right.Score > res.Left.Score:
		res.Winner = right.Slug
	default:
		res.Draw = true
	}
	return res, nil
}

func (s *codexService) Refresh(ctx context.Context) (*dto.RosterRefreshedEvent, error) {
	snapshot, err := s.library.Load(ctx, true)
	if err != nil {
		return nil, err
	}
	return &dto.RosterRefreshedEvent{
		LoadId: snapshot.LoadId,
		Source: snapshot.Source,
		Count:  len(snapshot.Characters),
		At:     snapshot.LoadedAt,
	}, nil
}

func (s *codexService) Health(ctx context.Context) *dto.HealthResponse {
	snapshot, ok := s.library.Cached()
	if !ok {
		return &dto.HealthResponse{Status: "empty"}
	}
	status := "stale"
	if s.library.Fresh() {
		status = "fresh"
	}
	loadedAt := snapshot.LoadedAt
	return &dto.HealthResponse{
		Status:         status,
		Source:         snapshot.Source,
		CharacterCount: len(snapshot.Characters),
		LastLoadedAt:   &loadedAt,
	}
}

func (s *codexService) InvalidateDerived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked("")
}

func (s *codexService) invalidateLocked(key string) {
	s.derivedKey = key
	s.featuredMemo = nil
	s.taxonomyMemo = nil
}
