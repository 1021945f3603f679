package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"loremaker-codex-be/internal/apperror"
	"loremaker-codex-be/internal/config"
	"loremaker-codex-be/internal/constant"
	"loremaker-codex-be/internal/dto"
	"loremaker-codex-be/internal/entity"
	"loremaker-codex-be/internal/pkg/logger"
	"loremaker-codex-be/pkg/gviz"
	"loremaker-codex-be/pkg/roster"
	"loremaker-codex-be/pkg/seed"
)

const (
	rosterCacheKey = "codex:roster"
	freshCacheKey  = "codex:fresh"
)

// HTTPDoer is the slice of http.Client the fetcher needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ILibraryService interface {
	// Load returns the current roster, fetching from the sheet when
	// the cache is cold or stale and falling back to the built-in
	// roster when the upstream is unusable.
	Load(ctx context.Context, force bool) (*entity.RosterSnapshot, error)

	// FetchFromSheets is the strict path: it never substitutes the
	// fallback roster and surfaces upstream errors to the caller.
	FetchFromSheets(ctx context.Context, force bool) (*entity.RosterSnapshot, error)

	// Cached returns the last loaded snapshot even when its TTL has
	// lapsed. The second return reports whether one exists at all.
	Cached() (*entity.RosterSnapshot, bool)

	// Fresh reports whether the cached snapshot is still within TTL.
	Fresh() bool

	Clear()
}

type libraryService struct {
	cfg       *config.SheetConfig
	client    HTTPDoer
	cache     *gocache.Cache
	publisher IPublisherService
	logger    logger.ILogger

	// now is swappable in tests so daily draws are reproducible.
	now func() time.Time

	mu sync.Mutex
}

func NewLibraryService(
	cfg *config.SheetConfig,
	client HTTPDoer,
	cache *gocache.Cache,
	publisher IPublisherService,
	log logger.ILogger,
) ILibraryService {
	return &libraryService{
		cfg:       cfg,
		client:    client,
		cache:     cache,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *libraryService) Load(ctx context.Context, force bool) (*entity.RosterSnapshot, error) {
	snapshot, err := s.FetchFromSheets(ctx, force)
	if err == nil {
		return snapshot, nil
	}

	s.logger.Warn("LibraryService", "Sheet load failed, using fallback roster", map[string]interface{}{"error": err.Error()})

	characters := s.prepare(roster.Fallback())
	if len(characters) == 0 {
		return nil, &apperror.UnavailableUpstreamError{Cause: err}
	}

	snapshot = s.store(characters, constant.RosterSourceFallback)
	return snapshot, nil
}

func (s *libraryService) FetchFromSheets(ctx context.Context, force bool) (*entity.RosterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force {
		if _, fresh := s.cache.Get(freshCacheKey); fresh {
			if cached, ok := s.cached(); ok {
				return cached, nil
			}
		}
	}

	if s.cfg.ID == "" {
		return nil, &apperror.MissingConfigError{}
	}

	var lastErr error
	for _, tab := range s.candidateTabs() {
		characters, err := s.fetchTab(ctx, tab)
		if err != nil {
			lastErr = err
			s.logger.Warn("LibraryService", "Sheet candidate failed", map[string]interface{}{"tab": tab, "error": err.Error()})
			continue
		}
		snapshot := s.store(s.prepare(characters), constant.RosterSourceSheets)
		s.logger.Info("LibraryService", "Roster loaded from sheet", map[string]interface{}{"tab": tab, "count": len(snapshot.Characters)})
		return snapshot, nil
	}

	if lastErr == nil {
		lastErr = &apperror.UpstreamFailureError{Status: 0}
	}
	return nil, lastErr
}

func (s *libraryService) Cached() (*entity.RosterSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached()
}

func (s *libraryService) Fresh() bool {
	_, fresh := s.cache.Get(freshCacheKey)
	return fresh
}

func (s *libraryService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(rosterCacheKey)
	s.cache.Delete(freshCacheKey)
}

func (s *libraryService) cached() (*entity.RosterSnapshot, bool) {
	v, ok := s.cache.Get(rosterCacheKey)
	if !ok {
		return nil, false
	}
	snapshot, ok := v.(*entity.RosterSnapshot)
	return snapshot, ok
}

// candidateTabs orders the tabs to try. The empty string means the
// request carries no sheet parameter at all.
func (s *libraryService) candidateTabs() []string {
	raw := []string{s.cfg.Tab, constant.SheetTabCharacters, constant.SheetTabDefault, ""}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, tab := range raw {
		if _, dup := seen[tab]; dup {
			continue
		}
		seen[tab] = struct{}{}
		out = append(out, tab)
	}
	return out
}

func (s *libraryService) fetchTab(ctx context.Context, tab string) ([]*entity.Character, error) {
	endpoint := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:json", url.PathEscape(s.cfg.ID))
	if tab != "" {
		endpoint += "&sheet=" + url.QueryEscape(tab)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &apperror.UnavailableUpstreamError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperror.UpstreamFailureError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperror.UnavailableUpstreamError{Cause: err}
	}

	table, err := gviz.ParseEnvelope(body)
	if err != nil {
		return nil, err
	}

	characters := gviz.MapTable(table)
	if len(characters) == 0 {
		return nil, &apperror.BadEnvelopeError{Reason: "no usable rows"}
	}
	return characters, nil
}

// prepare canonicalises the roster and applies the day's power levels.
func (s *libraryService) prepare(characters []*entity.Character) []*entity.Character {
	characters = roster.Canonicalise(characters)
	dayKey := seed.DayKey(s.now())
	for _, c := range characters {
		c.Powers = seed.RebalancePowers(c.Powers, seed.CharacterSeed(c), dayKey)
	}
	return characters
}

func (s *libraryService) store(characters []*entity.Character, source string) *entity.RosterSnapshot {
	snapshot := &entity.RosterSnapshot{
		Characters: characters,
		Source:     source,
		LoadId:     uuid.NewString(),
		LoadedAt:   s.now(),
	}
	s.cache.Set(rosterCacheKey, snapshot, gocache.NoExpiration)
	s.cache.Set(freshCacheKey, true, s.cfg.CacheTTL)

	if s.publisher != nil {
		event := dto.RosterRefreshedEvent{
			LoadId: snapshot.LoadId,
			Source: snapshot.Source,
			Count:  len(snapshot.Characters),
			At:     snapshot.LoadedAt,
		}
		payload, err := json.Marshal(event)
		if err == nil {
			if err := s.publisher.Publish(context.Background(), payload); err != nil {
				s.logger.Warn("LibraryService", "Failed to publish refresh event", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	return snapshot
}
