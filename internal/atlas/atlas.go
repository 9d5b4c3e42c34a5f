// Package atlas ties the builders, the snapshot store, and the render
// strategy together behind one session object per open project. The
// session is the only holder of "current project" state; nothing below it
// keeps ambient globals.
package atlas

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mkoster/codeatlas/internal/builder"
	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/render"
	"github.com/mkoster/codeatlas/internal/scopeset"
	"github.com/mkoster/codeatlas/internal/store"
)

const snapshotCacheSize = 8

// Session is an open project: its root, its snapshot store, and a small
// decode cache over loaded snapshots. Render generations for progressive
// loads are tracked here so stale chunk streams can be detected.
type Session struct {
	Root    string
	Cfg     *config.Config
	Store   *store.Store
	Builder *builder.Builder
	Gens    render.Generations

	cache *lru.Cache[string, *store.Snapshot]
}

// Open creates a session for projectRoot, opening (or creating) the
// snapshot database under the configured data directory.
func Open(cfg *config.Config, projectRoot string) (*Session, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.GraphsDir())
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	cache, err := lru.New[string, *store.Snapshot](snapshotCacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		Root:    projectRoot,
		Cfg:     cfg,
		Store:   st,
		Builder: builder.New(cfg, st, projectRoot),
		cache:   cache,
	}, nil
}

func (s *Session) Close() error { return s.Store.Close() }

func cacheKey(kind store.Kind, tier store.Tier) string {
	return string(kind) + "/" + string(tier)
}

// Load returns the snapshot for (kind, tier), hitting the decode cache
// when possible. Missing snapshots come back as empty graphs.
func (s *Session) Load(kind store.Kind, tier store.Tier) (*store.Snapshot, bool) {
	key := cacheKey(kind, tier)
	if snap, ok := s.cache.Get(key); ok {
		return snap, true
	}
	snap, ok := s.Store.Load(kind, tier)
	if ok {
		s.cache.Add(key, snap)
	}
	return snap, ok
}

// Plan loads a snapshot and applies the render strategy. Full-detail
// chunking only applies to full-tier requests.
func (s *Session) Plan(kind store.Kind, tier store.Tier) *render.Plan {
	snap, _ := s.Load(kind, tier)
	return render.Select(snap, tier, tier == store.Full, s.Cfg)
}

// Scope returns the persisted scope set for this session's data dir.
func (s *Session) Scope() (*scopeset.Set, error) {
	return scopeset.Load(s.Cfg.OutputsDir())
}

// invalidate drops cached snapshots after a rebuild replaced them.
func (s *Session) invalidate(kinds ...store.Kind) {
	for _, k := range kinds {
		s.cache.Remove(cacheKey(k, store.Full))
		s.cache.Remove(cacheKey(k, store.Simple))
	}
}

// BuildStructural rebuilds the containment graph. Dependency and scope
// graphs are left alone; they stay stale until explicitly rebuilt.
func (s *Session) BuildStructural(ctx context.Context, cb builder.Progress) error {
	_, err := s.Builder.BuildStructural(ctx, cb)
	s.invalidate(store.Structural)
	return err
}

// BuildDependency rebuilds the import graph, building the structural base
// on demand when absent.
func (s *Session) BuildDependency(ctx context.Context, cb builder.Progress) error {
	err := s.Builder.BuildDependency(ctx, cb)
	s.invalidate(store.Structural, store.Dependency)
	return err
}

// BuildScope rebuilds the symbol graph over the current scope set.
func (s *Session) BuildScope(ctx context.Context, cb builder.Progress) error {
	err := s.Builder.BuildScope(ctx, cb)
	s.invalidate(store.Scope)
	return err
}

// ClearGraphs deletes every persisted snapshot for this session.
func (s *Session) ClearGraphs() error {
	for _, kind := range []store.Kind{store.Structural, store.Dependency, store.Scope} {
		if err := s.Store.Delete(kind); err != nil {
			return err
		}
	}
	s.cache.Purge()
	slog.Info("atlas.graphs_cleared", "root", s.Root)
	return nil
}
