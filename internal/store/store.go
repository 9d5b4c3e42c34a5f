// Package store persists graph snapshots. Each (kind, tier) pair owns one
// gob-encoded blob in SQLite, replaced wholesale on every rebuild; a
// missing or unreadable snapshot always loads as an empty graph, never as
// an error the caller has to handle.
package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/layout"
	"github.com/mkoster/codeatlas/internal/scan"
)

// Graph kinds.
type Kind string

const (
	Structural Kind = "structural"
	Dependency Kind = "dependency"
	Scope      Kind = "scope"
)

// Graph tiers.
type Tier string

const (
	Full   Tier = "full"
	Simple Tier = "simple"
)

// Snapshot is the persisted artifact for one (kind, tier).
type Snapshot struct {
	Root  string
	Graph *graph.Graph
	// Positions is the precomputed layout, present on full tiers.
	Positions layout.Positions
	// Metadata carries per-file raw parse results (dependency graphs).
	Metadata map[string]*scan.FileParse
	// StaticImage is the pre-rendered raster path, when one exists.
	StaticImage string
}

// EmptySnapshot returns a snapshot holding an empty graph.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Graph: graph.New()}
}

// Store wraps the SQLite snapshot database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the snapshot database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return OpenPath(filepath.Join(dir, "graphs.db"))
}

// OpenPath opens a snapshot database at the given path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory snapshot database (for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, path: ":memory:"}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			kind       TEXT NOT NULL,
			tier       TEXT NOT NULL,
			data       BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (kind, tier)
		)`)
	return err
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the snapshot for (kind, tier). The write is a single
// row replacement: a rebuild never leaves a partial merge behind.
func (s *Store) Save(kind Kind, tier Tier, snap *Snapshot) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot %s/%s: %w", kind, tier, err)
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (kind, tier, data, updated_at) VALUES (?, ?, ?, ?)`,
		string(kind), string(tier), buf.Bytes(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s/%s: %w", kind, tier, err)
	}
	slog.Info("store.saved", "kind", kind, "tier", tier, "nodes", snap.Graph.Len(), "edges", len(snap.Graph.Edges))
	return nil
}

// Load returns the snapshot for (kind, tier). Missing or corrupt rows
// degrade to an empty snapshot; the second return tells whether a real
// snapshot was found.
func (s *Store) Load(kind Kind, tier Tier) (*Snapshot, bool) {
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM snapshots WHERE kind = ? AND tier = ?`,
		string(kind), string(tier),
	).Scan(&data)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("store.load_failed", "kind", kind, "tier", tier, "err", err)
		}
		return EmptySnapshot(), false
	}

	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		slog.Warn("store.corrupt_snapshot", "kind", kind, "tier", tier, "err", err)
		return EmptySnapshot(), false
	}
	if snap.Graph == nil {
		snap.Graph = graph.New()
	}
	return &snap, true
}

// Delete removes the snapshots of a graph kind (both tiers).
func (s *Store) Delete(kind Kind) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE kind = ?`, string(kind))
	return err
}
