// Package cache persists lint results between runs so unchanged files are
// not re-analyzed. The cache lives entirely on the driver side; the check
// itself stays stateless.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/reflint/reflint/internal/diagnostics"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	files      INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS results (
	path        TEXT PRIMARY KEY,
	hash        TEXT NOT NULL,
	diagnostics TEXT NOT NULL,
	run_id      TEXT NOT NULL
);
`

// Cache is a sqlite-backed result store. One Cache belongs to one lint
// run; every Put is attributed to that run's id.
type Cache struct {
	db    *sql.DB
	runID string
}

// DefaultPath is <user cache dir>/reflint/cache.db.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "reflint", "cache.db"), nil
}

// Open opens (creating if necessary) the cache database at path and
// registers a new run.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}

	runID := uuid.NewString()
	_, err = db.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	return &Cache{db: db, runID: runID}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// RunID identifies this run in the runs table.
func (c *Cache) RunID() string {
	return c.runID
}

// FileHash is the content hash used as the cache key.
func FileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the stored diagnostics for path when the stored hash still
// matches. The boolean reports a hit.
func (c *Cache) Get(path, hash string) ([]*diagnostics.Diagnostic, bool, error) {
	var storedHash, payload string
	err := c.db.QueryRow(`SELECT hash, diagnostics FROM results WHERE path = ?`, path).
		Scan(&storedHash, &payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}
	if storedHash != hash {
		return nil, false, nil
	}
	var diags []*diagnostics.Diagnostic
	if err := json.Unmarshal([]byte(payload), &diags); err != nil {
		// stale or corrupt entry; treat as a miss
		return nil, false, nil
	}
	return diags, true, nil
}

// Put stores the diagnostics for path under the given content hash.
func (c *Cache) Put(path, hash string, diags []*diagnostics.Diagnostic) error {
	if diags == nil {
		diags = []*diagnostics.Diagnostic{}
	}
	payload, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT INTO results (path, hash, diagnostics, run_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET hash = excluded.hash,
			diagnostics = excluded.diagnostics, run_id = excluded.run_id`,
		path, hash, string(payload), c.runID)
	if err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	_, err = c.db.Exec(`UPDATE runs SET files = files + 1 WHERE id = ?`, c.runID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}
