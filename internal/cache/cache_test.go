package cache

import (
	"path/filepath"
	"testing"

	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/token"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "sub", "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleDiag() *diagnostics.Diagnostic {
	return &diagnostics.Diagnostic{
		Code:     diagnostics.LintNeedlessLifetimes,
		Severity: diagnostics.SeverityWarning,
		Token:    token.Token{Type: token.FN, Lexeme: "fn", Line: 3, Column: 5},
		File:     "src/lib.rs",
		Message:  "explicit lifetimes given in parameter types where they could be elided",
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	c := openTestCache(t)
	hash := FileHash([]byte("fn f<'a>(x: &'a u8) -> &'a u8 { x }"))

	if err := c.Put("src/lib.rs", hash, []*diagnostics.Diagnostic{sampleDiag()}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, hit, err := c.Get("src/lib.rs", hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got))
	}
	d := got[0]
	if d.Code != diagnostics.LintNeedlessLifetimes || d.Token.Line != 3 || d.Token.Column != 5 {
		t.Errorf("roundtripped diagnostic = %+v", d)
	}
	if d.File != "src/lib.rs" {
		t.Errorf("File = %q", d.File)
	}
}

func TestGetMissesOnUnknownPath(t *testing.T) {
	c := openTestCache(t)
	if _, hit, err := c.Get("never/stored.rs", "deadbeef"); err != nil || hit {
		t.Errorf("Get = hit %v, err %v; want miss, nil", hit, err)
	}
}

func TestGetMissesOnChangedHash(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("src/lib.rs", FileHash([]byte("old contents")), nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_, hit, err := c.Get("src/lib.rs", FileHash([]byte("new contents")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("stale entry should be a miss after the file changed")
	}
}

func TestPutOverwrites(t *testing.T) {
	c := openTestCache(t)
	oldHash := FileHash([]byte("v1"))
	newHash := FileHash([]byte("v2"))

	if err := c.Put("src/lib.rs", oldHash, []*diagnostics.Diagnostic{sampleDiag()}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put("src/lib.rs", newHash, nil); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, hit, err := c.Get("src/lib.rs", newHash)
	if err != nil || !hit {
		t.Fatalf("Get after overwrite: hit %v, err %v", hit, err)
	}
	if len(got) != 0 {
		t.Errorf("overwritten entry still has %d diagnostics", len(got))
	}
	if _, hit, _ := c.Get("src/lib.rs", oldHash); hit {
		t.Error("old hash should no longer hit")
	}
}

func TestCleanResultIsADistinctHit(t *testing.T) {
	// a stored empty result must be distinguishable from no entry at all
	c := openTestCache(t)
	hash := FileHash([]byte("fn f(x: &u8) {}"))
	if err := c.Put("clean.rs", hash, nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, hit, err := c.Get("clean.rs", hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("clean result should still be a hit")
	}
	if len(got) != 0 {
		t.Errorf("clean result carries %d diagnostics", len(got))
	}
}

func TestRunID(t *testing.T) {
	c := openTestCache(t)
	if c.RunID() == "" {
		t.Error("RunID is empty")
	}
	c2 := openTestCache(t)
	if c.RunID() == c2.RunID() {
		t.Error("two runs share an id")
	}
}

func TestFileHashStable(t *testing.T) {
	a := FileHash([]byte("same"))
	b := FileHash([]byte("same"))
	if a != b {
		t.Errorf("hashes differ: %s vs %s", a, b)
	}
	if a == FileHash([]byte("other")) {
		t.Error("different contents produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
