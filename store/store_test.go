package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	hash := SourceHash([]byte("+[-]"))
	chunk := []byte("serialized program bytes")
	if err := s.Put(hash, chunk); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(hash)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, chunk) {
		t.Errorf("Get = %v, want %v", got, chunk)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(SourceHash([]byte("never stored")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t)

	hash := SourceHash([]byte("+"))
	if err := s.Put(hash, []byte("old")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(hash, []byte("new")); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := s.Get(hash)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}
}

func TestSourceHashIsStable(t *testing.T) {
	a := SourceHash([]byte("+[-]"))
	b := SourceHash([]byte("+[-]"))
	if a != b {
		t.Error("identical sources hashed differently")
	}
	if a == SourceHash([]byte("+[+]")) {
		t.Error("distinct sources collided")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dirs", "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if err := s.Put(SourceHash([]byte("+")), []byte("x")); err != nil {
		t.Errorf("Put failed: %v", err)
	}
}
