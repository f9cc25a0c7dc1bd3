package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
)

func TestFileStore_SaveReopenClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Token() != "" {
		t.Fatalf("missing file must open as an empty session")
	}

	saved := user.Session{Token: "tok-1", User: user.User{ID: 3, Email: "ana@example.com", Name: "Ana"}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != fileMode {
		t.Fatalf("expected mode %o, got %o", fileMode, perm)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Token() != "tok-1" {
		t.Fatalf("token not persisted, got %q", reopened.Token())
	}
	got, ok := reopened.User()
	if !ok || got.Name != "Ana" || got.ID != 3 {
		t.Fatalf("user not persisted: %+v ok=%v", got, ok)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("session file must be removed, stat err=%v", err)
	}
	if _, ok := reopened.User(); ok {
		t.Fatalf("cleared store must report no user")
	}
	if err := reopened.Clear(); err != nil {
		t.Fatalf("second clear must be a no-op, got %v", err)
	}
}

func TestFileStore_RejectsEmptyToken(t *testing.T) {
	t.Parallel()

	store, err := OpenFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(user.Session{User: user.User{ID: 1}}); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), fileMode); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Fatalf("expected decode error for corrupt session file")
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(user.Session{})
	if _, ok := store.User(); ok {
		t.Fatalf("empty store must report no user")
	}
	if err := store.Save(user.Session{Token: "abc", User: user.User{ID: 9}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.Token() != "abc" {
		t.Fatalf("unexpected token %q", store.Token())
	}
	_ = store.Clear()
	if store.Token() != "" || store.Clears() != 1 {
		t.Fatalf("clear did not reset the store")
	}
}
