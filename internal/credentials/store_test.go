package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()

	token, err := store.Token()
	if err != nil || token != "" {
		t.Fatalf("fresh store: token=%q err=%v", token, err)
	}

	if err := store.Save("tok-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, _ = store.Token()
	if token != "tok-1" {
		t.Fatalf("token = %q, want %q", token, "tok-1")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	token, _ = store.Token()
	if token != "" {
		t.Fatalf("token after clear = %q, want empty", token)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	token, err := store.Token()
	if err != nil || token != "" {
		t.Fatalf("missing file: token=%q err=%v", token, err)
	}

	if err := store.Save("tok-2"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, err = store.Token()
	if err != nil || token != "tok-2" {
		t.Fatalf("token=%q err=%v", token, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("file mode = %o, want 600", perm)
	}
}

func TestFileStoreTrimsStoredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  tok-3\n\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	token, err := NewFileStore(path).Token()
	if err != nil || token != "tok-3" {
		t.Fatalf("token=%q err=%v", token, err)
	}
}

func TestFileStoreClearTolerant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}

	_ = store.Save("tok-4")
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token")
	store := NewFileStore(path)

	if err := store.Save("tok-5"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, err := store.Token()
	if err != nil || token != "tok-5" {
		t.Fatalf("token=%q err=%v", token, err)
	}
}
