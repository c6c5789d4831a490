package keystore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/maskvault/maskvault/internal/errs"
)

func TestGetOrCreate_CreatesAndPersists(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "keys", "master.key")

	k1, err := GetOrCreate(path)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if len(k1) != KeySize {
		t.Fatalf("len=%d, want=%d", len(k1), KeySize)
	}

	k2, err := GetOrCreate(path)
	if err != nil {
		t.Fatalf("GetOrCreate second call: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("key changed between calls")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm=%o, want 600", perm)
	}
}

func TestGetOrCreate_DistinctPathsDistinctKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a, err := GetOrCreate(filepath.Join(dir, "a.key"))
	if err != nil {
		t.Fatalf("GetOrCreate a: %v", err)
	}
	b, err := GetOrCreate(filepath.Join(dir, "b.key"))
	if err != nil {
		t.Fatalf("GetOrCreate b: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two fresh keys must differ")
	}
}

func TestGetOrCreate_WrongSizeIsFatal(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "short.key")
	if err := os.WriteFile(path, []byte("too short"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, err := GetOrCreate(path)
	if !errors.Is(err, errs.ErrKeyStore) {
		t.Fatalf("err=%v, want ErrKeyStore", err)
	}

	// bad file must survive untouched, never be regenerated
	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, []byte("too short")) {
		t.Fatalf("key file was modified")
	}
}
