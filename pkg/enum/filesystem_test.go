package enum

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/praetorian-inc/balance/pkg/types"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
}

// enumerateNames runs the enumerator and returns sorted base names.
func enumerateNames(t *testing.T, config Config) []string {
	t.Helper()
	var mu sync.Mutex
	var found []string
	err := NewFilesystemEnumerator(config).Enumerate(context.Background(), func(content []byte, id types.ContentHash, path string) error {
		if id != types.HashContent(content) {
			t.Errorf("content hash mismatch for %s", path)
		}
		mu.Lock()
		found = append(found, filepath.Base(path))
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}
	sort.Strings(found)
	return found
}

func equalNames(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFilesystemEnumerator(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.go"), []byte("func a() {}"))
	writeFile(t, filepath.Join(tmpDir, "b.ts"), []byte("const b = [1]"))
	writeFile(t, filepath.Join(tmpDir, "sub", "c.go"), []byte("(c)"))

	got := enumerateNames(t, Config{Root: tmpDir})
	equalNames(t, got, "a.go", "b.ts", "c.go")
}

func TestFilesystemEnumerator_HiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "visible.go"), []byte("{}"))
	writeFile(t, filepath.Join(tmpDir, ".hidden.go"), []byte("{}"))
	writeFile(t, filepath.Join(tmpDir, ".cache", "inner.go"), []byte("{}"))

	equalNames(t, enumerateNames(t, Config{Root: tmpDir}), "visible.go")
	equalNames(t, enumerateNames(t, Config{Root: tmpDir, IncludeHidden: true}), ".hidden.go", "inner.go", "visible.go")
}

func TestFilesystemEnumerator_MaxFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "small.go"), []byte("()"))
	large := make([]byte, 2000)
	for i := range large {
		large[i] = '('
	}
	writeFile(t, filepath.Join(tmpDir, "large.go"), large)

	equalNames(t, enumerateNames(t, Config{Root: tmpDir, MaxFileSize: 1000}), "small.go")
}

func TestFilesystemEnumerator_BinaryFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "text.go"), []byte("text"))
	writeFile(t, filepath.Join(tmpDir, "binary.bin"), []byte{0x00, 0x28, 0x29})

	equalNames(t, enumerateNames(t, Config{Root: tmpDir}), "text.go")
}

func TestFilesystemEnumerator_Extensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "main.go"), []byte("{}"))
	writeFile(t, filepath.Join(tmpDir, "app.TS"), []byte("{}"))
	writeFile(t, filepath.Join(tmpDir, "README.md"), []byte("("))

	got := enumerateNames(t, Config{Root: tmpDir, Extensions: []string{".go", "ts"}})
	equalNames(t, got, "app.TS", "main.go")
}

func TestFilesystemEnumerator_Gitignore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gitignore"), []byte("vendor/\n*.gen.go\n"))
	writeFile(t, filepath.Join(tmpDir, "main.go"), []byte("{}"))
	writeFile(t, filepath.Join(tmpDir, "api.gen.go"), []byte("{"))
	writeFile(t, filepath.Join(tmpDir, "vendor", "dep.go"), []byte("}"))

	equalNames(t, enumerateNames(t, Config{Root: tmpDir}), "main.go")
}

func TestFilesystemEnumerator_Symlinks(t *testing.T) {
	tmpDir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.go"), []byte("()"))
	writeFile(t, filepath.Join(outside, "target.go"), []byte("[]"))
	writeFile(t, filepath.Join(outside, "dir", "nested.go"), []byte("{}"))
	if err := os.Symlink(filepath.Join(outside, "target.go"), filepath.Join(tmpDir, "link.go")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "dir"), filepath.Join(tmpDir, "linkdir")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "missing.go"), filepath.Join(tmpDir, "dangling.go")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	equalNames(t, enumerateNames(t, Config{Root: tmpDir}), "a.go")
	equalNames(t, enumerateNames(t, Config{Root: tmpDir, FollowSymlinks: true}), "a.go", "link.go")
}

func TestFilesystemEnumerator_CallbackError(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.go"), []byte("{}"))

	boom := errors.New("boom")
	err := NewFilesystemEnumerator(Config{Root: tmpDir, Workers: 1}).Enumerate(context.Background(), func([]byte, types.ContentHash, string) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestFilesystemEnumerator_Cancelled(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.go"), []byte("{}"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFilesystemEnumerator(Config{Root: tmpDir}).Enumerate(ctx, func([]byte, types.ContentHash, string) error {
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "x.go")
	writeFile(t, path, []byte("(x)"))

	content, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "(x)" {
		t.Errorf("unexpected content %q", content)
	}

	_, err = ReadFile(filepath.Join(tmpDir, "missing.go"))
	if !types.IsInputError(err) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected input error wrapping ErrNotExist, got %v", err)
	}

	_, err = ReadFile(tmpDir)
	if !types.IsInputError(err) || !errors.Is(err, errIsDirectory) {
		t.Errorf("expected input error for directory, got %v", err)
	}
}

func TestIsHidden(t *testing.T) {
	cases := map[string]bool{
		".git":    true,
		".env":    true,
		"main.go": false,
		".":       false,
		"..":      false,
	}
	for name, want := range cases {
		if got := isHidden(name); got != want {
			t.Errorf("isHidden(%q) = %v, want %v", name, got, want)
		}
	}
}
