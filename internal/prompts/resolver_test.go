package prompts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"companion/internal/fname"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// writePromptDir creates a .codecompanion directory under base with the
// given file contents.
func writePromptDir(t *testing.T, base string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(base, DirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestResolve_NoDirectoryYieldsEmptyBundle(t *testing.T) {
	cwd := t.TempDir()
	root := t.TempDir()

	bundle := NewResolver().Resolve(cwd, root)

	if bundle.Default != "" {
		t.Errorf("Default=%q, want empty", bundle.Default)
	}
	if len(bundle.Adapters) != 0 {
		t.Errorf("Adapters=%v, want empty", bundle.Adapters)
	}
}

func TestResolve_DefaultOnly(t *testing.T) {
	cwd := t.TempDir()
	writePromptDir(t, cwd, map[string]string{
		".prompt": "Hello",
	})

	bundle := NewResolver().Resolve(cwd, "")

	if bundle.Default != "Hello" {
		t.Errorf("Default=%q, want Hello", bundle.Default)
	}
	if len(bundle.Adapters) != 0 {
		t.Errorf("Adapters=%v, want empty", bundle.Adapters)
	}
}

func TestResolve_AdapterPrompts(t *testing.T) {
	cwd := t.TempDir()
	writePromptDir(t, cwd, map[string]string{
		".prompt":             "Base",
		"_my__adapter.prompt": "Special",
		"_anthropic.prompt":   "Claude things",
		"notes.txt":           "ignored entirely",
	})

	bundle := NewResolver().Resolve(cwd, "")

	want := map[string]string{
		"my_adapter": "Special",
		"anthropic":  "Claude things",
	}
	if bundle.Default != "Base" {
		t.Errorf("Default=%q, want Base", bundle.Default)
	}
	if diff := cmp.Diff(want, bundle.Adapters); diff != "" {
		t.Errorf("Adapters mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_CwdDirectoryWinsOverProjectRoot(t *testing.T) {
	cwd := t.TempDir()
	root := t.TempDir()
	writePromptDir(t, cwd, map[string]string{".prompt": "from cwd"})
	writePromptDir(t, root, map[string]string{
		".prompt":        "from root",
		"_ollama.prompt": "never read",
	})

	bundle := NewResolver().Resolve(cwd, root)

	if bundle.Default != "from cwd" {
		t.Errorf("Default=%q, want cwd contents", bundle.Default)
	}
	if len(bundle.Adapters) != 0 {
		t.Errorf("Adapters=%v, project-root dir must not be consulted", bundle.Adapters)
	}
}

func TestResolve_FallsBackToProjectRoot(t *testing.T) {
	cwd := t.TempDir()
	root := t.TempDir()
	writePromptDir(t, root, map[string]string{".prompt": "from root"})

	bundle := NewResolver().Resolve(cwd, root)

	if bundle.Default != "from root" {
		t.Errorf("Default=%q, want root contents", bundle.Default)
	}
}

func TestResolve_SameCwdAndRootScannedOnce(t *testing.T) {
	cwd := t.TempDir()
	writePromptDir(t, cwd, map[string]string{".prompt": "once"})

	bundle := NewResolver().Resolve(cwd, cwd)

	if bundle.Default != "once" {
		t.Errorf("Default=%q, want once", bundle.Default)
	}
}

// failingFS lists entries but fails to read one of them, standing in for a
// file deleted between list and read.
type failingFS struct {
	OSFS
	failName string
}

func (f failingFS) ReadFile(path string) (string, error) {
	if filepath.Base(path) == f.failName {
		return "", errors.New("permission denied")
	}
	return f.OSFS.ReadFile(path)
}

func TestResolve_ReadFailureDegradesToEmptyEntry(t *testing.T) {
	cwd := t.TempDir()
	writePromptDir(t, cwd, map[string]string{
		".prompt":           "Base",
		"_anthropic.prompt": "unreadable",
	})

	resolver := NewResolver(WithFS(failingFS{failName: "_anthropic.prompt"}))
	bundle := resolver.Resolve(cwd, "")

	if bundle.Default != "Base" {
		t.Errorf("Default=%q, want Base", bundle.Default)
	}
	content, ok := bundle.Adapters["anthropic"]
	if !ok {
		t.Fatal("unreadable entry should still appear in the bundle")
	}
	if content != "" {
		t.Errorf("content=%q, want empty for unreadable entry", content)
	}
}

func TestResolve_FreshBundlePerCall(t *testing.T) {
	cwd := t.TempDir()
	writePromptDir(t, cwd, map[string]string{"_a.prompt": "one"})

	resolver := NewResolver()
	first := resolver.Resolve(cwd, "")
	first.Adapters["a"] = "mutated"

	second := resolver.Resolve(cwd, "")
	if second.Adapters["a"] != "one" {
		t.Errorf("second call saw mutation: %q", second.Adapters["a"])
	}
}

func TestResolve_EscapedCodec(t *testing.T) {
	cwd := t.TempDir()
	writePromptDir(t, cwd, map[string]string{
		"_a%2F__b.prompt": "strict",
	})

	resolver := NewResolver(WithCodec(fname.EscapedCodec{}))
	bundle := resolver.Resolve(cwd, "")

	if got := bundle.Adapters["a/__b"]; got != "strict" {
		t.Errorf("Adapters=%v, want key decoded by escaped codec", bundle.Adapters)
	}
}

func TestFileName(t *testing.T) {
	resolver := NewResolver()

	cases := []struct {
		adapter string
		want    string
	}{
		{"", ".prompt"},
		{"anthropic", "_anthropic.prompt"},
		{"my_adapter", "_my__adapter.prompt"},
		{"org/tool", "_org_tool.prompt"},
	}
	for _, tc := range cases {
		if got := resolver.FileName(tc.adapter); got != tc.want {
			t.Errorf("FileName(%q) = %q, want %q", tc.adapter, got, tc.want)
		}
	}
}

// TestFileNameResolveRoundTrip writes the file the encoder names and checks
// the resolver recovers the adapter key.
func TestFileNameResolveRoundTrip(t *testing.T) {
	cwd := t.TempDir()
	resolver := NewResolver()

	name := resolver.FileName("deep/path_x")
	writePromptDir(t, cwd, map[string]string{name: "content"})

	bundle := resolver.Resolve(cwd, "")
	if got := bundle.Adapters["deep/path_x"]; got != "content" {
		t.Errorf("Adapters=%v, want round-tripped key", bundle.Adapters)
	}
}
