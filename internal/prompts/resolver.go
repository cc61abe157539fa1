// Package prompts resolves per-adapter prompt overrides from a project's
// .codecompanion directory.
//
// The directory holds files ending in .prompt. The bare dotfile ".prompt"
// carries the default prompt; every other file encodes an adapter's logical
// name through the filename codec, prefixed with the sanitized separator,
// e.g. "_my__adapter.prompt" for the adapter "my_adapter".
package prompts

import (
	"os"
	"path/filepath"
	"strings"

	"companion/internal/fname"

	"go.uber.org/zap"
)

const (
	// DirName is the config directory scanned for prompt overrides.
	DirName = ".codecompanion"
	// Suffix marks prompt override files.
	Suffix = ".prompt"
)

// Bundle is the result of one resolution pass. A fresh value is built per
// call and owned by the caller.
type Bundle struct {
	Default  string            `json:"default" yaml:"default"`
	Adapters map[string]string `json:"adapters" yaml:"adapters"`
}

// FS is the filesystem capability the resolver consumes.
type FS interface {
	DirExists(path string) bool
	ListDir(path string) ([]string, error)
	ReadFile(path string) (string, error)
}

// OSFS backs FS with the local filesystem.
type OSFS struct{}

func (OSFS) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListDir returns the names of the direct file children of path.
// Subdirectories are skipped; the scan is depth 1 only.
func (OSFS) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (OSFS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolver locates and reads prompt override files. Construct with
// NewResolver; the zero value has no filesystem or codec.
type Resolver struct {
	fs     FS
	codec  fname.Codec
	dir    string
	suffix string
	logger *zap.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithFS replaces the filesystem capability.
func WithFS(fs FS) Option { return func(r *Resolver) { r.fs = fs } }

// WithCodec replaces the filename codec.
func WithCodec(codec fname.Codec) Option { return func(r *Resolver) { r.codec = codec } }

// WithDirName overrides the config directory name.
func WithDirName(name string) Option { return func(r *Resolver) { r.dir = name } }

// WithSuffix overrides the prompt file suffix.
func WithSuffix(suffix string) Option { return func(r *Resolver) { r.suffix = suffix } }

// WithLogger attaches a logger for scan diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver over the local filesystem with the legacy
// filename codec.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fs:     OSFS{},
		codec:  fname.LegacyCodec{},
		dir:    DirName,
		suffix: Suffix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the config directory the resolver would scan for the given
// cwd/projectRoot pair, or "" when neither candidate exists. The cwd-based
// candidate always wins; the project-root candidate is only consulted when
// the root is non-empty and names a different directory.
func (r *Resolver) Dir(cwd, projectRoot string) string {
	candidates := []string{filepath.Join(cwd, r.dir)}
	if projectRoot != "" {
		rootCandidate := filepath.Join(projectRoot, r.dir)
		if rootCandidate != candidates[0] {
			candidates = append(candidates, rootCandidate)
		}
	}

	for _, candidate := range candidates {
		if r.fs.DirExists(candidate) {
			return candidate
		}
	}
	return ""
}

// Resolve scans the first existing candidate directory and builds the
// bundle. Resolution is total: a missing directory yields an empty bundle
// and an unreadable file degrades to empty content for that entry.
func (r *Resolver) Resolve(cwd, projectRoot string) *Bundle {
	bundle := &Bundle{Adapters: make(map[string]string)}

	dir := r.Dir(cwd, projectRoot)
	if dir == "" {
		r.logger.Debug("no prompt directory found",
			zap.String("cwd", cwd),
			zap.String("project_root", projectRoot))
		return bundle
	}

	names, err := r.fs.ListDir(dir)
	if err != nil {
		r.logger.Warn("failed to list prompt directory",
			zap.String("dir", dir), zap.Error(err))
		return bundle
	}

	for _, name := range names {
		if !strings.HasSuffix(name, r.suffix) {
			continue
		}

		content, err := r.fs.ReadFile(filepath.Join(dir, name))
		if err != nil {
			// A file that vanished or turned unreadable between list and
			// read contributes empty content; the scan carries on.
			r.logger.Warn("failed to read prompt file",
				zap.String("file", name), zap.Error(err))
			content = ""
		}

		if name == r.suffix {
			bundle.Default = content
			continue
		}

		encoded := strings.TrimSuffix(name, r.suffix)
		encoded = strings.TrimPrefix(encoded, "_")
		adapter := r.codec.Decode(encoded)
		// Listing order is platform-dependent; duplicate decoded keys are
		// last-write-wins.
		bundle.Adapters[adapter] = content
	}

	r.logger.Debug("resolved prompt bundle",
		zap.String("dir", dir),
		zap.Int("adapters", len(bundle.Adapters)),
		zap.Bool("has_default", bundle.Default != ""))
	return bundle
}

// FileName returns the on-disk filename for an adapter's prompt override.
// The empty adapter names the default prompt file.
func (r *Resolver) FileName(adapter string) string {
	if adapter == "" {
		return r.suffix
	}
	return "_" + r.codec.Encode(adapter) + r.suffix
}
