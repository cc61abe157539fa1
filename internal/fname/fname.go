// Package fname flattens path-like logical names into single filesystem-safe
// filename tokens and decodes them back.
//
// The legacy scheme escapes literal underscores by doubling them, then turns
// separators into single underscores. Decoding reverses the two passes in
// order, which is ambiguous for names that put a literal underscore right
// next to a separator; LegacyCodec keeps that behavior byte-for-byte because
// prompt files written by existing plugin installs depend on it. EscapedCodec
// is the strict, fully invertible alternative for new layouts.
package fname

import "strings"

// Codec converts between logical names and on-disk filename tokens.
type Codec interface {
	Encode(name string) string
	Decode(encoded string) string
}

// Sanitize flattens a path-like logical name into a filename token: every
// literal underscore is doubled, then every separator becomes a single
// underscore. Pure and total; no failure mode.
func Sanitize(name string) string {
	escaped := strings.ReplaceAll(name, "_", "__")
	return strings.ReplaceAll(escaped, "/", "_")
}

// Desanitize is the legacy inverse of Sanitize. Every underscore expands to
// a separator, then separator pairs collapse back into one underscore. Both
// passes run over the whole string, so names where a literal underscore sits
// next to a real separator collide after Sanitize and cannot be told apart
// here; the pinned cases in fname_test.go capture the exact outputs.
func Desanitize(encoded string) string {
	expanded := strings.ReplaceAll(encoded, "_", "/")
	return strings.ReplaceAll(expanded, "//", "_")
}

// LegacyCodec is the on-disk compatible codec used by existing
// .codecompanion directories.
type LegacyCodec struct{}

func (LegacyCodec) Encode(name string) string    { return Sanitize(name) }
func (LegacyCodec) Decode(encoded string) string { return Desanitize(encoded) }

// EscapedCodec is a percent-style codec that round-trips every input:
// '%' encodes as %25 and '/' as %2F, underscores pass through untouched.
// Not compatible with filenames written by the legacy scheme.
type EscapedCodec struct{}

func (EscapedCodec) Encode(name string) string {
	escaped := strings.ReplaceAll(name, "%", "%25")
	return strings.ReplaceAll(escaped, "/", "%2F")
}

func (EscapedCodec) Decode(encoded string) string {
	expanded := strings.ReplaceAll(encoded, "%2F", "/")
	return strings.ReplaceAll(expanded, "%25", "%")
}
