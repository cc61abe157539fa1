// Package template substitutes ${key} placeholders in prompt text and in
// arbitrarily nested prompt structures.
package template

import "strings"

// Value is the tagged union over prompt content: either a Text leaf or a
// Node mapping keys to further values.
type Value interface {
	isValue()
}

// Text is a prompt string leaf.
type Text string

// Node is a mapping from key to nested value.
type Node map[string]Value

func (Text) isValue() {}
func (Node) isValue() {}

// ReplacePlaceholders substitutes every ${key} marker in s with its
// replacement. Keys absent from the map are left untouched.
func ReplacePlaceholders(s string, replacements map[string]string) string {
	for key, val := range replacements {
		s = strings.ReplaceAll(s, "${"+key+"}", val)
	}
	return s
}

// ReplaceVars walks a value tree and substitutes placeholders in every Text
// leaf, returning a new tree. The input is never mutated. Nil and unknown
// variants pass through unchanged.
func ReplaceVars(v Value, vars map[string]string) Value {
	switch node := v.(type) {
	case Text:
		return Text(ReplacePlaceholders(string(node), vars))
	case Node:
		out := make(Node, len(node))
		for key, child := range node {
			out[key] = ReplaceVars(child, vars)
		}
		return out
	default:
		return v
	}
}
