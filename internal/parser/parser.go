// Package parser extracts YAML front-matter from Markdown notes.
package parser

import (
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	delim    = "---"
	mergeTag = "!!merge"
)

// Metadata is the decoded front-matter mapping. It is never nil on a Result.
type Metadata map[string]any

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter Metadata
	// Found reports whether the content carried a delimited front-matter block.
	Found bool
	// Malformed is set when a block was found but could not be decoded
	// as a YAML mapping. Frontmatter is empty in that case.
	Malformed bool
}

// Parse extracts the front-matter block from raw note content.
// It never fails: absent or broken front-matter yields empty Metadata.
func Parse(content string) *Result {
	res := &Result{Frontmatter: Metadata{}}

	if !strings.HasPrefix(content, delim) {
		return res
	}

	// "", front-matter, body. The body may contain further delimiters.
	parts := strings.SplitN(content, delim, 3)
	if len(parts) < 3 {
		return res
	}
	res.Found = true

	// Decoding into a node skips yaml.v3's duplicate key check; the walk
	// below lets the last occurrence of a key win.
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(parts[1]), &doc); err != nil {
		res.Malformed = true
		return res
	}
	if doc.Kind == 0 {
		// Empty block.
		return res
	}

	v, err := nodeValue(&doc)
	if err != nil {
		res.Malformed = true
		return res
	}
	switch m := v.(type) {
	case map[string]any:
		res.Frontmatter = m
	case nil:
	default:
		res.Malformed = true
	}
	return res
}

// nodeValue converts a node into plain Go values: map[string]any, []any
// and scalars. Mapping keys that are not strings are dropped.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return mappingValue(n)
	default:
		return scalarValue(n)
	}
}

func mappingValue(n *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	var merged []map[string]any
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]
		v, err := nodeValue(vn)
		if err != nil {
			return nil, err
		}
		if k.Kind == yaml.ScalarNode && k.ShortTag() == mergeTag {
			merged = append(merged, mergeSources(v)...)
			continue
		}
		key, err := scalarValue(k)
		if err != nil {
			return nil, err
		}
		if s, ok := key.(string); ok {
			out[s] = v
		}
	}
	// Explicit keys win over merged ones; earlier merge sources win over later.
	for _, m := range merged {
		for k, v := range m {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

func mergeSources(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		var out []map[string]any
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// scalarValue decodes a scalar node. Plain, untagged YAML 1.1 boolean words
// such as yes/no/on/off decode as booleans.
func scalarValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, nil
	}
	if n.Style == 0 && n.ShortTag() == "!!str" {
		if b, ok := yaml11Bool(n.Value); ok {
			return b, nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func yaml11Bool(s string) (bool, bool) {
	switch s {
	case "yes", "Yes", "YES", "on", "On", "ON":
		return true, true
	case "no", "No", "NO", "off", "Off", "OFF":
		return false, true
	}
	return false, false
}

// String returns the value under key when it is present and a string.
func (m Metadata) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// StringList returns the value under key when it is present and a list.
// Scalar items are coerced to strings; null and nested collections are dropped.
func (m Metadata) StringList(key string) ([]string, bool) {
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case nil, []any, map[string]any:
			continue
		case time.Time:
			out = append(out, formatTime(v))
			continue
		}
		s, err := cast.ToStringE(item)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, true
}

// formatTime renders a date as 2006-01-02 and anything finer as RFC 3339.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}
