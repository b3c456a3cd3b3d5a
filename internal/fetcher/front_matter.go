package fetcher

import (
	"bytes"
	"fmt"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

func splitFrontMatter(raw string) (map[string]any, string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---\n") {
		return nil, raw
	}
	// Find the second '---' marker at start of a line.
	// We only treat it as front matter if it starts at the very beginning.
	rest := strings.TrimPrefix(raw, "---\n")
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		// allow file ending marker
		idx = strings.Index(rest, "\n---")
		if idx < 0 {
			return nil, raw
		}
	}

	y := rest[:idx]
	body := rest[idx:]
	body = strings.TrimPrefix(body, "\n---\n")
	body = strings.TrimPrefix(body, "\n---")
	body = strings.TrimSpace(body)

	m := map[string]any{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(y)))
	dec.KnownFields(false)
	if err := dec.Decode(&m); err != nil {
		// If YAML parsing fails, still return body; callers can still use the raw text.
		return nil, strings.TrimSpace(raw)
	}
	return m, body
}

func stringFromAny(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func stringSliceFromAny(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			s := strings.TrimSpace(stringFromAny(x))
			if s != "" {
				out = append(out, s)
			}
		}
		return normalizeStrings(out)
	case []string:
		return normalizeStrings(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return []string{s}
	default:
		s := strings.TrimSpace(fmt.Sprint(t))
		if s == "" {
			return nil
		}
		return []string{s}
	}
}

func normalizeStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
