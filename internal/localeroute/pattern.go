package localeroute

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

const (
	staticScore = 3
	paramScore  = 2
)

type segment struct {
	literal string
	param   string
}

type pattern struct {
	raw      string
	segments []segment
}

// parsePattern parses "/{locale}/projects/{slug}" style patterns.
func parsePattern(raw string) pattern {
	p := pattern{raw: raw}
	for _, part := range splitSegments(raw) {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			p.segments = append(p.segments, segment{param: part[1 : len(part)-1]})
			continue
		}
		p.segments = append(p.segments, segment{literal: part})
	}
	return p
}

// match binds segments against the pattern. Literal segments compare
// case-insensitively; parameter values keep their case.
func (p pattern) match(segments []string) (map[string]string, []int, bool) {
	if len(segments) != len(p.segments) {
		return nil, nil, false
	}
	params := map[string]string{}
	scores := make([]int, len(segments))
	for i, seg := range p.segments {
		value := segments[i]
		if seg.param != "" {
			if value == "" {
				return nil, nil, false
			}
			params[seg.param] = value
			scores[i] = paramScore
			continue
		}
		if !strings.EqualFold(seg.literal, value) {
			return nil, nil, false
		}
		scores[i] = staticScore
	}
	return params, scores, true
}

// build substitutes escaped params into the pattern, producing a URL path.
func (p pattern) build(params map[string]string) (string, error) {
	return p.render(params, url.PathEscape)
}

// expand substitutes params verbatim, producing a decoded path that matches
// what Resolve sees for the same request.
func (p pattern) expand(params map[string]string) (string, error) {
	return p.render(params, func(value string) string { return value })
}

func (p pattern) render(params map[string]string, escape func(string) string) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.param == "" {
			b.WriteString(seg.literal)
			continue
		}
		value := strings.TrimSpace(params[seg.param])
		if value == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, seg.param)
		}
		b.WriteString(escape(value))
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

// outranks reports whether scores a beat scores b segment by segment.
func outranks(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return true
		}
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

// NormalizePath returns a clean absolute path without a trailing slash.
func NormalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "/"
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return path.Clean(raw)
}

func splitSegments(p string) []string {
	trimmed := strings.Trim(NormalizePath(p), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
