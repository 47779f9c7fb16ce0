package scb

import (
	"strings"
	"unicode"
)

// Sentinel marks a comment line that carries a directive.
const Sentinel = "// SCB:"

const platformKey = "platform="

// Directive is a single `@name(value, platform=target)` annotation.
type Directive struct {
	Name  string
	Value string
	// Platform is only meaningful if Qualified is set.
	Platform  string
	Qualified bool
}

// AppliesTo reports whether the directive should be honored on the given host.
// An explicit but empty qualifier (`platform=`) never applies.
func (d Directive) AppliesTo(host Platform) bool {
	if !d.Qualified {
		return true
	}

	if d.Platform == "" {
		return false
	}

	return Matches(host, d.Platform)
}

type lineState int

const (
	seekSentinel lineState = iota
	seekAt
	readName
	readPayload
	finished
)

// ParseDirective extracts the directive from a single source line. The second return value is false
// for lines without a directive and for malformed ones; neither is an error.
func ParseDirective(line string) (Directive, bool) {
	var (
		result    Directive
		pos, open int
	)

	state := seekSentinel
	for state != finished {
		switch state {
		case seekSentinel:
			idx := strings.Index(line, Sentinel)
			if idx < 0 {
				return Directive{}, false
			}

			pos = idx + len(Sentinel)
			state = seekAt
		case seekAt:
			idx := strings.IndexByte(line[pos:], '@')
			if idx < 0 {
				return Directive{}, false
			}

			pos += idx + 1
			state = readName
		case readName:
			idx := strings.IndexByte(line[pos:], '(')
			if idx < 0 {
				return Directive{}, false
			}

			open = pos + idx
			result.Name = strings.TrimSpace(line[pos:open])
			if result.Name == "" {
				return Directive{}, false
			}
			state = readPayload
		case readPayload:
			// the payload runs up to the last closing parenthesis so values may contain parentheses
			end := strings.LastIndexByte(line, ')')
			if end < open {
				return Directive{}, false
			}

			result.Value, result.Platform, result.Qualified = splitPayload(strings.TrimSpace(line[open+1 : end]))
			state = finished
		}
	}

	return result, true
}

func splitPayload(payload string) (value, platform string, qualified bool) {
	comma := strings.IndexByte(payload, ',')
	if comma < 0 {
		return payload, "", false
	}

	value = strings.TrimSpace(payload[:comma])
	rest := payload[comma+1:]
	idx := strings.Index(rest, platformKey)
	if idx < 0 {
		return value, "", false
	}

	rest = rest[idx+len(platformKey):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || r == ')' || r == ','
	})
	if end > -1 {
		rest = rest[:end]
	}

	return value, rest, true
}
