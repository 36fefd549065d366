// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import "strings"

// Fence delimits code in a reply.
const Fence = "```"

// DefaultLanguage is assigned to a code segment whose fence has no tag.
const DefaultLanguage = "python"

// Kind distinguishes prose from code.
type Kind int

const (
	KindText Kind = iota
	KindCode
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Segment is one displayable piece of a reply. Language is set for code only.
type Segment struct {
	Kind     Kind
	Body     string
	Language string
}

// Text returns a prose segment.
func Text(body string) Segment {
	return Segment{Kind: KindText, Body: body}
}

// Code returns a code segment.
func Code(body, language string) Segment {
	return Segment{Kind: KindCode, Body: body, Language: language}
}

// IsCode reports whether the segment holds code.
func (s Segment) IsCode() bool {
	return s.Kind == KindCode
}

// Parse splits raw on fences. Parts at even positions are prose, parts at odd
// positions are code. Empty parts produce no segment, so the result may be
// empty.
func Parse(raw string) []Segment {
	parts := strings.Split(raw, Fence)
	segments := make([]Segment, 0, len(parts))

	for i, part := range parts {
		if i%2 == 0 {
			if body := strings.TrimSpace(part); body != "" {
				segments = append(segments, Text(body))
			}
			continue
		}
		if seg, ok := parseCode(part); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// parseCode reads the optional language tag on the fence line.
func parseCode(part string) (Segment, bool) {
	first, rest, _ := strings.Cut(part, "\n")

	language := strings.TrimSpace(first)
	body := rest
	if language == "" {
		language = DefaultLanguage
		body = part
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return Segment{}, false
	}
	return Code(body, language), true
}
