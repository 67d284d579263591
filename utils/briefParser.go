package utils

import (
	"regexp"
	"strings"
)

// MaxKeyDevelopments caps the number of parsed key development lines
const MaxKeyDevelopments = 8

var (
	citationRe = regexp.MustCompile(`\s*\[\d+\]`)
	urlRe      = regexp.MustCompile(`https?://[^\s)\]>"']+`)
	bulletRe   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	hashRe     = regexp.MustCompile(`^#{1,6}\s+`)
	numberRe   = regexp.MustCompile(`^\d+[.)]\s+`)
)

// StripCitations removes inline numeric citation markers like [1]
func StripCitations(s string) string {
	return strings.TrimSpace(citationRe.ReplaceAllString(s, ""))
}

// matchHeader reports whether line is a header for the named section and
// returns any content trailing the header on the same line. Recognized
// header styles: "## Name", "**Name**", "1. Name", "Name:" and combinations.
func matchHeader(line, name string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	marked := false

	if m := hashRe.FindString(trimmed); m != "" {
		trimmed = trimmed[len(m):]
		marked = true
	}
	if m := numberRe.FindString(trimmed); m != "" {
		trimmed = trimmed[len(m):]
		marked = true
	}
	if strings.HasPrefix(trimmed, "**") {
		trimmed = trimmed[2:]
		marked = true
	}
	trimmed = strings.TrimSpace(trimmed)

	if len(trimmed) < len(name) || !strings.EqualFold(trimmed[:len(name)], name) {
		return "", false
	}

	rest := strings.TrimSpace(trimmed[len(name):])
	rest = strings.TrimPrefix(rest, "**")
	hadColon := strings.HasPrefix(rest, ":")
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))

	// A bare prefix match in running text is not a header
	if !marked && !hadColon && rest != "" {
		return "", false
	}
	return rest, true
}

// looksLikeHeader reports whether line starts a new section of any name
func looksLikeHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if hashRe.MatchString(trimmed) {
		return true
	}
	if strings.HasPrefix(trimmed, "**") && strings.Contains(trimmed[2:], "**") {
		inner := trimmed[2:strings.Index(trimmed[2:], "**")+2]
		// Bold lines that are short and unpunctuated read as headers
		return len(inner) < 64 && !strings.Contains(inner, ".")
	}
	if m := numberRe.FindString(trimmed); m != "" {
		rest := strings.TrimSpace(trimmed[len(m):])
		// Short title-case numbered lines read as headers, not list items
		return rest != "" && len(rest) < 48 && !strings.ContainsAny(rest, ".:;,") && isTitleWords(rest)
	}
	return false
}

func isTitleWords(s string) bool {
	for _, word := range strings.Fields(s) {
		r := rune(word[0])
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}

// ExtractSection returns the body of the named section, or "" when absent.
// Matching is case-insensitive and tolerant of markdown header styles.
func ExtractSection(text, name string) string {
	lines := strings.Split(text, "\n")
	var body []string
	inSection := false

	for _, line := range lines {
		if !inSection {
			if rest, ok := matchHeader(line, name); ok {
				inSection = true
				if rest != "" {
					body = append(body, rest)
				}
			}
			continue
		}
		if looksLikeHeader(line) {
			break
		}
		body = append(body, line)
	}

	return strings.TrimSpace(strings.Join(body, "\n"))
}

// ExtractListItems splits a section into list items: numbered or bulleted
// lines with markers and citation brackets stripped. When the section has no
// list markers at all, each non-empty line counts as an item. Capped at max.
func ExtractListItems(section string, max int) []string {
	if max <= 0 {
		max = MaxKeyDevelopments
	}

	lines := strings.Split(section, "\n")
	items := []string{}
	sawMarker := false

	for _, line := range lines {
		stripped := bulletRe.ReplaceAllString(line, "")
		if stripped != line {
			sawMarker = true
		}
		stripped = strings.ReplaceAll(stripped, "**", "")
		stripped = StripCitations(stripped)
		if stripped == "" {
			continue
		}
		items = append(items, stripped)
	}

	if !sawMarker {
		// Keep plain-text sections usable as a single-item list
		joined := StripCitations(strings.TrimSpace(section))
		if joined == "" {
			return []string{}
		}
		items = []string{strings.ReplaceAll(joined, "\n", " ")}
	}

	if len(items) > max {
		items = items[:max]
	}
	return items
}

// ExtractURLs returns the deduplicated URLs found in text, in order
func ExtractURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	seen := make(map[string]bool)
	urls := []string{}
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:")
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}
