// Package tags turns raw comment text into an ordered tag sequence and
// applies each recognized tag's effect to the doclet under
// construction. Splitting is brace-aware: a tag value may contain type
// expressions and inline references ("{@link Foo}") without starting a
// new tag.
package tags

import "strings"

// Raw is one tag occurrence as authored: the name after '@' and the
// raw text up to the next tag.
type Raw struct {
	Name string
	Text string
}

// Comment is a split doc comment: leading free text plus the ordered
// tag sequence.
type Comment struct {
	Description string
	Tags        []Raw
}

// Split strips comment markers from text and splits it into a
// description and an ordered sequence of raw tags. Tag boundaries are
// '@' followed by a letter at brace/bracket depth zero, at the start of
// the text or after whitespace.
func Split(text string) Comment {
	src := Unwrap(text)

	var c Comment
	depth := 0
	start := -1 // start of current tag name, -1 while in description
	segStart := 0
	runes := []rune(src)

	flush := func(end int) {
		seg := strings.TrimSpace(string(runes[segStart:end]))
		if start < 0 {
			c.Description = seg
			return
		}
		name, rest := splitTagName(seg)
		c.Tags = append(c.Tags, Raw{Name: name, Text: rest})
	}

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{', '[':
			depth++
		case '}', ']':
			if depth > 0 {
				depth--
			}
		case '@':
			if depth != 0 {
				continue
			}
			if i+1 >= len(runes) || !isTagNameRune(runes[i+1]) {
				continue
			}
			if i > 0 && !isSpace(runes[i-1]) {
				continue
			}
			flush(i)
			start = i
			segStart = i + 1 // past '@'
		}
	}
	flush(len(runes))
	return c
}

// Unwrap removes the comment delimiters and the leading asterisk
// gutter, preserving line structure for multi-line values.
func Unwrap(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
		}
		lines[i] = trimmed
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// splitTagName separates the tag name from the remainder of a segment
// that begins just past the '@'.
func splitTagName(seg string) (name, rest string) {
	for i, r := range seg {
		if !isTagNameRune(r) {
			return seg[:i], strings.TrimSpace(seg[i:])
		}
	}
	return seg, ""
}

func isTagNameRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
