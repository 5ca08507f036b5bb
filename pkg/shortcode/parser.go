// Package shortcode expands [name attr="value"] text macros into rendered embeds.
package shortcode

import (
	"strconv"
	"strings"
)

// Shortcode is one macro found in content
type Shortcode struct {
	Name string
	// Attrs holds named attributes under their lower-cased name and positional values under "0", "1", ...
	Attrs map[string]string
	// Escaped is set for [[name ...]], which is emitted literally as [name ...]
	Escaped bool
	Start   int
	End     int
}

// Positional returns the n-th positional value, or ""
func (s Shortcode) Positional(n int) string {
	return s.Attrs[strconv.Itoa(n)]
}

// Parse returns every well-formed shortcode in content, in order
func Parse(content string) []Shortcode {
	var found []Shortcode
	for i := 0; i < len(content); {
		open := strings.IndexByte(content[i:], '[')
		if open < 0 {
			break
		}
		open += i

		sc, ok := parseAt(content, open)
		if !ok {
			i = open + 1
			continue
		}
		found = append(found, sc)
		i = sc.End
	}
	return found
}

// Replace rewrites every shortcode whose name is known.
// Escaped shortcodes lose one pair of brackets, unknown ones are left untouched.
func Replace(content string, known func(name string) bool, render func(Shortcode) string) string {
	shortcodes := Parse(content)
	if len(shortcodes) == 0 {
		return content
	}

	var b strings.Builder
	last := 0
	for _, sc := range shortcodes {
		if !known(sc.Name) {
			continue
		}
		b.WriteString(content[last:sc.Start])
		if sc.Escaped {
			b.WriteString(content[sc.Start+1 : sc.End-1])
		} else {
			b.WriteString(render(sc))
		}
		last = sc.End
	}
	b.WriteString(content[last:])
	return b.String()
}

func parseAt(content string, start int) (Shortcode, bool) {
	sc := Shortcode{Attrs: make(map[string]string), Start: start}
	pos := start + 1
	if pos < len(content) && content[pos] == '[' {
		sc.Escaped = true
		pos++
	}

	nameStart := pos
	for pos < len(content) && isNameByte(content[pos]) {
		pos++
	}
	if pos == nameStart {
		return sc, false
	}
	sc.Name = strings.ToLower(content[nameStart:pos])
	if pos < len(content) && !isSpace(content[pos]) && content[pos] != ']' && content[pos] != '/' {
		return sc, false
	}

	positional := 0
	addPositional := func(value string) {
		sc.Attrs[strconv.Itoa(positional)] = value
		positional++
	}

	for {
		for pos < len(content) && isSpace(content[pos]) {
			pos++
		}
		if pos >= len(content) {
			return sc, false
		}

		c := content[pos]
		switch {
		case c == ']':
			pos++
		case c == '/' && pos+1 < len(content) && content[pos+1] == ']':
			pos += 2
		case c == '"' || c == '\'':
			value, next, ok := quoted(content, pos)
			if !ok {
				return sc, false
			}
			addPositional(value)
			pos = next
			continue
		default:
			tokenStart := pos
			for pos < len(content) && isNameByte(content[pos]) {
				pos++
			}
			if pos > tokenStart && pos < len(content) && content[pos] == '=' {
				name := strings.ToLower(content[tokenStart:pos])
				pos++
				if pos < len(content) && (content[pos] == '"' || content[pos] == '\'') {
					value, next, ok := quoted(content, pos)
					if !ok {
						return sc, false
					}
					sc.Attrs[name] = value
					pos = next
				} else {
					value, next := bare(content, pos)
					sc.Attrs[name] = value
					pos = next
				}
				continue
			}

			value, next := bare(content, tokenStart)
			if value == "" {
				return sc, false
			}
			addPositional(value)
			pos = next
			continue
		}
		break
	}

	if sc.Escaped {
		if pos >= len(content) || content[pos] != ']' {
			return sc, false
		}
		pos++
	}
	sc.End = pos
	return sc, true
}

// quoted reads a value enclosed in the quote at content[pos]
func quoted(content string, pos int) (string, int, bool) {
	quote := content[pos]
	end := strings.IndexByte(content[pos+1:], quote)
	if end < 0 {
		return "", pos, false
	}
	return content[pos+1 : pos+1+end], pos + end + 2, true
}

// bare reads an unquoted value up to whitespace or the closing bracket.
// A trailing slash directly before the bracket closes the shortcode instead of belonging to the value.
func bare(content string, pos int) (string, int) {
	start := pos
	for pos < len(content) && !isSpace(content[pos]) && content[pos] != ']' {
		pos++
	}
	value := content[start:pos]
	if pos < len(content) && content[pos] == ']' && strings.HasSuffix(value, "/") {
		value = strings.TrimSuffix(value, "/")
		pos--
	}
	return value, pos
}

func isNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
