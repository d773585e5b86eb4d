// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import "bytes"

// normalizeAttrSpace rewrites data in place so that every literal tab,
// newline or carriage return inside a quoted attribute value of a start tag
// becomes one space; CR LF counts as a single character. encoding/xml does
// not apply this attribute-value normalization itself. Character references
// such as &#10; are left alone, so they still decode to the character they
// name. Comments, CDATA sections, processing instructions and declarations
// are copied unchanged.
func normalizeAttrSpace(data []byte) []byte {
	w := 0
	for r := 0; r < len(data); {
		if data[r] != '<' {
			data[w] = data[r]
			w++
			r++
			continue
		}

		if end := markupEnd(data, r); end >= 0 {
			w += copy(data[w:], data[r:end])
			r = end
			continue
		}

		var quote byte
		for r < len(data) {
			c := data[r]
			r++
			switch {
			case quote == 0 && (c == '"' || c == '\''):
				quote = c
			case quote != 0 && c == quote:
				quote = 0
			case quote != 0 && (c == '\t' || c == '\n'):
				c = ' '
			case quote != 0 && c == '\r':
				c = ' '
				if r < len(data) && data[r] == '\n' {
					r++
				}
			}
			data[w] = c
			w++
			if quote == 0 && c == '>' {
				break
			}
		}
	}
	return data[:w]
}

var (
	commentOpen = []byte("<!--")
	cdataOpen   = []byte("<![CDATA[")
	piOpen      = []byte("<?")
	declOpen    = []byte("<!")
)

// markupEnd returns the offset just past the markup starting at data[i] when
// it is a comment, CDATA section, processing instruction or declaration, and
// -1 for an element tag. Unterminated markup runs to the end of data.
func markupEnd(data []byte, i int) int {
	rest := data[i:]
	switch {
	case bytes.HasPrefix(rest, commentOpen):
		return scanTo(data, i+len(commentOpen), "-->")
	case bytes.HasPrefix(rest, cdataOpen):
		return scanTo(data, i+len(cdataOpen), "]]>")
	case bytes.HasPrefix(rest, piOpen):
		return scanTo(data, i+len(piOpen), "?>")
	case bytes.HasPrefix(rest, declOpen):
		return declEnd(data, i+len(declOpen))
	default:
		return -1
	}
}

func scanTo(data []byte, from int, term string) int {
	k := bytes.Index(data[from:], []byte(term))
	if k < 0 {
		return len(data)
	}
	return from + k + len(term)
}

// declEnd finds the '>' closing a <!DOCTYPE ...> style declaration, skipping
// quoted literals, comments and the bracketed internal subset.
func declEnd(data []byte, from int) int {
	var (
		quote byte
		depth int
	)
	for j := from; j < len(data); j++ {
		c := data[j]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '<' && bytes.HasPrefix(data[j:], commentOpen):
			j = scanTo(data, j+len(commentOpen), "-->") - 1
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '>' && depth <= 0:
			return j + 1
		}
	}
	return len(data)
}
