package annot

import (
	"strconv"
	"strings"
)

// DecodeString returns the value of a Java string literal including its quotes.
// Malformed escapes are kept verbatim.
func DecodeString(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	} else {
		lit = strings.TrimPrefix(lit, `"`)
	}
	return decodeEscapes(lit)
}

// DecodeTextBlock returns the value of a """ text block: the opening line is
// dropped, incidental indentation and trailing spaces are stripped.
func DecodeTextBlock(lit string) string {
	body := strings.TrimPrefix(lit, `"""`)
	body = strings.TrimSuffix(body, `"""`)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	}
	lines := strings.Split(body, "\n")

	indent := -1
	for i, line := range lines {
		last := i == len(lines)-1
		if strings.TrimSpace(line) == "" && !last {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		indent = 0
	}

	for i, line := range lines {
		if len(line) >= indent {
			line = line[indent:]
		} else {
			line = ""
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return decodeEscapes(strings.Join(lines, "\n"))
}

func decodeEscapes(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 's':
			b.WriteByte(' ')
		case '"', '\'', '\\':
			b.WriteByte(e)
		case '\n':
			// продолжение строки в text block
		case 'u':
			j := i
			for j < len(s) && s[j] == 'u' {
				j++
			}
			if j+4 <= len(s) {
				if r, err := strconv.ParseUint(s[j:j+4], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i = j + 3
					continue
				}
			}
			b.WriteString(`\u`)
		default:
			if e >= '0' && e <= '7' {
				j := i
				for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				if r, err := strconv.ParseUint(s[i:j], 8, 16); err == nil && r <= 0o377 {
					b.WriteRune(rune(r))
					i = j - 1
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}
