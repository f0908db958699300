package format

import (
	"strings"
	"unicode"

	"github.com/cqlls/cqlls/cql"
)

const indentUnit = "    "

// normalizeSpacing trims every line and collapses interior whitespace runs
// to a single space.
func normalizeSpacing(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Join(strings.Fields(line), " ")
	}
	return out
}

// collapseTerminators reduces repeated statement terminators, including
// space-separated repeats, to one. Terminators inside string literals are
// left alone.
func collapseTerminators(lines []string) []string {
	out := make([]string, len(lines))
	for li, line := range lines {
		runes := []rune(line)
		var b strings.Builder
		for i := 0; i < len(runes); i++ {
			b.WriteRune(runes[i])
			if runes[i] != ';' || cql.InStringLiteral(line, uint32(i)) {
				continue
			}
			j := i + 1
			for j < len(runes) {
				k := j
				for k < len(runes) && runes[k] == ' ' {
					k++
				}
				if k < len(runes) && runes[k] == ';' {
					j = k + 1
					continue
				}
				break
			}
			i = j - 1
		}
		out[li] = b.String()
	}
	return out
}

// tightenPunctuation removes stray spaces around bracket punctuation: after
// an opening paren, before a closing paren, and before commas and
// terminators. Angle brackets are tightened only on lines that mention a
// CQL type, so comparison operators in WHERE clauses keep their spacing.
func tightenPunctuation(lines []string) []string {
	out := make([]string, len(lines))
	for li, line := range lines {
		typed := cql.ContainsType(line)
		runes := []rune(line)
		var b strings.Builder
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			if r == ' ' && i+1 < len(runes) {
				switch runes[i+1] {
				case ')', ',', ';':
					continue
				case '>':
					if typed {
						continue
					}
				}
			}
			b.WriteRune(r)
			if r == '(' || (r == '<' && typed) {
				for i+1 < len(runes) && runes[i+1] == ' ' {
					i++
				}
			}
		}
		out[li] = b.String()
	}
	return out
}

// tightenLiterals removes whitespace inside quoted literal spans. Quoted
// identifiers carry no spaces in CQL, so whitespace typed inside the quotes
// is noise.
func tightenLiterals(lines []string) []string {
	out := make([]string, len(lines))
	for li, line := range lines {
		var b strings.Builder
		for i, r := range []rune(line) {
			if unicode.IsSpace(r) && cql.InStringLiteral(line, uint32(i)) {
				continue
			}
			b.WriteRune(r)
		}
		out[li] = b.String()
	}
	return out
}

// dropRepeatedBlanks removes a blank line that follows another blank line
// or a line ending in an open bracket.
func dropRepeatedBlanks(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if isBlank(line) && len(out) > 0 {
			prev := out[len(out)-1]
			if isBlank(prev) || endsOpenBracket(prev) {
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// dropStatementBlanks removes blank lines that fall strictly inside an open
// statement. Comment lines neither open nor close a statement.
func dropStatementBlanks(lines []string) []string {
	out := make([]string, 0, len(lines))
	open := false
	for i, line := range lines {
		if isBlank(line) {
			if open {
				continue
			}
			out = append(out, line)
			continue
		}
		out = append(out, line)
		if cql.IsBlockCommentMarker(line) || cql.InsideBlockComment(lines, i) {
			continue
		}
		content := strings.TrimSpace(stripLineComment(line))
		if content == "" {
			continue
		}
		if t := lastTerminator(content); t >= 0 {
			open = strings.TrimSpace(string([]rune(content)[t+1:])) != ""
		} else {
			open = true
		}
	}
	return out
}

// appendTerminators closes a statement line that lacks its `;` when the
// next non-blank line starts a new statement or the line is the last
// content in the document. Comment lines, bracket-block interiors, batch
// openers, and lines left hanging on an open bracket are never terminated.
func appendTerminators(lines []string) []string {
	last := lastContent(lines)
	out := make([]string, len(lines))
	copy(out, lines)
	for i, line := range lines {
		if isBlank(line) || hasCommentMarker(line) || lastTerminator(line) >= 0 {
			continue
		}
		if endsOpenBracket(line) || containsBegin(line) ||
			cql.InsideBracketBlock(lines, i) || cql.InsideBlockComment(lines, i) {
			continue
		}
		next := nextContent(lines, i)
		if (next >= 0 && cql.LineStartsWithKeyword(lines[next], cql.StatementStarters)) || i == last {
			out[i] = line + ";"
		}
	}
	return out
}

// separateStatements guarantees one blank line after every line that ends a
// statement or opens a batch.
func separateStatements(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		if i == len(lines)-1 {
			break
		}
		if !strings.HasSuffix(line, ";") && !containsBegin(line) {
			continue
		}
		if isBlank(lines[i+1]) {
			continue
		}
		out = append(out, "")
	}
	return out
}

// spaceAfterCommas puts exactly one space after each comma outside string
// literals, except before closing punctuation or at end of line.
func spaceAfterCommas(lines []string) []string {
	out := make([]string, len(lines))
	for li, line := range lines {
		runes := []rune(line)
		var b strings.Builder
		for i := 0; i < len(runes); i++ {
			b.WriteRune(runes[i])
			if runes[i] != ',' || cql.InStringLiteral(line, uint32(i)) {
				continue
			}
			j := i
			for j+1 < len(runes) && runes[j+1] == ' ' {
				j++
			}
			if j+1 < len(runes) {
				switch runes[j+1] {
				case ')', '>', ';', ',':
				default:
					b.WriteRune(' ')
				}
			}
			i = j
		}
		out[li] = b.String()
	}
	return out
}

// indentBlocks prepends one indent unit to lines inside argument or
// selector blocks. Block-comment markers stay flush left.
func indentBlocks(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !cql.IsBlockCommentMarker(line) &&
			(cql.InsideBracketBlock(lines, i) || cql.InsideSelectorBlock(lines, i)) {
			out[i] = indentUnit + line
			continue
		}
		out[i] = line
	}
	return out
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func endsOpenBracket(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	return strings.HasSuffix(trimmed, "(") || strings.HasSuffix(trimmed, "{")
}

// lastTerminator returns the rune index of the last `;` outside string
// literals, or -1.
func lastTerminator(line string) int {
	runes := []rune(line)
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ';' && !cql.InStringLiteral(line, uint32(i)) {
			return i
		}
	}
	return -1
}

// stripLineComment cuts the line at the first `--` or `//` outside string
// literals.
func stripLineComment(line string) string {
	runes := []rune(line)
	for i := 0; i+1 < len(runes); i++ {
		if cql.InStringLiteral(line, uint32(i)) {
			continue
		}
		if (runes[i] == '-' && runes[i+1] == '-') || (runes[i] == '/' && runes[i+1] == '/') {
			return string(runes[:i])
		}
	}
	return line
}

func hasCommentMarker(line string) bool {
	return strings.Contains(line, "--") || strings.Contains(line, "//") ||
		strings.Contains(line, "/*") || strings.Contains(line, "*/")
}

func containsBegin(line string) bool {
	for _, tok := range strings.Fields(strings.ToLower(line)) {
		if tok == "begin" {
			return true
		}
	}
	return false
}

func nextContent(lines []string, i int) int {
	for j := i + 1; j < len(lines); j++ {
		if !isBlank(lines[j]) {
			return j
		}
	}
	return -1
}

func lastContent(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if !isBlank(lines[i]) {
			return i
		}
	}
	return -1
}
