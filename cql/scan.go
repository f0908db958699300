package cql

import (
	"strings"
	"unicode"
)

// InStringLiteral reports whether the cursor at char sits inside a single- or
// double-quoted literal on line. A backslash consumes the following rune
// regardless of what it is, and a quote of one kind is inert while inside the
// other kind. Quotes are never balanced across lines. Positions beyond the
// end of the line return false.
func InStringLiteral(line string, char uint32) bool {
	prefix, ok := runePrefix(line, char)
	if !ok {
		return false
	}

	var inDouble, inSingle, escaped bool
	for _, r := range prefix {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		}
	}

	return inDouble || inSingle
}

// InsideBlockComment reports whether lines[index] sits strictly inside a
// multi-line /* ... */ comment: the line itself contains neither marker, some
// line above contains /* before any */ is seen, and some line below contains
// */ before any /* is seen. The first and last lines of a document are never
// inside.
func InsideBlockComment(lines []string, index int) bool {
	if index <= 0 || index >= len(lines)-1 {
		return false
	}
	line := lines[index]
	if strings.Contains(line, "/*") || strings.Contains(line, "*/") {
		return false
	}

	opened := false
	for i := index - 1; i >= 0; i-- {
		if strings.Contains(lines[i], "/*") {
			opened = true
			break
		}
		if strings.Contains(lines[i], "*/") {
			return false
		}
	}
	if !opened {
		return false
	}

	for i := index + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], "*/") {
			return true
		}
		if strings.Contains(lines[i], "/*") {
			return false
		}
	}
	return false
}

// IsBlockCommentMarker reports whether the line carries either end of a
// multi-line comment.
func IsBlockCommentMarker(line string) bool {
	return strings.Contains(line, "/*") || strings.Contains(line, "*/")
}

// InsideBracketBlock reports whether lines[index] sits inside an open (/{
// block, as in the column list of CREATE TABLE or the map literal of a WITH
// replication clause. The line disqualifies itself if it contains a
// terminator, any bracket character, a VALUES/FROM clause, or starts with a
// clause keyword; the upward and downward scans stop at the nearest bracket
// and refuse to cross a statement boundary.
func InsideBracketBlock(lines []string, index int) bool {
	if index <= 0 || index >= len(lines)-1 {
		return false
	}
	line := lines[index]
	if strings.ContainsAny(line, ";{}()") || LineStartsWithKeyword(line, ClauseKeywords) {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "values") || strings.Contains(lower, "from") {
		return false
	}

	opened := false
	for i := index - 1; i >= 0; i-- {
		up := lines[i]
		if strings.ContainsAny(up, "{(") {
			opened = true
			break
		}
		if strings.ContainsAny(up, "})") {
			return false
		}
		if LineStartsWithKeyword(up, ClauseKeywords) {
			return false
		}
	}
	if !opened {
		return false
	}

	for i := index + 1; i < len(lines); i++ {
		down := lines[i]
		if strings.ContainsAny(down, "})") {
			return true
		}
		if strings.ContainsAny(down, "{(") {
			return false
		}
		if strings.Contains(down, ";") {
			return false
		}
		if LineStartsWithKeyword(down, ClauseKeywords) {
			return false
		}
	}
	return false
}

// InsideSelectorBlock reports whether lines[index] sits inside a multi-line
// selector list: a SELECT line above and a FROM line below, with no
// terminator in between on the way down.
func InsideSelectorBlock(lines []string, index int) bool {
	if index <= 0 || index >= len(lines)-1 {
		return false
	}
	line := lines[index]
	if line == "" || strings.Contains(line, ";") || LineStartsWithKeyword(line, ClauseKeywords) {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "values") || strings.Contains(lower, "from") {
		return false
	}

	found := false
	for i := index - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(lines[i]), "select") {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for i := index + 1; i < len(lines); i++ {
		low := strings.ToLower(lines[i])
		if strings.Contains(low, "from") {
			return true
		}
		if strings.Contains(low, ";") {
			return false
		}
	}
	return false
}

// LineStartsWithKeyword reports whether the line's first whitespace-delimited
// token, lower-cased, is a member of keywords.
func LineStartsWithKeyword(line string, keywords map[string]struct{}) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}
	_, ok := keywords[fields[0]]
	return ok
}

// ContainsType reports whether any whitespace-delimited token on the line is
// a CQL type name, including the parameterized set/map/list/frozen forms.
func ContainsType(line string) bool {
	for _, tok := range strings.Fields(line) {
		if IsTypeToken(tok) {
			return true
		}
	}
	return false
}

// IsTypeToken reports whether a single token names a CQL type. Trailing
// commas are stripped so column-definition tokens like "uuid," match.
func IsTypeToken(tok string) bool {
	w := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(tok), ",", ""))
	if w == "" {
		return false
	}
	if _, ok := typeSet[w]; ok {
		return true
	}
	for _, p := range parameterizedTypes {
		if strings.HasPrefix(w, p) {
			return true
		}
	}
	return false
}

// Literal describes the string literal surrounding the cursor: the opening
// quote, the text typed since it, and what already follows the cursor. Used
// to compute in-literal replacement edits.
type Literal struct {
	// Quote is the opening quote rune, " or '
	Quote rune

	// QuoteIndex is the rune offset of the opening quote on the line
	QuoteIndex int

	// Typed is the text between the opening quote and the cursor
	Typed string

	// WordEnd is the rune offset just past the identifier run that follows
	// the cursor
	WordEnd int

	// HasClosingQuote is true when the rune at the cursor is the closing quote
	HasClosingQuote bool

	// HasSemicolon is true when a terminator immediately follows the closing
	// quote (or the cursor, when no closing quote is present)
	HasSemicolon bool
}

// LiteralAt locates the quoted literal around the cursor. ok is false when
// the position is out of range or no quote precedes the cursor.
func LiteralAt(line string, char uint32) (Literal, bool) {
	runes := []rune(line)
	if int(char) > len(runes) {
		return Literal{}, false
	}
	prefix := runes[:char]

	quoteIdx := -1
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] == '"' || prefix[i] == '\'' {
			quoteIdx = i
			break
		}
	}
	if quoteIdx < 0 {
		return Literal{}, false
	}

	lit := Literal{
		Quote:      prefix[quoteIdx],
		QuoteIndex: quoteIdx,
		Typed:      string(prefix[quoteIdx+1:]),
	}

	suffix := runes[char:]
	rel := 0
	for rel < len(suffix) && IsWordRune(suffix[rel]) {
		rel++
	}
	lit.WordEnd = int(char) + rel
	lit.HasClosingQuote = len(suffix) > 0 && suffix[0] == lit.Quote
	after := suffix
	if lit.HasClosingQuote {
		after = suffix[1:]
	}
	lit.HasSemicolon = len(after) > 0 && after[0] == ';'

	return lit, true
}

// token is a whitespace-delimited run of runes with its offsets on the line.
// text is lower-cased for matching; raw preserves the typed case for
// identifiers that reach schema queries.
type token struct {
	text  string
	raw   string
	start int
	end   int
}

func tokenize(line string) []token {
	runes := []rune(line)
	var toks []token
	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		raw := string(runes[start:i])
		toks = append(toks, token{text: strings.ToLower(raw), raw: raw, start: start, end: i})
	}
	return toks
}

// runePrefix returns the runes of line strictly before char. ok is false when
// char lands beyond the end of the line.
func runePrefix(line string, char uint32) ([]rune, bool) {
	runes := []rune(line)
	if int(char) > len(runes) {
		return nil, false
	}
	return runes[:char], true
}

// terminatorIndex returns the rune offset of the first statement terminator
// on the line, or -1.
func terminatorIndex(line string) int {
	for i, r := range []rune(line) {
		if r == ';' {
			return i
		}
	}
	return -1
}

func endsInSpace(s string) bool {
	runes := []rune(s)
	return len(runes) > 0 && unicode.IsSpace(runes[len(runes)-1])
}

// IsWordRune reports whether r belongs to an identifier run.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func containsToken(toks []string, want string) bool {
	for _, t := range toks {
		if t == want {
			return true
		}
	}
	return false
}
