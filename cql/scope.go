package cql

import (
	"strings"
	"unicode"
)

// LatestKeyspace scans lines[0:cursorLine) for USE statements and returns
// the name from the most recent one. A USE line only counts in its strict
// single-line shape: the use keyword, a quoted name, and a closing
// terminator, nothing else.
func LatestKeyspace(lines []string, cursorLine int) (string, bool) {
	if cursorLine > len(lines) {
		cursorLine = len(lines)
	}
	name := ""
	found := false
	for i := 0; i < cursorLine; i++ {
		if ks, ok := parseUseStatement(lines[i]); ok {
			name = ks
			found = true
		}
	}
	return name, found
}

// parseUseStatement matches `use ["']<name>["'];` after trimming, case
// insensitively, with nothing after the terminator. The quotes must pair and
// the name may not contain a quote of either kind.
func parseUseStatement(line string) (string, bool) {
	runes := []rune(strings.TrimSpace(line))
	if len(runes) < 7 {
		return "", false
	}
	if !strings.EqualFold(string(runes[:3]), "use") {
		return "", false
	}

	i := 3
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i >= len(runes) {
		return "", false
	}
	quote := runes[i]
	if quote != '"' && quote != '\'' {
		return "", false
	}
	i++

	start := i
	for i < len(runes) && runes[i] != quote {
		if runes[i] == '"' || runes[i] == '\'' {
			return "", false
		}
		i++
	}
	if i >= len(runes) || i == start {
		return "", false
	}
	name := string(runes[start:i])
	i++

	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i != len(runes)-1 || runes[i] != ';' {
		return "", false
	}
	return name, true
}

// QualifiedTableOnLine extracts a keyspace.table pair from the token
// following FROM on the line. A qualified pair overrides the resolved USE
// scope for the single request that carries it.
func QualifiedTableOnLine(line string) (keyspace, table string, ok bool) {
	target, found := fromTarget(line)
	if !found {
		return "", "", false
	}
	dot := strings.Index(target, ".")
	if dot <= 0 || dot >= len(target)-1 {
		return "", "", false
	}
	return target[:dot], target[dot+1:], true
}

// TableAfterFrom extracts a bare (unqualified) table name from the token
// following FROM on the line.
func TableAfterFrom(line string) (string, bool) {
	target, found := fromTarget(line)
	if !found || target == "" || strings.Contains(target, ".") {
		return "", false
	}
	return target, true
}

func fromTarget(line string) (string, bool) {
	toks := tokenize(line)
	for i, t := range toks {
		if t.text == "from" && i+1 < len(toks) {
			return strings.Trim(toks[i+1].raw, ";,"), true
		}
	}
	return "", false
}
