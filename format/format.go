// Package format canonicalizes whole CQL documents. The pipeline is an
// ordered list of total line-rewrite passes built on the cql scanning
// primitives; each pass is pure and the composition is idempotent, so a
// formatted document formats to itself.
package format

import "strings"

// passes run in this order. Later passes rely on invariants from earlier
// ones: terminator insertion assumes whitespace is already normalized, and
// statement separation assumes blank-line hygiene has already run.
var passes = []func([]string) []string{
	normalizeSpacing,
	collapseTerminators,
	tightenPunctuation,
	tightenLiterals,
	dropRepeatedBlanks,
	dropStatementBlanks,
	appendTerminators,
	separateStatements,
	spaceAfterCommas,
	indentBlocks,
}

// Format rewrites text into canonical form.
func Format(text string) string {
	lines := strings.Split(text, "\n")
	for _, pass := range passes {
		lines = pass(lines)
	}
	return strings.Join(lines, "\n")
}
