package format

import "strings"

// Edit is one line-scoped rewrite. LineIndex addresses the line in the
// original document, OldLength is the rune count being replaced on it, and
// NewText is the replacement. A final edit with LineIndex equal to the
// formatted line count and an empty NewText deletes the document's
// remaining lines; there OldLength counts removed lines instead of runes.
type Edit struct {
	LineIndex int
	OldLength int
	NewText   string
}

// Edits diffs the original document against its formatted form into
// per-line edits. Unchanged lines produce no edit; lines past the original
// document's end are insertions with OldLength zero; a shorter formatted
// document ends with one trailing deletion edit.
func Edits(original, formatted string) []Edit {
	if original == formatted {
		return nil
	}
	origLines := strings.Split(original, "\n")
	newLines := strings.Split(formatted, "\n")

	var edits []Edit
	for i, line := range newLines {
		if i < len(origLines) {
			if origLines[i] == line {
				continue
			}
			edits = append(edits, Edit{
				LineIndex: i,
				OldLength: len([]rune(origLines[i])),
				NewText:   line,
			})
			continue
		}
		edits = append(edits, Edit{LineIndex: i, NewText: line})
	}
	if len(origLines) > len(newLines) {
		edits = append(edits, Edit{
			LineIndex: len(newLines),
			OldLength: len(origLines) - len(newLines),
		})
	}
	return edits
}
