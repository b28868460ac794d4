// Package profile parses a bot's instruction document into a structured
// profile. The documents are hand-edited prose, so every extraction
// degrades to an empty string instead of failing; partial information
// beats no information.
package profile

import "strings"

// Profile holds the fields extracted from an instruction document. Any of
// them may be empty.
type Profile struct {
	Description string
	Mission     string
	Role        string
	Department  string
	Focus       string
}

// Parse extracts a Profile from markdown text. It is total: any input,
// including the empty string, yields a valid (possibly empty) Profile.
func Parse(text string) Profile {
	var p Profile
	if text == "" {
		return p
	}
	lines := strings.Split(text, "\n")

	if desc, ok := description(lines); ok {
		p.Description = desc
	}
	if role, dept, focus, ok := tableFields(lines); ok {
		p.Role, p.Department, p.Focus = role, dept, focus
	}
	if mission, ok := missionLine(lines); ok {
		p.Mission = mission
	}
	return p
}

// description finds the first non-empty, non-heading, non-table, non-rule
// line after the document's first level-1 heading.
func description(lines []string) (string, bool) {
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isHeading(trimmed) || isRule(trimmed) || strings.Contains(trimmed, "|") {
			continue
		}
		return trimmed, true
	}
	return "", false
}

// tableFields locates the first pipe table in the document and reads role,
// department and focus from its first data row, in column order. The
// separator row under the header (first cell a run of dashes) is skipped.
func tableFields(lines []string) (role, dept, focus string, ok bool) {
	sawHeader := false
	for _, line := range lines {
		cells := tableCells(line)
		if len(cells) < 3 {
			continue
		}
		if !sawHeader {
			sawHeader = true
			continue
		}
		if isDashRun(cells[0]) {
			continue
		}
		return cells[0], cells[1], cells[2], true
	}
	return "", "", "", false
}

// missionLine returns the first line of the block following a level-2
// heading whose text is exactly "Mission". The block ends at the next
// heading or horizontal rule.
func missionLine(lines []string) (string, bool) {
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "## Mission" {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) || isRule(trimmed) {
			break
		}
		if trimmed == "" {
			continue
		}
		return trimmed, true
	}
	return "", false
}

func isHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#")
}

// isRule recognizes a horizontal rule: three or more of the same marker.
func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, marker := range []string{"-", "*", "_"} {
		if trimmed == strings.Repeat(marker, len(trimmed)) {
			return true
		}
	}
	return false
}

// isDashRun reports whether a cell is nothing but dashes, the shape of a
// markdown table separator cell.
func isDashRun(cell string) bool {
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if r != '-' {
			return false
		}
	}
	return true
}

// tableCells splits a pipe-delimited line into trimmed cells, dropping the
// empty boundary cells produced by leading/trailing pipes. Lines without a
// pipe return nil.
func tableCells(line string) []string {
	if !strings.Contains(line, "|") {
		return nil
	}
	raw := strings.Split(line, "|")
	if len(raw) > 0 && strings.TrimSpace(raw[0]) == "" {
		raw = raw[1:]
	}
	if len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	cells := make([]string, len(raw))
	for i, c := range raw {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
