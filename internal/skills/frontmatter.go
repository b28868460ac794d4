// Package skills handles skill documents: the YAML-like frontmatter header
// of a SKILL.md, the one write path in the system (status updates), and
// usage aggregation across invocation logs and session notes.
package skills

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Status of a skill. Anything unrecognized in a document normalizes to
// StatusActive.
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusDeprecated Status = "deprecated"
)

// ParseStatus normalizes a raw status value. Only "inactive" and
// "deprecated" (case-insensitive) are meaningful; everything else,
// including the empty string, is active.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusInactive):
		return StatusInactive
	case string(StatusDeprecated):
		return StatusDeprecated
	default:
		return StatusActive
	}
}

// Meta is the structured header of a skill document. Every descriptive
// field is optional; only Status and LastRevised are ever written back.
type Meta struct {
	Status      Status
	LastRevised string
	Updated     string
	Command     string
	Input       string
	Output      string
	Sources     string
	Writes      string
	Tools       string
}

const delimiter = "---"

// ParseMeta reads a skill's frontmatter. It is total: content without a
// frontmatter block, or with a malformed one, yields defaults.
func ParseMeta(content string) Meta {
	meta := Meta{Status: StatusActive}
	block, ok := frontmatterLines(content)
	if !ok {
		return meta
	}
	for _, line := range block {
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		switch key {
		case "status":
			meta.Status = ParseStatus(value)
		case "last_revised":
			meta.LastRevised = value
		case "updated":
			meta.Updated = value
		case "command":
			meta.Command = value
		case "input":
			meta.Input = value
		case "output":
			meta.Output = value
		case "sources":
			meta.Sources = value
		case "writes":
			meta.Writes = value
		case "tools":
			meta.Tools = value
		}
	}
	return meta
}

// UpdateField sets one frontmatter key, preserving every other byte of the
// document. An existing key is replaced in place; a missing key is
// appended just before the closing delimiter; a document without
// frontmatter gets a minimal block prepended.
func UpdateField(content, key, value string) string {
	lines := strings.Split(content, "\n")
	open, end, ok := frontmatterBounds(lines)
	if !ok {
		return delimiter + "\n" + key + ": " + value + "\n" + delimiter + "\n" + content
	}

	for i := open + 1; i < end; i++ {
		k, _, ok := splitKeyValue(lines[i])
		if ok && k == key {
			lines[i] = key + ": " + value
			return strings.Join(lines, "\n")
		}
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:end]...)
	updated = append(updated, key+": "+value)
	updated = append(updated, lines[end:]...)
	return strings.Join(updated, "\n")
}

// SetStatus changes a skill's status and stamps last_revised with today in
// the same logical update. Callers never change status without the date.
func SetStatus(content string, status Status, today string) string {
	out := UpdateField(content, "status", string(status))
	return UpdateField(out, "last_revised", today)
}

// frontmatterBounds returns the line indexes of the opening and closing
// delimiters of a frontmatter block at the very start of the document.
func frontmatterBounds(lines []string) (open, end int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return 0, 0, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			return 0, i, true
		}
	}
	return 0, 0, false
}

func frontmatterLines(content string) ([]string, bool) {
	lines := strings.Split(content, "\n")
	open, end, ok := frontmatterBounds(lines)
	if !ok {
		return nil, false
	}
	return lines[open+1 : end], true
}

// splitKeyValue parses one "key: value" line. The value goes through YAML
// scalar decoding so quoted values come back unquoted; if the scalar is
// not something YAML accepts, the raw text is kept with outer quotes
// stripped.
func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, decodeScalar(line[idx+1:]), true
}

func decodeScalar(raw string) string {
	raw = strings.TrimSpace(raw)
	var s string
	if err := yaml.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}
	return strings.Trim(raw, `'"`)
}
