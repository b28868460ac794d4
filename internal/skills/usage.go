package skills

import (
	"encoding/json"
	"regexp"
)

// Usage holds the two independent signals counted per skill.
type Usage struct {
	Invocations int // structured log records
	Mentions    int // "/skill-name" occurrences in session text
}

// AggregateUsage merges invocation log lines and session note text into
// per-skill counts. Counts are additive and order-independent: the same
// line fed twice counts twice, and processing order never changes the
// result. Duplicate entries in skillNames (two bots sharing a skill name)
// are counted once; the name identifies the skill, not its owner.
//
// Each log line is an independent JSON record. Lines that fail to parse or
// lack a "skill" field are skipped; one bad line never aborts the batch.
// Mentions are counted for the given skill names only, case-insensitively,
// as whole tokens: a "/review" mention matches neither inside
// "/review-deploy" nor inside "/tools/review".
func AggregateUsage(logLines, sessionTexts, skillNames []string) map[string]Usage {
	counts := make(map[string]Usage)

	for _, line := range logLines {
		var rec struct {
			Skill *string `json:"skill"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.Skill == nil {
			continue
		}
		u := counts[*rec.Skill]
		u.Invocations++
		counts[*rec.Skill] = u
	}

	seen := make(map[string]struct{}, len(skillNames))
	for _, name := range skillNames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		pattern := mentionPattern(name)
		for _, text := range sessionTexts {
			n := countMentions(text, pattern)
			if n == 0 {
				continue
			}
			u := counts[name]
			u.Mentions += n
			counts[name] = u
		}
	}

	return counts
}

// mentionPattern matches the "/<name>" token itself. The name is escaped
// so skills with pattern metacharacters in their names ("c++-review")
// cannot change the match semantics. Token boundaries are checked in
// countMentions rather than in the pattern: a consuming guard would steal
// the separator between back-to-back mentions.
func mentionPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)/` + regexp.QuoteMeta(name))
}

// countMentions counts whole-token matches. A candidate is rejected when
// its slash continues an earlier path segment ("/tools/review") or when
// the name continues into a longer one ("/review-deploy").
func countMentions(text string, pattern *regexp.Regexp) int {
	n := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isPathByte(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isNameByte(text[loc[1]]) {
			continue
		}
		n++
	}
	return n
}

// isNameByte reports bytes that extend a skill name token.
func isNameByte(b byte) bool {
	return b == '-' || b == '_' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// isPathByte additionally treats a preceding slash as path context.
func isPathByte(b byte) bool {
	return b == '/' || isNameByte(b)
}
