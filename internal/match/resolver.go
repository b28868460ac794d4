// Package match resolves free-text bot names from historical session notes
// to entries in the current roster.
//
// Historical text predates roster reorganizations: bots get renamed,
// departments get reassigned, and a few legacy display names have no
// derivable relationship to any current slug. Resolution is therefore a
// strict priority chain of strategies, first non-nil wins, with a fixed
// alias table checked before any algorithmic matching.
package match

import (
	"regexp"
	"strings"

	"github.com/botdeskhq/botdesk/internal/bots"
)

// aliases maps lower-cased historical display names to current slugs.
// These are names that cannot be derived algorithmically, mostly roles
// that were renamed away from any bot-slug pattern. An alias only applies
// when its target slug is actually in the roster.
var aliases = map[string]string{
	"morning sod":     "bot-ops-sre",
	"daily standup":   "bot-ops-sre",
	"release captain": "bot-eng-release",
	"books":           "bot-acct-ledger",
}

var whitespace = regexp.MustCompile(`\s+`)

// Slugify derives a candidate slug from a free-text name: lower-case,
// whitespace runs collapsed to single hyphens, and a "bot-" prefix ensured.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespace.ReplaceAllString(s, "-")
	if !strings.HasPrefix(s, bots.Prefix) {
		s = bots.Prefix + s
	}
	return s
}

// strategy is one resolution tier. Each returns nil when it has no answer,
// letting the next tier run.
type strategy func(input, slug string, roster []bots.Entry) *bots.Entry

var chain = []strategy{
	aliasLookup,
	exactSlug,
	exactBareName,
	departmentUnique,
	departmentScored,
	globalScored,
}

// Resolve maps a free-text bot name to the best roster entry, or nil when
// no current bot corresponds to it. It is deterministic: same input and
// roster, same answer. A nil result is an expected outcome, not an error.
func Resolve(name string, roster []bots.Entry) *bots.Entry {
	input := strings.ToLower(strings.TrimSpace(name))
	if input == "" {
		return nil
	}
	slug := Slugify(input)

	for _, s := range chain {
		if e := s(input, slug, roster); e != nil {
			return e
		}
	}
	return nil
}

func aliasLookup(input, _ string, roster []bots.Entry) *bots.Entry {
	target, ok := aliases[input]
	if !ok {
		return nil
	}
	return findByName(roster, target)
}

func exactSlug(_, slug string, roster []bots.Entry) *bots.Entry {
	return findByName(roster, slug)
}

// exactBareName handles inputs that are already slug-shaped but lack the
// "bot-" prefix reconciliation, e.g. a roster that (historically) carried
// unprefixed names.
func exactBareName(input, _ string, roster []bots.Entry) *bots.Entry {
	return findByName(roster, input)
}

func departmentUnique(_, slug string, roster []bots.Entry) *bots.Entry {
	candidates := departmentMatches(slug, roster)
	if len(candidates) == 1 {
		e := candidates[0]
		return &e
	}
	return nil
}

// departmentScored breaks a multi-candidate department match by keyword
// overlap. Ties keep the first-encountered candidate: roster order is
// itself deterministic (discovery sort), so the choice is stable, and no
// stronger tie-break rule is intended.
func departmentScored(_, slug string, roster []bots.Entry) *bots.Entry {
	candidates := departmentMatches(slug, roster)
	if len(candidates) < 2 {
		return nil
	}
	keywords := keywordSet(slug)
	best := candidates[0]
	bestScore := overlapScore(best.Name, keywords)
	for _, c := range candidates[1:] {
		if s := overlapScore(c.Name, keywords); s > bestScore {
			best, bestScore = c, s
		}
	}
	return &best
}

// globalScored is the last algorithmic resort: keyword overlap across the
// whole roster, accepted only on a strictly positive score.
func globalScored(_, slug string, roster []bots.Entry) *bots.Entry {
	if len(departmentMatches(slug, roster)) > 0 {
		return nil
	}
	keywords := keywordSet(slug)
	var best *bots.Entry
	bestScore := 0
	for i := range roster {
		if s := overlapScore(roster[i].Name, keywords); s > bestScore {
			best, bestScore = &roster[i], s
		}
	}
	if best == nil {
		return nil
	}
	e := *best
	return &e
}

func findByName(roster []bots.Entry, name string) *bots.Entry {
	for i := range roster {
		if roster[i].Name == name {
			e := roster[i]
			return &e
		}
	}
	return nil
}

// departmentMatches collects roster entries whose group equals the first
// hyphen-delimited part of the candidate slug.
func departmentMatches(slug string, roster []bots.Entry) []bots.Entry {
	dept := strings.SplitN(strings.TrimPrefix(slug, bots.Prefix), "-", 2)[0]
	if dept == "" {
		return nil
	}
	var out []bots.Entry
	for _, e := range roster {
		if e.Group == dept {
			out = append(out, e)
		}
	}
	return out
}

// keywordSet is the set of hyphen-delimited parts of a slug, prefix
// stripped.
func keywordSet(slug string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(strings.TrimPrefix(slug, bots.Prefix), "-") {
		if part != "" {
			set[part] = struct{}{}
		}
	}
	return set
}

// overlapScore counts how many of the entry's own name parts appear in the
// keyword set.
func overlapScore(name string, keywords map[string]struct{}) int {
	score := 0
	for _, part := range strings.Split(strings.TrimPrefix(name, bots.Prefix), "-") {
		if _, ok := keywords[part]; ok {
			score++
		}
	}
	return score
}
