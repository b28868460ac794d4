package sessions

import (
	"regexp"
	"strings"
)

// monthAbbrev maps the 3-letter month abbreviations used in weekly summary
// filenames to zero-padded month numbers.
var monthAbbrev = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

var (
	isoDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	// 2026-W02-Jan-06-12.md: week number, month abbreviation, start day.
	weeklyName = regexp.MustCompile(`^(\d{4})-W\d{2}-([A-Za-z]{3})-(\d{2})`)
	// 2026-01-monthly.md
	monthlyName = regexp.MustCompile(`^(\d{4})-(\d{2})-monthly$`)
)

// PathDate returns the first ISO YYYY-MM-DD substring found anywhere in a
// path, used to date daily notes from their enclosing directory.
func PathDate(path string) (string, bool) {
	d := isoDate.FindString(path)
	return d, d != ""
}

// SummaryDate classifies a summary filename and resolves its calendar
// date. Weekly filenames resolve to the start-of-week day; monthly
// filenames resolve to the first of the month. Names matching neither
// pattern have no date and are dropped from the index.
func SummaryDate(name string) (date string, kind Kind, ok bool) {
	base := strings.TrimSuffix(name, ".md")

	if m := weeklyName.FindStringSubmatch(base); m != nil {
		month, known := monthAbbrev[m[2]]
		if !known {
			return "", "", false
		}
		return m[1] + "-" + month + "-" + m[3], KindWeekly, true
	}

	if m := monthlyName.FindStringSubmatch(base); m != nil {
		return m[1] + "-" + m[2] + "-01", KindMonthly, true
	}

	return "", "", false
}
