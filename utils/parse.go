// File: utils/parse.go
package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// Absolute layouts accepted before falling back to natural-language
// parsing.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"January 2",
	"Jan 2",
	"2 January 2006",
}

var relativeDateRe = regexp.MustCompile(`(?i)\bin\s+(\d+|a|an)\s+(day|week|month)s?\b`)

// ParseNaturalDate extracts a date from free text. It accepts absolute
// formats, month names, and relative phrases ("tomorrow", "next week",
// "in 3 weeks"). Dates without a year resolve to the next occurrence
// after base.
func ParseNaturalDate(text string, base time.Time) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			if t.Year() == 0 {
				t = time.Date(base.Year(), t.Month(), t.Day(), 0, 0, 0, 0, base.Location())
				if t.Before(base) {
					t = t.AddDate(1, 0, 0)
				}
			}
			return t, true
		}
	}

	if m := relativeDateRe.FindStringSubmatch(trimmed); m != nil {
		n := 1
		if m[1] != "a" && m[1] != "an" {
			n, _ = strconv.Atoi(m[1])
		}
		switch strings.ToLower(m[2]) {
		case "day":
			return base.AddDate(0, 0, n), true
		case "week":
			return base.AddDate(0, 0, 7*n), true
		case "month":
			return base.AddDate(0, n, 0), true
		}
	}

	if r, err := dateParser.Parse(trimmed, base); err == nil && r != nil {
		return r.Time, true
	}
	return time.Time{}, false
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

var digitRe = regexp.MustCompile(`\d+`)
var familyOfRe = regexp.MustCompile(`(?i)\bfamily\s+of\s+(\d+)\b`)

// ParseCount extracts a head count from free text: digits, number words,
// and idioms like "a couple" or "solo".
func ParseCount(text string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	if m := familyOfRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := digitRe.FindString(lower); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			return n, true
		}
	}
	switch {
	case strings.Contains(lower, "a couple"), strings.Contains(lower, "couple"):
		return 2, true
	case strings.Contains(lower, "a few"):
		return 3, true
	case strings.Contains(lower, "solo"), strings.Contains(lower, "alone"),
		strings.Contains(lower, "just me"), strings.Contains(lower, "myself"), lower == "me":
		return 1, true
	}
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		if n, ok := numberWords[word]; ok {
			return n, true
		}
	}
	return 0, false
}

var locationNoise = []string{
	"i want to go to", "i'd like to go to", "we are going to", "going to",
	"travelling to", "traveling to", "flying to", "from", "to",
}

// NormalizeLocation tidies a free-text place name.
func NormalizeLocation(text string) string {
	s := strings.TrimSpace(text)
	lower := strings.ToLower(s)
	for _, prefix := range locationNoise {
		if strings.HasPrefix(lower, prefix+" ") {
			s = strings.TrimSpace(s[len(prefix)+1:])
			break
		}
	}
	s = strings.Trim(s, ".!?,")
	return strings.Title(strings.ToLower(s))
}
