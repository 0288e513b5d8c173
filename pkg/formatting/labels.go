// Package formatting extracts values from free-text model completions that
// follow a labeled-line grammar ("Label: value", one label per line).
package formatting

import (
	"regexp"
	"strconv"
	"strings"
)

const decoration = "*_` \t\r"

func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?im)^[ \t>#*_-]*` + regexp.QuoteMeta(label) + `[ \t*_]*:[ \t*_]*(.*)$`,
	)
}

// Field returns the trimmed text following label on the first line that
// starts with it. Matching is case-insensitive and tolerates markdown
// emphasis around the label. The second result is false when the label is
// missing or carries no value.
func Field(text, label string) (string, bool) {
	m := labelPattern(label).FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}

	v := strings.Trim(m[1], decoration)
	if v == "" {
		return "", false
	}
	return v, true
}

// Bool reports the boolean value of label. Only "true" (trimmed,
// case-insensitive) is true; every other value is false. The second result
// is false when the label is missing.
func Bool(text, label string) (bool, bool) {
	v, ok := Field(text, label)
	if !ok {
		return false, false
	}
	return strings.EqualFold(strings.TrimRight(v, "."), "true"), true
}

// Confidence reads a confidence score for label, clamped to [0,1].
func Confidence(text, label string) (float64, bool) {
	v, ok := Field(text, label)
	if !ok {
		return 0, false
	}
	return ParseConfidence(v)
}

// ParseConfidence accepts fractions ("0.85"), percentages ("85%") and bare
// values on a 0-100 scale ("85"). Bare values below 2 are read as fractions.
// The result is clamped to [0,1].
func ParseConfidence(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if fields := strings.Fields(raw); len(fields) > 0 {
		raw = fields[0]
	}

	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimRight(raw, "%.,;")

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	if percent || v >= 2 {
		v /= 100
	}
	return Clamp(v), true
}

// Clamp bounds v to [0,1].
func Clamp(v float64) float64 {
	return max(0, min(v, 1))
}

// Block returns the value of label along with every following line up to
// the next line that starts one of the stop labels. It is used for
// free-form fields such as explanations that may span several lines.
func Block(text, label string, stops ...string) (string, bool) {
	loc := labelPattern(label).FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}

	rest := text[loc[2]:]
	end := len(rest)
	for _, stop := range stops {
		if strings.EqualFold(stop, label) {
			continue
		}
		for _, s := range labelPattern(stop).FindAllStringIndex(rest, -1) {
			if s[0] > 0 {
				end = min(end, s[0])
				break
			}
		}
	}

	v := strings.Trim(strings.TrimSpace(rest[:end]), decoration)
	if v == "" {
		return "", false
	}
	return v, true
}

// List splits the block for label into items. Items may be given one per
// line (optionally bulleted or numbered) or on a single line separated by
// semicolons.
func List(text, label string, stops ...string) []string {
	block, ok := Block(text, label, stops...)
	if !ok {
		return nil
	}

	lines := strings.Split(block, "\n")
	if len(lines) == 1 {
		lines = strings.Split(block, ";")
	}

	var items []string
	for _, line := range lines {
		if item := trimBullet(line); item != "" && !strings.EqualFold(item, "none") {
			items = append(items, item)
		}
	}
	return items
}

func trimBullet(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•")
	if i := strings.IndexAny(line, ".)"); i > 0 && i <= 3 && i+1 < len(line) && line[i+1] == ' ' {
		if _, err := strconv.Atoi(line[:i]); err == nil {
			line = line[i+1:]
		}
	}
	return strings.Trim(line, decoration)
}
