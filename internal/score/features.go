package score

import (
	"regexp"
	"strings"
)

// Sub-score caps. The four features are computed independently so
// thresholds can be tuned without touching unrelated logic.
const (
	capProperNoun   = 30
	capTemporal     = 25
	capQuantitative = 20
	capAttribution  = 25
)

var (
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	acronymRe    = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

	yearRe     = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
	monthRe    = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	durationRe = regexp.MustCompile(`(?i)\b\d+\s*(years?|months?|weeks?|days?|hours?|minutes?)\b`)

	percentRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:%|percent)`)
	numberRe  = regexp.MustCompile(`\b\d+(?:[,.]\d+)*\b`)

	doiRe      = regexp.MustCompile(`\b10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+`)
	citationRe = regexp.MustCompile(`(?i)\bet al\.?|\[\d+\]`)
)

var attributionMarkers = []string{
	"according to", "published in", "as reported by", "cited in",
	"journal of", "in a study", "per the", "as stated in",
}

// scoreProperNouns rewards named entities: capitalized phrases past the
// sentence start plus acronyms
func scoreProperNouns(text string) int {
	count := 0
	for _, m := range properNounRe.FindAllStringIndex(text, -1) {
		// A capitalized first word is usually just sentence case
		if m[0] == 0 {
			continue
		}
		count++
	}
	count += len(acronymRe.FindAllString(text, -1))

	score := count * 8
	if score > capProperNoun {
		score = capProperNoun
	}
	return score
}

// scoreTemporal rewards explicit dates and durations
func scoreTemporal(text string) int {
	score := 0
	score += len(yearRe.FindAllString(text, -1)) * 10
	score += len(monthRe.FindAllString(text, -1)) * 8
	score += len(durationRe.FindAllString(text, -1)) * 6
	if score > capTemporal {
		score = capTemporal
	}
	return score
}

// scoreQuantitative rewards numbers and percentages
func scoreQuantitative(text string) int {
	score := 0
	percents := percentRe.FindAllString(text, -1)
	score += len(percents) * 8

	// Plain numbers, excluding ones already counted as percentages
	numbers := numberRe.FindAllString(text, -1)
	plain := len(numbers) - len(percents)
	if plain > 0 {
		score += plain * 5
	}

	if score > capQuantitative {
		score = capQuantitative
	}
	return score
}

// scoreAttribution rewards citations, DOI-like patterns, and source mentions
func scoreAttribution(text string) int {
	lower := strings.ToLower(text)
	score := 0

	for _, marker := range attributionMarkers {
		if strings.Contains(lower, marker) {
			score += 10
		}
	}
	score += len(doiRe.FindAllString(text, -1)) * 15
	score += len(citationRe.FindAllString(text, -1)) * 10

	if score > capAttribution {
		score = capAttribution
	}
	return score
}
