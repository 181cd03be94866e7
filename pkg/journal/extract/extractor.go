// Package extract derives evaluation signals from a raw journal entry.
// Everything here is pure string work: no I/O, no state.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"reflecta-be/pkg/journal/trigger"
)

// Symbolic and abstract vocabularies are fixed per product language.
var symbolicWords = []string{
	"köd", "álom", "üresség", "fény", "barlang", "csend", "tenger", "szakadék", "moha",
}

var abstractWords = []string{
	"létezés", "vágy", "idő", "értelem", "belső", "határ", "váltás", "valóság",
}

var numbnessPhrases = []string{
	"zsibbadt", "nem érzek", "elzsibbadt", "nem érzek semmit",
}

var emotionPatterns = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"loneliness", regexp.MustCompile(`magány|egyedül|elhagyott`)},
	{"sadness", regexp.MustCompile(`szomorú|fájdalom|könny`)},
	{"confusion", regexp.MustCompile(`zavar|összezavar|nem tudom`)},
	{"numbness", regexp.MustCompile(`fázom|hideg|üresség`)},
}

// Extract builds the evaluation context for one message. An empty
// message yields an all-zero context.
func Extract(message string) trigger.Context {
	lowered := strings.ToLower(message)

	return trigger.Context{
		Message:     message,
		EntryLength: utf8.RuneCountInString(message),
		Tags:        detectEmotionTags(lowered),
		Features: trigger.Features{
			SymbolicLanguage: containsAny(lowered, symbolicWords),
			AbstractDensity:  countHits(lowered, abstractWords),
			NumbnessMentions: countHits(lowered, numbnessPhrases),
		},
	}
}

func detectEmotionTags(lowered string) []string {
	var tags []string
	for _, e := range emotionPatterns {
		if e.pattern.MatchString(lowered) {
			tags = append(tags, e.tag)
		}
	}
	return tags
}

func containsAny(lowered string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

func countHits(lowered string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += strings.Count(lowered, p)
	}
	return total
}
