// Package meta derives conversational heuristics from recent entries.
package meta

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
)

// SessionMeta is the ephemeral, per-turn heuristic snapshot folded into
// the system prompt. It is never persisted.
type SessionMeta struct {
	IsShortEntry     bool `json:"isShortEntry"`
	IsQuestion       bool `json:"isQuestion"`
	IsReflective     bool `json:"isReflective"`
	ShowsRepetition  bool `json:"showsRepetition"`
	HasRecentSilence bool `json:"hasRecentSilence"`
	IsClosing        bool `json:"isClosing"`
}

const (
	shortEntryThreshold = 50
	silenceGap          = 5 * time.Minute
)

var (
	questionSuffix = regexp.MustCompile(`\?$`)
	// Hungarian interrogative markers. \b does not work with accented
	// letters, hence the explicit letter-boundary groups.
	interrogativeWords = regexp.MustCompile(`(?i)(^|[^\p{L}])(miért|hogyan|vajon|lehet-e|szerinted|mit gondolsz|működik-e)($|[^\p{L}])`)
	reflectiveMarkers  = regexp.MustCompile(`(?i)(^|[^\p{L}])(érzem|gondolom|hiszem|talán|nem tudom|lehet, hogy|olyan, mintha|néha)($|[^\p{L}])`)
)

// Derive computes the session meta from an ordered entry list. Entries
// matching the closing trigger exactly (trimmed) are ignored, so the
// trigger phrase never skews the heuristics. With no user entries the
// all-false zero value is returned.
func Derive(entries []*entity.Entry, closingTrigger string) SessionMeta {
	closingTrigger = strings.TrimSpace(closingTrigger)
	var userEntries []*entity.Entry
	for _, e := range entries {
		if e.Role != constant.EntryRoleUser {
			continue
		}
		if closingTrigger != "" && strings.TrimSpace(e.Content) == closingTrigger {
			continue
		}
		userEntries = append(userEntries, e)
	}

	if len(userEntries) == 0 {
		return SessionMeta{}
	}

	last := userEntries[len(userEntries)-1]
	content := strings.TrimSpace(last.Content)

	recent := userEntries
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	distinct := make(map[string]struct{}, len(recent))
	for _, e := range recent {
		distinct[strings.TrimSpace(e.Content)] = struct{}{}
	}

	m := SessionMeta{
		IsShortEntry:    utf8.RuneCountInString(content) < shortEntryThreshold,
		IsQuestion:      questionSuffix.MatchString(content) || interrogativeWords.MatchString(content),
		IsReflective:    reflectiveMarkers.MatchString(content),
		ShowsRepetition: len(distinct) <= 2,
	}

	if len(userEntries) >= 2 {
		prev := userEntries[len(userEntries)-2]
		if !last.CreatedAt.IsZero() && !prev.CreatedAt.IsZero() {
			m.HasRecentSilence = last.CreatedAt.Sub(prev.CreatedAt) > silenceGap
		}
	}

	return m
}
