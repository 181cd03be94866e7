// Package prompt assembles the system prompt sent to the completion
// service. Build is deterministic: identical inputs always yield a
// byte-identical string, which is what makes caching it correct.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"reflecta-be/internal/entity"
	"reflecta-be/pkg/journal/meta"
)

// resolveStyle merges metadata style options with persona-level
// overrides into one fully-defaulted map. Override wins on collision.
func resolveStyle(profile *entity.Profile) map[string]string {
	style := make(map[string]string, len(profile.Metadata.StyleOptions)+len(profile.StyleProfile))
	for k, v := range profile.Metadata.StyleOptions {
		style[k] = v
	}
	for k, v := range profile.StyleProfile {
		style[k] = v
	}
	return style
}

// Fixed dimension -> value -> instruction phrase lookup. Dimensions or
// values outside the table contribute nothing to the prompt.
var stylePhrases = map[string]map[string]string{
	"pace": {
		"slow":     "a slow and deliberate pace",
		"moderate": "a calm, even pace",
		"fast":     "a brisk, energetic pace",
	},
	"imagery": {
		"sparse":  "sparse, restrained imagery",
		"natural": "imagery drawn from the natural world",
		"rich":    "rich, layered imagery",
	},
	"sentence_length": {
		"short":  "short, grounded sentences",
		"varied": "varied sentence rhythm",
		"long":   "long, flowing sentences",
	},
	"formality": {
		"informal": "an informal, familiar register",
		"formal":   "a measured, formal register",
	},
	"depth": {
		"surface": "light, surface-level reflection",
		"deep":    "deep, probing reflection",
	},
}

var answerLengthPhrases = map[string]string{
	"very short": "keep responses very short",
	"short":      "prefer short responses",
	"long":       "prefer long responses",
	"very long":  "allow very long, unhurried responses",
}

var styleModePhrases = map[string]string{
	"minimal":  "use minimal, pared-down language",
	"simple":   "use simple language",
	"symbolic": "use symbolic language",
	"mythic":   "use mythic, archetypal language",
}

var guidanceModePhrases = map[string]string{
	"open":     "stay open and follow the user's lead",
	"free":     "be more free",
	"guided":   "be more guided",
	"directed": "lead the direction of the reflection",
}

var tonePhrases = map[string]string{
	"supportive":  "maintain a supportive tone",
	"confronting": "maintain a confronting tone",
	"soothing":    "maintain a soothing tone",
}

// Build turns a persona, the user's preference knobs and the per-turn
// session heuristics into one instruction string. Missing fields are
// skipped rather than erroring; only the profile loader enforces
// presence.
func Build(profile *entity.Profile, prefs *entity.UserPreferences, sessionMeta meta.SessionMeta) string {
	if profile == nil {
		return ""
	}

	var lines []string
	push := func(s string) { lines = append(lines, s) }
	md := profile.Metadata

	// [IDENTITY]
	if core := strings.TrimSpace(profile.PromptCore); core != "" {
		push(core)
		push("")
	}
	push("# IDENTITY")
	if md.Worldview != "" {
		push("Worldview: " + md.Worldview)
	}
	if md.Domain != "" {
		push("Domain: " + md.Domain)
	}
	if len(md.Inspirations) > 0 {
		push("Inspirations: " + strings.Join(md.Inspirations, ", "))
	}
	if md.NotSuitableFor != "" {
		push("Avoid if: " + md.NotSuitableFor)
	}
	if md.PreferredContext != "" {
		push("Preferred context: " + md.PreferredContext)
	}
	if md.ResponseFocus != "" {
		push("Response focus: " + md.ResponseFocus)
	}

	// [STYLE]
	style := resolveStyle(profile)
	dims := make([]string, 0, len(style))
	for k := range style {
		dims = append(dims, k)
	}
	sort.Strings(dims)
	var styleDesc []string
	for _, dim := range dims {
		if phrase, ok := stylePhrases[dim][style[dim]]; ok {
			styleDesc = append(styleDesc, phrase)
		}
	}
	if len(styleDesc) > 0 {
		push("\n# STYLE")
		push("Hold " + strings.Join(styleDesc, "; ") + ".")
	}

	// [REACTIONS]
	rx := profile.Reactions
	if len(rx.Common) > 0 || len(rx.Typical) > 0 || len(rx.Rare) > 0 {
		push("\n# REACTIONS")
		if len(rx.Common) > 0 {
			push("- Common: " + strings.Join(rx.Common, " | "))
		}
		if len(rx.Typical) > 0 {
			push("- Typical: " + strings.Join(rx.Typical, " | "))
		}
		if len(rx.Rare) > 0 {
			push("- Rare: " + strings.Join(rx.Rare, " | "))
		}
	}

	// [STRUCTURE & CONTENT]
	if len(md.PrimaryMetaphors) > 0 || len(md.QuestionArchetypes) > 0 || md.InteractionRhythm != "" {
		push("\n# STRUCTURE & CONTENT")
		if len(md.PrimaryMetaphors) > 0 {
			push("Use metaphors: " + strings.Join(md.PrimaryMetaphors, ", "))
		}
		if len(md.QuestionArchetypes) > 0 {
			push("Use question archetypes: " + strings.Join(md.QuestionArchetypes, ", "))
		}
		if md.InteractionRhythm != "" {
			push("Interaction rhythm: " + md.InteractionRhythm)
		}
	}

	// [USER PREFERENCES]
	if clauses := preferenceClauses(prefs); len(clauses) > 0 {
		push("\n# USER PREFERENCES")
		push("Adjust to user preferences: " + strings.Join(clauses, "; ") + ".")
	}

	// [SESSION META]
	if sessionMeta.HasRecentSilence || sessionMeta.ShowsRepetition {
		push("If user shows silence or repetition, gently acknowledge the pause.")
	}
	if sessionMeta.IsShortEntry {
		push("Short input: reply concisely and softly.")
	}
	if sessionMeta.IsQuestion {
		push("If question: answer directly first, then elaborate.")
	}
	if sessionMeta.IsReflective {
		push("If introspective: respond in meditative rhythm.")
	}

	// [CLOSURE]
	push("\n# CLOSING")
	push(fmt.Sprintf("Closure trigger: %q, then use: %s", md.ClosingTrigger, md.ClosingStyle))
	if sessionMeta.IsClosing {
		push("This is a closure. Do not ask follow-up questions.")
		push("Offer a short, symbolic, emotionally resonant final reflection.")
		push("Avoid prompting continuation.")
	}

	// [REPLY STRUCTURE]
	push("\n# DEFAULT REPLY STRUCTURE")
	push("Always interpret deeply. Pay attention to emotional tone.")
	push("Respond in two parts:")
	push("- 1. Reflective inner mirroring")
	push("- 2. Soft open-ended continuation prompt")
	push("Use line breaks to separate transitions. Keep length moderate.")

	return strings.Join(lines, "\n")
}

func preferenceClauses(prefs *entity.UserPreferences) []string {
	if prefs.Empty() {
		return nil
	}
	var clauses []string
	appendPhrase := func(field *string, phrases map[string]string) {
		if field == nil {
			return
		}
		if phrase, ok := phrases[*field]; ok {
			clauses = append(clauses, phrase)
		}
	}
	appendPhrase(prefs.AnswerLength, answerLengthPhrases)
	appendPhrase(prefs.StyleMode, styleModePhrases)
	appendPhrase(prefs.GuidanceMode, guidanceModePhrases)
	appendPhrase(prefs.TonePreference, tonePhrases)
	return clauses
}
