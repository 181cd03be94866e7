package trigger

import (
	"regexp"
	"strconv"
	"strings"
)

var entryLengthPattern = regexp.MustCompile(`^([<>]=?|=)\s*(\d+)$`)

// Evaluate runs a condition tree against a context. It is pure and
// deterministic: no clock, no randomness, no I/O. Unknown or malformed
// nodes evaluate to false rather than erroring.
func Evaluate(cond Condition, ctx Context) bool {
	switch {
	case cond.Keyword != "":
		return strings.Contains(strings.ToLower(ctx.Message), strings.ToLower(cond.Keyword))

	case cond.Intensity != "":
		return ctx.Intensity != "" && cond.Intensity == ctx.Intensity

	case cond.EntryLength != "":
		return compareEntryLength(cond.EntryLength, ctx.EntryLength)

	case cond.EmotionTag != "":
		for _, tag := range ctx.Tags {
			if tag == cond.EmotionTag {
				return true
			}
		}
		return false

	case cond.KeywordCount != nil:
		for word, rule := range cond.KeywordCount {
			if countOccurrences(ctx.Message, word) < rule.Gte {
				return false
			}
		}
		return true

	case cond.SymbolicLanguage != nil:
		return ctx.Features.SymbolicLanguage == *cond.SymbolicLanguage

	case cond.AbstractDensity != nil:
		return ctx.Features.AbstractDensity >= cond.AbstractDensity.Gte

	case cond.ParadoxFlag != nil:
		return ctx.Features.ParadoxFlag == *cond.ParadoxFlag

	case cond.SessionSilence != nil:
		return ctx.SessionStats.SilenceSeconds != nil &&
			*ctx.SessionStats.SilenceSeconds >= cond.SessionSilence.Gte

	case cond.NumbnessMentions != nil:
		return ctx.Features.NumbnessMentions >= cond.NumbnessMentions.Gte

	case cond.TopicLoop != nil:
		return ctx.SessionStats.TopicLoop != nil &&
			*ctx.SessionStats.TopicLoop == cond.TopicLoop.WithinSessions

	case cond.And != nil:
		for _, sub := range cond.And {
			if !Evaluate(sub, ctx) {
				return false
			}
		}
		return true

	case cond.Or != nil:
		for _, sub := range cond.Or {
			if Evaluate(sub, ctx) {
				return true
			}
		}
		return false
	}

	// Unrecognized shape fails closed.
	return false
}

func compareEntryLength(rule string, length int) bool {
	m := entryLengthPattern.FindStringSubmatch(strings.TrimSpace(rule))
	if m == nil {
		return false
	}
	value, err := strconv.Atoi(m[2])
	if err != nil {
		return false
	}
	switch m[1] {
	case "<":
		return length < value
	case "<=":
		return length <= value
	case ">":
		return length > value
	case ">=":
		return length >= value
	case "=":
		return length == value
	}
	return false
}

// countOccurrences treats the word as a case-insensitive pattern, the
// same way the rule authors wrote them. An invalid pattern counts zero.
func countOccurrences(message, word string) int {
	re, err := regexp.Compile("(?i)" + word)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(message, -1))
}
