// Package match tags a turn with the first reaction or recommendation
// whose rule matches the user's message.
package match

import (
	"context"
	"regexp"
	"strings"

	"reflecta-be/internal/constant"
	"reflecta-be/internal/repository/contract"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/pkg/journal/extract"
	"reflecta-be/pkg/journal/trigger"
)

var triggerSplitPattern = regexp.MustCompile(`[,\s]+`)

type Matcher struct {
	reactionRepo       contract.ReactionRepository
	recommendationRepo contract.RecommendationRepository
}

func NewMatcher(reactionRepo contract.ReactionRepository, recommendationRepo contract.RecommendationRepository) *Matcher {
	return &Matcher{
		reactionRepo:       reactionRepo,
		recommendationRepo: recommendationRepo,
	}
}

// MatchReaction scans the profile's common-tier reactions in position
// order and returns the first matching phrase, or "" when none match.
// A candidate with a stored condition is gated by that condition alone;
// only condition-less candidates fall back to keyword matching.
func (m *Matcher) MatchReaction(ctx context.Context, profileName, message string, stats trigger.SessionStats) (string, error) {
	candidates, err := m.reactionRepo.FindAll(ctx,
		specification.ByProfile{Profile: profileName},
		specification.ByRarity{Rarity: constant.ReactionRarityCommon},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return "", err
	}

	evalCtx := extract.Extract(message)
	evalCtx.SessionStats = stats

	for _, cand := range candidates {
		if cand.ActivationCondition != nil {
			if trigger.Evaluate(*cand.ActivationCondition, evalCtx) {
				return cand.Reaction, nil
			}
			continue
		}
		if cand.TriggerContext != nil && keywordMatch(*cand.TriggerContext, message) {
			return cand.Reaction, nil
		}
	}
	return "", nil
}

// MatchRecommendation does the same over can_lead recommendations. The
// candidate's own intensity is folded into the evaluation context so
// intensity conditions compare against it.
func (m *Matcher) MatchRecommendation(ctx context.Context, profileName, message string, stats trigger.SessionStats) (string, error) {
	candidates, err := m.recommendationRepo.FindAll(ctx,
		specification.ByProfile{Profile: profileName},
		specification.LeadingOnly{},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return "", err
	}

	base := extract.Extract(message)
	base.SessionStats = stats

	for _, cand := range candidates {
		if cand.TriggerCondition != nil {
			evalCtx := base
			if cand.Intensity != nil {
				evalCtx.Intensity = *cand.Intensity
			}
			if trigger.Evaluate(*cand.TriggerCondition, evalCtx) {
				return cand.Name, nil
			}
			continue
		}
		if cand.Trigger != nil && keywordMatch(*cand.Trigger, message) {
			return cand.Name, nil
		}
	}
	return "", nil
}

// keywordMatch splits a stored trigger phrase on commas and whitespace
// and reports whether any word occurs in the message.
func keywordMatch(triggerPhrase, message string) bool {
	lowered := strings.ToLower(message)
	for _, word := range triggerSplitPattern.Split(strings.ToLower(triggerPhrase), -1) {
		if word == "" {
			continue
		}
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
