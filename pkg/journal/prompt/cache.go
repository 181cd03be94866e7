package prompt

import (
	"encoding/json"

	"github.com/patrickmn/go-cache"

	"reflecta-be/internal/entity"
	"reflecta-be/pkg/journal/meta"
)

// Cache memoizes Build results for the process lifetime. Because Build
// is deterministic, a race that recomputes the same key twice is
// harmless. Instantiate one per container so tests stay isolated.
type Cache struct {
	builds *cache.Cache
}

func NewCache() *Cache {
	return &Cache{
		builds: cache.New(cache.NoExpiration, 0),
	}
}

// normalizedPrefs is the canonical key form of UserPreferences: every
// recognized field defaulted to "" so that an absent struct and a
// struct of nil fields hash identically.
type normalizedPrefs struct {
	AnswerLength   string `json:"answer_length"`
	StyleMode      string `json:"style_mode"`
	GuidanceMode   string `json:"guidance_mode"`
	TonePreference string `json:"tone_preference"`
}

func normalizePrefs(prefs *entity.UserPreferences) normalizedPrefs {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	if prefs == nil {
		return normalizedPrefs{}
	}
	return normalizedPrefs{
		AnswerLength:   deref(prefs.AnswerLength),
		StyleMode:      deref(prefs.StyleMode),
		GuidanceMode:   deref(prefs.GuidanceMode),
		TonePreference: deref(prefs.TonePreference),
	}
}

type cacheKey struct {
	Name        string             `json:"name"`
	PromptCore  string             `json:"prompt_core"`
	Style       map[string]string  `json:"style"`
	Reactions   entity.ReactionSet `json:"reactions"`
	Preferences normalizedPrefs    `json:"preferences"`
	Meta        meta.SessionMeta   `json:"meta"`
}

func keyFor(profile *entity.Profile, prefs *entity.UserPreferences, m meta.SessionMeta) string {
	// json.Marshal emits map keys sorted, so the serialization is
	// canonical for equivalent style maps too.
	raw, _ := json.Marshal(cacheKey{
		Name:        profile.Name,
		PromptCore:  profile.PromptCore,
		Style:       resolveStyle(profile),
		Reactions:   profile.Reactions,
		Preferences: normalizePrefs(prefs),
		Meta:        m,
	})
	return string(raw)
}

// Get returns the memoized prompt for the given inputs, building and
// storing it on a miss.
func (c *Cache) Get(profile *entity.Profile, prefs *entity.UserPreferences, m meta.SessionMeta) string {
	if profile == nil {
		return ""
	}
	key := keyFor(profile, prefs, m)
	if cached, found := c.builds.Get(key); found {
		return cached.(string)
	}
	built := Build(profile, prefs, m)
	c.builds.Set(key, built, cache.NoExpiration)
	return built
}

func (c *Cache) Clear() {
	c.builds.Flush()
}
