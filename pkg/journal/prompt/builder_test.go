package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflecta-be/internal/entity"
	"reflecta-be/pkg/journal/meta"
)

func strPtr(s string) *string { return &s }

func testProfile() *entity.Profile {
	return &entity.Profile{
		Name:       "tukor",
		PromptCore: "Te vagy Tükör, egy csendes jelenlét.\n",
		StyleProfile: map[string]string{
			"pace": "slow",
		},
		Metadata: entity.ProfileMetadata{
			ProfileName:        "tukor",
			Domain:             "önreflexió",
			Worldview:          "minden érzés hírnök",
			Inspirations:       []string{"Rilke", "Weöres"},
			NotSuitableFor:     "akut krízis",
			StyleOptions:       map[string]string{"pace": "fast", "imagery": "natural"},
			ClosingTrigger:     "lezárom a napot",
			ClosingStyle:       "lágy, szimbolikus búcsú",
			PreferredContext:   "esti naplózás",
			ResponseFocus:      "belső ív",
			PrimaryMetaphors:   []string{"tükör", "folyó"},
			QuestionArchetypes: []string{"mi van most benned?"},
			InteractionRhythm:  "lassú, hagyj csendet",
		},
		Reactions: entity.ReactionSet{
			Common:  []string{"Értem.", "Hallom."},
			Typical: []string{"Maradj ezzel egy kicsit."},
			Rare:    []string{"Ez most fordulópontnak tűnik."},
		},
	}
}

func TestBuildNilProfile(t *testing.T) {
	assert.Equal(t, "", Build(nil, nil, meta.SessionMeta{}))
}

func TestBuildSectionOrder(t *testing.T) {
	out := Build(testProfile(), nil, meta.SessionMeta{})

	sections := []string{
		"Te vagy Tükör",
		"# IDENTITY",
		"# STYLE",
		"# REACTIONS",
		"# STRUCTURE & CONTENT",
		"# CLOSING",
		"# DEFAULT REPLY STRUCTURE",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}

	// No preferences were given, so the section is absent.
	assert.NotContains(t, out, "# USER PREFERENCES")
}

func TestBuildIdentityLines(t *testing.T) {
	out := Build(testProfile(), nil, meta.SessionMeta{})

	assert.Contains(t, out, "Worldview: minden érzés hírnök")
	assert.Contains(t, out, "Domain: önreflexió")
	assert.Contains(t, out, "Inspirations: Rilke, Weöres")
	assert.Contains(t, out, "Avoid if: akut krízis")
	assert.Contains(t, out, "Preferred context: esti naplózás")
	assert.Contains(t, out, "Response focus: belső ív")
}

func TestBuildStyleOverride(t *testing.T) {
	out := Build(testProfile(), nil, meta.SessionMeta{})

	// Persona override wins over the metadata option for pace.
	assert.Contains(t, out, "a slow and deliberate pace")
	assert.NotContains(t, out, "a brisk, energetic pace")
	assert.Contains(t, out, "imagery drawn from the natural world")
}

func TestBuildUnknownStyleValueSkipped(t *testing.T) {
	prof := testProfile()
	prof.StyleProfile["pace"] = "glacial"
	prof.Metadata.StyleOptions = map[string]string{"aura": "violet"}

	out := Build(prof, nil, meta.SessionMeta{})
	assert.NotContains(t, out, "# STYLE")
}

func TestBuildReactions(t *testing.T) {
	out := Build(testProfile(), nil, meta.SessionMeta{})
	assert.Contains(t, out, "- Common: Értem. | Hallom.")
	assert.Contains(t, out, "- Typical: Maradj ezzel egy kicsit.")
	assert.Contains(t, out, "- Rare: Ez most fordulópontnak tűnik.")

	prof := testProfile()
	prof.Reactions = entity.ReactionSet{}
	out = Build(prof, nil, meta.SessionMeta{})
	assert.NotContains(t, out, "# REACTIONS")
}

func TestBuildPreferences(t *testing.T) {
	prefs := &entity.UserPreferences{
		AnswerLength:   strPtr("very short"),
		TonePreference: strPtr("soothing"),
	}

	out := Build(testProfile(), prefs, meta.SessionMeta{})
	assert.Contains(t, out, "# USER PREFERENCES")
	assert.Contains(t, out, "keep responses very short")
	assert.Contains(t, out, "maintain a soothing tone")
}

func TestBuildSessionMetaToggles(t *testing.T) {
	prof := testProfile()

	out := Build(prof, nil, meta.SessionMeta{})
	assert.NotContains(t, out, "Short input")
	assert.NotContains(t, out, "If question")

	out = Build(prof, nil, meta.SessionMeta{
		IsShortEntry:    true,
		IsQuestion:      true,
		IsReflective:    true,
		ShowsRepetition: true,
	})
	assert.Contains(t, out, "gently acknowledge the pause")
	assert.Contains(t, out, "Short input: reply concisely and softly.")
	assert.Contains(t, out, "If question: answer directly first, then elaborate.")
	assert.Contains(t, out, "If introspective: respond in meditative rhythm.")
}

func TestBuildClosing(t *testing.T) {
	prof := testProfile()

	out := Build(prof, nil, meta.SessionMeta{})
	assert.Contains(t, out, `Closure trigger: "lezárom a napot", then use: lágy, szimbolikus búcsú`)
	assert.NotContains(t, out, "This is a closure.")

	out = Build(prof, nil, meta.SessionMeta{IsClosing: true})
	assert.Contains(t, out, "This is a closure. Do not ask follow-up questions.")
	assert.Contains(t, out, "Avoid prompting continuation.")
}

func TestBuildDeterministic(t *testing.T) {
	prefs := &entity.UserPreferences{StyleMode: strPtr("symbolic")}
	m := meta.SessionMeta{IsReflective: true}

	first := Build(testProfile(), prefs, m)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(testProfile(), prefs, m))
	}
}
