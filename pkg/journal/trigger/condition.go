package trigger

// Threshold is a minimum-count rule used by several predicates.
type Threshold struct {
	Gte int `json:"gte"`
}

// TopicLoopRule gates on the session-stat topic loop flag.
type TopicLoopRule struct {
	WithinSessions bool `json:"within_sessions"`
}

// Condition is one node of the profile-defined rule tree. Exactly one
// predicate field is expected per node; when several are set, Evaluate
// dispatches on the first one in the declared order. A node with no
// recognized field evaluates to false.
//
// The JSON tags match the shapes stored in the activation_condition and
// trigger_condition jsonb columns.
type Condition struct {
	Keyword          string               `json:"keyword,omitempty"`
	Intensity        string               `json:"intensity,omitempty"`
	EntryLength      string               `json:"entryLength,omitempty"`
	EmotionTag       string               `json:"emotion_tag,omitempty"`
	KeywordCount     map[string]Threshold `json:"keyword_count,omitempty"`
	SymbolicLanguage *bool                `json:"symbolic_language,omitempty"`
	AbstractDensity  *Threshold           `json:"abstract_density,omitempty"`
	ParadoxFlag      *bool                `json:"paradox_flag,omitempty"`
	SessionSilence   *Threshold           `json:"session_silence,omitempty"`
	NumbnessMentions *Threshold           `json:"numbness_mentions,omitempty"`
	TopicLoop        *TopicLoopRule       `json:"topic_loop,omitempty"`
	And              []Condition          `json:"and,omitempty"`
	Or               []Condition          `json:"or,omitempty"`
}

// Features are the per-message signals the extractor derives.
type Features struct {
	SymbolicLanguage bool `json:"symbolic_language"`
	AbstractDensity  int  `json:"abstract_density"`
	NumbnessMentions int  `json:"numbness_mentions"`
	ParadoxFlag      bool `json:"paradox_flag"`
}

// SessionStats carry per-session signals. Nil pointers mean "unknown";
// predicates over unknown stats fail closed.
type SessionStats struct {
	SilenceSeconds *int  `json:"silence_seconds,omitempty"`
	TopicLoop      *bool `json:"topic_loop,omitempty"`
}

// Context is what a Condition is evaluated against.
type Context struct {
	Message      string       `json:"message"`
	EntryLength  int          `json:"entry_length"`
	Intensity    string       `json:"intensity,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Features     Features     `json:"features"`
	SessionStats SessionStats `json:"session_stats"`
}
