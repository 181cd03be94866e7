package constant

const (
	EntryRoleUser      = "user"
	EntryRoleAssistant = "assistant"
	EntryRoleSystem    = "system"

	ReactionRarityCommon  = "common"
	ReactionRarityTypical = "typical"
	ReactionRarityRare    = "rare"

	EventSessionFirstEntry       = "session_first_entry"
	EventSessionLastEntry        = "session_last_entry"
	EventReactionTriggered       = "reaction_triggered"
	EventRecommendationTriggered = "recommendation_triggered"

	// Topics for the in-process event bus.
	SystemEventTopic = "SYSTEM_EVENT"
	TokenUsageTopic  = "TOKEN_USAGE"
)

const (
	// RespondHistoryLimit caps how many prior entries are sent to the
	// completion service for a normal turn.
	RespondHistoryLimit = 20

	// LabelHistoryLimit caps how many entries feed label generation.
	LabelHistoryLimit = 25

	// MinClosureReplyLength is the minimum accepted length of a generated
	// closing reflection before falling back to the generic line.
	MinClosureReplyLength = 10

	// MinUserEntriesForClosure is the number of user entries required for
	// a full closing pipeline; below it the degenerate fallback applies.
	MinUserEntriesForClosure = 2

	DefaultLabelConfidence = 0.9
)

// Fixed Hungarian surface texts. The wording is part of the product, not
// of the pipeline logic, so they live here as plain constants.
const (
	SessionAlreadyClosedLabel = "[már lezárt]"

	FallbackSessionLabel = "Általános naplózás"

	// Used when the session has too little user history for a reflection.
	ClosureFallbackDegenerate = "Köszönöm a megosztásaidat. Ezzel a szakasz most lezárul."

	// Used when the generated reflection comes back too short.
	ClosureFallbackGeneric = "Köszönöm, hogy itt voltál. A szakasz most lezárult."

	SystemClosureEntryFormat = "Szakasz lezárása: %s"

	AvoidanceRedirectReply = "Ez a téma túlmutat ezen a naplózó téren. " +
		"Ha nehéz időszakon mész keresztül, kérlek fordulj szakemberhez vagy egy hozzád közel álló emberhez. " +
		"Itt bármikor folytathatjuk egy másik szálon."

	ClosureDetectedWarning = "Session closure detected – call the session close endpoint instead of requesting a reply."
)

// LanguageTonePreamble is prepended to every system prompt sent to the
// completion service.
const LanguageTonePreamble = "Kérlek, magyar nyelven fogalmazz. " +
	"Hangnemed legyen természetes, lágy, és a naplózás teréhez illeszkedő. " +
	"Ne magyarázz, ne zárd le túl direkt módon – inkább csak tükrözd vissza a belső ívet."

// LabelerSystemPrompt instructs the completion service to compress a
// session into a 1-4 word label.
const LabelerSystemPrompt = `You are a helpful assistant that summarizes self-reflection sessions in 1–4 words.
Return a compact and intuitive label for the emotional or thematic content of the conversation.
Do not explain. Just return the label as a short phrase.`
