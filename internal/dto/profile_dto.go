package dto

// ProfileConfigResponse is the public slice of a persona's
// configuration that the chat UI needs to drive a conversation.
type ProfileConfigResponse struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Domain          string   `json:"domain,omitempty"`
	Worldview       string   `json:"worldview,omitempty"`
	NotSuitableFor  string   `json:"notSuitableFor,omitempty"`
	StartingPrompts []string `json:"startingPrompts,omitempty"`
	ClosingTrigger  string   `json:"closingTrigger"`
	ClosingStyle    string   `json:"closingStyle,omitempty"`
}
