package domain

// Event names broadcast to local listeners. These mirror the wire names
// the node editor's front end subscribes to, so they are snake_case.
const (
	// EventTriggerWords carries the trigger words resolved for the
	// currently active entries of a node.
	EventTriggerWords = "trigger_word_update"
	// EventLoraCode carries a lora spec text update for one node or all.
	EventLoraCode = "lora_code_update"
	// EventWidgetUpdate carries an opaque widget refresh payload.
	EventWidgetUpdate = "lm_widget_update"
	// EventRegistryRefresh asks the node registry to re-scan the graph.
	EventRegistryRefresh = "lora_registry_refresh"
)

// CodeMode selects how an inbound lora code payload is applied to the
// node's existing text.
type CodeMode string

const (
	// CodeAppend joins the payload onto the existing text.
	CodeAppend CodeMode = "append"
	// CodeReplace substitutes the payload for the existing text.
	CodeReplace CodeMode = "replace"
)

// LoraCodePayload is the inbound lora_code_update event body. NodeID of
// BroadcastID targets every registered node of the graph.
type LoraCodePayload struct {
	NodeID  NodeID   `json:"node_id"`
	GraphID string   `json:"graph_id"`
	Code    string   `json:"lora_code"`
	Mode    CodeMode `json:"mode"`
}

// TriggerWordsPayload is the outbound trigger_word_update event body.
type TriggerWordsPayload struct {
	NodeID NodeID   `json:"node_id"`
	Words  []string `json:"trigger_words"`
}
