package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/lorabridge/lorabridge/internal/core/domain"
)

// handleLocal answers a broadcast route without touching the remote.
// The event goes out on the bus for local subscribers; the HTTP caller
// only gets an ack, success of the broadcast is not its concern.
func (h *Handler) handleLocal(w http.ResponseWriter, r *http.Request, rule Rule) {
	switch rule.Event {
	case domain.EventTriggerWords:
		h.localTriggerWords(w, r)
	case domain.EventLoraCode:
		var payload domain.LoraCodePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
			return
		}
		h.bus.Publish(rule.Event, payload)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		var payload map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&payload)
		}
		h.bus.Publish(rule.Event, payload)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// localTriggerWords resolves trigger words for the posted lora names
// through the metadata client, then broadcasts them to each addressed
// node. Without node ids the result goes out as a broadcast.
func (h *Handler) localTriggerWords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoraNames []string        `json:"lora_names"`
		NodeIDs   []domain.NodeID `json:"node_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}

	seen := make(map[string]struct{})
	var words []string
	for _, name := range req.LoraNames {
		resolved, err := h.meta.TriggerWords(r.Context(), name)
		if err != nil {
			h.logger.Warn("trigger words for " + name + ": " + err.Error())
			continue
		}
		for _, word := range resolved {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}

	targets := req.NodeIDs
	if len(targets) == 0 {
		targets = []domain.NodeID{domain.BroadcastID}
	}
	for _, id := range targets {
		h.bus.Publish(domain.EventTriggerWords, domain.TriggerWordsPayload{NodeID: id, Words: words})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trigger_words": words})
}
