package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"courtside/internal/session"
	"courtside/internal/signal"

	"github.com/charmbracelet/log"
)

// SessionRefreshHandler receives session-changed push messages and applies
// them to the local session state.
func SessionRefreshHandler(sessions *session.Manager, bus signal.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received session refresh message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		event := signal.SessionEvent{}
		if err := bus.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode session event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would apply session change", "email", event.Email, "action", event.Action)
			w.Write([]byte("OK"))
			return
		}
		if err := sessions.Refresh(r.Context(), event); err != nil {
			log.Error("Failed to apply session change", "error", err)
			http.Error(w, "Failed to apply session change", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
