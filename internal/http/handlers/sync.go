package handlers

import (
	"net/http"

	"courtside/internal/syncer"

	"github.com/charmbracelet/log"
)

// SeedHandler triggers fixture seeding. With ?key= it seeds one key,
// otherwise it walks every configured key. Already-seeded keys are
// untouched either way.
func SeedHandler(sync syncer.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		keys := syncer.AllKeys()
		if key := r.URL.Query().Get("key"); key != "" {
			keys = []string{key}
		}

		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would seed keys", "keys", keys)
			w.Write([]byte("OK"))
			return
		}

		for _, key := range keys {
			if err := sync.EnsureLoaded(r.Context(), key); err != nil {
				http.Error(w, "Failed to seed key: "+key, http.StatusInternalServerError)
				log.Error("Failed to seed key", "key", key, "error", err)
				return
			}
		}
		log.Info("Seeding complete", "keys", keys)
		w.Write([]byte("OK"))
	}
}
