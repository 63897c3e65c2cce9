package handlers

import (
	"fmt"
	"net/http"

	"courtside/internal/store"

	"github.com/charmbracelet/log"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ClearStoreHandler clears a single key, or the whole store when no key
// is given. Clearing a seeded key is the only way to trigger a re-seed.
func ClearStoreHandler(kv store.KV) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would clear store", "key", key)
			fmt.Fprint(w, "Dry run, nothing cleared")
			return
		}
		if key != "" {
			log.Info("Received request to clear a specific key", "key", key)
			if _, err := kv.Remove(r.Context(), key); err != nil {
				http.Error(w, "Failed to clear key", http.StatusInternalServerError)
				log.Error("Failed to clear key", "error", err, "key", key)
				return
			}
			fmt.Fprintf(w, "Cleared key %s from store!", key)
			return
		}
		log.Info("Received request to clear entire store")
		if err := kv.Clear(r.Context()); err != nil {
			http.Error(w, "Failed to clear store", http.StatusInternalServerError)
			log.Error("Failed to clear store", "error", err)
			return
		}
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}
