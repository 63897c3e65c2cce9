package handlers

import (
	"errors"
	"net/http"

	"courtside/internal/catalog"
	"courtside/internal/notifier"

	"github.com/charmbracelet/log"
)

// EntityHandler serves one entity collection: list and get-by-id on GET,
// create on POST, shallow-merge patch on PUT/PATCH, delete on DELETE. An
// optional list function replaces the plain All for filtered listings.
func EntityHandler[T any](acc *catalog.Accessor[T], notif notifier.Notifier, list func(r *http.Request) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rawID := r.URL.Query().Get("id")
			if rawID == "" {
				var collection []T
				var err error
				if list != nil {
					collection, err = list(r)
				} else {
					collection, err = acc.All(r.Context())
				}
				if err != nil {
					http.Error(w, "Failed to list entities", http.StatusInternalServerError)
					log.Error("Failed to list entities", "error", err, "key", acc.Key())
					return
				}
				writeJSON(w, http.StatusOK, collection)
				return
			}

			id, err := catalog.ParseID(rawID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			entity, err := acc.ByID(r.Context(), id)
			if errors.Is(err, catalog.ErrNotFound) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, "Failed to get entity", http.StatusInternalServerError)
				log.Error("Failed to get entity", "error", err, "key", acc.Key(), "id", id)
				return
			}
			writeJSON(w, http.StatusOK, entity)

		case http.MethodPost:
			var entity T
			if err := decodeBody(r, &entity); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if IsDryRunFromContext(r) {
				log.Info("[Dry Run] Would create entity", "key", acc.Key())
				writeJSON(w, http.StatusOK, entity)
				return
			}
			created, err := acc.Create(r.Context(), entity)
			if err != nil {
				reportWriteFailure(notif, acc.Key(), err)
				http.Error(w, "Failed to create entity", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusCreated, created)

		case http.MethodPut, http.MethodPatch:
			id, err := catalog.ParseID(r.URL.Query().Get("id"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			var patch map[string]any
			if err := decodeBody(r, &patch); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if IsDryRunFromContext(r) {
				log.Info("[Dry Run] Would update entity", "key", acc.Key(), "id", id)
				w.Write([]byte("OK"))
				return
			}
			updated, err := acc.Update(r.Context(), id, patch)
			if errors.Is(err, catalog.ErrNotFound) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
			if err != nil {
				reportWriteFailure(notif, acc.Key(), err)
				http.Error(w, "Failed to update entity", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, updated)

		case http.MethodDelete:
			id, err := catalog.ParseID(r.URL.Query().Get("id"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if IsDryRunFromContext(r) {
				log.Info("[Dry Run] Would remove entity", "key", acc.Key(), "id", id)
				writeJSON(w, http.StatusOK, map[string]bool{"removed": false})
				return
			}
			removed, err := acc.Remove(r.Context(), id)
			if err != nil {
				reportWriteFailure(notif, acc.Key(), err)
				http.Error(w, "Failed to remove entity", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func reportWriteFailure(notif notifier.Notifier, key string, err error) {
	log.Error("Store write failed", "key", key, "error", err)
	if notifErr := notif.SendWriteFailure(key, err.Error()); notifErr != nil {
		log.Error("Failed to report store write failure", "error", notifErr)
	}
}

// CoachesHandler lists coaches, optionally filtered by ?sport=.
func CoachesHandler(cat *catalog.Catalog, notif notifier.Notifier) http.HandlerFunc {
	return EntityHandler(cat.Coaches, notif, func(r *http.Request) ([]catalog.Coach, error) {
		if sport := r.URL.Query().Get("sport"); sport != "" {
			return cat.CoachesBySpecialization(r.Context(), sport)
		}
		return cat.Coaches.All(r.Context())
	})
}

// GroundsHandler lists grounds, optionally filtered by ?sport=.
func GroundsHandler(cat *catalog.Catalog, notif notifier.Notifier) http.HandlerFunc {
	return EntityHandler(cat.Grounds, notif, func(r *http.Request) ([]catalog.Ground, error) {
		if sport := r.URL.Query().Get("sport"); sport != "" {
			return cat.GroundsBySport(r.Context(), sport)
		}
		return cat.Grounds.All(r.Context())
	})
}

// ProductsHandler lists products, filtered by ?category= (equality) or
// ?q= (substring search over name and brand).
func ProductsHandler(cat *catalog.Catalog, notif notifier.Notifier) http.HandlerFunc {
	return EntityHandler(cat.Products, notif, func(r *http.Request) ([]catalog.Product, error) {
		if category := r.URL.Query().Get("category"); category != "" {
			return cat.ProductsByCategory(r.Context(), category)
		}
		if query := r.URL.Query().Get("q"); query != "" {
			return cat.SearchProducts(r.Context(), query)
		}
		return cat.Products.All(r.Context())
	})
}

// NewsHandler lists news, optionally restricted to published articles.
func NewsHandler(cat *catalog.Catalog, notif notifier.Notifier) http.HandlerFunc {
	return EntityHandler(cat.News, notif, func(r *http.Request) ([]catalog.NewsArticle, error) {
		if r.URL.Query().Get("published") == "true" {
			return cat.PublishedNews(r.Context())
		}
		return cat.News.All(r.Context())
	})
}

// BookingsHandler serves one booking collection, optionally filtered by
// ?userId=. Ground and coach bookings share the shape but live under
// separate keys.
func BookingsHandler(cat *catalog.Catalog, bookings *catalog.Accessor[catalog.Booking], notif notifier.Notifier) http.HandlerFunc {
	return EntityHandler(bookings, notif, func(r *http.Request) ([]catalog.Booking, error) {
		if rawUser := r.URL.Query().Get("userId"); rawUser != "" {
			userID, err := catalog.ParseID(rawUser)
			if err != nil {
				return nil, err
			}
			return cat.BookingsByUser(r.Context(), bookings, userID)
		}
		return bookings.All(r.Context())
	})
}

// NewsViewHandler bumps the view counter for one article.
func NewsViewHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := catalog.ParseID(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		article, err := cat.RecordView(r.Context(), id)
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to record view", http.StatusInternalServerError)
			log.Error("Failed to record view", "error", err, "id", id)
			return
		}
		writeJSON(w, http.StatusOK, article)
	}
}
