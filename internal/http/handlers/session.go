package handlers

import (
	"errors"
	"net/http"

	"courtside/internal/catalog"
	"courtside/internal/session"

	"github.com/charmbracelet/log"
)

// LoginHandler authenticates a user. Validation problems come back as a
// 401 with the message list; only store faults surface as 500s.
func LoginHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		current, problems, err := sessions.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			http.Error(w, "Login failed", http.StatusInternalServerError)
			log.Error("Login failed", "error", err)
			return
		}
		if len(problems) > 0 {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"errors": problems})
			return
		}
		writeJSON(w, http.StatusOK, current)
	}
}

// LogoutHandler clears the current session.
func LogoutHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := sessions.Logout(r.Context()); err != nil {
			http.Error(w, "Logout failed", http.StatusInternalServerError)
			log.Error("Logout failed", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

// CurrentUserHandler returns the logged-in user or 404 when nobody is.
func CurrentUserHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok, err := sessions.Current(r.Context())
		if err != nil {
			http.Error(w, "Failed to read session", http.StatusInternalServerError)
			log.Error("Failed to read session", "error", err)
			return
		}
		if !ok {
			http.Error(w, "Not logged in", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, current)
	}
}

// CartHandler serves the cart: GET lists lines, POST adds a product,
// DELETE removes one line by ?lineId= or clears the whole cart.
func CartHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			lines, err := sessions.CartLines(r.Context())
			if err != nil {
				http.Error(w, "Failed to read cart", http.StatusInternalServerError)
				log.Error("Failed to read cart", "error", err)
				return
			}
			writeJSON(w, http.StatusOK, lines)

		case http.MethodPost:
			var body struct {
				ProductID int64 `json:"productId"`
				Quantity  int   `json:"quantity"`
			}
			if err := decodeBody(r, &body); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			line, err := sessions.AddToCart(r.Context(), body.ProductID, body.Quantity)
			if errors.Is(err, catalog.ErrNotFound) {
				http.Error(w, "Product not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
				log.Error("Failed to add to cart", "error", err, "productId", body.ProductID)
				return
			}
			writeJSON(w, http.StatusCreated, line)

		case http.MethodDelete:
			lineID := r.URL.Query().Get("lineId")
			if lineID == "" {
				if err := sessions.ClearCart(r.Context()); err != nil {
					http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
					log.Error("Failed to clear cart", "error", err)
					return
				}
				writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
				return
			}
			removed, err := sessions.RemoveCartLine(r.Context(), lineID)
			if err != nil {
				http.Error(w, "Failed to remove cart line", http.StatusInternalServerError)
				log.Error("Failed to remove cart line", "error", err, "lineId", lineID)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
