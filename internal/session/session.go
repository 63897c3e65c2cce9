package session

import (
	"context"
	"strings"
	"time"

	"courtside/internal/catalog"
	"courtside/internal/signal"
	"courtside/internal/store"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Store keys owned by the session layer.
const (
	KeyCurrentUser      = "currentUser"
	KeySessionTimestamp = "sessionTimestamp"
	KeyCart             = "cart"
)

// CurrentUser is the logged-in identity persisted under KeyCurrentUser.
// The password never leaves the users collection.
type CurrentUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CartLine is one entry in the persisted cart.
type CartLine struct {
	LineID    string  `json:"lineId"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Manager owns the session and cart keys. Changes to the current user are
// broadcast on the signal bus so other instances refresh their auth
// display state; nothing is reconciled, last write wins.
type Manager struct {
	kv      store.KV
	catalog *catalog.Catalog
	bus     signal.Bus
	now     func() time.Time
}

// New creates a session Manager.
func New(kv store.KV, cat *catalog.Catalog, bus signal.Bus) *Manager {
	return &Manager{
		kv:      kv,
		catalog: cat,
		bus:     bus,
		now:     time.Now,
	}
}

// Login validates the credentials and, on success, persists the current
// user and session timestamp. Validation failures come back as a list of
// human-readable messages, never as a fault.
func (m *Manager) Login(ctx context.Context, email, password string) (CurrentUser, []string, error) {
	var problems []string
	email = strings.TrimSpace(email)
	if email == "" {
		problems = append(problems, "Email is required.")
	} else if !strings.Contains(email, "@") {
		problems = append(problems, "Email address is not valid.")
	}
	if password == "" {
		problems = append(problems, "Password is required.")
	}
	if len(problems) > 0 {
		return CurrentUser{}, problems, nil
	}

	user, err := m.catalog.UserByEmail(ctx, email)
	if err == catalog.ErrNotFound {
		return CurrentUser{}, []string{"No account found for that email."}, nil
	}
	if err != nil {
		return CurrentUser{}, nil, err
	}
	if user.Password != password {
		return CurrentUser{}, []string{"Incorrect password."}, nil
	}

	current := CurrentUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	if err := store.SetJSON(ctx, m.kv, KeyCurrentUser, current); err != nil {
		return CurrentUser{}, nil, err
	}
	if err := store.SetJSON(ctx, m.kv, KeySessionTimestamp, m.now().UnixMilli()); err != nil {
		return CurrentUser{}, nil, err
	}

	m.publish(signal.SessionEvent{Email: current.Email, Action: "login", Timestamp: m.now().UnixMilli()})
	log.Info("User logged in", "email", current.Email, "role", current.Role)
	return current, nil, nil
}

// Logout clears the session keys.
func (m *Manager) Logout(ctx context.Context) error {
	current, ok, err := m.Current(ctx)
	if err != nil {
		return err
	}
	if _, err := m.kv.Remove(ctx, KeyCurrentUser); err != nil {
		return err
	}
	if _, err := m.kv.Remove(ctx, KeySessionTimestamp); err != nil {
		return err
	}
	if ok {
		m.publish(signal.SessionEvent{Email: current.Email, Action: "logout", Timestamp: m.now().UnixMilli()})
		log.Info("User logged out", "email", current.Email)
	}
	return nil
}

// Current returns the logged-in user, if any.
func (m *Manager) Current(ctx context.Context) (CurrentUser, bool, error) {
	var current CurrentUser
	ok, err := store.GetJSON(ctx, m.kv, KeyCurrentUser, &current)
	if err != nil {
		return CurrentUser{}, false, err
	}
	return current, ok, nil
}

// Refresh applies a session change broadcast by another instance. A
// logout for the stored user clears the local session keys; everything
// else is display-only, so last write wins and nothing is reconciled.
func (m *Manager) Refresh(ctx context.Context, event signal.SessionEvent) error {
	if event.Action != "logout" {
		log.Debug("Session change observed", "email", event.Email, "action", event.Action)
		return nil
	}
	current, ok, err := m.Current(ctx)
	if err != nil {
		return err
	}
	if !ok || !strings.EqualFold(current.Email, event.Email) {
		return nil
	}
	if _, err := m.kv.Remove(ctx, KeyCurrentUser); err != nil {
		return err
	}
	if _, err := m.kv.Remove(ctx, KeySessionTimestamp); err != nil {
		return err
	}
	log.Info("Session cleared after remote logout", "email", event.Email)
	return nil
}

// publish is best-effort; a broken bus never fails the session operation.
func (m *Manager) publish(event signal.SessionEvent) {
	if m.bus == nil {
		return
	}
	if err := m.bus.SendMessage(signal.TopicSessionChanged, event); err != nil {
		log.Error("Failed to publish session change", "error", err)
	}
}

// AddToCart appends a line for the given product.
func (m *Manager) AddToCart(ctx context.Context, productID int64, quantity int) (CartLine, error) {
	if quantity <= 0 {
		quantity = 1
	}
	product, err := m.catalog.Products.ByID(ctx, productID)
	if err != nil {
		return CartLine{}, err
	}

	line := CartLine{
		LineID:    uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	}

	lines, err := m.CartLines(ctx)
	if err != nil {
		return CartLine{}, err
	}
	lines = append(lines, line)
	if err := store.SetJSON(ctx, m.kv, KeyCart, lines); err != nil {
		return CartLine{}, err
	}
	return line, nil
}

// CartLines returns the persisted cart, empty when none exists.
func (m *Manager) CartLines(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if _, err := store.GetJSON(ctx, m.kv, KeyCart, &lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []CartLine{}
	}
	return lines, nil
}

// RemoveCartLine drops one line by its id and reports whether the cart
// shrank.
func (m *Manager) RemoveCartLine(ctx context.Context, lineID string) (bool, error) {
	lines, err := m.CartLines(ctx)
	if err != nil {
		return false, err
	}
	kept := lines[:0:0]
	for _, line := range lines {
		if line.LineID != lineID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return false, nil
	}
	if err := store.SetJSON(ctx, m.kv, KeyCart, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ClearCart removes the cart key entirely.
func (m *Manager) ClearCart(ctx context.Context) error {
	_, err := m.kv.Remove(ctx, KeyCart)
	return err
}
