package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courtside/internal/catalog"
	"courtside/internal/config"
	"courtside/internal/database"
	"courtside/internal/fixtures"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/session"
	"courtside/internal/signal"
	"courtside/internal/store"
	"courtside/internal/syncer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, loader fixtures.Loader, notif notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	kv := store.NewSQLite(db)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	bus := signal.NewMock()
	sync := syncer.New(loader, kv, metricsSvc, notif, syncer.DefaultSources())
	cat := catalog.New(kv, sync)
	sessions := session.New(kv, cat, bus)
	server := NewServer(kv, cat, sync, sessions, metricsSvc, metricsHandler, cfg, notif, bus)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

// fixtureLoader builds a mock loader serving the given fixture bodies and
// returning a 404-style error for everything else.
func fixtureLoader(data map[string]string) *fixtures.MockLoader {
	loader := fixtures.NewMockLoader()
	loader.FetchFunc = func(name string) ([]byte, error) {
		body, ok := data[name]
		if !ok {
			return nil, fmt.Errorf("fixture %s: unexpected status 404", name)
		}
		return []byte(body), nil
	}
	return loader
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, fixtures.NewMockLoader(), notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestListCoachesSeedsFromFixture(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"coaches.json": `[{"id": 1, "name": "Ava Torres", "specialization": ["tennis"], "hourlyRate": 40, "status": "active"}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/coaches", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ava Torres")
	assert.Equal(t, 1, loader.CallCount("coaches.json"))

	// A second listing is served from the store, not the fixture.
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, loader.CallCount("coaches.json"))
}

func TestListCoachesFallsBackToAggregate(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"data.json": `{"featuredCoaches": [{"id": 2, "name": "Ben Okafor"}]}`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/coaches", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ben Okafor")
	assert.Equal(t, 1, loader.CallCount("coaches.json"))
	assert.Equal(t, 1, loader.CallCount("data.json"))
}

func TestCoachesFilterBySport(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"coaches.json": `[
			{"id": 1, "name": "Ava Torres", "specialization": ["Tennis"]},
			{"id": 2, "name": "Ben Okafor", "specialization": ["Cricket"]}
		]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/coaches?sport=tennis", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ava Torres")
	assert.NotContains(t, rr.Body.String(), "Ben Okafor")
}

func TestProductCRUD(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"products.json": `[{"id": 10, "name": "Graphite Racket", "brand": "Volt", "category": "rackets", "price": 120, "stock": 3, "inStock": true}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	t.Run("create", func(t *testing.T) {
		body := strings.NewReader(`{"name": "Pro Shuttle", "brand": "Volt", "category": "shuttles", "price": 15, "stock": 0}`)
		req, err := http.NewRequest("POST", "/products", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var created catalog.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.False(t, created.InStock, "zero stock must come back out of stock")
	})

	t.Run("update", func(t *testing.T) {
		body := strings.NewReader(`{"price": 99.5, "stock": 0}`)
		req, err := http.NewRequest("PATCH", "/products?id=10", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var updated catalog.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		assert.Equal(t, int64(10), updated.ID)
		assert.Equal(t, 99.5, updated.Price)
		assert.Equal(t, "Graphite Racket", updated.Name, "unpatched fields survive")
		assert.False(t, updated.InStock)
	})

	t.Run("update missing id", func(t *testing.T) {
		body := strings.NewReader(`{"price": 1}`)
		req, err := http.NewRequest("PATCH", "/products?id=999", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req, err := http.NewRequest("DELETE", "/products?id=10", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"removed":true`)

		req, err = http.NewRequest("GET", "/products?id=10", nil)
		require.NoError(t, err)
		rr = httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateDryRunDoesNotPersist(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"products.json": `[]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	body := strings.NewReader(`{"name": "Pro Shuttle", "stock": 5}`)
	req, err := http.NewRequest("POST", "/products?dry_run=true", body)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req, err = http.NewRequest("GET", "/products", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
	assert.Empty(t, products)
}

func TestClearKeyTriggersReseed(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"grounds.json": `[{"id": 1, "name": "Center Court"}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/grounds", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, loader.CallCount("grounds.json"))

	req, err = http.NewRequest("POST", "/clear?key=grounds", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req, err = http.NewRequest("GET", "/grounds", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, loader.CallCount("grounds.json"), "cleared key is seeded again on next read")
}

func TestSeedHandler(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"users.json":        `[]`,
		"coaches.json":      `[]`,
		"grounds.json":      `[]`,
		"products.json":     `[]`,
		"news.json":         `[]`,
		"applications.json": `[]`,
		"activity.json":     `[]`,
		"data.json":         `{"groundBookings": [], "coachBookings": []}`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("POST", "/seed", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	keys, err := server.KV.Keys(req.Context())
	require.NoError(t, err)
	assert.Len(t, keys, len(syncer.AllKeys()))
}

func TestSeedFailureDegradesToEmpty(t *testing.T) {
	loader := fixtureLoader(nil)
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, loader, mockNotifier)
	defer teardown()

	req, err := http.NewRequest("GET", "/coaches", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
	assert.Equal(t, 1, mockNotifier.SeedFailures())
}

func TestLoginHandler(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"users.json": `[{"id": 1, "email": "ava@example.com", "password": "hunter2", "name": "Ava Torres", "role": "player"}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	t.Run("success", func(t *testing.T) {
		body := strings.NewReader(`{"email": "AVA@example.com", "password": "hunter2"}`)
		req, err := http.NewRequest("POST", "/session/login", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Ava Torres")

		bus := server.Bus.(*signal.MockBus)
		assert.Equal(t, 1, bus.Published(signal.TopicSessionChanged))

		req, err = http.NewRequest("GET", "/session/current", nil)
		require.NoError(t, err)
		rr = httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hunter2", "password never leaves the users collection")
	})

	t.Run("wrong password", func(t *testing.T) {
		body := strings.NewReader(`{"email": "ava@example.com", "password": "nope"}`)
		req, err := http.NewRequest("POST", "/session/login", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Incorrect password.")
	})

	t.Run("validation problems", func(t *testing.T) {
		body := strings.NewReader(`{"email": "not-an-email", "password": ""}`)
		req, err := http.NewRequest("POST", "/session/login", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email address is not valid.")
		assert.Contains(t, rr.Body.String(), "Password is required.")
	})

	t.Run("logout", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/session/logout", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		req, err = http.NewRequest("GET", "/session/current", nil)
		require.NoError(t, err)
		rr = httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCartHandler(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"products.json": `[{"id": 10, "name": "Graphite Racket", "price": 120, "stock": 3, "inStock": true}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	body := strings.NewReader(`{"productId": 10, "quantity": 2}`)
	req, err := http.NewRequest("POST", "/cart", body)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var line session.CartLine
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &line))
	assert.NotEmpty(t, line.LineID)
	assert.Equal(t, 2, line.Quantity)

	req, err = http.NewRequest("GET", "/cart", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Graphite Racket")

	req, err = http.NewRequest("DELETE", "/cart?lineId="+line.LineID, nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"removed":true`)

	t.Run("unknown product", func(t *testing.T) {
		body := strings.NewReader(`{"productId": 999}`)
		req, err := http.NewRequest("POST", "/cart", body)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestBookingsFilterByUser(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"data.json": `{"groundBookings": [
			{"id": 1, "userId": 2, "itemName": "Center Court", "status": "Confirmed"},
			{"id": 2, "userId": 3, "itemName": "Turf Park", "status": "Pending"}
		]}`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/ground-bookings?userId=2", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Center Court")
	assert.NotContains(t, rr.Body.String(), "Turf Park")
}

func TestNewsViewHandler(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"news.json": `[{"id": 5, "title": "Season Opener", "status": "published", "views": 7}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("POST", "/news/view?id=5", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var article catalog.NewsArticle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &article))
	assert.Equal(t, int64(8), article.Views)
}

func TestSessionRefreshHandler(t *testing.T) {
	loader := fixtureLoader(map[string]string{
		"users.json": `[{"id": 1, "email": "ava@example.com", "password": "hunter2", "name": "Ava Torres"}]`,
	})
	server, teardown := setupTestServer(t, loader, notifier.NewMock())
	defer teardown()

	// Log in so there is a session to clear.
	body := strings.NewReader(`{"email": "ava@example.com", "password": "hunter2"}`)
	req, err := http.NewRequest("POST", "/session/login", body)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	event := signal.SessionEvent{Email: "ava@example.com", Action: "logout", Timestamp: 1700000000000}
	packed, err := msgpack.Marshal(event)
	require.NoError(t, err)

	wrapper := map[string]any{
		"subscription": "projects/test/subscriptions/session-changed",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(packed),
		},
	}
	wrapperBytes, err := json.Marshal(wrapper)
	require.NoError(t, err)

	req, err = http.NewRequest("POST", "/pubsub/session-refresh", bytes.NewReader(wrapperBytes))
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req, err = http.NewRequest("GET", "/session/current", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code, "remote logout clears the local session")
}
