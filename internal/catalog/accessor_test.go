package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/internal/catalog"
	"courtside/internal/fixtures"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/store"
	"courtside/internal/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCatalog builds a catalog over an in-memory store and a mock fixture
// loader, with the clock frozen for deterministic ids.
func setupCatalog(t *testing.T, fixtureData map[string]string) (*catalog.Catalog, *fixtures.MockLoader, *store.MockKV) {
	t.Helper()

	loader := fixtures.NewMockLoader()
	loader.FetchFunc = func(name string) ([]byte, error) {
		body, ok := fixtureData[name]
		if !ok {
			return nil, errors.New("received non-OK HTTP status: 404")
		}
		return []byte(body), nil
	}

	kv := store.NewMock()
	mgr := syncer.New(loader, kv, metrics.NewMock(), notifier.NewMock(), syncer.DefaultSources())
	frozen := time.UnixMilli(1700000000000)
	cat := catalog.New(kv, mgr, catalog.WithNow(func() time.Time { return frozen }))
	return cat, loader, kv
}

func TestAllIsIdempotent(t *testing.T) {
	cat, loader, _ := setupCatalog(t, map[string]string{
		"coaches.json": `[{"id":1,"name":"A","status":"Active"},{"id":2,"name":"B","status":"Inactive"}]`,
	})
	ctx := context.Background()

	first, err := cat.Coaches.All(ctx)
	require.NoError(t, err)
	second, err := cat.Coaches.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.CallCount("coaches.json"), "repeat reads must not refetch")
}

func TestCreate(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{"coaches.json": `[]`})
	ctx := context.Background()

	before, err := cat.Coaches.All(ctx)
	require.NoError(t, err)

	created, err := cat.Coaches.Create(ctx, catalog.Coach{Name: "New Coach", HourlyRate: 50})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	after, err := cat.Coaches.All(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	got, err := cat.Coaches.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateSameMillisecondYieldsDistinctIDs(t *testing.T) {
	// The clock is frozen, so both creations see the same millisecond; the
	// generator must still hand out distinct ids instead of silently
	// overwriting one record.
	cat, _, _ := setupCatalog(t, map[string]string{"coaches.json": `[]`})
	ctx := context.Background()

	first, err := cat.Coaches.Create(ctx, catalog.Coach{Name: "New Coach", HourlyRate: 50})
	require.NoError(t, err)
	second, err := cat.Coaches.Create(ctx, catalog.Coach{Name: "New Coach", HourlyRate: 50})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	all, err := cat.Coaches.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateShallowMerge(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"coaches.json": `[{"id":1,"name":"A","status":"Active","hourlyRate":40}]`,
	})
	ctx := context.Background()

	updated, err := cat.Coaches.Update(ctx, 1, map[string]any{"status": "Inactive"})
	require.NoError(t, err)
	assert.Equal(t, "Inactive", updated.Status)
	assert.Equal(t, "A", updated.Name, "fields absent from the patch keep their prior values")
	assert.Equal(t, 40.0, updated.HourlyRate)

	got, err := cat.Coaches.ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Inactive", got.Status)
}

func TestUpdateMissingID(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"coaches.json": `[{"id":1,"name":"A"}]`,
	})
	ctx := context.Background()

	_, err := cat.Coaches.Update(ctx, 999, map[string]any{"status": "Inactive"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// Nothing was created implicitly and nothing changed.
	all, err := cat.Coaches.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Name)
}

func TestRemove(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"coaches.json": `[{"id":1,"name":"A"},{"id":2,"name":"B"}]`,
	})
	ctx := context.Background()

	removed, err := cat.Coaches.Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = cat.Coaches.ByID(ctx, 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	all, err := cat.Coaches.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Removing an absent id is idempotent.
	removed, err = cat.Coaches.Remove(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFixture404DegradesToEmpty(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{})
	ctx := context.Background()

	products, err := cat.Products.All(ctx)
	require.NoError(t, err, "a missing fixture must not surface as a fault")
	assert.Empty(t, products)
}

func TestProductInStockInvariant(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{"products.json": `[]`})
	ctx := context.Background()

	created, err := cat.Products.Create(ctx, catalog.Product{Name: "Racket", Stock: 3})
	require.NoError(t, err)
	assert.True(t, created.InStock)

	updated, err := cat.Products.Update(ctx, created.ID, map[string]any{"stock": 0})
	require.NoError(t, err)
	assert.False(t, updated.InStock, "InStock must track Stock on every mutation")
}

func TestByIDWithCoercedStringID(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"grounds.json": `{"grounds":[{"id":42,"name":"Arena"}]}`,
	})
	ctx := context.Background()

	// Ids arrive as strings from URL query parameters.
	id, err := catalog.ParseID(" 42 ")
	require.NoError(t, err)

	ground, err := cat.Grounds.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Arena", ground.Name)

	_, err = catalog.ParseID("not-a-number")
	assert.Error(t, err)
}

func TestNewsEnvelope(t *testing.T) {
	cat, _, kv := setupCatalog(t, map[string]string{
		"news.json": `{"news":[{"id":1,"title":"Opening","status":"published","views":0}]}`,
	})
	ctx := context.Background()

	articles, err := cat.News.All(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	// A mutation rewraps the collection with a lastUpdated stamp.
	_, err = cat.News.Create(ctx, catalog.NewsArticle{Title: "Second", Status: catalog.NewsDraft})
	require.NoError(t, err)

	raw, err := kv.Get(ctx, syncer.KeyNews)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lastUpdated"`)

	articles, err = cat.News.All(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 2)

	published, err := cat.PublishedNews(ctx)
	require.NoError(t, err)
	assert.Len(t, published, 1)
}

func TestRecordView(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"news.json": `[{"id":5,"title":"Opening","status":"published","views":7}]`,
	})
	ctx := context.Background()

	article, err := cat.RecordView(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(8), article.Views)
	assert.Equal(t, "Opening", article.Title)
}

func TestUserByEmail(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"users.json": `[{"id":1,"email":"ana@example.com","role":"Player"}]`,
	})
	ctx := context.Background()

	user, err := cat.UserByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = cat.UserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDomainFilters(t *testing.T) {
	cat, _, _ := setupCatalog(t, map[string]string{
		"coaches.json":  `[{"id":1,"name":"A","specialization":["Tennis","Padel"]},{"id":2,"name":"B","specialization":["Football"]}]`,
		"products.json": `[{"id":1,"name":"Pro Racket","brand":"Wilson","category":"Tennis","stock":1},{"id":2,"name":"Ball","brand":"Nike","category":"Football","stock":5}]`,
	})
	ctx := context.Background()

	t.Run("specialization uses case-insensitive equality", func(t *testing.T) {
		coaches, err := cat.CoachesBySpecialization(ctx, "tennis")
		require.NoError(t, err)
		require.Len(t, coaches, 1)
		assert.Equal(t, int64(1), coaches[0].ID)
	})

	t.Run("product search uses case-insensitive substring", func(t *testing.T) {
		products, err := cat.SearchProducts(ctx, "racket")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Pro Racket", products[0].Name)
	})

	t.Run("category filter", func(t *testing.T) {
		products, err := cat.ProductsByCategory(ctx, "FOOTBALL")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Ball", products[0].Name)
	})
}
