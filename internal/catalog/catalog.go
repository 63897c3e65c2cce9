package catalog

import (
	"context"
	"encoding/json"
	"time"

	"courtside/internal/store"
	"courtside/internal/syncer"

	"github.com/charmbracelet/log"
)

// Catalog bundles the accessors for every entity collection. It is built
// once at startup and passed to whichever components need it; there is no
// ambient global instance.
type Catalog struct {
	Coaches        *Accessor[Coach]
	Grounds        *Accessor[Ground]
	Products       *Accessor[Product]
	Users          *Accessor[User]
	GroundBookings *Accessor[Booking]
	CoachBookings  *Accessor[Booking]
	News           *Accessor[NewsArticle]
	Applications   *Accessor[Application]
	Activity       *Accessor[Activity]
}

// newsEnvelope is how the news collection is persisted: wrapped with a
// last-updated timestamp, the way the admin screens expect it.
type newsEnvelope struct {
	News        []NewsArticle `json:"news"`
	LastUpdated int64         `json:"lastUpdated"`
}

// New creates a Catalog over the given store and syncer.
func New(kv store.KV, sync syncer.Syncer, opts ...CatalogOption) *Catalog {
	cfg := catalogConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	newsLoad := func(ctx context.Context) ([]NewsArticle, error) {
		// Seeding writes the bare array; mutations rewrap it. Accept both.
		raw, err := kv.Get(ctx, syncer.KeyNews)
		if err != nil || raw == nil {
			return nil, err
		}
		var collection []NewsArticle
		if err := json.Unmarshal(raw, &collection); err == nil {
			return collection, nil
		}
		var envelope newsEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			log.Warn("Discarding corrupt news entry", "error", err)
			return nil, nil
		}
		return envelope.News, nil
	}
	newsPersist := func(ctx context.Context, collection []NewsArticle) error {
		return store.SetJSON(ctx, kv, syncer.KeyNews, newsEnvelope{
			News:        collection,
			LastUpdated: cfg.now().UnixMilli(),
		})
	}

	return &Catalog{
		Coaches: NewAccessor(syncer.KeyCoaches, kv, sync,
			func(c Coach) int64 { return c.ID },
			func(c *Coach, id int64) { c.ID = id },
			WithClock[Coach](cfg.now)),
		Grounds: NewAccessor(syncer.KeyGrounds, kv, sync,
			func(g Ground) int64 { return g.ID },
			func(g *Ground, id int64) { g.ID = id },
			WithClock[Ground](cfg.now)),
		Products: NewAccessor(syncer.KeyProducts, kv, sync,
			func(p Product) int64 { return p.ID },
			func(p *Product, id int64) { p.ID = id },
			WithClock[Product](cfg.now),
			WithWriteHook(func(p *Product) { p.InStock = p.Stock > 0 })),
		Users: NewAccessor(syncer.KeyUsers, kv, sync,
			func(u User) int64 { return u.ID },
			func(u *User, id int64) { u.ID = id },
			WithClock[User](cfg.now)),
		GroundBookings: NewAccessor(syncer.KeyGroundBookings, kv, sync,
			func(b Booking) int64 { return b.ID },
			func(b *Booking, id int64) { b.ID = id },
			WithClock[Booking](cfg.now)),
		CoachBookings: NewAccessor(syncer.KeyCoachBookings, kv, sync,
			func(b Booking) int64 { return b.ID },
			func(b *Booking, id int64) { b.ID = id },
			WithClock[Booking](cfg.now)),
		News: NewAccessor(syncer.KeyNews, kv, sync,
			func(n NewsArticle) int64 { return n.ID },
			func(n *NewsArticle, id int64) { n.ID = id },
			WithClock[NewsArticle](cfg.now),
			WithCodec(newsLoad, newsPersist)),
		Applications: NewAccessor(syncer.KeyApplications, kv, sync,
			func(a Application) int64 { return a.ID },
			func(a *Application, id int64) { a.ID = id },
			WithClock[Application](cfg.now)),
		Activity: NewAccessor(syncer.KeyActivity, kv, sync,
			func(a Activity) int64 { return a.ID },
			func(a *Activity, id int64) { a.ID = id },
			WithClock[Activity](cfg.now)),
	}
}

type catalogConfig struct {
	now func() time.Time
}

// CatalogOption customizes a Catalog.
type CatalogOption func(*catalogConfig)

// WithNow overrides the clock used for id generation across all accessors.
func WithNow(now func() time.Time) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.now = now
	}
}

// UserByEmail looks a user up by their natural key. The comparison is
// case-insensitive.
func (c *Catalog) UserByEmail(ctx context.Context, email string) (User, error) {
	users, err := c.Users.All(ctx)
	if err != nil {
		return User{}, err
	}
	for _, user := range users {
		if EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

// CoachesBySpecialization returns coaches offering the given sport.
func (c *Catalog) CoachesBySpecialization(ctx context.Context, sport string) ([]Coach, error) {
	return c.Coaches.Filter(ctx, func(coach Coach) bool {
		return AnyFold(coach.Specialization, sport)
	})
}

// GroundsBySport returns grounds supporting the given sport.
func (c *Catalog) GroundsBySport(ctx context.Context, sport string) ([]Ground, error) {
	return c.Grounds.Filter(ctx, func(ground Ground) bool {
		return AnyFold(ground.Sports, sport)
	})
}

// ProductsByCategory returns products in the given category.
func (c *Catalog) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return c.Products.Filter(ctx, func(product Product) bool {
		return EqualFold(product.Category, category)
	})
}

// SearchProducts matches the query against product name and brand as a
// case-insensitive substring.
func (c *Catalog) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	return c.Products.Filter(ctx, func(product Product) bool {
		return ContainsFold(product.Name, query) || ContainsFold(product.Brand, query)
	})
}

// BookingsByUser returns the bookings made by one user from either
// collection.
func (c *Catalog) BookingsByUser(ctx context.Context, bookings *Accessor[Booking], userID int64) ([]Booking, error) {
	return bookings.Filter(ctx, func(b Booking) bool {
		return b.UserID == userID
	})
}

// PublishedNews returns the published articles.
func (c *Catalog) PublishedNews(ctx context.Context) ([]NewsArticle, error) {
	return c.News.Filter(ctx, func(article NewsArticle) bool {
		return article.Status == NewsPublished
	})
}

// RecordView bumps the view counter for one article.
func (c *Catalog) RecordView(ctx context.Context, articleID int64) (NewsArticle, error) {
	article, err := c.News.ByID(ctx, articleID)
	if err != nil {
		return NewsArticle{}, err
	}
	return c.News.Update(ctx, articleID, map[string]any{"views": article.Views + 1})
}
