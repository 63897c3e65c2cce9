package catalog

import "errors"

// ErrNotFound is returned by lookups and updates that match no entity.
// It is a result, not a fault; callers map it to a null-style response.
var ErrNotFound = errors.New("entity not found")

// Coach is a bookable coach profile.
type Coach struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Specialization []string `json:"specialization"`
	HourlyRate     float64  `json:"hourlyRate"`
	Rating         float64  `json:"rating"`
	Status         string   `json:"status"`
}

// Ground is a bookable venue.
type Ground struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Sports    []string `json:"sports"`
	Amenities []string `json:"amenities"`
	Rating    float64  `json:"rating"`
	Price     float64  `json:"price"`
}

// Product is a shop item. InStock is derived from Stock and kept
// consistent on every mutation.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	InStock  bool    `json:"inStock"`
}

// User is an account. Email is the natural key used for login; ID is a
// surrogate. Passwords are stored as-is to stay compatible with the demo
// fixture data.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Sports   []string `json:"sports"`
}

// Booking covers both ground and coach bookings; the two live under
// separate store keys but share a shape.
type Booking struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	ItemID        int64  `json:"itemId"`
	ItemName      string `json:"itemName"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// NewsArticle is a published or draft news item. Views is a monotonic
// counter.
type NewsArticle struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Views  int64  `json:"views"`
}

// Application is a pending role application reviewed from the admin
// dashboard.
type Application struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// Activity is an admin-dashboard activity feed entry.
type Activity struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Coach and ground lifecycle statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Booking statuses.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

// News statuses.
const (
	NewsDraft     = "draft"
	NewsPublished = "published"
)

// User roles.
const (
	RolePlayer       = "Player"
	RoleCoach        = "Coach"
	RoleAdmin        = "Admin"
	RoleShopOwner    = "Shop Owner"
	RoleComplexOwner = "Complex Owner"
)
