package store

import (
	"context"
	"errors"

	"github.com/setjustgo/travel-assistant/internal/models"
)

// Collection names. User and event collections are owned by the surrounding
// application; the assistant only reads them. The ai_* collections are owned
// by the assistant.
const (
	CollectionUsers        = "user"
	CollectionEvents       = "events"
	CollectionSuggestions  = "ai_suggestions"
	CollectionReminders    = "ai_reminders"
	CollectionChatMessages = "ai_chat_messages"
	CollectionProfiles     = "ai_user_profiles"
	CollectionInsights     = "ai_insights"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Op is a filter operator.
type Op string

const (
	// OpEqual matches records whose field equals the value.
	OpEqual Op = "eq"
	// OpContains matches records whose array field contains the value.
	OpContains Op = "contains"
)

// Filter restricts a query to records matching a single field condition.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query describes a filtered, ordered, limited scan of a collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Eq is shorthand for an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// Store is the persistence boundary of the assistant. Any document- or
// key-value-shaped backend satisfies it; record IDs are assigned by the
// store on Add and never reassigned.
type Store interface {
	// GetUser fetches an account record. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetEvent fetches an event record. Returns ErrNotFound if absent.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// Add appends a record to a collection and returns the assigned ID.
	Add(ctx context.Context, collection string, record any) (string, error)

	// Find runs a query against a collection, decoding matches into out,
	// which must be a pointer to a slice.
	Find(ctx context.Context, collection string, q Query, out any) error

	// Update patches the named fields of an existing record.
	Update(ctx context.Context, collection string, id string, fields map[string]any) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
