package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/setjustgo/travel-assistant/internal/models"
)

type memoryDoc struct {
	id   string
	seq  int
	data map[string]any
}

// Memory is an in-memory Store for tests and local development. Records are
// kept as JSON-shaped maps so filtering behaves like the document backends.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]*memoryDoc
	nextSeq     int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]*memoryDoc)}
}

// Put inserts or replaces a record under an explicit ID. Intended for
// seeding user and event fixtures.
func (s *Memory) Put(collection, id string, record any) error {
	doc, err := toDocument(record)
	if err != nil {
		return err
	}
	doc["id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.collections[collection] {
		if existing.id == id {
			existing.data = doc
			return nil
		}
	}
	s.nextSeq++
	s.collections[collection] = append(s.collections[collection], &memoryDoc{id: id, seq: s.nextSeq, data: doc})
	return nil
}

// Count returns the number of records in a collection.
func (s *Memory) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// GetUser fetches an account record by ID.
func (s *Memory) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	if err := s.get(CollectionUsers, userID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetEvent fetches an event record by ID.
func (s *Memory) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event := &models.Event{}
	if err := s.get(CollectionEvents, eventID, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Memory) get(collection, id string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.collections[collection] {
		if doc.id == id {
			return decodeDocument(doc.data, out)
		}
	}
	return ErrNotFound
}

// Add appends a record and returns the assigned ID.
func (s *Memory) Add(ctx context.Context, collection string, record any) (string, error) {
	doc, err := toDocument(record)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	doc["id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.collections[collection] = append(s.collections[collection], &memoryDoc{id: id, seq: s.nextSeq, data: doc})
	return id, nil
}

// Find runs a filtered query against a collection.
func (s *Memory) Find(ctx context.Context, collection string, q Query, out any) error {
	s.mu.RLock()
	var matches []*memoryDoc
	for _, doc := range s.collections[collection] {
		if matchesFilters(doc.data, q.Filters) {
			matches = append(matches, doc)
		}
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(matches, func(i, j int) bool {
			var less bool
			if q.OrderBy == "created_at" {
				less = matches[i].seq < matches[j].seq
			} else {
				less = fmt.Sprintf("%v", matches[i].data[q.OrderBy]) < fmt.Sprintf("%v", matches[j].data[q.OrderBy])
			}
			if q.Desc {
				return !less
			}
			return less
		})
	}

	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}

	payloads := make([]json.RawMessage, 0, len(matches))
	for _, doc := range matches {
		raw, err := json.Marshal(doc.data)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		payloads = append(payloads, raw)
	}
	return decodeDocuments(payloads, out)
}

// Update patches the named fields of an existing record.
func (s *Memory) Update(ctx context.Context, collection string, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if doc.id == id {
			for k, v := range fields {
				doc.data[k] = normalizeValue(v)
			}
			return nil
		}
	}
	return ErrNotFound
}

// Ping always succeeds.
func (s *Memory) Ping(ctx context.Context) error {
	return nil
}

func matchesFilters(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		value, ok := data[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case OpContains:
			list, ok := value.([]any)
			if !ok {
				return false
			}
			found := false
			want := fmt.Sprintf("%v", f.Value)
			for _, item := range list {
				if fmt.Sprintf("%v", item) == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if fmt.Sprintf("%v", value) != fmt.Sprintf("%v", f.Value) {
				return false
			}
		}
	}
	return true
}

// normalizeValue round-trips a patch value through JSON so stored documents
// stay JSON-shaped (e.g. time.Time becomes an RFC3339 string).
func normalizeValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func decodeDocument(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

var _ Store = (*Memory)(nil)
