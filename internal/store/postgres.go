package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver
	"github.com/setjustgo/travel-assistant/internal/models"
)

// DB wraps the sql connection pool.
type DB struct {
	*sql.DB
}

// Open connects to postgres and verifies the connection.
func Open(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Postgres implements Store on a single JSONB document table. Every record
// lives in ai_records keyed by (collection, id); filters translate to JSONB
// operators.
type Postgres struct {
	db *DB
}

// NewPostgres creates a postgres-backed store.
func NewPostgres(db *DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the document table and its indexes.
func (s *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ai_records (
			id TEXT NOT NULL,
			collection TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ai_records_payload ON ai_records USING gin (payload)`,
		`CREATE INDEX IF NOT EXISTS idx_ai_records_created_at ON ai_records (collection, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate ai_records: %w", err)
		}
	}
	return nil
}

// GetUser fetches an account record by ID.
func (s *Postgres) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	if err := s.getDocument(ctx, CollectionUsers, userID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetEvent fetches an event record by ID.
func (s *Postgres) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event := &models.Event{}
	if err := s.getDocument(ctx, CollectionEvents, eventID, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Postgres) getDocument(ctx context.Context, collection, id string, out any) error {
	query := `SELECT payload FROM ai_records WHERE collection = $1 AND id = $2`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s record: %w", collection, err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s record: %w", collection, err)
	}
	return nil
}

// Add inserts a record and returns the assigned ID.
func (s *Postgres) Add(ctx context.Context, collection string, record any) (string, error) {
	doc, err := toDocument(record)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	doc["id"] = id

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	query := `INSERT INTO ai_records (id, collection, payload) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, id, collection, payload); err != nil {
		return "", fmt.Errorf("failed to add record to %s: %w", collection, err)
	}

	return id, nil
}

// Find runs a filtered query against a collection.
func (s *Postgres) Find(ctx context.Context, collection string, q Query, out any) error {
	var sb strings.Builder
	sb.WriteString(`SELECT payload FROM ai_records WHERE collection = $1`)
	args := []any{collection}

	for _, f := range q.Filters {
		argIndex := len(args) + 1
		switch f.Op {
		case OpContains:
			element, err := json.Marshal([]any{f.Value})
			if err != nil {
				return fmt.Errorf("failed to marshal filter value: %w", err)
			}
			fmt.Fprintf(&sb, " AND payload->%s @> $%d::jsonb", quoteLiteral(f.Field), argIndex)
			args = append(args, string(element))
		default:
			fmt.Fprintf(&sb, " AND payload->>%s = $%d", quoteLiteral(f.Field), argIndex)
			args = append(args, fmt.Sprintf("%v", f.Value))
		}
	}

	if q.OrderBy != "" {
		direction := "ASC"
		if q.Desc {
			direction = "DESC"
		}
		if q.OrderBy == "created_at" {
			fmt.Fprintf(&sb, " ORDER BY created_at %s", direction)
		} else {
			fmt.Fprintf(&sb, " ORDER BY payload->>%s %s", quoteLiteral(q.OrderBy), direction)
		}
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT $%d", len(args)+1)
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var payloads []json.RawMessage
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("failed to scan %s record: %w", collection, err)
		}
		payloads = append(payloads, json.RawMessage(payload))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate %s records: %w", collection, err)
	}

	return decodeDocuments(payloads, out)
}

// Update patches the named fields of an existing record via a JSONB merge.
func (s *Postgres) Update(ctx context.Context, collection string, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}

	query := `UPDATE ai_records SET payload = payload || $3::jsonb WHERE collection = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, collection, id, patch)
	if err != nil {
		return fmt.Errorf("failed to update %s record: %w", collection, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies the database connection.
func (s *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// toDocument round-trips a record through JSON into a generic map so the
// store can assign the ID field.
func toDocument(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return doc, nil
}

// decodeDocuments unmarshals raw payloads into out, a pointer to a slice.
func decodeDocuments(payloads []json.RawMessage, out any) error {
	combined, err := json.Marshal(payloads)
	if err != nil {
		return fmt.Errorf("failed to combine records: %w", err)
	}
	if err := json.Unmarshal(combined, out); err != nil {
		return fmt.Errorf("failed to decode records: %w", err)
	}
	return nil
}

// quoteLiteral quotes a JSON field name for use as a JSONB path key.
func quoteLiteral(field string) string {
	return "'" + strings.ReplaceAll(field, "'", "''") + "'"
}

var _ Store = (*Postgres)(nil)
