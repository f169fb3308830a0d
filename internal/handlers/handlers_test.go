package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/request"
	"github.com/setjustgo/travel-assistant/internal/store"
)

// testEnv wires a memory store, a real engine, and the resource handlers
// behind a router, the way cmd/server does.
type testEnv struct {
	store  *store.Memory
	engine *assistant.Engine
	router *mux.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	classifier, err := assistant.NewRuleClassifier(assistant.DefaultPatterns())
	if err != nil {
		t.Fatalf("Failed to build classifier: %v", err)
	}
	engine := assistant.NewEngine(mem, classifier, zap.NewNop())

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1/assistant").Subrouter()
	NewChatHandler(engine).RegisterRoutes(api)
	NewSuggestionHandler(engine).RegisterRoutes(api)
	NewReminderHandler(engine).RegisterRoutes(api)
	NewInsightHandler(engine).RegisterRoutes(api)
	NewProfileHandler(engine).RegisterRoutes(api)

	return &testEnv{store: mem, engine: engine, router: router}
}

// do runs a request through the router, attaching the user ID to the
// context when one is given.
func (env *testEnv) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	req := newTestRequest(method, path, body)
	if userID != "" {
		req = req.WithContext(request.WithUserID(req.Context(), userID))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the "data" field of an envelope response into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("Expected success envelope, got body %s", w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("Failed to decode response data: %v", err)
	}
}

func (env *testEnv) seedUser(t *testing.T, user models.User) {
	t.Helper()
	if err := env.store.Put(store.CollectionUsers, user.ID, user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
}
