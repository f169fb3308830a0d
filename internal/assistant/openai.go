package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	logpkg "github.com/setjustgo/travel-assistant/internal/logger"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultOpenAITimeout is the default timeout for API calls
	DefaultOpenAITimeout = 30 * time.Second
)

// OpenAIClassifier detects chat intents with an LLM instead of the rule
// table. It speaks the same Classifier contract, so swapping it in changes
// no call sites. Fallback policy on any API or parse failure: delegate to
// the wrapped rule classifier, keeping the chat surface deterministic when
// the provider is down.
type OpenAIClassifier struct {
	client   openai.Client
	model    string
	fallback Classifier
	logger   *zap.Logger
}

// NewOpenAIClassifier creates an LLM-backed classifier. fallback must not
// be nil.
func NewOpenAIClassifier(apiKey, baseURL, model string, fallback Classifier, logger *zap.Logger) *OpenAIClassifier {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: DefaultOpenAITimeout}),
	)

	return &OpenAIClassifier{
		client:   client,
		model:    model,
		fallback: fallback,
		logger:   logger,
	}
}

var knownIntents = map[string]bool{
	IntentSuggestDestination: true,
	IntentSuggestDates:       true,
	IntentSetReminder:        true,
	IntentShowSchedule:       true,
	IntentShowSummary:        true,
	IntentCheckConflicts:     true,
	IntentUnknown:            true,
}

// Classify asks the model for an intent label and confidence. Responses
// naming an unlisted intent are treated as parse failures.
func (c *OpenAIClassifier) Classify(ctx context.Context, message string) (string, float64) {
	prompt := c.buildClassifyPrompt(message)
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an intent classifier for a travel assistant. Respond with valid JSON only."),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		c.logger.Warn("llm_classify_failed", zap.Error(err))
		return c.fallback.Classify(ctx, message)
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("llm_classify_failed", zap.String("reason", "no choices in response"))
		return c.fallback.Classify(ctx, message)
	}

	c.logger.Debug("llm_classify_response",
		zap.String("content", logpkg.SanitizeDebugContent(resp.Choices[0].Message.Content)))

	intent, confidence, err := parseClassifyResponse(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Warn("llm_classify_parse_failed", zap.Error(err))
		return c.fallback.Classify(ctx, message)
	}
	return intent, confidence
}

func (c *OpenAIClassifier) buildClassifyPrompt(message string) string {
	intents := []string{
		IntentSuggestDestination,
		IntentSuggestDates,
		IntentSetReminder,
		IntentShowSchedule,
		IntentShowSummary,
		IntentCheckConflicts,
		IntentUnknown,
	}
	return fmt.Sprintf(`Classify the user message into exactly one of these intents:
%s

User message: %q

Respond with a JSON object in this format:
{"intent": "<one of the intents above>", "confidence": <number between 0 and 1>}

Use "unknown" with confidence 0 when no intent fits. Return only valid JSON.`,
		"- "+strings.Join(intents, "\n- "), message)
}

func parseClassifyResponse(content string) (string, float64, error) {
	var result struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	raw := content
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		start := bytes.Index([]byte(raw), []byte("{"))
		end := bytes.LastIndex([]byte(raw), []byte("}"))
		if start == -1 || end <= start {
			return "", 0, fmt.Errorf("failed to parse classify response: %w", err)
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
			return "", 0, fmt.Errorf("failed to parse classify response: %w", err)
		}
	}
	if !knownIntents[result.Intent] {
		return "", 0, fmt.Errorf("unknown intent in response: %q", result.Intent)
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result.Intent, result.Confidence, nil
}

var _ Classifier = (*OpenAIClassifier)(nil)
