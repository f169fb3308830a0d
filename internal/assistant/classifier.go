package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// keywordBoostWeight is the maximum confidence boost a full keyword match
// adds on top of a pattern's base confidence.
const keywordBoostWeight = 0.2

// Classifier maps free-text chat input to an intent with a confidence score
// in [0,1]. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, message string) (intent string, confidence float64)
}

type compiledPattern struct {
	re             *regexp.Regexp
	intent         string
	baseConfidence float64
	keywords       []string
}

// RuleClassifier scores a message against an ordered pattern table. It is
// deterministic and stateless: no training, no persistence.
type RuleClassifier struct {
	patterns []compiledPattern
}

// NewRuleClassifier compiles the rule table. Pattern order is the tie-break
// between equal-confidence matches.
func NewRuleClassifier(patterns []IntentPattern) (*RuleClassifier, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for intent %s: %w", p.Intent, err)
		}
		compiled = append(compiled, compiledPattern{
			re:             re,
			intent:         p.Intent,
			baseConfidence: p.BaseConfidence,
			keywords:       p.Keywords,
		})
	}
	return &RuleClassifier{patterns: compiled}, nil
}

// Classify evaluates every pattern against the case-folded message. A regex
// match earns the pattern's base confidence plus a boost proportional to the
// fraction of its keywords present, capped at 1.0. The highest confidence
// wins; ties keep the first-seen pattern.
func (c *RuleClassifier) Classify(ctx context.Context, message string) (string, float64) {
	lowered := strings.ToLower(message)

	bestIntent := IntentUnknown
	bestConfidence := 0.0

	for _, p := range c.patterns {
		if !p.re.MatchString(lowered) {
			continue
		}

		confidence := p.baseConfidence
		if len(p.keywords) > 0 {
			matched := 0
			for _, kw := range p.keywords {
				if strings.Contains(lowered, kw) {
					matched++
				}
			}
			confidence += float64(matched) / float64(len(p.keywords)) * keywordBoostWeight
		}
		if confidence > 1.0 {
			confidence = 1.0
		}

		if confidence > bestConfidence {
			bestIntent = p.intent
			bestConfidence = confidence
		}
	}

	return bestIntent, bestConfidence
}

var _ Classifier = (*RuleClassifier)(nil)
