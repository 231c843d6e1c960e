package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	"github.com/assessly-hq/assessly-services/api/internal/logger"
)

// Grader scores a free-text answer remotely. Implementations may fail; the
// engine falls back to the local heuristic when they do.
type Grader interface {
	Grade(ctx context.Context, in Input) (Result, error)
}

const defaultGeminiModel = "gemini-2.0-flash"

const gradePromptTemplate = `You are grading a candidate's free-text answer on an assessment platform.

Question topics the answer should touch: %s

Answer:
%s

Respond with a single JSON object and nothing else:
{"score": <integer 0-100>, "feedback": [<short strings>], "confidence": <float 0-1>}`

// GeminiGrader grades answers with the Gemini API.
type GeminiGrader struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGrader creates a grader backed by the Gemini API. The api key is
// required; an empty model falls back to the default.
func NewGeminiGrader(ctx context.Context, apiKey, model string) (*GeminiGrader, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &GeminiGrader{client: client, modelName: model}, nil
}

// Grade sends the answer to Gemini and parses the structured verdict.
func (g *GeminiGrader) Grade(ctx context.Context, in Input) (Result, error) {
	if g == nil || g.client == nil {
		return Result{}, errors.New("gemini grader is not initialized")
	}

	topics := strings.Join(in.Keywords, ", ")
	if topics == "" {
		topics = "(none specified; grade on substance and clarity)"
	}
	prompt := fmt.Sprintf(gradePromptTemplate, topics, strings.TrimSpace(in.Text))

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	raw := strings.TrimSpace(builder.String())
	if raw == "" {
		return Result{}, errors.New("gemini api returned empty response")
	}

	return parseGradeResponse(raw)
}

func parseGradeResponse(raw string) (Result, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Score      float64  `json:"score"`
		Feedback   []string `json:"feedback"`
		Confidence float64  `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Result{}, fmt.Errorf("parse gemini response %q: %w", logger.TruncateForLog(cleaned, 120), err)
	}

	if math.IsNaN(data.Score) {
		data.Score = 0
	}

	return Clamp(Result{
		Score:      int(math.Round(data.Score)),
		Feedback:   data.Feedback,
		Confidence: data.Confidence,
	}), nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
