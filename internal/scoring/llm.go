package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mockview/interviewd/internal/model"
)

// LLMScorer grades answers with an OpenAI-compatible chat completion API.
type LLMScorer struct {
	api   *openai.Client
	model string
}

// NewLLMScorer creates a scorer against an OpenAI-compatible endpoint.
// baseURL is optional; an empty value keeps the client's default.
func NewLLMScorer(baseURL, apiKey, modelName string) *LLMScorer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &LLMScorer{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

type llmVerdict struct {
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
	Suggestion string `json:"suggestion"`
}

// Evaluate asks the model for a JSON verdict on the answer. Any failure
// (transport, non-2xx, no choices, unparseable reply) is returned as an
// error so the caller can fall back.
func (s *LLMScorer) Evaluate(ctx context.Context, question, answer string, refs []model.ReferenceAnswer) (model.Evaluation, error) {
	prompt := buildEvalPrompt(question, answer, refs)

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Evaluation{}, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM verdict", "raw", raw)

	verdict, err := parseVerdict(raw)
	if err != nil {
		return model.Evaluation{}, err
	}

	return model.Evaluation{
		Score:      clampScore(verdict.Score),
		Feedback:   verdict.Feedback,
		Suggestion: verdict.Suggestion,
	}, nil
}

// parseVerdict extracts the verdict JSON from a model reply that may carry
// surrounding prose: first the first balanced {...} span, then the whole
// reply as a last resort.
func parseVerdict(raw string) (llmVerdict, error) {
	var verdict llmVerdict
	if span, ok := extractJSONObject(raw); ok {
		if err := json.Unmarshal([]byte(span), &verdict); err == nil {
			return verdict, nil
		}
	}
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return llmVerdict{}, fmt.Errorf("parse LLM verdict: %w (raw: %s)", err, raw)
	}
	return verdict, nil
}

func buildEvalPrompt(question, answer string, refs []model.ReferenceAnswer) string {
	var sb strings.Builder
	sb.WriteString("You are an expert interview evaluator. Analyze the following answer to an interview question.\n\n")
	sb.WriteString("Question: " + question + "\n\n")
	sb.WriteString("User's Answer: " + answer + "\n\n")

	if len(refs) > 0 {
		sb.WriteString("Reference Answers for Comparison:\n")
		for i, ref := range refs {
			sb.WriteString(fmt.Sprintf("Reference Answer %d (Score: %d%%): %s\n", i+1, ref.Score, ref.Text))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Evaluate the user's answer based on the following criteria:\n")
	sb.WriteString("1. Accuracy - How factually correct is the answer?\n")
	sb.WriteString("2. Completeness - Does it cover all important points?\n")
	sb.WriteString("3. Clarity - Is the answer clear and well-articulated?\n")
	sb.WriteString("4. Relevance - How well does it address the question?\n\n")
	sb.WriteString("Respond ONLY with a JSON object with these fields:\n")
	sb.WriteString(`{"score": <integer 0 to 100>, "feedback": "<constructive feedback>", "suggestion": "<one short suggestion for improvement>"}`)
	sb.WriteString("\n")

	return sb.String()
}
