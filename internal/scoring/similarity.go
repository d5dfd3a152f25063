package scoring

import (
	"context"
	"strings"

	"github.com/mockview/interviewd/internal/model"
)

// DefaultSimilarityFeedback is used when the best-matching reference answer
// carries no feedback of its own.
const DefaultSimilarityFeedback = "Your answer was evaluated based on similarity to reference answers."

// SimilarityScorer grades an answer by word overlap with the reference
// answers. Deterministic, local, and infallible: it is the fallback when the
// LLM path is unavailable.
type SimilarityScorer struct{}

// Evaluate scores the answer against each reference answer as
// floor(|words(answer) ∩ words(ref)| / |words(ref)| * ref.Score) and keeps
// the best. Strictly-greater comparison, so the first of tied references
// wins. No references means score 0.
func (SimilarityScorer) Evaluate(_ context.Context, _ string, answer string, refs []model.ReferenceAnswer) (model.Evaluation, error) {
	answerWords := wordSet(answer)

	maxScore := 0
	bestFeedback := ""

	for _, ref := range refs {
		refWords := wordSet(ref.Text)
		if len(refWords) == 0 {
			continue
		}

		overlap := 0
		for w := range refWords {
			if answerWords[w] {
				overlap++
			}
		}

		score := int(float64(overlap) / float64(len(refWords)) * float64(ref.Score))
		if score > maxScore {
			maxScore = score
			bestFeedback = ref.Feedback
		}
	}

	if bestFeedback == "" {
		bestFeedback = DefaultSimilarityFeedback
	}

	return model.Evaluation{
		Score:    clampScore(maxScore),
		Feedback: bestFeedback,
	}, nil
}

func wordSet(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		words[w] = true
	}
	return words
}
