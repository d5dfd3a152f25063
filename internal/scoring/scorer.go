// Package scoring evaluates free-text interview answers. The primary scorer
// asks a remote LLM for a verdict; a word-overlap similarity scorer serves as
// the deterministic fallback when the LLM is unavailable or unusable.
package scoring

import (
	"context"

	"github.com/mockview/interviewd/internal/model"
)

// Scorer evaluates a user's answer to an interview question. refs may be
// empty; implementations that need reference answers define their own
// behavior for that case.
type Scorer interface {
	Evaluate(ctx context.Context, question, answer string, refs []model.ReferenceAnswer) (model.Evaluation, error)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
