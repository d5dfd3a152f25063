package scoring

import (
	"context"
	"log/slog"

	"github.com/mockview/interviewd/internal/model"
)

// FallbackScorer tries Primary and, on any error, answers with Fallback
// instead. A nil Primary (no LLM credential configured) goes straight to
// Fallback. Evaluate never returns an error as long as Fallback is
// infallible.
type FallbackScorer struct {
	Primary  Scorer
	Fallback Scorer
}

func (f FallbackScorer) Evaluate(ctx context.Context, question, answer string, refs []model.ReferenceAnswer) (model.Evaluation, error) {
	if f.Primary != nil {
		ev, err := f.Primary.Evaluate(ctx, question, answer, refs)
		if err == nil {
			return ev, nil
		}
		slog.Warn("primary scorer failed, using fallback", "error", err)
	}
	return f.Fallback.Evaluate(ctx, question, answer, refs)
}
