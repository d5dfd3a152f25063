package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/mockview/interviewd/internal/model"
)

type stubScorer struct {
	ev  model.Evaluation
	err error
}

func (s stubScorer) Evaluate(context.Context, string, string, []model.ReferenceAnswer) (model.Evaluation, error) {
	return s.ev, s.err
}

func TestFallbackScorer(t *testing.T) {
	ctx := context.Background()
	primary := model.Evaluation{Score: 88, Feedback: "from LLM"}
	secondary := model.Evaluation{Score: 42, Feedback: "from similarity"}

	t.Run("primary success wins", func(t *testing.T) {
		f := FallbackScorer{
			Primary:  stubScorer{ev: primary},
			Fallback: stubScorer{ev: secondary},
		}
		ev, err := f.Evaluate(ctx, "q", "a", nil)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if ev != primary {
			t.Errorf("got %+v, want primary result", ev)
		}
	})

	t.Run("primary failure falls back", func(t *testing.T) {
		f := FallbackScorer{
			Primary:  stubScorer{err: errors.New("upstream down")},
			Fallback: stubScorer{ev: secondary},
		}
		ev, err := f.Evaluate(ctx, "q", "a", nil)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if ev != secondary {
			t.Errorf("got %+v, want fallback result", ev)
		}
	})

	t.Run("nil primary goes straight to fallback", func(t *testing.T) {
		f := FallbackScorer{Fallback: stubScorer{ev: secondary}}
		ev, err := f.Evaluate(ctx, "q", "a", nil)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if ev != secondary {
			t.Errorf("got %+v, want fallback result", ev)
		}
	})

	t.Run("real similarity fallback end to end", func(t *testing.T) {
		f := FallbackScorer{
			Primary:  stubScorer{err: errors.New("no credential")},
			Fallback: SimilarityScorer{},
		}
		refs := []model.ReferenceAnswer{
			{Text: "the cache evicts least recently used", Score: 80, Feedback: "LRU"},
		}
		ev, err := f.Evaluate(ctx, "q", "it evicts the least used item", refs)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if ev.Score != 53 {
			t.Errorf("score = %d, want 53", ev.Score)
		}
	})
}
