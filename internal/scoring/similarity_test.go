package scoring

import (
	"context"
	"testing"

	"github.com/mockview/interviewd/internal/model"
)

func TestSimilarityScorer(t *testing.T) {
	tests := []struct {
		name         string
		answer       string
		refs         []model.ReferenceAnswer
		wantScore    int
		wantFeedback string
	}{
		{
			name:         "no references",
			answer:       "anything at all",
			refs:         nil,
			wantScore:    0,
			wantFeedback: DefaultSimilarityFeedback,
		},
		{
			name:   "word overlap with truncation",
			answer: "it evicts the least used item",
			refs: []model.ReferenceAnswer{
				{Text: "the cache evicts least recently used", Score: 80, Feedback: "LRU"},
			},
			// overlap {the, evicts, least, used} of 6 reference words:
			// floor(4/6*80) = 53
			wantScore:    53,
			wantFeedback: "LRU",
		},
		{
			name:   "full match scores the reference value",
			answer: "the cache evicts least recently used",
			refs: []model.ReferenceAnswer{
				{Text: "the cache evicts least recently used", Score: 80, Feedback: "LRU"},
			},
			wantScore:    80,
			wantFeedback: "LRU",
		},
		{
			name:   "best reference wins",
			answer: "queues decouple producers from consumers",
			refs: []model.ReferenceAnswer{
				{Text: "completely unrelated sentence here", Score: 100, Feedback: "wrong"},
				{Text: "queues decouple producers from consumers", Score: 70, Feedback: "right"},
			},
			wantScore:    70,
			wantFeedback: "right",
		},
		{
			name:   "tied scores keep the first reference",
			answer: "alpha beta",
			refs: []model.ReferenceAnswer{
				{Text: "alpha beta", Score: 60, Feedback: "first"},
				{Text: "beta alpha", Score: 60, Feedback: "second"},
			},
			wantScore:    60,
			wantFeedback: "first",
		},
		{
			name:   "empty reference text is skipped",
			answer: "whatever",
			refs: []model.ReferenceAnswer{
				{Text: "", Score: 100, Feedback: "empty"},
			},
			wantScore:    0,
			wantFeedback: DefaultSimilarityFeedback,
		},
		{
			name:   "winning reference without feedback gets the default",
			answer: "goroutines are lightweight",
			refs: []model.ReferenceAnswer{
				{Text: "goroutines are lightweight", Score: 50},
			},
			wantScore:    50,
			wantFeedback: DefaultSimilarityFeedback,
		},
		{
			name:   "case insensitive",
			answer: "The Cache Evicts LEAST recently USED",
			refs: []model.ReferenceAnswer{
				{Text: "the cache evicts least recently used", Score: 80, Feedback: "LRU"},
			},
			wantScore:    80,
			wantFeedback: "LRU",
		},
		{
			name:   "no overlap scores zero",
			answer: "completely different words",
			refs: []model.ReferenceAnswer{
				{Text: "the cache evicts least recently used", Score: 80, Feedback: "LRU"},
			},
			wantScore:    0,
			wantFeedback: DefaultSimilarityFeedback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := SimilarityScorer{}.Evaluate(context.Background(), "question", tt.answer, tt.refs)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if ev.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", ev.Score, tt.wantScore)
			}
			if ev.Feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", ev.Feedback, tt.wantFeedback)
			}
		})
	}
}

func TestWordSet(t *testing.T) {
	got := wordSet("The the  CACHE cache\nevicts")
	want := []string{"the", "cache", "evicts"}
	if len(got) != len(want) {
		t.Fatalf("wordSet size = %d, want %d", len(got), len(want))
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("wordSet missing %q", w)
		}
	}
}
