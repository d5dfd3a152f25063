package question

import (
	"os"
	"path/filepath"
	"testing"
)

func writeQuestionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeQuestionsFile: %v", err)
	}
	return path
}

const sampleFile = `{
	"questions": [
		{"id": 1, "question": "Tell me about yourself.", "answers": [
			{"text": "experienced engineer", "score": 90, "feedback": "good"}
		]},
		{"id": 2, "question": "Why this company?"}
	]
}`

func TestLoad(t *testing.T) {
	s := Load(writeQuestionsFile(t, sampleFile))

	if s.Count() != 2 {
		t.Fatalf("expected 2 questions, got %d", s.Count())
	}

	q, ok := s.Get(1)
	if !ok {
		t.Fatal("question 1 not found")
	}
	if q.Prompt != "Tell me about yourself." {
		t.Errorf("unexpected prompt %q", q.Prompt)
	}
	if len(q.Answers) != 1 || q.Answers[0].Score != 90 {
		t.Errorf("reference answers not loaded: %+v", q.Answers)
	}

	if _, ok := s.Get(99); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"))
	if s.Count() != 0 {
		t.Errorf("expected empty store, got %d questions", s.Count())
	}
	if got := s.Public(); len(got) != 0 {
		t.Errorf("expected empty public list, got %d", len(got))
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON", "this is not json"},
		{"wrong shape", `{"questions": "oops"}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Load(writeQuestionsFile(t, tt.content))
			if s.Count() != 0 {
				t.Errorf("expected empty store, got %d questions", s.Count())
			}
		})
	}
}

func TestPublicStripsAnswers(t *testing.T) {
	s := Load(writeQuestionsFile(t, sampleFile))

	public := s.Public()
	if len(public) != 2 {
		t.Fatalf("expected 2 public questions, got %d", len(public))
	}
	for _, q := range public {
		if q.Answers != nil {
			t.Errorf("question %d leaked reference answers", q.ID)
		}
		if q.Prompt == "" {
			t.Errorf("question %d has empty prompt", q.ID)
		}
	}

	// The stored questions must keep their answers.
	q, _ := s.Get(1)
	if len(q.Answers) != 1 {
		t.Error("Public must not mutate the stored questions")
	}
}
