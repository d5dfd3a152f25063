// Package question loads the interview question set from a JSON file and
// exposes it with and without grading material.
package question

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/mockview/interviewd/internal/model"
)

type questionsFile struct {
	Questions []model.Question `json:"questions"`
}

// Store holds the question set loaded at startup. Questions are immutable
// after load, so the store needs no locking.
type Store struct {
	questions []model.Question
	byID      map[int]model.Question
}

// Load reads the question file at path. A missing or malformed file is logged
// and yields an empty store rather than an error: the server stays up and
// scoring simply has no reference material.
func Load(path string) *Store {
	s := &Store{byID: make(map[int]model.Question)}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("questions file not readable", "path", path, "error", err)
		return s
	}

	var qf questionsFile
	if err := json.Unmarshal(data, &qf); err != nil {
		slog.Error("invalid JSON in questions file", "path", path, "error", err)
		return s
	}

	s.questions = qf.Questions
	for _, q := range qf.Questions {
		s.byID[q.ID] = q
	}
	slog.Info("loaded questions", "path", path, "count", len(s.questions))
	return s
}

// All returns the full question set including reference answers.
// Server-side use only.
func (s *Store) All() []model.Question {
	return s.questions
}

// Get returns the question with the given id.
func (s *Store) Get(id int) (model.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// Public returns the question set with reference answers stripped, safe to
// hand to clients.
func (s *Store) Public() []model.Question {
	public := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		public = append(public, model.Question{ID: q.ID, Prompt: q.Prompt})
	}
	return public
}

// Count returns the number of loaded questions.
func (s *Store) Count() int {
	return len(s.questions)
}
