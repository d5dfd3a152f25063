// Package session keeps per-interview results in process memory. Sessions
// are lost on restart; there is no persistence by design.
package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/mockview/interviewd/internal/model"
)

// ErrNotFound is returned for session ids that were never written.
var ErrNotFound = errors.New("session not found")

type entry struct {
	question   string
	response   string
	evaluation *model.Evaluation
}

type session struct {
	// order preserves question insertion order for result listings.
	order      []int
	entries    map[int]*entry
	lastActive time.Time
}

// Store is a mutex-guarded in-memory session store. The zero value is not
// usable; create one with New.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session

	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

// New creates a session store. ttl > 0 starts a sweeper that drops sessions
// idle longer than ttl; ttl == 0 keeps sessions for the process lifetime.
func New(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

// Close stops the expiry sweeper, if any.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) sweep() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.Sub(sess.lastActive) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// session returns the session for id, creating it if absent.
// Caller must hold the write lock.
func (s *Store) session(id string) *session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{entries: make(map[int]*entry)}
		s.sessions[id] = sess
	}
	sess.lastActive = time.Now()
	return sess
}

// StoreResponse upserts the question text and response for a question within
// a session. A newly created entry carries no evaluation; an existing
// evaluation is left untouched.
func (s *Store) StoreResponse(sessionID string, questionID int, question, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	e, ok := sess.entries[questionID]
	if !ok {
		e = &entry{}
		sess.entries[questionID] = e
		sess.order = append(sess.order, questionID)
	}
	e.question = question
	e.response = response
}

// StoreEvaluation attaches or overwrites the evaluation for a question within
// a session, creating the session and entry if needed.
func (s *Store) StoreEvaluation(sessionID string, questionID int, ev model.Evaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	e, ok := sess.entries[questionID]
	if !ok {
		e = &entry{}
		sess.entries[questionID] = e
		sess.order = append(sess.order, questionID)
	}
	e.evaluation = &ev
}

// Results summarizes a session: average over evaluated entries (one decimal
// place, 0 when nothing is evaluated), evaluated count, and per-question
// details in insertion order. Unseen session ids yield ErrNotFound.
func (s *Store) Results(sessionID string) (model.SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.SessionSummary{}, ErrNotFound
	}

	summary := model.SessionSummary{
		SessionID: sessionID,
		Results:   make([]model.QuestionResult, 0, len(sess.order)),
	}

	total := 0
	for _, qid := range sess.order {
		e := sess.entries[qid]
		result := model.QuestionResult{
			QuestionID: qid,
			Question:   e.question,
			Response:   e.response,
		}
		if e.evaluation != nil {
			ev := *e.evaluation
			result.Evaluation = &ev
			total += ev.Score
			summary.QuestionCount++
		}
		summary.Results = append(summary.Results, result)
	}

	if summary.QuestionCount > 0 {
		avg := float64(total) / float64(summary.QuestionCount)
		summary.AverageScore = math.Round(avg*10) / 10
	}
	return summary, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
