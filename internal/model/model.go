package model

// Question is an interview question together with its graded reference
// answers. Reference answers are server-side grading material and must be
// stripped before a question is sent to a client.
type Question struct {
	ID      int               `json:"id"`
	Prompt  string            `json:"question"`
	Answers []ReferenceAnswer `json:"answers,omitempty"`
}

// ReferenceAnswer is a graded exemplar answer. Score is the percentage in
// [0,100] awarded to an answer that fully matches Text.
type ReferenceAnswer struct {
	Text     string `json:"text"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback,omitempty"`
}

// Evaluation is the scoring engine's verdict on a single answer.
type Evaluation struct {
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
	Suggestion string `json:"suggestion,omitempty"`
}

// AnswerSubmission is one answer in a batch submit request.
type AnswerSubmission struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// FeedbackItem is the per-question detail returned for a batch submission.
type FeedbackItem struct {
	QuestionNumber int    `json:"question_number"`
	Question       string `json:"question"`
	UserAnswer     string `json:"user_answer"`
	Score          int    `json:"score"`
	Feedback       string `json:"feedback"`
}

// SubmitResult is the response body for a batch submission. TotalScore is the
// score sum floor-divided by the number of submitted answers.
type SubmitResult struct {
	TotalScore int            `json:"total_score"`
	Feedback   []FeedbackItem `json:"feedback"`
}

// QuestionResult is one entry in a session summary. Evaluation is nil for
// responses that were stored but not yet evaluated.
type QuestionResult struct {
	QuestionID int         `json:"questionId"`
	Question   string      `json:"question"`
	Response   string      `json:"response"`
	Evaluation *Evaluation `json:"evaluation"`
}

// SessionSummary aggregates a session's evaluated responses. AverageScore is
// rounded to one decimal place; QuestionCount counts evaluated entries only.
type SessionSummary struct {
	SessionID     string           `json:"sessionId"`
	AverageScore  float64          `json:"averageScore"`
	QuestionCount int              `json:"questionCount"`
	Results       []QuestionResult `json:"results"`
}
