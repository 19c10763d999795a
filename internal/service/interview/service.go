// Package interview generates mock interview questions and answer feedback,
// and stores interview transcripts.
package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/platform/validate"
)

// Level is the seniority an interview targets.
type Level string

// Levels.
const (
	EntryLevel  Level = "entry"
	MidLevel    Level = "mid"
	SeniorLevel Level = "senior"
)

// Source tells whether content came from the AI or the static fallback.
type Source string

// Sources.
const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Limits on requests and transcripts.
const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 10
	MaxAnswerLength      = 5000
	MaxEntries           = 20
)

// QuestionSet is a generated list of questions.
type QuestionSet struct {
	Role      string
	Level     Level
	Questions []string
	Source    Source
}

// Feedback evaluates one answer.
type Feedback struct {
	Score        int
	Strengths    []string
	Improvements []string
	Summary      string
	Source       Source
}

// Entry is one question and answer in a transcript.
type Entry struct {
	Question string
	Answer   string
	Feedback string
	Score    int
}

// Session is a stored interview transcript.
type Session struct {
	ID        string
	UserEmail string
	Role      string
	Level     Level
	Entries   []Entry
	CreatedAt time.Time
}

// SessionInput is a transcript submitted by the user.
type SessionInput struct {
	Role    string
	Level   string
	Entries []Entry
}

// Store persists transcripts.
type Store interface {
	Create(ctx context.Context, s *Session) error
	// ListByUser returns email's sessions newest first.
	ListByUser(ctx context.Context, email string) ([]*Session, error)
}

// Service implements mock interviews. A nil Completer always uses the fallback.
type Service struct {
	ai    Completer
	store Store
	now   timeutil.Clock
	newID func() string
}

// NewService creates a Service.
func NewService(ai Completer, store Store, clock timeutil.Clock) *Service {
	if clock == nil {
		clock = timeutil.SystemClock
	}
	return &Service{ai: ai, store: store, now: clock, newID: uuid.NewString}
}

// ParseLevel maps free text to a Level, defaulting to MidLevel.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case EntryLevel, MidLevel, SeniorLevel:
		return l
	}
	return MidLevel
}

// Questions generates count questions for role and level. Any AI failure
// returns the static set instead of an error.
func (s *Service) Questions(ctx context.Context, role, level string, count int) QuestionSet {
	set := QuestionSet{Role: strings.TrimSpace(role), Level: ParseLevel(level)}
	if set.Role == "" {
		set.Role = "Software Engineer"
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}
	count = min(count, MaxQuestionCount)

	if s.ai != nil {
		reply, err := s.ai.Complete(ctx, []Message{
			{Role: "system", Content: "You are an experienced interviewer. Reply with a JSON array of strings only."},
			{Role: "user", Content: fmt.Sprintf("Write %d interview questions for a %s-level %s.", count, set.Level, set.Role)},
		})
		if err == nil {
			if qs := parseQuestions(reply); len(qs) > 0 {
				set.Questions = qs[:min(count, len(qs))]
				set.Source = SourceAI
				return set
			}
			err = ErrEmptyReply
		}
		logFallback(ctx, "questions", err)
	}
	set.Questions = fallbackQuestionSet(set.Level, count)
	set.Source = SourceFallback
	return set
}

// Feedback evaluates answer to question, falling back to heuristics.
func (s *Service) Feedback(ctx context.Context, question, answer string) (Feedback, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	var c validate.Collector
	c.Required("question", question)
	c.Required("answer", answer)
	c.MaxLength("answer", answer, MaxAnswerLength)
	if err := c.Err(); err != nil {
		return Feedback{}, err
	}

	if s.ai != nil {
		reply, err := s.ai.Complete(ctx, []Message{
			{Role: "system", Content: `You coach job candidates. Reply with JSON only: {"score":1-10,"strengths":[],"improvements":[],"summary":""}`},
			{Role: "user", Content: "Question: " + question + "\nAnswer: " + answer},
		})
		if err == nil {
			fb, perr := parseFeedback(reply)
			if perr == nil {
				return fb, nil
			}
			err = perr
		}
		logFallback(ctx, "feedback", err)
	}
	return fallbackFeedback(answer), nil
}

// SaveSession stores a transcript for owner.
func (s *Service) SaveSession(ctx context.Context, owner string, in SessionInput) (*Session, error) {
	email := auth.NormalizeEmail(owner)
	var c validate.Collector
	c.Check(len(in.Entries) > 0, "entries", "must contain at least one entry")
	c.Check(len(in.Entries) <= MaxEntries, "entries", "must contain at most %d entries", MaxEntries)
	entries := make([]Entry, 0, len(in.Entries))
	for i, e := range in.Entries {
		e.Question = strings.TrimSpace(e.Question)
		e.Answer = strings.TrimSpace(e.Answer)
		field := fmt.Sprintf("entries[%d]", i)
		c.Required(field+".question", e.Question)
		c.MaxLength(field+".answer", e.Answer, MaxAnswerLength)
		entries = append(entries, e)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        s.newID(),
		UserEmail: email,
		Role:      strings.TrimSpace(in.Role),
		Level:     ParseLevel(in.Level),
		Entries:   entries,
		CreatedAt: s.now(),
	}
	err := s.store.Create(ctx, sess)
	ev := applog.AuditEvent{
		Action:     "create",
		Actor:      email,
		Resource:   "interview_session",
		ResourceID: sess.ID,
		Result:     applog.AuditSuccess,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": "internal_error"}
	}
	applog.LogAuditEvent(ctx, ev)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ListSessions returns owner's transcripts newest first.
func (s *Service) ListSessions(ctx context.Context, owner string) ([]*Session, error) {
	return s.store.ListByUser(ctx, auth.NormalizeEmail(owner))
}

func logFallback(ctx context.Context, kind string, err error) {
	if errors.Is(err, ErrNotConfigured) {
		return
	}
	applog.LogWarn(ctx, "ai unavailable, using fallback", zap.String("kind", kind), zap.Error(err))
}

var (
	codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	numbering = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)
)

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFence.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// parseQuestions accepts a JSON array or a numbered or bulleted list.
func parseQuestions(reply string) []string {
	body := stripFence(reply)
	var qs []string
	if err := json.Unmarshal([]byte(body), &qs); err == nil {
		return validate.CleanList(qs)
	}
	for line := range strings.Lines(body) {
		if q := strings.TrimSpace(numbering.ReplaceAllString(line, "")); q != "" {
			qs = append(qs, q)
		}
	}
	return validate.CleanList(qs)
}

func parseFeedback(reply string) (Feedback, error) {
	var raw struct {
		Score        int      `json:"score"`
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
		Summary      string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stripFence(reply)), &raw); err != nil {
		return Feedback{}, fmt.Errorf("decoding ai feedback: %w", err)
	}
	if raw.Score < 1 || raw.Score > 10 {
		return Feedback{}, fmt.Errorf("ai feedback score %d out of range", raw.Score)
	}
	return Feedback{
		Score:        raw.Score,
		Strengths:    raw.Strengths,
		Improvements: raw.Improvements,
		Summary:      strings.TrimSpace(raw.Summary),
		Source:       SourceAI,
	}, nil
}
