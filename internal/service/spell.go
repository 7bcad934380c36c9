package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_status_source.go -package=mocks illumicheck/internal/service StatusSource
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_spell_service.go -package=mocks -mock_names=SpellService=MockSpellService illumicheck/internal/service SpellService

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"illumicheck/internal/checker"
	"illumicheck/internal/contextutil"
	"illumicheck/internal/dictionary"
	"illumicheck/internal/tokenizer"
)

const (
	// MaxTextLength is the largest text, in runes, accepted by a check.
	MaxTextLength = 1 << 20
	// DefaultMaxSessions bounds the number of open checker sessions.
	DefaultMaxSessions = 1024
	// DefaultSessionTTL is how long a session may sit unused before it expires.
	DefaultSessionTTL = 30 * time.Minute
)

// StatusSource reports the dictionary load state.
// dictionary.Loader implements it.
type StatusSource interface {
	Status() dictionary.Status
}

// CheckRequest represents a check request in the domain layer.
type CheckRequest struct {
	Text string
}

// CheckResponse represents a check result in the domain layer.
type CheckResponse struct {
	Ready        bool
	Reused       bool
	Misspellings []checker.Misspelling
	Words        []string
}

// SessionInfo describes an open checker session.
type SessionInfo struct {
	ID        string
	CreatedAt time.Time
}

// SpellService checks texts against the shared dictionary.
type SpellService interface {
	// CheckOnce runs a stateless exact check.
	CheckOnce(ctx context.Context, req CheckRequest) (CheckResponse, error)
	// NewSession opens an incremental checker session.
	NewSession(ctx context.Context) (SessionInfo, error)
	// CheckSession runs the session's checker on the full current text.
	CheckSession(ctx context.Context, id string, req CheckRequest) (CheckResponse, error)
	// CloseSession drops a session.
	CloseSession(ctx context.Context, id string) error
	// Status returns the dictionary load state.
	Status(ctx context.Context) dictionary.Status
}

// Option configures the spell service.
type Option func(*spellService)

// WithMaxSessions bounds the number of open sessions.
func WithMaxSessions(n int) Option {
	return func(s *spellService) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL sets how long an unused session is kept.
func WithSessionTTL(d time.Duration) Option {
	return func(s *spellService) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

// WithClock replaces the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *spellService) {
		if now != nil {
			s.now = now
		}
	}
}

type session struct {
	checker   *checker.Checker
	createdAt time.Time
	lastUsed  time.Time
}

func (sess *session) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(sess.lastUsed) > ttl
}

// spellService implements SpellService.
type spellService struct {
	lexicon     checker.Lexicon
	status      StatusSource
	normalizer  *tokenizer.Normalizer
	mode        checker.Mode
	maxSessions int
	sessionTTL  time.Duration
	now         func() time.Time
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSpellService creates a new SpellService. Sessions check in mode; CheckOnce is always exact.
func NewSpellService(lexicon checker.Lexicon, status StatusSource, normalizer *tokenizer.Normalizer, mode checker.Mode, opts ...Option) SpellService {
	s := &spellService{
		lexicon:     lexicon,
		status:      status,
		normalizer:  normalizer,
		mode:        mode,
		maxSessions: DefaultMaxSessions,
		sessionTTL:  DefaultSessionTTL,
		now:         time.Now,
		logger:      slog.Default(),
		sessions:    make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckOnce runs a stateless exact check.
func (s *spellService) CheckOnce(ctx context.Context, req CheckRequest) (CheckResponse, error) {
	logger := contextutil.LoggerFromContext(ctx, s.logger)

	if err := validateText(req.Text); err != nil {
		logger.WarnContext(ctx, "rejected check request", "error", err)
		return CheckResponse{}, err
	}

	res := checker.New(s.lexicon, s.normalizer, checker.ModeExact).Check(req.Text)
	logger.DebugContext(ctx, "checked text", "length", len(req.Text), "misspellings", len(res.Misspellings), "ready", res.Ready)
	return toResponse(res), nil
}

// NewSession opens an incremental checker session.
func (s *spellService) NewSession(ctx context.Context) (SessionInfo, error) {
	logger := contextutil.LoggerFromContext(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if evicted := s.pruneIdle(now); evicted > 0 {
		logger.InfoContext(ctx, "expired idle checker sessions", "expired", evicted, "open_sessions", len(s.sessions))
	}
	if len(s.sessions) >= s.maxSessions {
		logger.WarnContext(ctx, "session limit reached", "max_sessions", s.maxSessions)
		return SessionInfo{}, ErrSessionLimit
	}

	id := uuid.NewString()
	sess := &session{
		checker:   checker.New(s.lexicon, s.normalizer, s.mode),
		createdAt: now,
		lastUsed:  now,
	}
	s.sessions[id] = sess

	logger.InfoContext(ctx, "opened checker session", "session_id", id, "mode", s.mode.String(), "open_sessions", len(s.sessions))
	return SessionInfo{ID: id, CreatedAt: sess.createdAt}, nil
}

// CheckSession runs the session's checker on the full current text.
func (s *spellService) CheckSession(ctx context.Context, id string, req CheckRequest) (CheckResponse, error) {
	logger := contextutil.LoggerFromContext(ctx, s.logger)

	if err := validateText(req.Text); err != nil {
		logger.WarnContext(ctx, "rejected session check request", "session_id", id, "error", err)
		return CheckResponse{}, err
	}

	sess, err := s.lookup(id)
	if err != nil {
		logger.WarnContext(ctx, "session lookup failed", "session_id", id, "error", err)
		return CheckResponse{}, err
	}

	res := sess.checker.Check(req.Text)
	logger.DebugContext(ctx, "checked session text",
		"session_id", id, "misspellings", len(res.Misspellings), "reused", res.Reused, "ready", res.Ready)
	return toResponse(res), nil
}

// CloseSession drops a session.
func (s *spellService) CloseSession(ctx context.Context, id string) error {
	logger := contextutil.LoggerFromContext(ctx, s.logger)

	key, err := parseSessionID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.sessions[key]
	delete(s.sessions, key)
	open := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return WrapError(ErrNotFound, fmt.Sprintf("session %s", key))
	}
	logger.InfoContext(ctx, "closed checker session", "session_id", key, "open_sessions", open)
	return nil
}

// Status returns the dictionary load state.
func (s *spellService) Status(ctx context.Context) dictionary.Status {
	if s.status == nil {
		return dictionary.Status{Ready: s.lexicon.Ready()}
	}
	return s.status.Status()
}

func (s *spellService) lookup(id string) (*session, error) {
	key, err := parseSessionID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, WrapError(ErrNotFound, fmt.Sprintf("session %s", key))
	}
	now := s.now().UTC()
	if sess.expired(now, s.sessionTTL) {
		delete(s.sessions, key)
		return nil, WrapError(ErrNotFound, fmt.Sprintf("session %s expired", key))
	}
	sess.lastUsed = now
	return sess, nil
}

// pruneIdle drops sessions unused for longer than the TTL. Caller holds mu.
func (s *spellService) pruneIdle(now time.Time) int {
	evicted := 0
	for id, sess := range s.sessions {
		if sess.expired(now, s.sessionTTL) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// parseSessionID returns the canonical form of id.
func parseSessionID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", &ValidationError{Field: "id", Message: "must be a UUID"}
	}
	return parsed.String(), nil
}

func validateText(text string) error {
	if !utf8.ValidString(text) {
		return &ValidationError{Field: "text", Message: "must be valid UTF-8"}
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return &ValidationError{Field: "text", Message: fmt.Sprintf("must be at most %d characters", MaxTextLength)}
	}
	return nil
}

func toResponse(res checker.Result) CheckResponse {
	return CheckResponse{
		Ready:        res.Ready,
		Reused:       res.Reused,
		Misspellings: res.Misspellings,
		Words:        checker.Distinct(res.Misspellings),
	}
}
