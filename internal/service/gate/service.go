package gate

import (
	"context"
	"errors"
	"log"
	"math/rand"

	"github.com/mohitvuyala/portfolio/backend/internal/model/riddle"
	"github.com/mohitvuyala/portfolio/backend/internal/model/session"
)

var (
	ErrNoChallenge    = errors.New("no challenge issued")
	ErrSessionMissing = errors.New("session id is required")
	ErrEmptyPool      = errors.New("riddle pool is empty")
)

// Service issues riddles to sessions and checks guesses against them.
type Service struct {
	riddles  []riddle.Riddle
	sessions session.Store
	pick     func(n int) int
}

// NewService returns a gate serving the given pool. The pool is copied and
// never mutated afterwards.
func NewService(riddles []riddle.Riddle, sessions session.Store) *Service {
	return &Service{
		riddles:  append([]riddle.Riddle(nil), riddles...),
		sessions: sessions,
		pick:     rand.Intn,
	}
}

// IssueChallenge picks a riddle for the session, replacing any earlier one
// and relocking the gate. Only the question is returned.
func (s *Service) IssueChallenge(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionMissing
	}
	if len(s.riddles) == 0 {
		return "", ErrEmptyPool
	}

	r := s.riddles[s.pick(len(s.riddles))]
	s.sessions.Save(sessionID, session.State{
		ExpectedAnswer: riddle.Normalize(r.Answer),
		HasChallenge:   true,
		Unlocked:       false,
	})
	return r.Question, nil
}

// SubmitAnswer compares guess with the session's current answer. A match
// unlocks the session; a miss leaves it as it was. Guesses are unlimited.
func (s *Service) SubmitAnswer(_ context.Context, sessionID, guess string) (bool, error) {
	normalized := riddle.Normalize(guess)

	var challenged, matched, unlocked bool
	s.sessions.Update(sessionID, func(state *session.State) bool {
		if !state.HasChallenge {
			return false
		}
		challenged = true
		if normalized != state.ExpectedAnswer {
			return false
		}
		matched = true
		unlocked = !state.Unlocked
		state.Unlocked = true
		return true
	})

	if !challenged {
		return false, ErrNoChallenge
	}
	if unlocked {
		log.Printf("[gate] session unlocked")
	}
	return matched, nil
}

// Unlocked reports whether the session has solved its current riddle.
func (s *Service) Unlocked(_ context.Context, sessionID string) bool {
	state, ok := s.sessions.Get(sessionID)
	return ok && state.Unlocked
}

// PeekAnswer exposes the normalized expected answer for local debugging.
func (s *Service) PeekAnswer(_ context.Context, sessionID string) (string, bool) {
	state, ok := s.sessions.Get(sessionID)
	if !ok || !state.HasChallenge {
		return "", false
	}
	return state.ExpectedAnswer, true
}
