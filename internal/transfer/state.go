package transfer

import (
	"context"
	"log/slog"
	"sync"

	"podhaul/internal/episode"
	"podhaul/internal/logging"
)

// Phase names the stage of a transfer session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
	PhaseFailed     Phase = "failed"
)

// State is a snapshot of a session. Completed and Total are meaningful during
// PhaseInProgress, Outcome during PhaseFinished, Message during PhaseFailed.
type State struct {
	Phase     Phase
	Completed int
	Total     int
	Outcome   *Outcome
	Message   string
}

// Session runs one transfer at a time and exposes its progress as a finite
// state machine: idle, then in_progress(completed, total), then exactly one
// of finished(outcome) or failed(message). Precondition failures (no
// destination, empty selection) move straight from idle to failed without
// touching the filesystem.
type Session struct {
	engine *Engine
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	onProgress func(completed, total int)
}

// NewSession wraps a fresh engine built from opts. Any OnProgress hook in
// opts still fires; the session additionally tracks progress in its state.
func NewSession(opts Options, logger *slog.Logger) *Session {
	s := &Session{
		logger:     logging.NewComponentLogger(logger, "transfer-session"),
		state:      State{Phase: PhaseIdle},
		onProgress: opts.OnProgress,
	}
	opts.OnProgress = s.progress
	s.engine = NewEngine(opts, logger)
	return s
}

// State returns the current snapshot. Safe to call from another goroutine
// while Run is in flight.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run validates the request, executes the transfer, and returns the terminal
// state. Validation failures produce a failed state rather than an error:
// the caller surfaces the message, nothing exceptional happened.
func (s *Session) Run(ctx context.Context, episodes []episode.Episode, destination string) State {
	if destination == "" {
		return s.fail("Select a destination first.")
	}
	if len(episodes) == 0 {
		return s.fail("Select at least one episode to transfer.")
	}

	s.setState(State{Phase: PhaseInProgress, Completed: 0, Total: len(episodes)})

	outcome, err := s.engine.Transfer(ctx, episodes, destination)
	if err != nil {
		s.logger.Error("transfer failed", logging.Error(err))
		return s.fail(err.Error())
	}
	terminal := State{Phase: PhaseFinished, Completed: len(episodes), Total: len(episodes), Outcome: outcome}
	s.setState(terminal)
	return terminal
}

func (s *Session) progress(completed, total int) {
	s.mu.Lock()
	s.state.Completed = completed
	s.state.Total = total
	s.mu.Unlock()
	if s.onProgress != nil {
		s.onProgress(completed, total)
	}
}

func (s *Session) fail(message string) State {
	state := State{Phase: PhaseFailed, Message: message}
	s.setState(state)
	return state
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
