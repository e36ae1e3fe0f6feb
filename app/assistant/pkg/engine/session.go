package engine

import (
	"context"
	"sort"
	"time"

	"github.com/cloudwego/eino/schema"
)

// session conversation with the remote model. When pending is set the last
// history entry is a user turn still waiting for its reply. seq comes from
// the engine-wide counter so a reset session never reuses a number.
type session struct {
	history  []*schema.Message
	pending  bool
	seq      uint64
	cancel   context.CancelCauseFunc
	lastUsed time.Time
}

// begin cancels any call still running on the session, records the user turn
// and returns the call context with the messages to send.
func (e *Engine) begin(ctx context.Context, id, utterance string) (context.Context, func(), uint64, []*schema.Message) {
	callCtx, cancelCause := context.WithCancelCause(ctx)
	timeoutCtx, cancel := context.WithTimeout(callCtx, e.timeout)

	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[id]
	if !ok {
		s = &session{}
		e.sessions[id] = s
		e.evictLocked(id)
	}
	if s.cancel != nil {
		s.cancel(ErrSuperseded)
	}
	if s.pending {
		s.history = s.history[:len(s.history)-1]
	}
	e.seq++
	s.seq = e.seq
	s.lastUsed = e.now()
	s.cancel = cancelCause
	s.pending = true
	s.history = append(s.history, schema.UserMessage(utterance))

	msgs := make([]*schema.Message, 0, len(s.history)+1)
	msgs = append(msgs, schema.SystemMessage(e.system))
	msgs = append(msgs, s.history...)

	return timeoutCtx, func() {
		cancel()
		cancelCause(nil)
	}, s.seq, msgs
}

// finish records the model turn, or drops the user turn when reply is empty.
// A call that is no longer the session's latest leaves history alone.
func (e *Engine) finish(id string, seq uint64, reply string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[id]
	if !ok || s.seq != seq {
		return
	}
	s.cancel = nil
	s.lastUsed = e.now()
	if s.pending {
		s.pending = false
		if reply == "" {
			s.history = s.history[:len(s.history)-1]
			return
		}
	}
	s.history = append(s.history, schema.AssistantMessage(reply, nil))
	s.history = trim(s.history, e.cfg.LLM.MaxHistory)
}

// evictLocked drops sessions idle longer than e.idle, then the least recently
// used ones while more than e.maxSessions remain. Sessions with a call in
// flight and keep are never dropped.
func (e *Engine) evictLocked(keep string) {
	now := e.now()
	var idle []string
	for id, s := range e.sessions {
		if id == keep || s.cancel != nil {
			continue
		}
		if e.idle > 0 && now.Sub(s.lastUsed) > e.idle {
			delete(e.sessions, id)
			continue
		}
		idle = append(idle, id)
	}
	if e.maxSessions <= 0 || len(e.sessions) <= e.maxSessions {
		return
	}
	sort.Slice(idle, func(i, j int) bool {
		return e.sessions[idle[i]].lastUsed.Before(e.sessions[idle[j]].lastUsed)
	})
	for _, id := range idle {
		if len(e.sessions) <= e.maxSessions {
			return
		}
		delete(e.sessions, id)
	}
}

// trim keeps the last max messages, starting on a user turn
func trim(history []*schema.Message, max int) []*schema.Message {
	if max <= 0 || len(history) <= max {
		return history
	}
	history = history[len(history)-max:]
	for len(history) > 0 && history[0].Role != schema.User {
		history = history[1:]
	}
	return append([]*schema.Message(nil), history...)
}

// Reset forgets a session and cancels its running call
func (e *Engine) Reset(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[id]; ok {
		if s.cancel != nil {
			s.cancel(ErrSuperseded)
		}
		delete(e.sessions, id)
	}
}

// History copy of a session's conversation
func (e *Engine) History(id string) []*schema.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return nil
	}
	return append([]*schema.Message(nil), s.history...)
}
