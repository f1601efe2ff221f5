package paginator

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/metrics"
)

type eventKind int

const (
	eventClick eventKind = iota
	eventSubmit
)

type event struct {
	kind        eventKind
	control     string
	userID      string
	interaction *discordgo.Interaction
	nonce       uint64
	value       string
	handled     chan struct{}
}

// session serialises everything that touches one view: platform events, the
// idle timer and the page-jump prompt timer are all handled in run.
type session struct {
	engine    *Engine
	state     *state
	channelID string
	messageID string

	events chan event
	stop   chan struct{}
	done   chan struct{}

	nonce   uint64
	pending uint64
	prompt  *time.Timer
}

func newSession(e *Engine, st *state, channelID, messageID string) *session {
	return &session{
		engine:    e,
		state:     st,
		channelID: channelID,
		messageID: messageID,
		events:    make(chan event),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// deliver hands ev to the session loop and waits until it has been handled.
// It reports false once the session has finished.
func (s *session) deliver(ev event) bool {
	ev.handled = make(chan struct{})
	select {
	case s.events <- ev:
	case <-s.done:
		return false
	}
	<-ev.handled
	return true
}

func (s *session) run() {
	defer close(s.done)

	idle := time.NewTimer(s.engine.idleTimeout)
	defer idle.Stop()
	defer s.stopPrompt()

	for {
		var promptC <-chan time.Time
		if s.prompt != nil {
			promptC = s.prompt.C
		}

		select {
		case ev := <-s.events:
			if s.handle(ev) {
				idle.Reset(s.engine.idleTimeout)
			}
			close(ev.handled)
		case <-promptC:
			s.pending = 0
			s.prompt = nil
		case <-idle.C:
			s.expire()
			return
		case <-s.stop:
			s.expire()
			return
		}
	}
}

// handle applies one event and reports whether it counts as activity.
func (s *session) handle(ev event) bool {
	m := s.engine.metrics

	if ev.kind == eventSubmit && (s.pending == 0 || ev.nonce != s.pending) {
		m.RecordControl(ev.control, metrics.ControlStale)
		s.notice(ev.interaction, PromptExpiredText)
		return false
	}

	if ev.userID != s.state.ownerID {
		m.RecordControl(ev.control, metrics.ControlRejected)
		s.notice(ev.interaction, NotYoursText)
		return true
	}

	if ev.kind == eventSubmit {
		s.stopPrompt()
		if err := s.state.jump(ev.value); err != nil {
			m.RecordControl(ev.control, metrics.ControlInvalid)
			s.notice(ev.interaction, InvalidPageText)
			return false
		}
		m.RecordControl(ev.control, metrics.ControlAccepted)
		s.update(ev.interaction)
		return true
	}

	switch ev.control {
	case BackButtonID:
		s.state.back()
	case ForwardButtonID:
		s.state.forward()
	case PageInfoID:
		s.openPrompt(ev.interaction)
		return false
	}

	m.RecordControl(ev.control, metrics.ControlAccepted)
	s.update(ev.interaction)
	return true
}

func (s *session) openPrompt(i *discordgo.Interaction) {
	s.stopPrompt()
	s.nonce++

	ctx, cancel := s.callContext()
	defer cancel()
	if err := s.engine.transport.Prompt(ctx, i, pageModal(modalID(s.messageID, s.nonce))); err != nil {
		log.Printf("[WARN] paginator: open page prompt on %s failed: %v", s.messageID, err)
		return
	}

	s.pending = s.nonce
	s.prompt = time.NewTimer(s.engine.promptTimeout)
}

func (s *session) stopPrompt() {
	if s.prompt != nil {
		s.prompt.Stop()
		s.prompt = nil
	}
	s.pending = 0
}

func (s *session) update(i *discordgo.Interaction) {
	ctx, cancel := s.callContext()
	defer cancel()
	if err := s.engine.transport.Update(ctx, i, s.state.view(s.engine.brand)); err != nil {
		log.Printf("[WARN] paginator: update %s failed: %v", s.messageID, err)
	}
}

func (s *session) notice(i *discordgo.Interaction, content string) {
	ctx, cancel := s.callContext()
	defer cancel()
	if err := s.engine.transport.Notice(ctx, i, content); err != nil {
		log.Printf("[WARN] paginator: notice on %s failed: %v", s.messageID, err)
	}
}

// expire unregisters the session first so no new event can reach it, then
// disables the controls. The edit is best effort: the message may be gone.
func (s *session) expire() {
	s.engine.remove(s.messageID)
	s.engine.metrics.SessionExpired()
	s.expireControls()
}

func (s *session) expireControls() {
	ctx, cancel := s.callContext()
	defer cancel()
	if err := s.engine.transport.EditComponents(ctx, s.channelID, s.messageID, s.state.expiredComponents()); err != nil {
		log.Printf("[DEBUG] paginator: disable controls on %s: %v", s.messageID, err)
	}
}

func (s *session) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}
