package paginator

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/metrics"
)

const (
	DefaultIdleTimeout   = 60 * time.Second
	DefaultPromptTimeout = 15 * time.Second
	callTimeout          = 10 * time.Second
)

// Engine owns every live session and routes platform events to them by
// message id.
type Engine struct {
	transport     Transport
	metrics       *metrics.Metrics
	idleTimeout   time.Duration
	promptTimeout time.Duration
	brand         string

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

type Option func(*Engine)

func WithIdleTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.idleTimeout = d
		}
	}
}

func WithPromptTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.promptTimeout = d
		}
	}
}

// WithBrand sets the footer brand line.
func WithBrand(brand string) Option {
	return func(e *Engine) { e.brand = brand }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func New(t Transport, opts ...Option) *Engine {
	e := &Engine{
		transport:     t,
		idleTimeout:   DefaultIdleTimeout,
		promptTimeout: DefaultPromptTimeout,
		sessions:      make(map[string]*session),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Present sends the first page and, for valid input, starts a session that
// owns the message until it expires. With empty items a single invalid-data
// page with disabled controls is sent and no session is started. Views with
// no identifiable owner, or presented after Shutdown, are sent with their
// controls already expired.
func (e *Engine) Present(ctx context.Context, req Request) error {
	st, valid := newState(req)
	view := st.view(e.brand)

	live := valid && st.ownerID != "" && !e.isClosed()
	if valid && !live {
		view.Components = st.expiredComponents()
	}

	msg, err := e.send(ctx, req.Origin, view)
	if err != nil {
		return fmt.Errorf("send paginated view: %w", err)
	}

	if !valid {
		e.metrics.SessionInvalid()
		return nil
	}
	if !live {
		if st.ownerID == "" {
			log.Printf("[WARN] paginator: %q has no owner, controls disabled", req.Title)
		}
		return nil
	}
	if msg == nil || msg.ID == "" {
		return fmt.Errorf("send paginated view: no message returned")
	}

	s := newSession(e, st, msg.ChannelID, msg.ID)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		// Shutdown ran while the first page was in flight.
		go s.expireControls()
		return nil
	}
	e.sessions[msg.ID] = s
	e.mu.Unlock()

	e.metrics.SessionStarted()
	go s.run()
	return nil
}

// send uses exactly one of the three reply paths.
func (e *Engine) send(ctx context.Context, o Origin, v View) (*discordgo.Message, error) {
	switch {
	case o.Message != nil:
		return e.transport.ReplyMessage(ctx, o.Message, v)
	case o.Interaction == nil:
		return nil, ErrNoOrigin
	case o.Deferred:
		return e.transport.EditResponse(ctx, o.Interaction, v)
	default:
		return e.transport.Respond(ctx, o.Interaction, v)
	}
}

// HandleComponent routes a button press to its session. It reports false for
// anything that is not one of the navigation controls, so custom rows placed
// next to them reach their own handlers.
func (e *Engine) HandleComponent(i *discordgo.Interaction) bool {
	if i == nil || i.Type != discordgo.InteractionMessageComponent || i.Message == nil {
		return false
	}
	control := i.MessageComponentData().CustomID
	if !isControl(control) {
		return false
	}

	ev := event{
		kind:        eventClick,
		control:     control,
		userID:      interactionUserID(i),
		interaction: i,
	}
	if s := e.lookup(i.Message.ID); s != nil && s.deliver(ev) {
		return true
	}

	e.metrics.RecordControl(control, metrics.ControlStale)
	e.notice(i, ExpiredText)
	return true
}

// HandleModalSubmit routes a page-jump submission to its session. It reports
// false for modals it did not open.
func (e *Engine) HandleModalSubmit(i *discordgo.Interaction) bool {
	if i == nil || i.Type != discordgo.InteractionModalSubmit {
		return false
	}
	data := i.ModalSubmitData()
	messageID, nonce, ok := parseModalID(data.CustomID)
	if !ok {
		return false
	}

	ev := event{
		kind:        eventSubmit,
		control:     PageInfoID,
		userID:      interactionUserID(i),
		interaction: i,
		nonce:       nonce,
		value:       modalValue(data, PageNumberInputID),
	}
	if s := e.lookup(messageID); s != nil && s.deliver(ev) {
		return true
	}

	e.metrics.RecordControl(PageInfoID, metrics.ControlStale)
	e.notice(i, PromptExpiredText)
	return true
}

// Active returns the number of live sessions.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// Shutdown expires every live session and waits for them to finish. Present
// calls made afterwards send their first page but start no session.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	live := make([]*session, 0, len(e.sessions))
	for _, s := range e.sessions {
		live = append(live, s)
	}
	e.mu.Unlock()

	for _, s := range live {
		close(s.stop)
	}
	for _, s := range live {
		<-s.done
	}
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) lookup(messageID string) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[messageID]
}

func (e *Engine) remove(messageID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, messageID)
}

func (e *Engine) notice(i *discordgo.Interaction, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if err := e.transport.Notice(ctx, i, content); err != nil {
		log.Printf("[WARN] paginator: notice failed: %v", err)
	}
}

func parseModalID(customID string) (string, uint64, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != PageModalPrefix || parts[1] == "" {
		return "", 0, false
	}
	nonce, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return parts[1], nonce, true
}
