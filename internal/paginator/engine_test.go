package paginator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wavebot/internal/metrics"
)

type call struct {
	method     string
	view       View
	content    string
	modal      *discordgo.InteractionResponseData
	components []discordgo.MessageComponent
}

type fakeTransport struct {
	mu      sync.Mutex
	calls   []call
	sendErr error
}

func (f *fakeTransport) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeTransport) all() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeTransport) last(method string) (call, bool) {
	calls := f.all()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].method == method {
			return calls[i], true
		}
	}
	return call{}, false
}

func (f *fakeTransport) count(method string) int {
	n := 0
	for _, c := range f.all() {
		if c.method == method {
			n++
		}
	}
	return n
}

func (f *fakeTransport) sent(method string, v View) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.record(call{method: method, view: v})
	return &discordgo.Message{ID: "msg-1", ChannelID: "chan-1"}, nil
}

func (f *fakeTransport) ReplyMessage(_ context.Context, _ *discordgo.Message, v View) (*discordgo.Message, error) {
	return f.sent("reply", v)
}

func (f *fakeTransport) Respond(_ context.Context, _ *discordgo.Interaction, v View) (*discordgo.Message, error) {
	return f.sent("respond", v)
}

func (f *fakeTransport) EditResponse(_ context.Context, _ *discordgo.Interaction, v View) (*discordgo.Message, error) {
	return f.sent("edit_response", v)
}

func (f *fakeTransport) Update(_ context.Context, _ *discordgo.Interaction, v View) error {
	f.record(call{method: "update", view: v})
	return nil
}

func (f *fakeTransport) EditComponents(_ context.Context, _, _ string, components []discordgo.MessageComponent) error {
	f.record(call{method: "edit_components", components: components})
	return nil
}

func (f *fakeTransport) Notice(_ context.Context, _ *discordgo.Interaction, content string) error {
	f.record(call{method: "notice", content: content})
	return nil
}

func (f *fakeTransport) Prompt(_ context.Context, _ *discordgo.Interaction, modal *discordgo.InteractionResponseData) error {
	f.record(call{method: "prompt", modal: modal})
	return nil
}

func slash(userID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:   discordgo.InteractionApplicationCommand,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
	}
}

func click(userID, control string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		Member:  &discordgo.Member{User: &discordgo.User{ID: userID}},
		Message: &discordgo.Message{ID: "msg-1", ChannelID: "chan-1"},
		Data:    discordgo.MessageComponentInteractionData{CustomID: control},
	}
}

func submit(userID, customID, value string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:   discordgo.InteractionModalSubmit,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: customID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: PageNumberInputID, Value: value},
				}},
			},
		},
	}
}

func infoLabel(v View) string {
	return v.Components[0].(discordgo.ActionsRow).Components[1].(discordgo.Button).Label
}

func newEngine(t *testing.T, f *fakeTransport, opts ...Option) *Engine {
	t.Helper()
	e := New(f, opts...)
	t.Cleanup(e.Shutdown)
	return e
}

func present(t *testing.T, e *Engine, n, size int) {
	t.Helper()
	require.NoError(t, e.Present(context.Background(), Request{
		Title:    "Items",
		Items:    items(n),
		PageSize: size,
		Origin:   Origin{Interaction: slash("owner")},
	}))
}

func TestPresentUsesOriginPath(t *testing.T) {
	tests := []struct {
		name   string
		origin Origin
		method string
	}{
		{"fresh interaction", Origin{Interaction: slash("owner")}, "respond"},
		{"deferred interaction", Origin{Interaction: slash("owner"), Deferred: true}, "edit_response"},
		{"message", Origin{Message: &discordgo.Message{ID: "m", ChannelID: "c", Author: &discordgo.User{ID: "owner"}}}, "reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTransport{}
			e := newEngine(t, f)
			require.NoError(t, e.Present(context.Background(), Request{Items: items(3), Origin: tt.origin}))

			calls := f.all()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.method, calls[0].method)
			assert.Equal(t, 1, e.Active())
		})
	}
}

func TestPresentWithoutOrigin(t *testing.T) {
	e := newEngine(t, &fakeTransport{})
	err := e.Present(context.Background(), Request{Items: items(3)})
	require.ErrorIs(t, err, ErrNoOrigin)
	assert.Zero(t, e.Active())
}

func TestPresentSendFailure(t *testing.T) {
	f := &fakeTransport{sendErr: errors.New("boom")}
	e := newEngine(t, f)
	err := e.Present(context.Background(), Request{Items: items(3), Origin: Origin{Interaction: slash("owner")}})
	require.Error(t, err)
	assert.Zero(t, e.Active())
}

func TestPresentEmptyItems(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	f := &fakeTransport{}
	e := newEngine(t, f, WithMetrics(m))

	require.NoError(t, e.Present(context.Background(), Request{Title: "Empty", Origin: Origin{Interaction: slash("owner")}}))

	sent, ok := f.last("respond")
	require.True(t, ok)
	assert.Equal(t, InvalidDataText, sent.view.Embed.Description)
	row := sent.view.Components[0].(discordgo.ActionsRow)
	for _, c := range row.Components {
		assert.True(t, c.(discordgo.Button).Disabled)
	}
	assert.Zero(t, e.Active())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaginationSessionsTotal.WithLabelValues(metrics.SessionInvalidData)))

	// No session: a click on the message is treated as expired.
	assert.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
	notice, ok := f.last("notice")
	require.True(t, ok)
	assert.Equal(t, ExpiredText, notice.content)
}

func TestNavigation(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f)
	present(t, e, 5, 2)

	require.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
	up, ok := f.last("update")
	require.True(t, ok)
	assert.Equal(t, "c\nd", up.view.Embed.Description)
	assert.Equal(t, "2/3", infoLabel(up.view))

	require.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
	up, _ = f.last("update")
	assert.Equal(t, "e", up.view.Embed.Description)

	require.True(t, e.HandleComponent(click("owner", BackButtonID)))
	up, _ = f.last("update")
	assert.Equal(t, "c\nd", up.view.Embed.Description)
	assert.Equal(t, 3, f.count("update"))
}

func TestNonOwnerRejected(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f)
	present(t, e, 5, 2)

	require.True(t, e.HandleComponent(click("intruder", ForwardButtonID)))
	notice, ok := f.last("notice")
	require.True(t, ok)
	assert.Equal(t, NotYoursText, notice.content)
	assert.Zero(t, f.count("update"))

	// The owner still sees page one advance to two.
	require.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
	up, _ := f.last("update")
	assert.Equal(t, "2/3", infoLabel(up.view))
}

func TestPageJump(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f)
	present(t, e, 5, 2)

	require.True(t, e.HandleComponent(click("owner", PageInfoID)))
	prompt, ok := f.last("prompt")
	require.True(t, ok)
	assert.Equal(t, modalID("msg-1", 1), prompt.modal.CustomID)

	require.True(t, e.HandleModalSubmit(submit("owner", prompt.modal.CustomID, "3")))
	up, ok := f.last("update")
	require.True(t, ok)
	assert.Equal(t, "e", up.view.Embed.Description)
	assert.Equal(t, "3/3", infoLabel(up.view))

	// The prompt is consumed.
	require.True(t, e.HandleModalSubmit(submit("owner", prompt.modal.CustomID, "1")))
	notice, _ := f.last("notice")
	assert.Equal(t, PromptExpiredText, notice.content)
	assert.Equal(t, 1, f.count("update"))

	require.True(t, e.HandleComponent(click("owner", PageInfoID)))
	prompt, _ = f.last("prompt")
	assert.Equal(t, modalID("msg-1", 2), prompt.modal.CustomID)
	require.True(t, e.HandleModalSubmit(submit("owner", prompt.modal.CustomID, "2")))
	up, _ = f.last("update")
	assert.Equal(t, "c\nd", up.view.Embed.Description)
}

func TestPageJumpInvalid(t *testing.T) {
	for _, input := range []string{"0", "4", "abc"} {
		t.Run(input, func(t *testing.T) {
			f := &fakeTransport{}
			e := newEngine(t, f)
			present(t, e, 5, 2)

			require.True(t, e.HandleComponent(click("owner", PageInfoID)))
			prompt, _ := f.last("prompt")
			require.True(t, e.HandleModalSubmit(submit("owner", prompt.modal.CustomID, input)))

			notice, ok := f.last("notice")
			require.True(t, ok)
			assert.Equal(t, InvalidPageText, notice.content)
			assert.Zero(t, f.count("update"))

			// The view stays on page one.
			require.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
			up, _ := f.last("update")
			assert.Equal(t, "2/3", infoLabel(up.view))
		})
	}
}

func TestPromptTimeout(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f, WithPromptTimeout(20*time.Millisecond))
	present(t, e, 5, 2)

	require.True(t, e.HandleComponent(click("owner", PageInfoID)))
	prompt, _ := f.last("prompt")

	time.Sleep(60 * time.Millisecond)
	require.True(t, e.HandleModalSubmit(submit("owner", prompt.modal.CustomID, "2")))
	notice, ok := f.last("notice")
	require.True(t, ok)
	assert.Equal(t, PromptExpiredText, notice.content)
	assert.Zero(t, f.count("update"))
}

func TestExpiry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	f := &fakeTransport{}
	e := newEngine(t, f, WithIdleTimeout(30*time.Millisecond), WithMetrics(m))
	present(t, e, 5, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaginationSessionsLive))

	require.Eventually(t, func() bool { return e.Active() == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return f.count("edit_components") == 1 }, time.Second, 5*time.Millisecond)

	edit, _ := f.last("edit_components")
	require.Len(t, edit.components, 1)
	btn := edit.components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, ExpiredButtonID, btn.CustomID)
	assert.True(t, btn.Disabled)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PaginationSessionsLive))

	require.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
	notice, _ := f.last("notice")
	assert.Equal(t, ExpiredText, notice.content)
	assert.Zero(t, f.count("update"))
}

func TestActivityResetsIdle(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f, WithIdleTimeout(200*time.Millisecond))
	present(t, e, 50, 1)

	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		require.True(t, e.HandleComponent(click("owner", ForwardButtonID)))
	}
	assert.Equal(t, 1, e.Active())
	assert.Equal(t, 4, f.count("update"))
}

func TestRejectedClicksResetIdle(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f, WithIdleTimeout(200*time.Millisecond))
	present(t, e, 50, 1)

	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		require.True(t, e.HandleComponent(click("intruder", ForwardButtonID)))
	}
	assert.Equal(t, 1, e.Active())
	assert.Equal(t, 4, f.count("notice"))
	assert.Zero(t, f.count("update"))

	require.Eventually(t, func() bool { return e.Active() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, f.count("edit_components"))
}

func TestExtraRowPassThrough(t *testing.T) {
	f := &fakeTransport{}
	e := newEngine(t, f)
	extra := &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{CustomID: "tests_ping", Label: "ping"},
	}}
	require.NoError(t, e.Present(context.Background(), Request{
		Items:  items(3),
		Extra:  extra,
		Origin: Origin{Interaction: slash("owner")},
	}))

	sent, _ := f.last("respond")
	require.Len(t, sent.view.Components, 2)
	assert.Equal(t, *extra, sent.view.Components[1])

	assert.False(t, e.HandleComponent(click("owner", "tests_ping")))
	assert.Len(t, f.all(), 1)
}

func TestHandleIgnoresForeignEvents(t *testing.T) {
	e := newEngine(t, &fakeTransport{})
	assert.False(t, e.HandleComponent(nil))
	assert.False(t, e.HandleComponent(slash("owner")))
	assert.False(t, e.HandleModalSubmit(submit("owner", "feedback_modal", "x")))
	assert.False(t, e.HandleModalSubmit(click("owner", PageInfoID)))
}

func TestShutdownExpiresSessions(t *testing.T) {
	f := &fakeTransport{}
	e := New(f)
	present(t, e, 5, 2)
	require.Equal(t, 1, e.Active())

	e.Shutdown()
	assert.Zero(t, e.Active())
	assert.Equal(t, 1, f.count("edit_components"))

	require.NoError(t, e.Present(context.Background(), Request{Items: items(3), Origin: Origin{Interaction: slash("owner")}}))
	assert.Zero(t, e.Active())

	sent, ok := f.last("respond")
	require.True(t, ok)
	assert.Equal(t, expiredRow(), sent.view.Components[0])
}

func expiredRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		button(ExpiredButtonID, ExpiredText, true),
	}}
}

func TestPresentWithoutOwnerStartsNoSession(t *testing.T) {
	tests := []struct {
		name   string
		origin Origin
		method string
	}{
		{"message without author", Origin{Message: &discordgo.Message{ID: "m", ChannelID: "c"}}, "reply"},
		{"interaction without user", Origin{Interaction: &discordgo.Interaction{Type: discordgo.InteractionApplicationCommand}}, "respond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTransport{}
			e := newEngine(t, f)

			require.NoError(t, e.Present(context.Background(), Request{Items: items(5), PageSize: 2, Origin: tt.origin}))
			assert.Zero(t, e.Active())

			sent, ok := f.last(tt.method)
			require.True(t, ok)
			require.Len(t, sent.view.Components, 1)
			assert.Equal(t, expiredRow(), sent.view.Components[0])

			// Clicks without a user id find no session to drive.
			anon := click("", ForwardButtonID)
			anon.Member = nil
			assert.True(t, e.HandleComponent(anon))
			assert.Zero(t, f.count("update"))
			n, _ := f.last("notice")
			assert.Equal(t, ExpiredText, n.content)
		})
	}
}
