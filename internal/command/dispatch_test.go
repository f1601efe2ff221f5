package command

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wavebot/internal/metrics"
	"github.com/keshon/wavebot/pkg/cmd"
)

type replies struct {
	texts []string
}

func (r *replies) reply(_ context.Context, _ *cmd.Invocation, text string) error {
	r.texts = append(r.texts, text)
	return nil
}

func newDispatcher(t *testing.T) (*Dispatcher, *replies, *metrics.Metrics) {
	t.Helper()
	reg := cmd.NewRegistry()
	m := metrics.New(prometheus.NewRegistry())
	r := &replies{}
	return &Dispatcher{Registry: reg, Metrics: m, Reply: r.reply}, r, m
}

func TestDispatchRunsHandler(t *testing.T) {
	d, r, m := newDispatcher(t)

	var got cmd.NamePath
	d.Registry.Register(cmd.Path("about", "", ""), cmd.Func("about", "About", func(_ context.Context, inv *cmd.Invocation) error {
		got = inv.Path
		return nil
	}))

	err := d.Dispatch(context.Background(), cmd.Path("about", "", ""), &cmd.Invocation{})
	require.NoError(t, err)
	assert.Equal(t, "about/index", got.Key())
	assert.Empty(t, r.texts)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchTotal.WithLabelValues("about/index", metrics.StatusOK)))
}

func TestDispatchResolutionError(t *testing.T) {
	d, r, m := newDispatcher(t)

	err := d.Dispatch(context.Background(), cmd.Path("tests", "", "missing"), nil)

	var resErr *cmd.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "tests/missing", resErr.Key)
	assert.ErrorIs(t, err, cmd.ErrNotFound)
	assert.Equal(t, []string{FailureText}, r.texts)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchTotal.WithLabelValues("tests/missing", metrics.StatusResolutionError)))
}

func TestDispatchHandlerError(t *testing.T) {
	d, r, m := newDispatcher(t)
	boom := errors.New("boom")
	d.Registry.Register(cmd.Path("tests", "", "error"), cmd.Func("error", "", func(context.Context, *cmd.Invocation) error {
		return boom
	}))

	err := d.Dispatch(context.Background(), cmd.Path("tests", "", "error"), &cmd.Invocation{})

	var hErr *cmd.HandlerError
	require.ErrorAs(t, err, &hErr)
	assert.Equal(t, "tests/error", hErr.Key)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{FailureText}, r.texts)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DispatchTotal.WithLabelValues("tests/error", metrics.StatusHandlerError)))
}

func TestDispatchRecoversPanic(t *testing.T) {
	d, r, _ := newDispatcher(t)
	d.Registry.Register(cmd.Path("tests", "", "panic"), cmd.Func("panic", "", func(context.Context, *cmd.Invocation) error {
		panic("kaboom")
	}))

	var err error
	require.NotPanics(t, func() {
		err = d.Dispatch(context.Background(), cmd.Path("tests", "", "panic"), &cmd.Invocation{})
	})

	var hErr *cmd.HandlerError
	require.ErrorAs(t, err, &hErr)
	assert.Contains(t, hErr.Error(), "kaboom")
	assert.Equal(t, []string{FailureText}, r.texts)
}

func TestDispatchReplyFailureIsSwallowed(t *testing.T) {
	d, _, _ := newDispatcher(t)
	d.Reply = func(context.Context, *cmd.Invocation, string) error { return errors.New("gone") }

	err := d.Dispatch(context.Background(), cmd.Path("nope", "", ""), &cmd.Invocation{})
	assert.ErrorIs(t, err, cmd.ErrNotFound)
}

func TestReplyFailureWithoutTarget(t *testing.T) {
	err := ReplyFailure(context.Background(), &cmd.Invocation{Data: "plain"}, FailureText)
	assert.Error(t, err)
}
