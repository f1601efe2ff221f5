package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/metrics"
	"github.com/keshon/wavebot/internal/sentry"
	"github.com/keshon/wavebot/pkg/cmd"
)

// FailureText is the only thing a user sees when resolution or a handler fails.
const FailureText = "Something went wrong."

// ReplyFunc sends text to whoever triggered inv.
type ReplyFunc func(ctx context.Context, inv *cmd.Invocation, text string) error

// Dispatcher resolves a name path and runs the handler inside one failure
// boundary. Nothing it does panics or leaks an error into the event loop.
type Dispatcher struct {
	Registry *cmd.Registry
	Metrics  *metrics.Metrics
	// Reply defaults to ReplyFailure.
	Reply ReplyFunc
}

func NewDispatcher(reg *cmd.Registry, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{Registry: reg, Metrics: m, Reply: ReplyFailure}
}

// Dispatch runs the handler registered at path. On failure the user gets
// FailureText and the classified error (*cmd.ResolutionError or
// *cmd.HandlerError) is returned for logging only.
func (d *Dispatcher) Dispatch(ctx context.Context, path cmd.NamePath, inv *cmd.Invocation) error {
	start := time.Now()
	key := path.Key()
	if inv == nil {
		inv = &cmd.Invocation{}
	}
	inv.Path = path

	err := d.run(ctx, path, inv)

	status := metrics.StatusOK
	var resErr *cmd.ResolutionError
	switch {
	case err == nil:
	case errors.As(err, &resErr):
		status = metrics.StatusResolutionError
	default:
		status = metrics.StatusHandlerError
	}
	d.Metrics.RecordDispatch(key, status, time.Since(start))

	if err == nil {
		return nil
	}

	log.Printf("[ERR] %s: %v", path, err)
	sentry.CaptureException(err, key)

	reply := d.Reply
	if reply == nil {
		reply = ReplyFailure
	}
	if rerr := reply(ctx, inv, FailureText); rerr != nil {
		log.Printf("[WARN] %s: failed to send failure reply: %v", path, rerr)
	}
	return err
}

func (d *Dispatcher) run(ctx context.Context, path cmd.NamePath, inv *cmd.Invocation) (err error) {
	c, err := d.Registry.Resolve(path)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] %s: panic: %v\n%s", path, r, debug.Stack())
			err = &cmd.HandlerError{Key: path.Key(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := c.Run(ctx, inv); err != nil {
		return &cmd.HandlerError{Key: path.Key(), Err: err}
	}
	return nil
}

// ReplyFailure answers the interaction or message carried by inv with an
// ephemeral text. An interaction that was already answered gets a follow-up.
func ReplyFailure(ctx context.Context, inv *cmd.Invocation, text string) error {
	switch v := inv.Data.(type) {
	case *SlashInteractionContext:
		return replyInteraction(ctx, v.Session, v.Event.Interaction, text)
	case *ComponentInteractionContext:
		return replyInteraction(ctx, v.Session, v.Event.Interaction, text)
	case *MessageContext:
		_, err := v.Session.ChannelMessageSendReply(v.Event.ChannelID, text, v.Event.Reference(), discordgo.WithContext(ctx))
		return err
	default:
		return fmt.Errorf("no reply target for %T", inv.Data)
	}
}

func replyInteraction(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction, text string) error {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err == nil {
		return nil
	}

	_, ferr := s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	if ferr != nil {
		return fmt.Errorf("respond: %v; follow-up: %w", err, ferr)
	}
	return nil
}
