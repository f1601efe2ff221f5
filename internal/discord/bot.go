package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/config"
	"github.com/keshon/wavebot/internal/metrics"
	"github.com/keshon/wavebot/internal/paginator"
	"github.com/keshon/wavebot/internal/storage"
	"github.com/keshon/wavebot/pkg/cmd"
	"github.com/keshon/wavebot/pkg/jobmgr"
	"github.com/keshon/wavebot/pkg/retrylimit"
)

const registerTimeout = 2 * time.Minute

// Bot is a Discord bot
type Bot struct {
	dg         *discordgo.Session
	storage    *storage.Storage
	cfg        *config.Config
	registry   *cmd.Registry
	dispatcher *command.Dispatcher
	pager      *paginator.Engine
	registrar  *registrar
	jobs       *jobmgr.Manager
}

// NewBot wires a session, the paginator and the dispatcher. Nothing connects
// until Run.
func NewBot(cfg *config.Config, store *storage.Storage, m *metrics.Metrics) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		dg:         dg,
		storage:    store,
		cfg:        cfg,
		registry:   cmd.DefaultRegistry,
		dispatcher: command.NewDispatcher(cmd.DefaultRegistry, m),
		pager: paginator.New(&paginator.SessionTransport{Session: dg},
			paginator.WithIdleTimeout(cfg.PageIdleTimeout),
			paginator.WithPromptTimeout(cfg.PagePromptTimeout),
			paginator.WithBrand(cfg.FooterBrand),
			paginator.WithMetrics(m),
		),
		registrar: &registrar{
			api:     dg,
			store:   store,
			limiter: retrylimit.NewAdaptiveLimiter(5, 1, 40, 1, 0.5),
			retry:   retrylimit.DefaultConfig(),
		},
		jobs: jobmgr.NewManager(func(msg string) {
			log.Printf("[DEBUG] job %s", msg)
		}),
	}
	return b, nil
}

// Run connects and blocks until ctx is done. Live paginated views are expired
// before the session closes.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onInteractionCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.jobs.StopAll()
	b.pager.Shutdown()
	return nil
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.leaveIfBlacklisted(s, g.ID) {
			continue
		}
		b.registerCommands(g.ID)
	}
	log.Printf("[INFO] ✅ Discord bot %v is running with %d handlers.", r.User.Username, b.registry.Len())
}

// onGuildCreate is called when the bot joins a guild or the guild becomes available
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	log.Printf("[INFO] Guild available: %s (%s)", g.ID, g.Name)
	if b.leaveIfBlacklisted(s, g.ID) {
		return
	}
	b.registerCommands(g.ID)
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID string) bool {
	if !slices.Contains(b.cfg.DiscordGuildBlacklist, guildID) {
		return false
	}
	log.Printf("[INFO] Leaving blacklisted guild: %s", guildID)
	if err := s.GuildLeave(guildID); err != nil {
		log.Printf("[ERR] Failed to leave guild %s: %v", guildID, err)
	}
	return true
}

// registerCommands starts a background job syncing the slash commands of a
// guild with the registry. A guild already being synced is left alone.
func (b *Bot) registerCommands(guildID string) {
	if !b.cfg.InitSlashCommands {
		log.Printf("[INFO] [%s] Registering slash commands skipped", guildID)
		return
	}

	appID := b.dg.State.User.ID
	defs := command.Definitions(b.registry)
	err := startRegistration(b.jobs, b.registrar, appID, guildID, defs)
	if errors.Is(err, jobmgr.ErrRunning) {
		log.Printf("[DEBUG] [%s] Registration already in progress", guildID)
	}
}

func startRegistration(jobs *jobmgr.Manager, r *registrar, appID, guildID string, defs []*discordgo.ApplicationCommand) error {
	return jobs.StartAsync("register:"+guildID, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, registerTimeout)
		defer cancel()

		if err := r.sync(ctx, appID, guildID, defs); err != nil {
			log.Printf("[ERR] [%s] Error registering slash commands: %v", guildID, err)
			return err
		}
		return nil
	})
}

// onMessageCreate presents the command list when the bot is mentioned
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || s.State.User == nil {
		return
	}
	if !mentions(m.Message, s.State.User.ID) {
		return
	}

	ctx := &command.MessageContext{
		Session:  s,
		Event:    m,
		Storage:  b.storage,
		Pager:    b.pager,
		Registry: b.registry,
		Config:   b.cfg,
	}
	_ = b.dispatcher.Dispatch(context.Background(), cmd.Path("help", "", ""), &cmd.Invocation{Data: ctx})
}

func mentions(m *discordgo.Message, userID string) bool {
	for _, u := range m.Mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// onInteractionCreate is called when an interaction is created
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if data.CommandType != discordgo.ChatApplicationCommand {
			log.Printf("[DEBUG] Ignoring application command type %d: %s", data.CommandType, data.Name)
			return
		}

		path, opts := command.PathFromInteraction(data)
		ctx := &command.SlashInteractionContext{
			Session:  s,
			Event:    i,
			Path:     path,
			Options:  opts,
			Storage:  b.storage,
			Pager:    b.pager,
			Registry: b.registry,
			Config:   b.cfg,
		}
		_ = b.dispatcher.Dispatch(context.Background(), path, &cmd.Invocation{Data: ctx})

	case discordgo.InteractionMessageComponent:
		if b.pager.HandleComponent(i.Interaction) {
			return
		}
		b.onComponent(s, i)

	case discordgo.InteractionModalSubmit:
		if b.pager.HandleModalSubmit(i.Interaction) {
			return
		}
		log.Printf("[WARN] No handler for modal: %s", i.ModalSubmitData().CustomID)

	default:
		log.Printf("[DEBUG] Unknown interaction type: %d", i.Type)
	}
}

func (b *Bot) onComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	h, ok := command.ComponentHandler(customID)
	if !ok {
		log.Printf("[WARN] No matching component for customID: %s", customID)
		return
	}

	ctx := &command.ComponentInteractionContext{
		Session: s,
		Event:   i,
		Storage: b.storage,
		Config:  b.cfg,
	}
	inv := &cmd.Invocation{Data: ctx}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Component %s panicked: %v", customID, r)
			_ = command.ReplyFailure(context.Background(), inv, command.FailureText)
		}
	}()
	if err := h.Component(ctx); err != nil {
		log.Printf("[ERR] Error running component %s: %v", customID, err)
		_ = command.ReplyFailure(context.Background(), inv, command.FailureText)
	}
}
