package command

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/config"
	"github.com/keshon/wavebot/internal/paginator"
	"github.com/keshon/wavebot/internal/storage"
	"github.com/keshon/wavebot/pkg/cmd"
)

// Discord-specific contexts (what the runtime passes when executing).

type SlashInteractionContext struct {
	Session  *discordgo.Session
	Event    *discordgo.InteractionCreate
	Path     cmd.NamePath
	Options  []*discordgo.ApplicationCommandInteractionDataOption
	Storage  *storage.Storage
	Pager    *paginator.Engine
	Registry *cmd.Registry
	Config   *config.Config
}

// Origin returns the pagination origin for this interaction. A handler that
// deferred first must set Deferred itself.
func (c *SlashInteractionContext) Origin() paginator.Origin {
	return paginator.Origin{Interaction: c.Event.Interaction}
}

// DeferredOrigin is Origin for an interaction already acknowledged with a
// deferred response.
func (c *SlashInteractionContext) DeferredOrigin() paginator.Origin {
	return paginator.Origin{Interaction: c.Event.Interaction, Deferred: true}
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
}

type MessageContext struct {
	Session  *discordgo.Session
	Event    *discordgo.MessageCreate
	Storage  *storage.Storage
	Pager    *paginator.Engine
	Registry *cmd.Registry
	Config   *config.Config
}

func (c *MessageContext) Origin() paginator.Origin {
	return paginator.Origin{Message: c.Event.Message}
}

// OptionsProvider is implemented by leaves that take slash options.
type OptionsProvider interface {
	Options() []*discordgo.ApplicationCommandOption
}

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// DiscordMeta is exposed by the Discord adapter so middleware can read the
// category without depending on the concrete command type.
type DiscordMeta interface {
	Category() string
}

// DiscordCommand is what individual Discord leaves implement. Run receives one
// of the contexts above.
type DiscordCommand interface {
	Name() string
	Description() string
	Category() string
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string        { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string { return a.Cmd.Description() }
func (a *DiscordAdapter) Category() string    { return a.Cmd.Category() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) Options() []*discordgo.ApplicationCommandOption {
	if op, ok := a.Cmd.(OptionsProvider); ok {
		return op.Options()
	}
	return nil
}

// Root describes a top-level slash command and its subcommand groups. Leaves
// are registered separately under their name paths.
type Root struct {
	Name        string
	Description string
	Groups      map[string]string
}

var (
	mu         sync.RWMutex
	roots      = map[string]Root{}
	components = map[string]ComponentInteractionHandler{}
)

// RegisterCommand registers a leaf at path in the universal registry and
// applies middlewares.
func RegisterCommand(path cmd.NamePath, discordCmd DiscordCommand, mws ...cmd.Middleware) {
	c := cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmd.DefaultRegistry.Register(path, c)
}

// RegisterRoot records the description of a top-level command. Commands with
// only an index leaf may skip it; the leaf's description is used.
func RegisterRoot(r Root) {
	mu.Lock()
	defer mu.Unlock()
	roots[r.Name] = r
}

// RegisterComponent routes component custom ids starting with prefix to h.
func RegisterComponent(prefix string, h ComponentInteractionHandler) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := components[prefix]; dup {
		panic("command: duplicate component prefix " + prefix)
	}
	components[prefix] = h
}

// ComponentHandler returns the handler whose prefix matches customID. The
// longest prefix wins.
func ComponentHandler(customID string) (ComponentInteractionHandler, bool) {
	mu.RLock()
	defer mu.RUnlock()

	best := ""
	for prefix := range components {
		if strings.HasPrefix(customID, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil, false
	}
	return components[best], true
}

// Definitions builds the slash command payloads from the paths registered in
// reg, sorted by command name.
func Definitions(reg *cmd.Registry) []*discordgo.ApplicationCommand {
	mu.RLock()
	defer mu.RUnlock()

	byName := map[string]*discordgo.ApplicationCommand{}
	var names []string

	for _, p := range reg.Paths() {
		c, err := reg.Resolve(p)
		if err != nil {
			continue
		}
		leaf := cmd.Root(c)

		def, ok := byName[p.Command]
		if !ok {
			def = &discordgo.ApplicationCommand{
				Name:        p.Command,
				Description: roots[p.Command].Description,
				Type:        discordgo.ChatApplicationCommand,
			}
			byName[p.Command] = def
			names = append(names, p.Command)
		}

		if p.Subcommand == "" && p.Group == "" {
			if def.Description == "" {
				def.Description = leaf.Description()
			}
			def.Options = leafOptions(leaf)
			continue
		}

		sub := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        p.Subcommand,
			Description: leaf.Description(),
			Options:     leafOptions(leaf),
		}
		if p.Group == "" {
			def.Options = append(def.Options, sub)
			continue
		}

		var group *discordgo.ApplicationCommandOption
		for _, o := range def.Options {
			if o.Type == discordgo.ApplicationCommandOptionSubCommandGroup && o.Name == p.Group {
				group = o
				break
			}
		}
		if group == nil {
			desc := roots[p.Command].Groups[p.Group]
			if desc == "" {
				desc = p.Group
			}
			group = &discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        p.Group,
				Description: desc,
			}
			def.Options = append(def.Options, group)
		}
		group.Options = append(group.Options, sub)
	}

	sort.Strings(names)
	defs := make([]*discordgo.ApplicationCommand, 0, len(names))
	for _, n := range names {
		if byName[n].Description == "" {
			byName[n].Description = n
		}
		defs = append(defs, byName[n])
	}
	return defs
}

func leafOptions(c cmd.Command) []*discordgo.ApplicationCommandOption {
	if op, ok := c.(OptionsProvider); ok {
		return op.Options()
	}
	return nil
}

// Category returns the category of the handler at c, or "" when it is not a
// Discord leaf.
func Category(c cmd.Command) string {
	if meta, ok := cmd.Root(c).(DiscordMeta); ok {
		return meta.Category()
	}
	return ""
}
