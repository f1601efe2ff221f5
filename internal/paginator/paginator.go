// Package paginator drives button and modal controlled page views over a fixed
// list of lines. Each call to Engine.Present creates one independent session
// that accepts navigation from the invoking user only and expires after a
// period without activity.
package paginator

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Control and modal ids.
const (
	BackButtonID      = "back_button"
	PageInfoID        = "page_info"
	ForwardButtonID   = "forward_button"
	ExpiredButtonID   = "expired_button"
	PageModalPrefix   = "page_modal"
	PageNumberInputID = "page_number"
)

// User-visible texts.
const (
	InvalidDataText   = "Invalid data was provided"
	NotYoursText      = "This isn't for you"
	InvalidPageText   = "Invalid page number."
	ExpiredText       = "This component has expired!"
	PromptExpiredText = "This prompt has expired."
)

const DefaultPageSize = 10

// ErrNoOrigin is returned by Present when the request has nothing to reply to.
var ErrNoOrigin = errors.New("paginator: request has no interaction or message")

// Origin is what triggered the view. Exactly one of Message or Interaction is
// expected; Deferred marks an interaction that was already deferred or
// replied to, so the view goes into its original response.
type Origin struct {
	Interaction *discordgo.Interaction
	Deferred    bool
	Message     *discordgo.Message
}

// OwnerID is the user allowed to operate the controls.
func (o Origin) OwnerID() string {
	if o.Message != nil {
		if o.Message.Author != nil {
			return o.Message.Author.ID
		}
		return ""
	}
	return interactionUserID(o.Interaction)
}

// Request describes one paginated view.
type Request struct {
	Title    string
	Items    []string
	Origin   Origin
	PageSize int
	// Extra is rendered as an additional row below the navigation controls and
	// is never handled by the engine.
	Extra  *discordgo.ActionsRow
	Footer string
}

// ValidationError reports a malformed page-jump input.
type ValidationError struct {
	Input string
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid page %q: want a number between 1 and %d", e.Input, e.Max)
}

func interactionUserID(i *discordgo.Interaction) string {
	if i == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func isControl(customID string) bool {
	switch customID {
	case BackButtonID, PageInfoID, ForwardButtonID:
		return true
	}
	return false
}
