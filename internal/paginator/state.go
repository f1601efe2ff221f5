package paginator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// state is the mutable record of one view. It is owned by a single session
// goroutine and never shared.
type state struct {
	title      string
	items      []string
	pageSize   int
	index      int
	totalPages int
	ownerID    string
	footer     string
	extra      *discordgo.ActionsRow
}

// newState builds the state for req. It reports false when req.Items is empty,
// in which case the state holds the single invalid-data page.
func newState(req Request) (*state, bool) {
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	items := slices.Clone(req.Items)
	valid := len(items) > 0
	if !valid {
		items = []string{InvalidDataText}
	}

	return &state{
		title:      req.Title,
		items:      items,
		pageSize:   pageSize,
		totalPages: (len(items) + pageSize - 1) / pageSize,
		ownerID:    req.Origin.OwnerID(),
		footer:     req.Footer,
		extra:      req.Extra,
	}, valid
}

func (s *state) page() string {
	end := min(s.index+s.pageSize, len(s.items))
	return strings.Join(s.items[s.index:end], "\n")
}

func (s *state) pageNumber() int { return s.index/s.pageSize + 1 }

func (s *state) backDisabled() bool     { return s.index == 0 }
func (s *state) pageInfoDisabled() bool { return s.totalPages == 1 }
func (s *state) forwardDisabled() bool  { return s.index+s.pageSize >= len(s.items) }

// back moves one page back. It reports false at the first page.
func (s *state) back() bool {
	if s.backDisabled() {
		return false
	}
	s.index -= s.pageSize
	return true
}

// forward moves one page forward. It reports false at the last page.
func (s *state) forward() bool {
	if s.forwardDisabled() {
		return false
	}
	s.index += s.pageSize
	return true
}

// jump moves to the 1-based page typed by the user. Only a whole decimal
// number is accepted; input with trailing text such as "2abc" is rejected
// rather than read as page 2.
func (s *state) jump(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > s.totalPages {
		return &ValidationError{Input: input, Max: s.totalPages}
	}
	s.index = (n - 1) * s.pageSize
	return nil
}

func (s *state) pageLabel() string {
	return fmt.Sprintf("%d/%d", s.pageNumber(), s.totalPages)
}
