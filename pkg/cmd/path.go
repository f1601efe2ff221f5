package cmd

import "strings"

// IndexLeaf is the leaf name used when an interaction carries no subcommand,
// the same way a directory falls back to its index entry.
const IndexLeaf = "index"

// NamePath identifies a handler by command, optional subcommand group and
// optional subcommand. Empty strings mean absent.
type NamePath struct {
	Command    string
	Group      string
	Subcommand string
}

// Path builds a NamePath from its segments.
func Path(command, group, subcommand string) NamePath {
	return NamePath{Command: command, Group: group, Subcommand: subcommand}
}

// Key returns the lookup key: command[/group]/subcommand, or command[/group]/index
// when no subcommand is present.
func (p NamePath) Key() string {
	parts := make([]string, 0, 3)
	parts = append(parts, p.Command)
	if p.Group != "" {
		parts = append(parts, p.Group)
	}
	if p.Subcommand != "" {
		parts = append(parts, p.Subcommand)
	} else {
		parts = append(parts, IndexLeaf)
	}
	return strings.Join(parts, "/")
}

// String renders the path the way users type it, e.g. "/tests pages single".
func (p NamePath) String() string {
	var sb strings.Builder
	sb.WriteString("/")
	sb.WriteString(p.Command)
	for _, s := range []string{p.Group, p.Subcommand} {
		if s != "" {
			sb.WriteString(" ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}
