// Package host provides the demo execution domains the CLI synchronizes: console senders on the
// origin side and remote listeners on the foreign side, with the types, providers and actions
// definition files refer to by name.
package host

import (
	"slices"
	"strings"

	"github.com/aretw0/graft/pkg/tree"
)

// Sender is the origin source: whoever authored the command line.
type Sender struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

// Can reports whether the sender holds perm. "*" grants everything.
func (s Sender) Can(perm string) bool {
	return slices.Contains(s.Permissions, "*") || slices.Contains(s.Permissions, perm)
}

// Listener is the foreign source: a remote client typing into a mirrored tree.
type Listener struct {
	Session string `json:"session"`
	Sender  Sender `json:"sender"`
}

// ToSender converts a listener into the sender it acts for.
func ToSender(l Listener) Sender { return l.Sender }

// ParseListener builds a listener from "name" or "name:perm1,perm2".
func ParseListener(spec string) Listener {
	name, perms, _ := strings.Cut(spec, ":")
	s := Sender{Name: name}
	if perms != "" {
		s.Permissions = strings.Split(perms, ",")
	}
	return Listener{Session: name, Sender: s}
}

// Permission returns a requirement satisfied by senders holding perm.
func Permission(perm string) tree.Requirement[Sender] {
	return func(s Sender) bool { return s.Can(perm) }
}
