package registry

import (
	"slices"

	"github.com/aretw0/graft/pkg/ports"
)

// Diff represents the changes between two snapshots of registered commands.
// It is designed to be serialized to JSON for clients that mirror the command list.
type Diff struct {
	// Added lists qualified names present only in the new snapshot.
	Added []string `json:"added,omitempty"`
	// Removed lists qualified names present only in the old snapshot.
	Removed []string `json:"removed,omitempty"`
	// Changed lists qualified names whose usage lines differ.
	Changed []string `json:"changed,omitempty"`
}

// Compare calculates the difference between two snapshots returned by Commands.
// A nil old snapshot reports every new command as added (initial load).
func Compare[F any](old, new []*ports.Handle[F]) *Diff {
	before := make(map[string]*ports.Handle[F], len(old))
	for _, h := range old {
		before[h.Qualified()] = h
	}

	d := &Diff{}
	seen := make(map[string]bool, len(new))
	for _, h := range new {
		name := h.Qualified()
		seen[name] = true
		prev, ok := before[name]
		switch {
		case !ok:
			d.Added = append(d.Added, name)
		case !slices.Equal(prev.Usage, h.Usage):
			d.Changed = append(d.Changed, name)
		}
	}
	for _, h := range old {
		if !seen[h.Qualified()] {
			d.Removed = append(d.Removed, h.Qualified())
		}
	}
	return d
}

// IsEmpty checks if the diff contains any changes.
func (d *Diff) IsEmpty() bool {
	return d == nil || len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}
