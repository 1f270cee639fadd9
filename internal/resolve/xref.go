package resolve

import (
	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/scope"
)

// All runs the cross-reference pass over the complete collection. It
// requires traversal to be finished: references may point forward,
// backward, or into other files. The pass is additive and idempotent —
// invoking it again on an already-resolved collection changes nothing.
func All(c *doclet.Collection, rep diag.Reporter) {
	snapshot := c.All()
	for _, d := range snapshot {
		resolveListens(c, d)
		resolveBorrows(c, d, rep)
		checkReferences(c, d, rep)
		d.State = doclet.StateCrossReferenced
	}
}

// resolveListens appends d's longname to the listeners array of every
// event it listens to. Missing targets are skipped silently: the event
// may belong to an undocumented or external symbol.
func resolveListens(c *doclet.Collection, d *doclet.Doclet) {
	for _, eventName := range d.Listens {
		for _, event := range c.ByLongname(eventName) {
			if !contains(event.Listeners, d.Longname) {
				event.Listeners = append(event.Listeners, d.Longname)
			}
		}
	}
}

// resolveBorrows materializes each @borrows relationship as a copy of
// the source doclet under the borrowing symbol. Already-materialized
// borrows are left alone.
func resolveBorrows(c *doclet.Collection, d *doclet.Doclet, rep diag.Reporter) {
	for _, b := range d.Borrowed {
		source := c.First(b.From)
		if source == nil {
			diag.Errorf(rep, derrors.ErrDanglingReference, d.Meta.File, d.Meta.Line,
				"%q borrows %q, which is not documented", d.Longname, b.From)
			continue
		}
		borrowed := cloneBorrowed(source, d, b.As)
		if c.First(borrowed.Longname) != nil {
			continue
		}
		c.Append(borrowed)
	}
}

// cloneBorrowed copies the source doclet under the borrowing owner's
// namespace with the new local name.
func cloneBorrowed(source, owner *doclet.Doclet, as string) *doclet.Doclet {
	clone := *source
	clone.Name = as
	clone.Memberof = owner.Longname
	clone.Scope = doclet.ScopeStatic
	clone.Longname = Longname(owner.Longname, scope.PunctuationFor(clone.Scope), as)
	clone.Listeners = nil
	clone.Borrowed = nil
	clone.State = doclet.StateCrossReferenced
	return &clone
}

// checkReferences reports dangling @mixes, @augments and @implements
// targets. The authored entries stay in place either way; consumers
// flatten them later.
func checkReferences(c *doclet.Collection, d *doclet.Doclet, rep diag.Reporter) {
	for _, group := range [][]string{d.Mixes, d.Augments, d.Implements} {
		for _, target := range group {
			if len(c.ByLongname(target)) == 0 {
				diag.Errorf(rep, derrors.ErrDanglingReference, d.Meta.File, d.Meta.Line,
					"%q references %q, which is not documented", d.Longname, target)
			}
		}
	}
}

// Ancestors walks d's memberof chain and returns the ancestor
// longnames, nearest first. The walk terminates at the first repeated
// node: a malformed collection can make a symbol its own ancestor, and
// the chain is truncated there with a single diagnostic rather than
// looping.
func Ancestors(c *doclet.Collection, d *doclet.Doclet, rep diag.Reporter) []string {
	var out []string
	seen := map[string]bool{d.Longname: true}
	current := d.Memberof
	for current != "" {
		if seen[current] {
			diag.Errorf(rep, derrors.ErrCyclicAncestry, d.Meta.File, d.Meta.Line,
				"ancestry of %q revisits %q; chain truncated", d.Longname, current)
			break
		}
		seen[current] = true
		out = append(out, current)
		parent := c.First(current)
		if parent == nil {
			// Dangling memberof: the symbol simply has no resolvable
			// parent.
			break
		}
		current = parent.Memberof
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
