// Package resolve computes canonical longnames from scope context and
// resolves the declarative relationships between doclets once the full
// collection exists.
package resolve

import (
	"strings"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/scope"
)

// kindPrefixes are the namespace prefixes folded into the name segment
// of the longname for prefix-carrying kinds.
var kindPrefixes = map[doclet.Kind]string{
	doclet.KindModule:   "module:",
	doclet.KindEvent:    "event:",
	doclet.KindExternal: "external:",
}

// Longname concatenates the owner, the scope punctuation and the local
// name. It is the one place longnames are assembled; everything else,
// including the determinism check in tests, goes through it.
func Longname(memberof, punctuation, name string) string {
	if memberof == "" {
		return name
	}
	return memberof + punctuation + name
}

// PrefixedName returns the doclet's local name with its kind's
// namespace prefix applied, if the kind carries one and the name is not
// already prefixed.
func PrefixedName(d *doclet.Doclet) string {
	name := d.Name
	if name == "" {
		name = doclet.Anonymous
	}
	prefix := kindPrefixes[d.Kind]
	if prefix != "" && !strings.HasPrefix(name, prefix) {
		return prefix + name
	}
	return name
}

// Name resolves d's longname and memberof from the scope stack and the
// explicit tag overrides. It must run exactly once per doclet; a second
// invocation is a pipeline bug.
func Name(d *doclet.Doclet, tracker *scope.Tracker) error {
	if d.State == doclet.StateNameResolved || d.State == doclet.StateCrossReferenced {
		return derrors.Wrapf(derrors.ErrDuplicateResolution, "doclet %q", d.Longname)
	}
	if d.Name == "" {
		d.Name = doclet.Anonymous
	}

	switch {
	case d.Overrides.Memberof != "":
		resolveWithMemberof(d, d.Overrides.Memberof)
	case hasPathPunctuation(d.Overrides.Name) && splittableName(d.Kind):
		resolveFromPath(d, d.Overrides.Name)
	case hasPathPunctuation(d.Name) && splittableName(d.Kind):
		// Structural names like "Foo.bar" from assignment targets carry
		// their own path.
		resolveFromPath(d, d.Name)
	default:
		resolveFromStack(d, tracker)
	}

	d.State = doclet.StateNameResolved
	return nil
}

// resolveWithMemberof applies an explicit @memberof override.
func resolveWithMemberof(d *doclet.Doclet, owner string) {
	if d.Scope == "" || d.Scope == doclet.ScopeGlobal {
		d.Scope = doclet.ScopeStatic
	}
	d.Memberof = owner
	d.Longname = Longname(owner, scope.PunctuationFor(d.Scope), PrefixedName(d))
}

// resolveFromPath splits a name carrying scope punctuation ("Foo#bar")
// into owner and local name.
func resolveFromPath(d *doclet.Doclet, path string) {
	i := strings.LastIndexAny(path, ".#~")
	owner, punct, local := path[:i], string(path[i]), path[i+1:]

	d.Name = local
	d.Memberof = owner
	switch punct {
	case "#":
		d.Scope = doclet.ScopeInstance
	case "~":
		d.Scope = doclet.ScopeInner
	default:
		d.Scope = doclet.ScopeStatic
	}
	d.Longname = Longname(owner, punct, PrefixedName(d))
}

// resolveFromStack derives placement from the innermost scope entry.
func resolveFromStack(d *doclet.Doclet, tracker *scope.Tracker) {
	entry, ok := tracker.Current()
	if !ok {
		if d.Scope == "" {
			d.Scope = doclet.ScopeGlobal
		}
		d.Memberof = ""
		d.Longname = PrefixedName(d)
		return
	}

	owner := entry.EffectiveOwner()

	// A module's sole export keeps the module's own longname, so the
	// export is addressable as the module itself and never appears in
	// global listings.
	if d.DefaultExport && owner != "" {
		d.Memberof = ""
		d.Longname = owner
		if d.Scope == "" {
			d.Scope = entry.Kind.ChildScope()
		}
		return
	}

	if d.Scope == "" {
		d.Scope = entry.Kind.ChildScope()
	}
	if d.Scope == doclet.ScopeGlobal {
		d.Memberof = ""
		d.Longname = PrefixedName(d)
		return
	}
	d.Memberof = owner
	d.Longname = Longname(owner, scope.PunctuationFor(d.Scope), PrefixedName(d))
}

// Derive recomputes the longname from the doclet's resolved fields
// using the stated algorithm. For every resolved doclet it must equal
// the stored longname exactly.
func Derive(d *doclet.Doclet) string {
	if d.DefaultExport {
		// Not derivable from the doclet alone: the longname belongs to
		// the enclosing module.
		return d.Longname
	}
	if d.Memberof == "" {
		return PrefixedName(d)
	}
	return Longname(d.Memberof, scope.PunctuationFor(d.Scope), PrefixedName(d))
}

// splittableName reports whether a name containing scope punctuation
// is a path to split. Module IDs and external names are opaque: a dot
// or slash in "module:foo.bar/baz" is part of the identifier.
func splittableName(k doclet.Kind) bool {
	return k != doclet.KindModule && k != doclet.KindExternal
}

func hasPathPunctuation(name string) bool {
	if name == "" {
		return false
	}
	i := strings.LastIndexAny(name, ".#~")
	return i > 0 && i < len(name)-1
}
