// Package scope maintains the lexical scope stack during traversal.
// The stack is an explicit value threaded through the builder and name
// resolver, never ambient state, so repeated runs and dictionary-swap
// tests cannot interfere with each other.
package scope

import (
	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
)

// Kind classifies a naming context.
type Kind string

const (
	KindGlobal    Kind = "global"
	KindStatic    Kind = "static"
	KindInstance  Kind = "instance"
	KindInner     Kind = "inner"
	KindAnonymous Kind = "anonymous"
)

// Punctuation returns the separator used when qualifying a child name
// inside a context of this kind: '.' static, '#' instance, '~' inner.
func (k Kind) Punctuation() string {
	switch k {
	case KindInstance:
		return "#"
	case KindInner, KindAnonymous:
		return "~"
	default:
		return "."
	}
}

// PunctuationFor maps a doclet scope to its qualifying separator.
func PunctuationFor(s doclet.Scope) string {
	switch s {
	case doclet.ScopeInstance:
		return "#"
	case doclet.ScopeInner:
		return "~"
	default:
		return "."
	}
}

// ChildScope maps a naming-context kind to the scope its children
// receive by default.
func (k Kind) ChildScope() doclet.Scope {
	switch k {
	case KindInstance:
		return doclet.ScopeInstance
	case KindInner, KindAnonymous:
		return doclet.ScopeInner
	case KindGlobal:
		return doclet.ScopeGlobal
	default:
		return doclet.ScopeStatic
	}
}

// Entry is one active naming context.
type Entry struct {
	Kind  Kind
	Owner string // longname of the owning symbol, "" for global

	// Lends redirects children to a different owner, set when the
	// construct carries an @lends annotation.
	Lends string
}

// EffectiveOwner returns the longname children attach to.
func (e Entry) EffectiveOwner() string {
	if e.Lends != "" {
		return e.Lends
	}
	return e.Owner
}

// EntryForKind returns the naming context a construct of the given
// doclet kind introduces for its children: classes, interfaces and
// mixins hold instance members, modules/namespaces/externals hold
// statics, functions hold inner symbols.
func EntryForKind(k doclet.Kind, owner string) Entry {
	switch k {
	case doclet.KindClass, doclet.KindInterface, doclet.KindMixin:
		return Entry{Kind: KindInstance, Owner: owner}
	case doclet.KindFunction:
		return Entry{Kind: KindInner, Owner: owner}
	default:
		return Entry{Kind: KindStatic, Owner: owner}
	}
}

// Tracker is the scope stack. The zero value is an empty, global-only
// stack ready for use.
type Tracker struct {
	stack []Entry
}

// Push enters a naming context.
func (t *Tracker) Push(e Entry) {
	t.stack = append(t.stack, e)
}

// Pop leaves the innermost naming context. Popping an empty stack is a
// traversal bug and returns a fatal error.
func (t *Tracker) Pop() (Entry, error) {
	if len(t.stack) == 0 {
		return Entry{}, derrors.Wrap(derrors.ErrScopeImbalance, "pop on empty scope stack")
	}
	e := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return e, nil
}

// Current returns the innermost entry. At global scope ok is false.
func (t *Tracker) Current() (Entry, bool) {
	if len(t.stack) == 0 {
		return Entry{}, false
	}
	return t.stack[len(t.stack)-1], true
}

// Depth returns the current nesting depth. It must be zero exactly at
// end of traversal.
func (t *Tracker) Depth() int { return len(t.stack) }

// Entries returns the stack outermost-first. The slice is shared.
func (t *Tracker) Entries() []Entry { return t.stack }
