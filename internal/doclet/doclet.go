// Package doclet defines the canonical symbol record produced by the
// extraction pipeline and the queryable collection that holds it.
package doclet

import (
	"github.com/doclet-labs/doclet/internal/typeexpr"
)

// Kind classifies a documented symbol.
type Kind string

const (
	KindClass     Kind = "class"
	KindConstant  Kind = "constant"
	KindEvent     Kind = "event"
	KindExternal  Kind = "external"
	KindFile      Kind = "file"
	KindFunction  Kind = "function"
	KindInterface Kind = "interface"
	KindMember    Kind = "member"
	KindMixin     Kind = "mixin"
	KindModule    Kind = "module"
	KindNamespace Kind = "namespace"
	KindTypedef   Kind = "typedef"
)

// Scope places a symbol relative to its owner.
type Scope string

const (
	ScopeGlobal   Scope = "global"
	ScopeStatic   Scope = "static"
	ScopeInstance Scope = "instance"
	ScopeInner    Scope = "inner"
)

// Access is the documented visibility of a symbol.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
	AccessPackage   Access = "package"
)

// Anonymous is the synthetic local name given to constructs with no
// lexical name. It occupies a scope stack entry like any other name but
// is never public API.
const Anonymous = "<anonymous>"

// State tracks a doclet's position in the resolution lifecycle.
type State string

const (
	StateCreated         State = "created"
	StateTagsApplied     State = "tags-applied"
	StateNameResolved    State = "name-resolved"
	StateCrossReferenced State = "cross-referenced"
)

// Tag is one authored annotation, kept in source order. Unknown tags
// accepted under allowUnknownTags are retained with Unknown set.
type Tag struct {
	Title   string `json:"title" yaml:"title"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Unknown bool   `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// Param describes one documented parameter (or property).
type Param struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *typeexpr.Expr `json:"type,omitempty" yaml:"type,omitempty"`
	TypeText    string         `json:"typeText,omitempty" yaml:"typeText,omitempty"`
	Optional    bool           `json:"optional,omitempty" yaml:"optional,omitempty"`
	Variadic    bool           `json:"variadic,omitempty" yaml:"variadic,omitempty"`
	Default     string         `json:"default,omitempty" yaml:"default,omitempty"`
}

// Return describes one documented return or yield value.
type Return struct {
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *typeexpr.Expr `json:"type,omitempty" yaml:"type,omitempty"`
	TypeText    string         `json:"typeText,omitempty" yaml:"typeText,omitempty"`
}

// Borrow records an @borrows relationship: That is borrowed under the
// local name As.
type Borrow struct {
	From string `json:"from" yaml:"from"`
	As   string `json:"as" yaml:"as"`
}

// Meta records where the symbol was discovered.
type Meta struct {
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	CodeName string `json:"codeName,omitempty" yaml:"codeName,omitempty"`
	CodeKind string `json:"codeKind,omitempty" yaml:"codeKind,omitempty"`
}

// Overrides carries the explicit naming overrides authored via tags.
// When set they win over anything inferred from the scope stack.
type Overrides struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Memberof string `json:"memberof,omitempty" yaml:"memberof,omitempty"`
	Lends    string `json:"lends,omitempty" yaml:"lends,omitempty"`
}

// Doclet is the canonical record for one documented symbol.
//
// Longname is the globally qualified key; multiple doclets may share a
// longname (overloads), so the collection is a multimap. Listeners,
// Borrowed targets and the like are populated only by the
// cross-reference resolver, never by the builder.
type Doclet struct {
	Longname    string `json:"longname" yaml:"longname"`
	Name        string `json:"name" yaml:"name"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Scope       Scope  `json:"scope,omitempty" yaml:"scope,omitempty"`
	Memberof    string `json:"memberof,omitempty" yaml:"memberof,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Tags       []Tag    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Params     []Param  `json:"params,omitempty" yaml:"params,omitempty"`
	Properties []Param  `json:"properties,omitempty" yaml:"properties,omitempty"`
	Returns    []Return `json:"returns,omitempty" yaml:"returns,omitempty"`
	Yields     []Return `json:"yields,omitempty" yaml:"yields,omitempty"`

	Type     *typeexpr.Expr `json:"type,omitempty" yaml:"type,omitempty"`
	TypeText string         `json:"typeText,omitempty" yaml:"typeText,omitempty"`

	Access       Access `json:"access,omitempty" yaml:"access,omitempty"`
	Virtual      bool   `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	Readonly     bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Nullable     bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Undocumented bool   `json:"undocumented,omitempty" yaml:"undocumented,omitempty"`
	Ignore       bool   `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Authored relationships.
	Listens    []string `json:"listens,omitempty" yaml:"listens,omitempty"`
	Fires      []string `json:"fires,omitempty" yaml:"fires,omitempty"`
	Mixes      []string `json:"mixes,omitempty" yaml:"mixes,omitempty"`
	Augments   []string `json:"augments,omitempty" yaml:"augments,omitempty"`
	Implements []string `json:"implements,omitempty" yaml:"implements,omitempty"`
	Borrowed   []Borrow `json:"borrowed,omitempty" yaml:"borrowed,omitempty"`

	// Listeners is the back-reference side of @listens, populated by the
	// cross-reference resolver only.
	Listeners []string `json:"listeners,omitempty" yaml:"listeners,omitempty"`

	Examples   []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	See        []string `json:"see,omitempty" yaml:"see,omitempty"`
	Since      string   `json:"since,omitempty" yaml:"since,omitempty"`
	Deprecated string   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// DefaultExport marks the sole export of a module whose longname
	// doubles as the module's own longname. Such doclets are excluded
	// from global listings.
	DefaultExport bool `json:"defaultExport,omitempty" yaml:"defaultExport,omitempty"`

	Overrides Overrides `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Meta      Meta      `json:"meta,omitempty" yaml:"meta,omitempty"`
	State     State     `json:"-" yaml:"-"`
}

// New returns a doclet shell in the Created state.
func New(kind Kind, name string) *Doclet {
	return &Doclet{Kind: kind, Name: name, State: StateCreated}
}

// IsAnonymous reports whether the doclet carries a synthetic name.
func (d *Doclet) IsAnonymous() bool {
	return d.Name == Anonymous
}

// HasTag reports whether a tag with the given canonical title was
// recorded on the doclet.
func (d *Doclet) HasTag(title string) bool {
	for _, t := range d.Tags {
		if t.Title == title {
			return true
		}
	}
	return false
}
