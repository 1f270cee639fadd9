// Package tagdict defines the tag grammar: which annotations exist,
// the shape of their values, and the effect each has on the doclet
// under construction. Dictionaries are whole units — distinct grammars
// may recognize different tag sets for the same input — and are held
// behind a single Holder so a swap is visible everywhere atomically and
// fully reversible.
package tagdict

import (
	"sort"
	"sync"

	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/typeexpr"
)

// ValueShape declares what a tag's value looks like.
type ValueShape int

const (
	// ShapeNone: the tag takes no value ("@readonly").
	ShapeNone ValueShape = iota
	// ShapeText: free text ("@description ...").
	ShapeText
	// ShapeType: a braced type expression ("@type {string|number}").
	ShapeType
	// ShapeNamePath: a symbol path ("@memberof module:foo~Bar").
	ShapeNamePath
	// ShapeStructured: type + name + text ("@param {T} [n=1] desc").
	ShapeStructured
)

// Effect is the closed set of things a recognized tag may do to the
// doclet. Keeping the set closed makes application exhaustive and
// testable; arbitrary behavior goes through EffectCustom.
type Effect int

const (
	// EffectSet writes a scalar field, last occurrence wins.
	EffectSet Effect = iota
	// EffectAppend accumulates into a sequence field; repeated
	// occurrences never overwrite.
	EffectAppend
	// EffectKind reassigns the doclet kind; IsNamespace on the
	// definition marks kinds that introduce a naming scope.
	EffectKind
	// EffectCustom runs the definition's OnTagged handler.
	EffectCustom
	// EffectNone records the tag in the doclet's tag sequence and
	// nothing else.
	EffectNone
)

// Field names the doclet field an EffectSet or EffectAppend targets.
type Field int

const (
	FieldNone Field = iota
	FieldDescription
	FieldKind
	FieldName
	FieldMemberof
	FieldLends
	FieldAccess
	FieldType
	FieldParam
	FieldProperty
	FieldReturn
	FieldYield
	FieldExample
	FieldSee
	FieldSince
	FieldDeprecated
	FieldVirtual
	FieldReadonly
	FieldIgnore
	FieldListens
	FieldFires
	FieldMixes
	FieldAugments
	FieldImplements
	FieldBorrows
)

// Value is a tag value after shape parsing, handed to effects and
// custom handlers.
type Value struct {
	Title    string // canonical tag name
	Raw      string // full raw text following the tag name
	Text     string // free-text remainder after type/name extraction
	Type     *typeexpr.Expr
	TypeText string
	NamePath string
	Param    *doclet.Param // structured shapes
}

// Handler is the custom effect callback.
type Handler func(d *doclet.Doclet, v *Value) error

// TagDef defines one tag.
type TagDef struct {
	Name          string
	Synonyms      []string
	MustHaveValue bool
	Shape         ValueShape
	Effect        Effect
	Field         Field
	// KindValue is the kind assigned by EffectKind definitions.
	KindValue doclet.Kind
	// IsNamespace marks kinds that introduce a new naming scope and URL
	// container (class, module, namespace, ...).
	IsNamespace bool
	OnTagged    Handler
}

// Dictionary maps tag names, synonyms included, to definitions.
type Dictionary struct {
	Name         string
	AllowUnknown bool

	defs     map[string]*TagDef // canonical name -> def
	synonyms map[string]string  // synonym -> canonical name
}

// New returns an empty dictionary.
func New(name string, allowUnknown bool) *Dictionary {
	return &Dictionary{
		Name:         name,
		AllowUnknown: allowUnknown,
		defs:         make(map[string]*TagDef),
		synonyms:     make(map[string]string),
	}
}

// Define registers or overrides a tag definition. Synonyms of a
// replaced definition are dropped before the new ones are installed.
func (d *Dictionary) Define(def *TagDef) {
	if old, ok := d.defs[def.Name]; ok {
		for _, s := range old.Synonyms {
			delete(d.synonyms, s)
		}
	}
	d.defs[def.Name] = def
	for _, s := range def.Synonyms {
		d.synonyms[s] = def.Name
	}
}

// Lookup resolves name, synonyms included, to its definition.
func (d *Dictionary) Lookup(name string) (*TagDef, bool) {
	if def, ok := d.defs[name]; ok {
		return def, true
	}
	if canonical, ok := d.synonyms[name]; ok {
		return d.defs[canonical], true
	}
	return nil, false
}

// Normalize maps a tag name or synonym to its canonical name. Unknown
// names are returned unchanged.
func (d *Dictionary) Normalize(name string) string {
	if _, ok := d.defs[name]; ok {
		return name
	}
	if canonical, ok := d.synonyms[name]; ok {
		return canonical
	}
	return name
}

// IsNamespaceKind reports whether the kind introduces a naming scope
// under this grammar.
func (d *Dictionary) IsNamespaceKind(kind doclet.Kind) bool {
	for _, def := range d.defs {
		if def.Effect == EffectKind && def.IsNamespace && def.KindValue == kind {
			return true
		}
	}
	return false
}

// NamespaceKinds returns the namespace-introducing kinds, sorted.
func (d *Dictionary) NamespaceKinds() []doclet.Kind {
	seen := make(map[doclet.Kind]bool)
	for _, def := range d.defs {
		if def.Effect == EffectKind && def.IsNamespace {
			seen[def.KindValue] = true
		}
	}
	kinds := make([]doclet.Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// TagNames returns the canonical tag names, sorted.
func (d *Dictionary) TagNames() []string {
	names := make([]string, 0, len(d.defs))
	for n := range d.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Holder is the single indirection point for the active dictionary.
// Parsers read through the holder rather than copying the dictionary,
// so Replace is visible everywhere atomically and a restore fully
// undoes a temporary swap.
type Holder struct {
	mu     sync.RWMutex
	active *Dictionary
}

// NewHolder returns a holder with d active.
func NewHolder(d *Dictionary) *Holder {
	return &Holder{active: d}
}

// Active returns the current dictionary.
func (h *Holder) Active() *Dictionary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.active
}

// Replace swaps the active dictionary and returns the previous one,
// which is the handle needed to restore it exactly.
func (h *Holder) Replace(d *Dictionary) *Dictionary {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.active
	h.active = d
	return prev
}
