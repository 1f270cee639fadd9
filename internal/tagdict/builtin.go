package tagdict

import (
	"strings"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
)

// Built-in grammar names.
const (
	GrammarStandard = "standard"
	GrammarClosure  = "closure"
)

// Builtin constructs a fresh copy of a built-in grammar. Every call
// returns an independent dictionary, so a swapped-in grammar can never
// leak definitions into a later run.
func Builtin(name string, allowUnknown bool) (*Dictionary, error) {
	switch name {
	case GrammarStandard:
		return Standard(allowUnknown), nil
	case GrammarClosure:
		return Closure(allowUnknown), nil
	default:
		return nil, derrors.Wrapf(derrors.ErrUnknownGrammar, "%q (have: %s)",
			name, strings.Join(BuiltinNames(), ", "))
	}
}

// BuiltinNames lists the built-in grammar names.
func BuiltinNames() []string {
	return []string{GrammarClosure, GrammarStandard}
}

// Standard returns the default grammar: the full tag set including the
// relationship tags (@borrows, @listens, @mixes, @event, @fires,
// @external).
func Standard(allowUnknown bool) *Dictionary {
	d := New(GrammarStandard, allowUnknown)
	defineCore(d)

	d.Define(&TagDef{Name: "event", Effect: EffectKind, KindValue: doclet.KindEvent, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "external", Synonyms: []string{"host"}, Effect: EffectKind, KindValue: doclet.KindExternal, IsNamespace: true, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "mixin", Effect: EffectKind, KindValue: doclet.KindMixin, IsNamespace: true, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "fires", Synonyms: []string{"emits"}, Effect: EffectAppend, Field: FieldFires, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "listens", Effect: EffectAppend, Field: FieldListens, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "mixes", Effect: EffectAppend, Field: FieldMixes, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "borrows", Effect: EffectCustom, Shape: ShapeNamePath, MustHaveValue: true, OnTagged: onBorrows})
	return d
}

// Closure returns the closure-style grammar: overlapping core, no
// relationship tags, plus the annotations that grammar adds.
func Closure(allowUnknown bool) *Dictionary {
	d := New(GrammarClosure, allowUnknown)
	defineCore(d)

	d.Define(&TagDef{Name: "final", Effect: EffectSet, Field: FieldReadonly, Shape: ShapeNone})
	d.Define(&TagDef{Name: "implements", Effect: EffectAppend, Field: FieldImplements, Shape: ShapeType, MustHaveValue: true})
	d.Define(&TagDef{Name: "inheritDoc", Effect: EffectSet, Field: FieldVirtual, Shape: ShapeNone})
	d.Define(&TagDef{Name: "struct", Effect: EffectNone, Shape: ShapeNone})
	d.Define(&TagDef{Name: "dict", Effect: EffectNone, Shape: ShapeNone})
	d.Define(&TagDef{Name: "nosideeffects", Effect: EffectNone, Shape: ShapeNone})
	return d
}

// defineCore installs the tag set both built-in grammars share.
func defineCore(d *Dictionary) {
	// Naming and placement.
	d.Define(&TagDef{Name: "name", Synonyms: []string{"alias"}, Effect: EffectSet, Field: FieldName, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "memberof", Synonyms: []string{"member-of"}, Effect: EffectSet, Field: FieldMemberof, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "lends", Effect: EffectSet, Field: FieldLends, Shape: ShapeNamePath, MustHaveValue: true})
	d.Define(&TagDef{Name: "kind", Effect: EffectSet, Field: FieldKind, Shape: ShapeText, MustHaveValue: true})

	// Kinds.
	d.Define(&TagDef{Name: "class", Synonyms: []string{"constructor"}, Effect: EffectKind, KindValue: doclet.KindClass, IsNamespace: true, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "interface", Effect: EffectKind, KindValue: doclet.KindInterface, IsNamespace: true, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "module", Effect: EffectKind, KindValue: doclet.KindModule, IsNamespace: true, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "namespace", Effect: EffectKind, KindValue: doclet.KindNamespace, IsNamespace: true, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "constant", Synonyms: []string{"const"}, Effect: EffectKind, KindValue: doclet.KindConstant, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "member", Synonyms: []string{"var"}, Effect: EffectKind, KindValue: doclet.KindMember, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "function", Synonyms: []string{"func", "method"}, Effect: EffectKind, KindValue: doclet.KindFunction, Shape: ShapeNamePath})
	d.Define(&TagDef{Name: "typedef", Effect: EffectKind, KindValue: doclet.KindTypedef, Shape: ShapeNamePath})

	// Content.
	d.Define(&TagDef{Name: "description", Synonyms: []string{"desc"}, Effect: EffectSet, Field: FieldDescription, Shape: ShapeText, MustHaveValue: true})
	d.Define(&TagDef{Name: "param", Synonyms: []string{"arg", "argument"}, Effect: EffectAppend, Field: FieldParam, Shape: ShapeStructured, MustHaveValue: true})
	d.Define(&TagDef{Name: "property", Synonyms: []string{"prop"}, Effect: EffectAppend, Field: FieldProperty, Shape: ShapeStructured, MustHaveValue: true})
	d.Define(&TagDef{Name: "returns", Synonyms: []string{"return"}, Effect: EffectAppend, Field: FieldReturn, Shape: ShapeStructured})
	d.Define(&TagDef{Name: "yields", Synonyms: []string{"yield"}, Effect: EffectAppend, Field: FieldYield, Shape: ShapeStructured})
	d.Define(&TagDef{Name: "type", Effect: EffectSet, Field: FieldType, Shape: ShapeType, MustHaveValue: true})
	d.Define(&TagDef{Name: "example", Effect: EffectAppend, Field: FieldExample, Shape: ShapeText, MustHaveValue: true})
	d.Define(&TagDef{Name: "see", Effect: EffectAppend, Field: FieldSee, Shape: ShapeText, MustHaveValue: true})
	d.Define(&TagDef{Name: "since", Effect: EffectSet, Field: FieldSince, Shape: ShapeText, MustHaveValue: true})
	d.Define(&TagDef{Name: "deprecated", Effect: EffectSet, Field: FieldDeprecated, Shape: ShapeText})
	d.Define(&TagDef{Name: "augments", Synonyms: []string{"extends"}, Effect: EffectAppend, Field: FieldAugments, Shape: ShapeNamePath, MustHaveValue: true})

	// Flags.
	d.Define(&TagDef{Name: "abstract", Synonyms: []string{"virtual"}, Effect: EffectSet, Field: FieldVirtual, Shape: ShapeNone})
	d.Define(&TagDef{Name: "readonly", Effect: EffectSet, Field: FieldReadonly, Shape: ShapeNone})
	d.Define(&TagDef{Name: "ignore", Effect: EffectSet, Field: FieldIgnore, Shape: ShapeNone})

	// Access.
	d.Define(&TagDef{Name: "access", Effect: EffectSet, Field: FieldAccess, Shape: ShapeText, MustHaveValue: true})
	d.Define(accessTag("public", doclet.AccessPublic))
	d.Define(accessTag("protected", doclet.AccessProtected))
	d.Define(accessTag("private", doclet.AccessPrivate))
	d.Define(accessTag("package", doclet.AccessPackage))

	// Scope.
	d.Define(scopeTag("global", doclet.ScopeGlobal))
	d.Define(scopeTag("static", doclet.ScopeStatic))
	d.Define(scopeTag("instance", doclet.ScopeInstance))
	d.Define(scopeTag("inner", doclet.ScopeInner))
}

func accessTag(name string, a doclet.Access) *TagDef {
	return &TagDef{Name: name, Effect: EffectCustom, Shape: ShapeNone,
		OnTagged: func(d *doclet.Doclet, _ *Value) error {
			d.Access = a
			return nil
		}}
}

func scopeTag(name string, s doclet.Scope) *TagDef {
	return &TagDef{Name: name, Effect: EffectCustom, Shape: ShapeNone,
		OnTagged: func(d *doclet.Doclet, _ *Value) error {
			d.Scope = s
			if s == doclet.ScopeGlobal {
				d.Memberof = ""
			}
			return nil
		}}
}

// onBorrows parses "@borrows thatName as thisName" and records the
// relationship for the cross-reference resolver. When the "as" clause
// is missing the borrowed member keeps its original short name.
func onBorrows(d *doclet.Doclet, v *Value) error {
	text := strings.TrimSpace(v.Raw)
	if text == "" {
		return derrors.Wrap(derrors.ErrTagValue, "borrows requires a name path")
	}
	from := text
	as := ""
	if i := strings.Index(text, " as "); i >= 0 {
		from = strings.TrimSpace(text[:i])
		as = strings.TrimSpace(text[i+4:])
	}
	if as == "" {
		as = shortName(from)
	}
	d.Borrowed = append(d.Borrowed, doclet.Borrow{From: from, As: as})
	return nil
}

// shortName returns the final segment of a longname.
func shortName(longname string) string {
	if i := strings.LastIndexAny(longname, ".#~"); i >= 0 && i+1 < len(longname) {
		return longname[i+1:]
	}
	return longname
}
