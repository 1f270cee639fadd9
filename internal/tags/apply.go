package tags

import (
	"strings"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/tagdict"
)

var validKinds = map[doclet.Kind]bool{
	doclet.KindClass: true, doclet.KindConstant: true, doclet.KindEvent: true,
	doclet.KindExternal: true, doclet.KindFile: true, doclet.KindFunction: true,
	doclet.KindInterface: true, doclet.KindMember: true, doclet.KindMixin: true,
	doclet.KindModule: true, doclet.KindNamespace: true, doclet.KindTypedef: true,
}

var validAccess = map[doclet.Access]bool{
	doclet.AccessPublic: true, doclet.AccessProtected: true,
	doclet.AccessPrivate: true, doclet.AccessPackage: true,
}

// Apply splits commentText and applies each recognized tag's effect to
// d in order. Unknown tags, bad values and malformed type expressions
// are reported through rep and skipped; they never abort the comment.
func Apply(d *doclet.Doclet, commentText string, dict *tagdict.Dictionary, rep diag.Reporter) {
	c := Split(commentText)
	if c.Description != "" {
		d.Description = c.Description
	}

	loc := diag.Diagnostic{File: d.Meta.File, Line: d.Meta.Line}
	for _, raw := range c.Tags {
		applyOne(d, raw, dict, loc, rep)
	}
	d.State = doclet.StateTagsApplied
}

func applyOne(d *doclet.Doclet, raw Raw, dict *tagdict.Dictionary, loc diag.Diagnostic, rep diag.Reporter) {
	def, ok := dict.Lookup(raw.Name)
	if !ok {
		if dict.AllowUnknown {
			d.Tags = append(d.Tags, doclet.Tag{Title: raw.Name, Text: raw.Text, Unknown: true})
			return
		}
		diag.Errorf(rep, derrors.ErrUnknownTag, loc.File, loc.Line,
			"tag @%s is not recognized by the %s grammar", raw.Name, dict.Name)
		return
	}

	d.Tags = append(d.Tags, doclet.Tag{Title: def.Name, Text: raw.Text})

	if def.MustHaveValue && strings.TrimSpace(raw.Text) == "" {
		diag.Errorf(rep, derrors.ErrTagValue, loc.File, loc.Line,
			"tag @%s on %q requires a value", def.Name, d.Name)
		return
	}

	v, err := shapeValue(def, raw, loc, rep)
	if err != nil {
		diag.Errorf(rep, derrors.ErrTagValue, loc.File, loc.Line,
			"tag @%s on %q: %v", def.Name, d.Name, err)
		return
	}

	switch def.Effect {
	case tagdict.EffectSet:
		err = applySet(d, def, v)
	case tagdict.EffectAppend:
		err = applyAppend(d, def, v)
	case tagdict.EffectKind:
		d.Kind = def.KindValue
		if v.NamePath != "" {
			d.Name = v.NamePath
			d.Overrides.Name = v.NamePath
		}
	case tagdict.EffectCustom:
		err = def.OnTagged(d, v)
	case tagdict.EffectNone:
		// Recorded in d.Tags above, nothing more.
	}
	if err != nil {
		diag.Errorf(rep, derrors.ErrTagValue, loc.File, loc.Line,
			"tag @%s on %q: %v", def.Name, d.Name, err)
	}
}

// applySet writes scalar fields. The field set is closed; an
// unrecognized target is a dictionary authoring bug.
func applySet(d *doclet.Doclet, def *tagdict.TagDef, v *tagdict.Value) error {
	switch def.Field {
	case tagdict.FieldDescription:
		d.Description = v.Text
	case tagdict.FieldKind:
		kind := doclet.Kind(strings.TrimSpace(v.Text))
		if !validKinds[kind] {
			return derrors.Wrapf(derrors.ErrTagValue, "unknown kind %q", v.Text)
		}
		d.Kind = kind
	case tagdict.FieldName:
		d.Name = v.NamePath
		d.Overrides.Name = v.NamePath
	case tagdict.FieldMemberof:
		d.Overrides.Memberof = v.NamePath
	case tagdict.FieldLends:
		d.Overrides.Lends = v.NamePath
	case tagdict.FieldAccess:
		access := doclet.Access(strings.TrimSpace(v.Text))
		if !validAccess[access] {
			return derrors.Wrapf(derrors.ErrTagValue, "unknown access level %q", v.Text)
		}
		d.Access = access
	case tagdict.FieldType:
		d.Type = v.Type
		d.TypeText = v.TypeText
	case tagdict.FieldSince:
		d.Since = v.Text
	case tagdict.FieldDeprecated:
		if v.Text == "" {
			d.Deprecated = "yes"
		} else {
			d.Deprecated = v.Text
		}
	case tagdict.FieldVirtual:
		d.Virtual = true
	case tagdict.FieldReadonly:
		d.Readonly = true
	case tagdict.FieldIgnore:
		d.Ignore = true
	default:
		return derrors.AssertionFailedf("tag @%s: no scalar effect for field %d", def.Name, def.Field)
	}
	return nil
}

// applyAppend accumulates repeatable tags. N occurrences yield an
// N-element sequence, never an overwrite.
func applyAppend(d *doclet.Doclet, def *tagdict.TagDef, v *tagdict.Value) error {
	switch def.Field {
	case tagdict.FieldParam:
		if v.Param != nil {
			d.Params = append(d.Params, *v.Param)
		}
	case tagdict.FieldProperty:
		if v.Param != nil {
			d.Properties = append(d.Properties, *v.Param)
		}
	case tagdict.FieldReturn:
		d.Returns = append(d.Returns, doclet.Return{Type: v.Type, TypeText: v.TypeText, Description: v.Text})
	case tagdict.FieldYield:
		d.Yields = append(d.Yields, doclet.Return{Type: v.Type, TypeText: v.TypeText, Description: v.Text})
	case tagdict.FieldExample:
		d.Examples = append(d.Examples, v.Raw)
	case tagdict.FieldSee:
		d.See = append(d.See, v.Text)
	case tagdict.FieldListens:
		d.Listens = append(d.Listens, v.NamePath)
	case tagdict.FieldFires:
		d.Fires = append(d.Fires, v.NamePath)
	case tagdict.FieldMixes:
		d.Mixes = append(d.Mixes, v.NamePath)
	case tagdict.FieldAugments:
		d.Augments = append(d.Augments, v.NamePath)
	case tagdict.FieldImplements:
		name := v.TypeText
		if name == "" {
			name = v.NamePath
		}
		d.Implements = append(d.Implements, name)
	default:
		return derrors.AssertionFailedf("tag @%s: no sequence effect for field %d", def.Name, def.Field)
	}
	return nil
}
