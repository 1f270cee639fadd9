package tags

import (
	"strings"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/tagdict"
	"github.com/doclet-labs/doclet/internal/typeexpr"
)

// shapeValue parses a raw tag occurrence according to its definition's
// value shape. A malformed type expression is reported and the raw text
// retained as TypeText; only shape violations that leave no usable
// value return an error.
func shapeValue(def *tagdict.TagDef, raw Raw, loc diag.Diagnostic, rep diag.Reporter) (*tagdict.Value, error) {
	v := &tagdict.Value{Title: def.Name, Raw: raw.Text}

	switch def.Shape {
	case tagdict.ShapeNone:
		// Trailing text on a valueless tag is tolerated and ignored.

	case tagdict.ShapeText:
		v.Text = raw.Text

	case tagdict.ShapeNamePath:
		v.NamePath = firstToken(raw.Text)
		v.Text = strings.TrimSpace(strings.TrimPrefix(raw.Text, v.NamePath))

	case tagdict.ShapeType:
		typeText, rest, err := extractBracedType(raw.Text)
		if err != nil {
			return nil, err
		}
		if typeText == "" {
			// Unbraced form: the whole value is the type.
			typeText, rest = strings.TrimSpace(raw.Text), ""
		}
		v.TypeText = typeText
		v.Text = rest
		parseType(v, loc, rep)

	case tagdict.ShapeStructured:
		typeText, rest, err := extractBracedType(raw.Text)
		if err != nil {
			return nil, err
		}
		v.TypeText = typeText
		if typeText != "" {
			parseType(v, loc, rep)
		}
		if def.Field == tagdict.FieldParam || def.Field == tagdict.FieldProperty {
			param, desc := parseParamValue(rest)
			param.Type = v.Type
			param.TypeText = v.TypeText
			if v.Type != nil {
				if v.Type.Optional {
					param.Optional = true
				}
				if v.Type.Variadic {
					param.Variadic = true
				}
			}
			param.Description = desc
			v.Param = &param
			v.Text = desc
		} else {
			v.Text = trimDescription(rest)
		}
	}
	return v, nil
}

// parseType parses v.TypeText, reporting a malformed expression and
// leaving the raw text in place as the fallback value.
func parseType(v *tagdict.Value, loc diag.Diagnostic, rep diag.Reporter) {
	expr, err := typeexpr.Parse(v.TypeText)
	if err != nil {
		diag.Errorf(rep, derrors.ErrTypeExpression, loc.File, loc.Line,
			"tag @%s: %v", v.Title, err)
		return
	}
	v.Type = expr
}

// extractBracedType removes a leading brace-balanced {type} clause and
// returns its contents plus the remaining text. No leading brace means
// no type clause. An unterminated clause is a value error.
func extractBracedType(text string) (typeText, rest string, err error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return "", trimmed, nil
	}
	depth := 0
	for i, r := range trimmed {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(trimmed[1:i]), strings.TrimSpace(trimmed[i+1:]), nil
			}
		}
	}
	return "", "", derrors.Wrap(derrors.ErrTagValue, "unterminated type clause")
}

// parseParamValue parses "name desc", "[name] desc" or
// "[name=default] desc" following an optional type clause.
func parseParamValue(text string) (doclet.Param, string) {
	var p doclet.Param
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") {
		if end := strings.IndexRune(trimmed, ']'); end > 0 {
			inner := trimmed[1:end]
			p.Optional = true
			if eq := strings.Index(inner, "="); eq >= 0 {
				p.Name = strings.TrimSpace(inner[:eq])
				p.Default = strings.TrimSpace(inner[eq+1:])
			} else {
				p.Name = strings.TrimSpace(inner)
			}
			return p, trimDescription(trimmed[end+1:])
		}
		// No closing bracket: treat the whole text as description.
		return p, trimDescription(trimmed)
	}
	p.Name = firstToken(trimmed)
	return p, trimDescription(strings.TrimPrefix(trimmed, p.Name))
}

// trimDescription strips the conventional separating hyphen.
func trimDescription(text string) string {
	t := strings.TrimSpace(text)
	t = strings.TrimPrefix(t, "-")
	return strings.TrimSpace(t)
}

// firstToken returns the leading whitespace-delimited token.
func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
