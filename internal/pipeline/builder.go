package pipeline

import (
	"strings"

	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/tags"
)

// Build assembles a doclet from a comment and its structural context.
// The shell is initialized from what the walker saw — construct kind
// and name, independent of tags — then the tag parser runs and may
// override any of it (@name, @memberof, @kind reassign the inference).
// A comment with no parseable content yields an undocumented doclet,
// never a discarded one; pruning is a downstream concern.
func Build(comment string, src SourceContext, ctx *Context) *doclet.Doclet {
	kind := src.Kind
	if kind == "" {
		kind = doclet.KindMember
	}
	d := doclet.New(kind, src.Name)
	d.Meta = doclet.Meta{
		File:     src.File,
		Line:     src.Line,
		CodeName: src.Name,
		CodeKind: src.CodeKind,
	}
	if src.Scope != "" {
		d.Scope = src.Scope
	}
	d.DefaultExport = src.DefaultExport

	tags.Apply(d, comment, ctx.Dict.Active(), ctx.Reporter)

	if strings.TrimSpace(tags.Unwrap(comment)) == "" {
		d.Undocumented = true
	}
	return d
}
